package raster

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// BandStats holds summary statistics of a single band.
type BandStats struct {
	Name string
	Mean float64
	// Std is the population standard deviation, matching the per-band
	// std values used for standardization.
	Std float64
	Min float64
	Max float64
}

// Stats computes per-band summary statistics in band order. A band holding
// a NaN sample reports NaN for every statistic.
func (r *Raster) Stats() []BandStats {
	out := make([]BandStats, len(r.bands))
	for i, b := range r.bands {
		values := flatten(b)
		mean, std := stat.PopMeanStdDev(values, nil)
		lo, hi := floats.Min(values), floats.Max(values)
		if floats.HasNaN(values) {
			lo, hi = math.NaN(), math.NaN()
		}
		out[i] = BandStats{
			Name: r.names[i],
			Mean: mean,
			Std:  std,
			Min:  lo,
			Max:  hi,
		}
	}
	return out
}

// Standardize returns a raster whose i-th band is (band - mean[i]) / std[i].
// A zero std yields ±Inf or NaN samples; nothing is guarded.
func (r *Raster) Standardize(mean, std []float64) (*Raster, error) {
	if len(mean) != len(r.bands) || len(std) != len(r.bands) {
		return nil, fmt.Errorf("%w: %d means and %d stds for %d bands",
			ErrNameCount, len(mean), len(std), len(r.bands))
	}

	out := r.clone()
	for i, b := range r.bands {
		m, s := mean[i], std[i]
		var scaled mat.Dense
		scaled.Apply(func(_, _ int, v float64) float64 {
			return (v - m) / s
		}, b)
		out.bands[i] = &scaled
	}
	return out, nil
}
