package indices

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"caney/pkg/raster"
)

// Func computes a single derived band from a raster. The returned matrix has
// the raster's height and width and is owned by the caller.
//
// Index functions never guard their arithmetic: division by zero and
// out-of-domain powers produce ±Inf and NaN samples.
type Func func(r *raster.Raster) (*mat.Dense, error)

// Locations returns the position of each requested band within bands, in
// request order. Requested names are lower-cased before the lookup.
func Locations(bands, requested []string) ([]int, error) {
	locations := make([]int, 0, len(requested))
	for _, name := range requested {
		pos := -1
		lower := strings.ToLower(name)
		for i, b := range bands {
			if b == lower {
				pos = i
				break
			}
		}
		if pos < 0 {
			return nil, &NotFoundError{Band: name, Bands: append([]string(nil), bands...)}
		}
		locations = append(locations, pos)
	}
	return locations, nil
}

// bands resolves the requested names against the raster's band names and
// returns the matching band matrices in request order.
func bands(r *raster.Raster, requested ...string) ([]*mat.Dense, error) {
	locations, err := Locations(r.Names(), requested)
	if err != nil {
		return nil, err
	}
	out := make([]*mat.Dense, len(locations))
	for i, loc := range locations {
		out[i] = r.Band(loc)
	}
	return out, nil
}

// hasAll reports whether every name is present in the raster.
func hasAll(r *raster.Raster, names ...string) bool {
	for _, n := range names {
		if !r.Has(n) {
			return false
		}
	}
	return true
}

// BAI computes the Burn Area Index, 1 / ((0.1 - Red)^2 + (0.06 - NIR1)^2).
func BAI(r *raster.Raster) (*mat.Dense, error) {
	b, err := bands(r, "red", "nir1")
	if err != nil {
		return nil, err
	}
	red, nir1 := b[0], b[1]

	var index, nirTerm mat.Dense
	index.Apply(func(_, _ int, v float64) float64 {
		d := 0.1 - v
		return d * d
	}, red)
	nirTerm.Apply(func(_, _ int, v float64) float64 {
		d := 0.06 - v
		return d * d
	}, nir1)
	index.Add(&index, &nirTerm)
	index.Apply(func(_, _ int, v float64) float64 { return 1 / v }, &index)
	return &index, nil
}

// CIG computes the Chlorophyll Index - Green, (NIR1 / Green) - 1.
func CIG(r *raster.Raster) (*mat.Dense, error) {
	b, err := bands(r, "nir1", "green")
	if err != nil {
		return nil, err
	}

	var index mat.Dense
	index.DivElem(b[0], b[1])
	index.Apply(func(_, _ int, v float64) float64 { return v - 1 }, &index)
	return &index, nil
}

// CIRE computes the Chlorophyll Index - Red-Edge, (NIR1 / RedEdge) - 1.
// Imagery without a rededge band uses red in its place.
func CIRE(r *raster.Raster) (*mat.Dense, error) {
	requested := []string{"nir1", "rededge"}
	if !r.Has("rededge") {
		requested = []string{"nir1", "red"}
	}
	b, err := bands(r, requested...)
	if err != nil {
		return nil, err
	}

	var index mat.Dense
	index.DivElem(b[0], b[1])
	index.Apply(func(_, _ int, v float64) float64 { return v - 1 }, &index)
	return &index, nil
}

// CM computes the Clay Minerals ratio, SWIR1 / SWIR2.
func CM(r *raster.Raster) (*mat.Dense, error) {
	b, err := bands(r, "swir1", "swir2")
	if err != nil {
		return nil, err
	}

	var index mat.Dense
	index.DivElem(b[0], b[1])
	return &index, nil
}

// CS1 computes the first cloud detection index, (3 * NIR1) / (Blue + Green + Red).
func CS1(r *raster.Raster) (*mat.Dense, error) {
	b, err := bands(r, "nir1", "red", "blue", "green")
	if err != nil {
		return nil, err
	}
	nir1, red, blue, green := b[0], b[1], b[2], b[3]

	var index, visible mat.Dense
	visible.Add(blue, green)
	visible.Add(&visible, red)
	index.Scale(3, nir1)
	index.DivElem(&index, &visible)
	return &index, nil
}

// CS2 computes the second cloud detection index, (Blue + Green + Red + NIR1) / 4.
func CS2(r *raster.Raster) (*mat.Dense, error) {
	b, err := bands(r, "nir1", "red", "blue", "green")
	if err != nil {
		return nil, err
	}
	nir1, red, blue, green := b[0], b[1], b[2], b[3]

	var index mat.Dense
	index.Add(blue, green)
	index.Add(&index, red)
	index.Add(&index, nir1)
	index.Apply(func(_, _ int, v float64) float64 { return v / 4.0 }, &index)
	return &index, nil
}

// DVI computes the Difference Vegetation Index, NIR1 - Red.
func DVI(r *raster.Raster) (*mat.Dense, error) {
	b, err := bands(r, "nir1", "red")
	if err != nil {
		return nil, err
	}

	var index mat.Dense
	index.Sub(b[0], b[1])
	return &index, nil
}

// DWI computes the Difference Water Index, Green - NIR1.
func DWI(r *raster.Raster) (*mat.Dense, error) {
	b, err := bands(r, "nir1", "green")
	if err != nil {
		return nil, err
	}

	var index mat.Dense
	index.Sub(b[1], b[0])
	return &index, nil
}

// EVI computes the Enhanced Vegetation Index,
// 2.5 * (NIR1 - Red) / (NIR1 + 6 * Red - 7.5 * Blue + 1).
func EVI(r *raster.Raster) (*mat.Dense, error) {
	b, err := bands(r, "red", "blue", "nir1")
	if err != nil {
		return nil, err
	}
	red, blue, nir1 := b[0], b[1], b[2]

	var index, denom, blueTerm mat.Dense
	index.Sub(nir1, red)
	index.Scale(2.5, &index)

	denom.Scale(6, red)
	denom.Add(nir1, &denom)
	blueTerm.Scale(7.5, blue)
	denom.Sub(&denom, &blueTerm)
	denom.Apply(func(_, _ int, v float64) float64 { return v + 1 }, &denom)

	index.DivElem(&index, &denom)
	return &index, nil
}

// FDI computes the Forest Discrimination Index. Eight band imagery uses
// NIR2 - (RedEdge + Blue); anything else uses NIR1 - (Red + Blue).
func FDI(r *raster.Raster) (*mat.Dense, error) {
	requested := []string{"blue", "nir2", "rededge"}
	if !hasAll(r, "nir2", "rededge") {
		requested = []string{"blue", "nir1", "red"}
	}
	b, err := bands(r, requested...)
	if err != nil {
		return nil, err
	}
	blue, nir, red := b[0], b[1], b[2]

	var index, sum mat.Dense
	sum.Add(red, blue)
	index.Sub(nir, &sum)
	return &index, nil
}

// GNDVI computes the Green Normalized Difference Vegetation Index,
// (NIR1 - Green) / (NIR1 + Green).
func GNDVI(r *raster.Raster) (*mat.Dense, error) {
	b, err := bands(r, "nir1", "green")
	if err != nil {
		return nil, err
	}
	return normalizedDifference(b[0], b[1]), nil
}

// NDVI computes the Normalized Difference Vegetation Index,
// (NIR1 - Red) / (NIR1 + Red).
func NDVI(r *raster.Raster) (*mat.Dense, error) {
	b, err := bands(r, "nir1", "red")
	if err != nil {
		return nil, err
	}
	return normalizedDifference(b[0], b[1]), nil
}

// NDWI computes the Normalized Difference Water Index,
// (Green - NIR1) / (Green + NIR1).
func NDWI(r *raster.Raster) (*mat.Dense, error) {
	b, err := bands(r, "nir1", "green")
	if err != nil {
		return nil, err
	}
	return normalizedDifference(b[1], b[0]), nil
}

// SI computes the Shadow Index as (Blue - Green / Red) ** (1/3). The
// division binds before the subtraction; negative bases yield NaN.
func SI(r *raster.Raster) (*mat.Dense, error) {
	b, err := bands(r, "red", "blue", "green")
	if err != nil {
		return nil, err
	}
	red, blue, green := b[0], b[1], b[2]

	var index, ratio mat.Dense
	ratio.DivElem(green, red)
	index.Sub(blue, &ratio)
	index.Apply(func(_, _ int, v float64) float64 {
		return math.Pow(v, 1.0/3.0)
	}, &index)
	return &index, nil
}

// SR computes the Simple Ratio, NIR1 / Red.
func SR(r *raster.Raster) (*mat.Dense, error) {
	b, err := bands(r, "nir1", "red")
	if err != nil {
		return nil, err
	}

	var index mat.Dense
	index.DivElem(b[0], b[1])
	return &index, nil
}

// normalizedDifference returns (a - b) / (a + b).
func normalizedDifference(a, b mat.Matrix) *mat.Dense {
	var index, sum mat.Dense
	index.Sub(a, b)
	sum.Add(a, b)
	index.DivElem(&index, &sum)
	return &index
}
