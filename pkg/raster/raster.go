// Package raster provides an in-memory multiband raster: a stack of
// equally sized 2-D bands along a leading band axis, with one lower-cased
// name and one integer coordinate per band.
//
// A Raster is never modified after construction. Operations that change the
// band axis (relabelling, appending, selecting) return a new Raster that may
// share band storage with the receiver, so band matrices handed out by Band
// must be treated as read-only.
package raster

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Raster is a (band, height, width) array of float64 samples with band-name
// and band-coordinate metadata.
type Raster struct {
	// bands holds one height x width matrix per band
	bands []*mat.Dense

	// names holds the lower-cased band names, one per band
	names []string

	// coords holds the band-axis coordinate of each band
	coords []int

	height int
	width  int
}

// New creates a raster from the given bands. Each band is copied, so the
// caller keeps ownership of its matrices. Names are lower-cased and the band
// coordinates default to 1..n.
func New(names []string, bands ...*mat.Dense) (*Raster, error) {
	if len(bands) == 0 {
		return nil, ErrEmpty
	}
	if len(names) != len(bands) {
		return nil, fmt.Errorf("%w: %d names for %d bands", ErrNameCount, len(names), len(bands))
	}

	height, width := bands[0].Dims()
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadShape, height, width)
	}

	r := &Raster{
		bands:  make([]*mat.Dense, len(bands)),
		names:  Normalize(names),
		coords: make([]int, len(bands)),
		height: height,
		width:  width,
	}
	for i, b := range bands {
		h, w := b.Dims()
		if h != height || w != width {
			return nil, fmt.Errorf("%w: band %q is %dx%d, want %dx%d",
				ErrDimensionMismatch, r.names[i], h, w, height, width)
		}
		r.bands[i] = mat.DenseCopyOf(b)
		r.coords[i] = i + 1
	}
	return r, nil
}

// FromSlice creates a raster from flat row-major data laid out as
// (band, height, width), the same layout Data returns.
func FromSlice(names []string, height, width int, data []float64) (*Raster, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadShape, height, width)
	}
	plane := height * width
	if len(names) == 0 {
		return nil, ErrEmpty
	}
	if len(data) != len(names)*plane {
		return nil, fmt.Errorf("%w: %d samples for %d bands of %dx%d",
			ErrBadShape, len(data), len(names), height, width)
	}

	bands := make([]*mat.Dense, len(names))
	for b := range names {
		bands[b] = mat.NewDense(height, width, data[b*plane:(b+1)*plane])
	}
	return New(names, bands...)
}

// Constant creates a raster whose bands are each filled with a single value.
func Constant(names []string, height, width int, values []float64) (*Raster, error) {
	if len(values) != len(names) {
		return nil, fmt.Errorf("%w: %d values for %d names", ErrNameCount, len(values), len(names))
	}
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadShape, height, width)
	}

	plane := height * width
	data := make([]float64, len(values)*plane)
	for b, v := range values {
		for i := 0; i < plane; i++ {
			data[b*plane+i] = v
		}
	}
	return FromSlice(names, height, width, data)
}

// Normalize returns a lower-cased copy of names.
func Normalize(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(n)
	}
	return out
}

// Len returns the number of bands.
func (r *Raster) Len() int { return len(r.bands) }

// Dims returns the height and width shared by every band.
func (r *Raster) Dims() (height, width int) { return r.height, r.width }

// Names returns a copy of the band names in band order.
func (r *Raster) Names() []string {
	return append([]string(nil), r.names...)
}

// Coords returns a copy of the band-axis coordinates in band order.
func (r *Raster) Coords() []int {
	return append([]int(nil), r.coords...)
}

// Band returns the i-th band. The matrix is shared and must not be modified.
func (r *Raster) Band(i int) *mat.Dense {
	return r.bands[i]
}

// Index returns the position of the named band, or -1.
func (r *Raster) Index(name string) int {
	name = strings.ToLower(name)
	for i, n := range r.names {
		if n == name {
			return i
		}
	}
	return -1
}

// Has reports whether the named band is present.
func (r *Raster) Has(name string) bool {
	return r.Index(name) >= 0
}

// BandByName returns the named band.
func (r *Raster) BandByName(name string) (*mat.Dense, error) {
	i := r.Index(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q not in %v", ErrBandNotFound, name, r.names)
	}
	return r.bands[i], nil
}

// Data returns a flat (band, height, width) copy of all samples.
func (r *Raster) Data() []float64 {
	plane := r.height * r.width
	out := make([]float64, 0, len(r.bands)*plane)
	for _, b := range r.bands {
		out = append(out, flatten(b)...)
	}
	return out
}

// WithNames returns a raster relabelled with names. The band count must not
// change.
func (r *Raster) WithNames(names []string) (*Raster, error) {
	if len(names) != len(r.bands) {
		return nil, fmt.Errorf("%w: %d names for %d bands", ErrNameCount, len(names), len(r.bands))
	}
	out := r.clone()
	out.names = Normalize(names)
	return out, nil
}

// Append returns a new raster with band concatenated onto the band axis
// under the given name and coordinate. The receiver is left unchanged.
func (r *Raster) Append(name string, coord int, band mat.Matrix) (*Raster, error) {
	h, w := band.Dims()
	if h != r.height || w != r.width {
		return nil, fmt.Errorf("%w: band %q is %dx%d, want %dx%d",
			ErrDimensionMismatch, name, h, w, r.height, r.width)
	}

	out := r.clone()
	out.bands = append(out.bands, mat.DenseCopyOf(band))
	out.names = append(out.names, strings.ToLower(name))
	out.coords = append(out.coords, coord)
	return out, nil
}

// Select returns a raster holding only the named bands, in the order given.
func (r *Raster) Select(names ...string) (*Raster, error) {
	if len(names) == 0 {
		return nil, ErrEmpty
	}

	out := &Raster{
		bands:  make([]*mat.Dense, 0, len(names)),
		names:  make([]string, 0, len(names)),
		coords: make([]int, 0, len(names)),
		height: r.height,
		width:  r.width,
	}
	for _, name := range names {
		i := r.Index(name)
		if i < 0 {
			return nil, fmt.Errorf("%w: %q not in %v", ErrBandNotFound, name, r.names)
		}
		out.bands = append(out.bands, r.bands[i])
		out.names = append(out.names, r.names[i])
		out.coords = append(out.coords, r.coords[i])
	}
	return out, nil
}

// clone copies the metadata slices and shares the band matrices.
func (r *Raster) clone() *Raster {
	return &Raster{
		bands:  append([]*mat.Dense(nil), r.bands...),
		names:  append([]string(nil), r.names...),
		coords: append([]int(nil), r.coords...),
		height: r.height,
		width:  r.width,
	}
}

// flatten returns the samples of m in row-major order.
func flatten(m *mat.Dense) []float64 {
	raw := m.RawMatrix()
	if raw.Stride == raw.Cols {
		return append([]float64(nil), raw.Data[:raw.Rows*raw.Cols]...)
	}
	out := make([]float64, 0, raw.Rows*raw.Cols)
	for i := 0; i < raw.Rows; i++ {
		out = append(out, raw.Data[i*raw.Stride:i*raw.Stride+raw.Cols]...)
	}
	return out
}
