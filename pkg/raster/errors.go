package raster

import "errors"

// Sentinel errors returned by raster operations. Callers match them with
// errors.Is; most are wrapped with the offending shape or name.
var (
	// ErrBadShape is returned when a band has a non-positive height or width,
	// or when flat data does not fill bands*height*width samples.
	ErrBadShape = errors.New("raster: invalid shape")

	// ErrDimensionMismatch is returned when a band does not share the
	// raster's height and width.
	ErrDimensionMismatch = errors.New("raster: dimension mismatch")

	// ErrNameCount is returned when the band-name list length differs from
	// the number of bands.
	ErrNameCount = errors.New("raster: band name count does not match band count")

	// ErrBandNotFound is returned when a named band is not present.
	ErrBandNotFound = errors.New("raster: band not found")

	// ErrEmpty is returned when a raster would be created without bands.
	ErrEmpty = errors.New("raster: no bands")
)
