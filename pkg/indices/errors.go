package indices

import (
	"errors"
	"fmt"

	"caney/pkg/raster"
)

var (
	// ErrNotFound matches a *NotFoundError.
	ErrNotFound = errors.New("indices: band not found")

	// ErrInvalidMapping matches an *InvalidMappingError.
	ErrInvalidMapping = errors.New("indices: invalid indices mapping")
)

// NotFoundError reports a requested band that is absent from the raster.
type NotFoundError struct {
	// Band is the requested name that could not be located.
	Band string
	// Bands is the full band-name list that was searched.
	Bands []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("indices: %s not in raster bands %v", e.Band, e.Bands)
}

// Is matches ErrNotFound and raster.ErrBandNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound || target == raster.ErrBandNotFound
}

// InvalidMappingError reports an index name missing from the registry.
type InvalidMappingError struct {
	Key string
}

func (e *InvalidMappingError) Error() string {
	return fmt.Sprintf("indices: invalid indices mapping: %s", e.Key)
}

// Is matches ErrInvalidMapping.
func (e *InvalidMappingError) Is(target error) bool {
	return target == ErrInvalidMapping
}
