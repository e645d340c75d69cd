package models

import "errors"

var (
	// ErrNoImageLoaded is returned when an action needs a source or output raster that is absent
	ErrNoImageLoaded = errors.New("no image loaded")

	// ErrEmptyRenderResult is returned by the rendering engine when a filter yields no raster
	ErrEmptyRenderResult = errors.New("render produced no image")

	// ErrUnknownFilter is returned for a filter outside the catalog
	ErrUnknownFilter = errors.New("unknown filter")
)

// SaveError carries the opaque reason reported by the photo library
type SaveError struct {
	Reason string
	Err    error
}

func (e *SaveError) Error() string {
	return e.Reason
}

func (e *SaveError) Unwrap() error {
	return e.Err
}
