package landmark

import "image"

// Frame is one tick of input from the landmark collaborator.
type Frame struct {
	// Face is nil when no face was detected.
	Face *Face

	// Image is the preprocessed camera picture, or nil for sources without one.
	Image *image.RGBA
}

// Source yields one Frame per call.
//
// Next returns ErrNoFrame on a transient capture failure and ErrEndOfStream
// when a finite source is exhausted. Any other error is fatal.
type Source interface {
	Next() (Frame, error)
	Close() error
}
