package landmark

import "errors"

var (
	// ErrNoFrame is returned when the capture device produced no frame this tick.
	// It is transient: callers skip the tick and try again.
	ErrNoFrame = errors.New("landmark: no frame captured")

	// ErrEndOfStream is returned by finite sources once every frame was delivered.
	ErrEndOfStream = errors.New("landmark: end of stream")

	// ErrShortMesh is returned when a mesh has fewer points than MeshSize.
	ErrShortMesh = errors.New("landmark: face mesh too short")
)
