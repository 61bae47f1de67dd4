package tracking

import "errors"

var (
	// ErrNoFace is returned when Update is called without a face.
	ErrNoFace = errors.New("tracking: no face")

	// ErrDegenerateEye is returned when the eye span or lid gap is too small
	// to divide by. The tracker state is left untouched for that frame.
	ErrDegenerateEye = errors.New("tracking: degenerate eye geometry")

	// ErrInvalidConfig wraps every ConfigError.
	ErrInvalidConfig = errors.New("tracking: invalid config")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "tracking: " + e.Field + ": " + e.Message
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
