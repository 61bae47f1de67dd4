package engine

import "errors"

var (
	// ErrCaptureFailed is returned by Tick once the camera failed
	// MaxCaptureFailures times in a row. It is fatal.
	ErrCaptureFailed = errors.New("engine: capture failed")

	// ErrInvalidConfig wraps every ConfigError.
	ErrInvalidConfig = errors.New("engine: invalid config")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "engine: " + e.Field + ": " + e.Message
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
