package swarm

import "errors"

// ErrInvalidConfig wraps every ConfigError.
var ErrInvalidConfig = errors.New("swarm: invalid config")

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "swarm: " + e.Field + ": " + e.Message
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
