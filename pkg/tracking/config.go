package tracking

import "fmt"

// Config holds all tunable parameters for gaze tracking
type Config struct {
	// Screen space the aim point lives in
	ScreenWidth  float64 `yaml:"screen_width"`
	ScreenHeight float64 `yaml:"screen_height"`
	Margin       float64 `yaml:"margin"` // Keep the aim point this far inside the edges

	// Gaze mapping
	Sensitivity float64 `yaml:"sensitivity"` // Overall gain applied to both axes
	CenterX     float64 `yaml:"center_x"`    // Horizontal iris ratio when looking straight ahead
	CenterY     float64 `yaml:"center_y"`    // Vertical iris ratio when looking straight ahead
	GainX       float64 `yaml:"gain_x"`      // Horizontal axis multiplier
	GainY       float64 `yaml:"gain_y"`      // Vertical axis multiplier (lids travel less)

	// Smoothing
	SmoothFactor float64 `yaml:"smooth_factor"` // Exponential smoothing factor (0-1, higher = more new data)

	// Eyelids
	ClosedThreshold float64 `yaml:"closed_threshold"` // Average lid gap below this = eyes closed
	ReopenMargin    float64 `yaml:"reopen_margin"`    // Extra gap needed to reopen (0 = no hysteresis)
}

// DefaultConfig returns the calibrated configuration for a 1280x720 screen
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  1280,
		ScreenHeight: 720,
		Margin:       50,

		Sensitivity: 0.6,
		CenterX:     0.52, // front-facing baseline
		CenterY:     0.45,
		GainX:       6.0,
		GainY:       10.0,

		SmoothFactor: 0.05, // 5% new, 95% old

		ClosedThreshold: 0.018,
		ReopenMargin:    0,
	}
}

// SmoothConfig returns a configuration for slower, steadier aiming
func SmoothConfig() Config {
	cfg := DefaultConfig()
	cfg.SmoothFactor = 0.03
	cfg.Sensitivity = 0.5
	return cfg
}

// ResponsiveConfig returns a configuration that follows the eyes quickly
func ResponsiveConfig() Config {
	cfg := DefaultConfig()
	cfg.SmoothFactor = 0.12 // Trust new readings more
	cfg.Sensitivity = 0.7
	return cfg
}

// Validate checks that every parameter is usable.
func (c Config) Validate() error {
	switch {
	case c.ScreenWidth <= 2*c.Margin:
		return &ConfigError{Field: "ScreenWidth", Message: fmt.Sprintf("screen width %.0f leaves no room inside margin %.0f", c.ScreenWidth, c.Margin)}
	case c.ScreenHeight <= 2*c.Margin:
		return &ConfigError{Field: "ScreenHeight", Message: fmt.Sprintf("screen height %.0f leaves no room inside margin %.0f", c.ScreenHeight, c.Margin)}
	case c.Margin < 0:
		return &ConfigError{Field: "Margin", Message: "margin must not be negative"}
	case c.SmoothFactor <= 0 || c.SmoothFactor > 1:
		return &ConfigError{Field: "SmoothFactor", Message: fmt.Sprintf("smooth factor %v outside (0, 1]", c.SmoothFactor)}
	case c.ClosedThreshold <= 0:
		return &ConfigError{Field: "ClosedThreshold", Message: "closed threshold must be positive"}
	case c.ReopenMargin < 0:
		return &ConfigError{Field: "ReopenMargin", Message: "reopen margin must not be negative"}
	}
	return nil
}
