package tracking

import (
	"errors"
	"testing"
)

func TestDefaultConfig_Calibration(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ScreenWidth != 1280 || cfg.ScreenHeight != 720 {
		t.Errorf("Expected 1280x720, got %vx%v", cfg.ScreenWidth, cfg.ScreenHeight)
	}
	if cfg.Sensitivity != 0.6 {
		t.Errorf("Expected Sensitivity=0.6, got %v", cfg.Sensitivity)
	}
	if cfg.SmoothFactor != 0.05 {
		t.Errorf("Expected SmoothFactor=0.05, got %v", cfg.SmoothFactor)
	}
	if cfg.ClosedThreshold != 0.018 {
		t.Errorf("Expected ClosedThreshold=0.018, got %v", cfg.ClosedThreshold)
	}

	// Calibration offsets assume a centered, front-facing gaze
	if cfg.CenterX != 0.52 || cfg.CenterY != 0.45 {
		t.Errorf("Expected center (0.52, 0.45), got (%v, %v)", cfg.CenterX, cfg.CenterY)
	}
	if cfg.GainX != 6.0 || cfg.GainY != 10.0 {
		t.Errorf("Expected gains (6, 10), got (%v, %v)", cfg.GainX, cfg.GainY)
	}

	// No hysteresis unless asked for
	if cfg.ReopenMargin != 0 {
		t.Errorf("Expected ReopenMargin=0, got %v", cfg.ReopenMargin)
	}
}

func TestPresets_SmoothingOrder(t *testing.T) {
	smooth, def, responsive := SmoothConfig(), DefaultConfig(), ResponsiveConfig()

	if !(smooth.SmoothFactor < def.SmoothFactor && def.SmoothFactor < responsive.SmoothFactor) {
		t.Errorf("Expected smooth < default < responsive, got %v, %v, %v",
			smooth.SmoothFactor, def.SmoothFactor, responsive.SmoothFactor)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"default", func(*Config) {}, ""},
		{"zero smoothing", func(c *Config) { c.SmoothFactor = 0 }, "SmoothFactor"},
		{"smoothing above one", func(c *Config) { c.SmoothFactor = 1.5 }, "SmoothFactor"},
		{"smoothing of one", func(c *Config) { c.SmoothFactor = 1 }, ""},
		{"tiny screen", func(c *Config) { c.ScreenWidth = 80 }, "ScreenWidth"},
		{"short screen", func(c *Config) { c.ScreenHeight = 100 }, "ScreenHeight"},
		{"no threshold", func(c *Config) { c.ClosedThreshold = 0 }, "ClosedThreshold"},
		{"negative reopen", func(c *Config) { c.ReopenMargin = -0.01 }, "ReopenMargin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.field == "" {
				if err != nil {
					t.Fatalf("Expected valid config, got %v", err)
				}
				return
			}

			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("Expected *ConfigError, got %v", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, cerr.Field)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Error("Expected error to match ErrInvalidConfig")
			}
		})
	}
}
