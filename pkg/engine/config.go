package engine

import (
	"fmt"
	"time"

	"github.com/teslashibe/gaze-swarm/pkg/swarm"
	"github.com/teslashibe/gaze-swarm/pkg/tracking"
)

// LoopConfig tunes frame pacing and capture failure handling.
type LoopConfig struct {
	TPS int `yaml:"tps"` // Ticks per second for Run

	// Capture failures
	MaxCaptureFailures int           `yaml:"max_capture_failures"` // Consecutive failures before giving up
	RetryBase          time.Duration `yaml:"retry_base"`           // First back-off after a failed read
	RetryMax           time.Duration `yaml:"retry_max"`            // Back-off ceiling
}

// DefaultLoopConfig returns 60 Hz pacing with about five minutes of
// tolerated camera dropouts before the engine gives up: the back-off is
// capped at 1s from the seventh failure on and the 300th failure is fatal.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		TPS:                60,
		MaxCaptureFailures: 300,
		RetryBase:          16 * time.Millisecond,
		RetryMax:           time.Second,
	}
}

// Config aggregates everything the engine needs.
type Config struct {
	Gaze  tracking.Config
	Swarm swarm.Config
	Loop  LoopConfig
}

// DefaultConfig returns the tuned defaults for a 1280x720 screen.
func DefaultConfig() Config {
	return Config{
		Gaze:  tracking.DefaultConfig(),
		Swarm: swarm.DefaultConfig(),
		Loop:  DefaultLoopConfig(),
	}
}

// Validate checks every section. The gaze screen and swarm world must agree
// so the aim point lives in the same space as the particles.
func (c Config) Validate() error {
	if err := c.Gaze.Validate(); err != nil {
		return err
	}
	if err := c.Swarm.Validate(); err != nil {
		return err
	}
	if c.Gaze.ScreenWidth != c.Swarm.Width || c.Gaze.ScreenHeight != c.Swarm.Height {
		return &ConfigError{Field: "Screen", Message: fmt.Sprintf("gaze screen %vx%v does not match swarm world %vx%v",
			c.Gaze.ScreenWidth, c.Gaze.ScreenHeight, c.Swarm.Width, c.Swarm.Height)}
	}
	return c.Loop.Validate()
}

// Validate checks the loop settings.
func (c LoopConfig) Validate() error {
	switch {
	case c.TPS <= 0:
		return &ConfigError{Field: "TPS", Message: "must be positive"}
	case c.MaxCaptureFailures <= 0:
		return &ConfigError{Field: "MaxCaptureFailures", Message: "must be positive"}
	case c.RetryBase <= 0:
		return &ConfigError{Field: "RetryBase", Message: "must be positive"}
	case c.RetryMax < c.RetryBase:
		return &ConfigError{Field: "RetryMax", Message: fmt.Sprintf("%v is below RetryBase %v", c.RetryMax, c.RetryBase)}
	}
	return nil
}

// backoff returns the wait after the n-th consecutive failure (n >= 1):
// RetryBase doubled per failure, capped at RetryMax.
func (c LoopConfig) backoff(n int) time.Duration {
	d := c.RetryBase
	for i := 1; i < n && d < c.RetryMax; i++ {
		d *= 2
	}
	if d > c.RetryMax {
		d = c.RetryMax
	}
	return d
}
