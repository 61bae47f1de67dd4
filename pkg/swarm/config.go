package swarm

import "fmt"

// Config holds all tunable parameters for the particle swarm
type Config struct {
	// World
	Width   float64 `yaml:"width"`    // Torus width (FREE phase wraparound)
	Height  float64 `yaml:"height"`   // Torus height
	MaxOrbs int     `yaml:"max_orbs"` // Fixed pool size

	// Burst
	BurstForce float64 `yaml:"burst_force"` // Impulse magnitude before jitter

	// Gathering
	AttractionCap      float64 `yaml:"attraction_cap"`       // Max pull per frame
	AttractionDeadZone float64 `yaml:"attraction_dead_zone"` // No pull within this distance
	AttractionFalloff  float64 `yaml:"attraction_falloff"`   // Pull = distance / falloff below the cap
	GatherDamping      float64 `yaml:"gather_damping"`       // Velocity multiplier per frame
	GatherScale        float64 `yaml:"gather_scale"`         // Size multiplier while gathering

	// Free drift
	FreeDamping  float64 `yaml:"free_damping"`  // Velocity multiplier per frame
	InitialSpeed float64 `yaml:"initial_speed"` // Spawn velocity range per axis (±)

	// Looks
	GlowFraction float64 `yaml:"glow_fraction"` // Share of large glow orbs
	PulseRate    float64 `yaml:"pulse_rate"`    // Radians per millisecond
}

// DefaultConfig returns the tuned swarm for a 1280x720 screen
func DefaultConfig() Config {
	return Config{
		Width:   1280,
		Height:  720,
		MaxOrbs: 1500,

		BurstForce: 25.0,

		AttractionCap:      15.0,
		AttractionDeadZone: 10,
		AttractionFalloff:  20,
		GatherDamping:      0.80, // lose 20% per frame, tight clump
		GatherScale:        1.8,

		FreeDamping:  0.94,
		InitialSpeed: 0.5,

		GlowFraction: 0.15,
		PulseRate:    0.003,
	}
}

// Validate checks that every parameter is usable.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return &ConfigError{Field: "Width/Height", Message: fmt.Sprintf("world %vx%v must be positive", c.Width, c.Height)}
	case c.MaxOrbs < 0:
		return &ConfigError{Field: "MaxOrbs", Message: "particle count must not be negative"}
	case c.BurstForce < 0:
		return &ConfigError{Field: "BurstForce", Message: "force must not be negative"}
	case c.AttractionCap < 0:
		return &ConfigError{Field: "AttractionCap", Message: "cap must not be negative"}
	case c.AttractionDeadZone < 0:
		// The dead zone also keeps the pull from dividing by a zero distance.
		return &ConfigError{Field: "AttractionDeadZone", Message: "dead zone must not be negative"}
	case c.AttractionFalloff <= 0:
		return &ConfigError{Field: "AttractionFalloff", Message: "falloff must be positive"}
	case c.GatherDamping < 0 || c.GatherDamping > 1:
		return &ConfigError{Field: "GatherDamping", Message: fmt.Sprintf("damping %v outside [0, 1]", c.GatherDamping)}
	case c.GatherScale <= 0:
		return &ConfigError{Field: "GatherScale", Message: "scale must be positive"}
	case c.FreeDamping < 0 || c.FreeDamping > 1:
		return &ConfigError{Field: "FreeDamping", Message: fmt.Sprintf("damping %v outside [0, 1]", c.FreeDamping)}
	case c.InitialSpeed < 0:
		return &ConfigError{Field: "InitialSpeed", Message: "speed must not be negative"}
	case c.GlowFraction < 0 || c.GlowFraction > 1:
		return &ConfigError{Field: "GlowFraction", Message: fmt.Sprintf("fraction %v outside [0, 1]", c.GlowFraction)}
	}
	return nil
}
