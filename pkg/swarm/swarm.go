package swarm

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Swarm is the fixed pool of particles. Particles are created once and
// never added or removed. Not safe for concurrent use.
type Swarm struct {
	config    Config
	rng       *rand.Rand
	particles []Particle
}

// New creates a swarm of config.MaxOrbs particles. All randomness (spawn
// attributes and burst jitter) is drawn from rng.
func New(config Config, rng *rand.Rand) *Swarm {
	s := &Swarm{
		config:    config,
		rng:       rng,
		particles: make([]Particle, config.MaxOrbs),
	}
	for i := range s.particles {
		s.particles[i] = newParticle(config, rng)
	}
	return s
}

// Update advances every particle one frame.
func (s *Swarm) Update(aim mgl64.Vec2, gathering bool) {
	for i := range s.particles {
		s.particles[i].Update(aim, gathering, s.config)
	}
}

// Burst applies one radial impulse of BurstForce away from center to every
// particle.
func (s *Swarm) Burst(center mgl64.Vec2) {
	for i := range s.particles {
		s.particles[i].ApplyImpulse(center, s.config.BurstForce, s.rng)
	}
}

// Len returns the number of particles.
func (s *Swarm) Len() int {
	return len(s.particles)
}

// Particles returns a snapshot of every particle.
func (s *Swarm) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// MeanSpeed returns the average velocity magnitude across the swarm.
func (s *Swarm) MeanSpeed() float64 {
	if len(s.particles) == 0 {
		return 0
	}
	var sum float64
	for i := range s.particles {
		sum += s.particles[i].Speed()
	}
	return sum / float64(len(s.particles))
}

// Config returns the swarm configuration.
func (s *Swarm) Config() Config {
	return s.config
}
