package swarm

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Canvas receives the swarm's draw calls. The display layer implements it;
// tests record the calls.
type Canvas interface {
	// Dust draws a small flat circle.
	Dust(pos mgl64.Vec2, radius float64, c Color, alpha uint8)

	// Glow draws an additive blob: a white core of radius size/2 at alpha
	// and a tinted halo of radius size at alpha/2.
	Glow(pos mgl64.Vec2, size float64, c Color, alpha uint8)
}

// Pulse returns the particle's twinkle value in [-1, 1] at the given time.
// It only affects drawing, never motion.
func (p *Particle) Pulse(elapsed time.Duration, rate float64) float64 {
	ms := float64(elapsed) / float64(time.Millisecond)
	return math.Sin(ms*rate + p.Phase)
}

// Draw renders every particle once.
func (s *Swarm) Draw(c Canvas, elapsed time.Duration) {
	for i := range s.particles {
		p := &s.particles[i]
		pulse := p.Pulse(elapsed, s.config.PulseRate)

		if p.IsGlow() {
			size := p.Size * (0.8 + pulse*0.2)
			c.Glow(p.Pos, size, p.Color, uint8(180+pulse*50))
			continue
		}
		c.Dust(p.Pos, p.BaseSize, p.Color, uint8(120+pulse*80))
	}
}
