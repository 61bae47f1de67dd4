// Package swarm simulates the gaze-driven particle swarm: a fixed pool of
// independently moving particles that drift freely, gather toward the aim
// point while the eyes are closed, and burst outward when they reopen.
package swarm

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Color is one of the three swarm tints.
type Color uint8

const (
	ColorPink Color = iota
	ColorCyan
	ColorYellow

	numColors = 3
)

// RGBA returns the opaque tint.
func (c Color) RGBA() color.RGBA {
	switch c {
	case ColorCyan:
		return color.RGBA{R: 0, G: 255, B: 240, A: 255}
	case ColorYellow:
		return color.RGBA{R: 255, G: 255, B: 0, A: 255}
	default:
		return color.RGBA{R: 255, G: 105, B: 180, A: 255}
	}
}

func (c Color) String() string {
	switch c {
	case ColorCyan:
		return "cyan"
	case ColorYellow:
		return "yellow"
	default:
		return "pink"
	}
}

// Size tiers. Base sizes above glowMinSize render as glow orbs.
const (
	dustMinSize = 1
	glowMinSize = 4
	sizeSpread  = 3 // sizes are drawn from {min, min+1, min+2}
)

// Particle is one independently simulated swarm member.
type Particle struct {
	Pos mgl64.Vec2
	Vel mgl64.Vec2

	BaseSize float64 // fixed at creation
	Size     float64 // BaseSize, enlarged while gathering

	Color Color
	Phase float64 // pulse offset in [0, 2π)
}

// newParticle spawns a particle with randomized attributes.
func newParticle(cfg Config, rng *rand.Rand) Particle {
	p := Particle{
		Pos: mgl64.Vec2{
			float64(rng.Intn(int(cfg.Width) + 1)),
			float64(rng.Intn(int(cfg.Height) + 1)),
		},
		Vel: mgl64.Vec2{
			uniform(rng, -cfg.InitialSpeed, cfg.InitialSpeed),
			uniform(rng, -cfg.InitialSpeed, cfg.InitialSpeed),
		},
	}

	if rng.Float64() < 1-cfg.GlowFraction {
		p.BaseSize = float64(dustMinSize + rng.Intn(sizeSpread))
	} else {
		p.BaseSize = float64(glowMinSize + rng.Intn(sizeSpread))
	}
	p.Size = p.BaseSize
	p.Color = Color(rng.Intn(numColors))
	p.Phase = rng.Float64() * 2 * math.Pi
	return p
}

// Update advances the particle one frame.
//
// While gathering, particles farther than the dead zone are pulled toward
// aim with a force proportional to distance, capped at AttractionCap, then
// heavily damped. While free, they are lightly damped and wrap around the
// world edges. Position integrates velocity in both phases.
func (p *Particle) Update(aim mgl64.Vec2, gathering bool, cfg Config) {
	if gathering {
		d := aim.Sub(p.Pos)
		dist := d.Len()
		if dist > cfg.AttractionDeadZone {
			pull := math.Min(cfg.AttractionCap, dist/cfg.AttractionFalloff)
			p.Vel = p.Vel.Add(d.Mul(pull / dist))
		}
		p.Vel = p.Vel.Mul(cfg.GatherDamping)
		p.Size = p.BaseSize * cfg.GatherScale
		p.Pos = p.Pos.Add(p.Vel)
		return
	}

	p.Vel = p.Vel.Mul(cfg.FreeDamping)
	p.Size = p.BaseSize
	p.Pos = p.Pos.Add(p.Vel)
	p.Pos = mgl64.Vec2{wrap(p.Pos.X(), cfg.Width), wrap(p.Pos.Y(), cfg.Height)}
}

// ApplyImpulse pushes the particle radially away from center with
// force scaled by a random factor in [0.5, 1.5). A particle sitting exactly
// on center is pushed in a random direction.
func (p *Particle) ApplyImpulse(center mgl64.Vec2, force float64, rng *rand.Rand) {
	dir := p.Pos.Sub(center)
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	} else {
		angle := rng.Float64() * 2 * math.Pi
		dir = mgl64.Vec2{math.Cos(angle), math.Sin(angle)}
	}
	p.Vel = p.Vel.Add(dir.Mul(force * uniform(rng, 0.5, 1.5)))
}

// IsGlow reports whether the particle renders as a large glow orb.
func (p *Particle) IsGlow() bool {
	return p.BaseSize >= glowMinSize
}

// Speed returns the velocity magnitude.
func (p *Particle) Speed() float64 {
	return p.Vel.Len()
}

// wrap teleports a coordinate that left [0, size] to the opposite edge.
func wrap(v, size float64) float64 {
	if v < 0 {
		return size
	}
	if v > size {
		return 0
	}
	return v
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
