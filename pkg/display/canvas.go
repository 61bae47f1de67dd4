package display

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/teslashibe/gaze-swarm/pkg/swarm"
)

// discRadius is the radius of the pre-rendered glow sprite in pixels.
const discRadius = 32

// fxCanvas draws swarm particles onto the effects layer.
// Glow orbs are composited additively so overlapping orbs brighten.
type fxCanvas struct {
	dst  *ebiten.Image
	disc *ebiten.Image
}

func newFxCanvas(dst *ebiten.Image) *fxCanvas {
	disc := ebiten.NewImage(2*discRadius, 2*discRadius)
	vector.DrawFilledCircle(disc, discRadius, discRadius, discRadius, color.White, true)
	return &fxCanvas{dst: dst, disc: disc}
}

// Dust draws a flat circle.
func (c *fxCanvas) Dust(pos mgl64.Vec2, radius float64, col swarm.Color, alpha uint8) {
	vector.DrawFilledCircle(c.dst, float32(pos.X()), float32(pos.Y()), float32(radius),
		withAlpha(col.RGBA(), alpha), true)
}

// Glow draws a white core inside a tinted halo.
func (c *fxCanvas) Glow(pos mgl64.Vec2, size float64, col swarm.Color, alpha uint8) {
	c.blob(pos, size, col.RGBA(), alpha/2)
	c.blob(pos, size/2, colorWhite, alpha)
}

func (c *fxCanvas) blob(pos mgl64.Vec2, radius float64, rgb color.RGBA, alpha uint8) {
	if radius <= 0 || alpha == 0 {
		return
	}
	s := radius / discRadius

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-discRadius, -discRadius)
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(pos.X(), pos.Y())
	op.ColorScale.ScaleWithColor(withAlpha(rgb, alpha))
	op.Blend = ebiten.BlendLighter
	op.Filter = ebiten.FilterLinear
	c.dst.DrawImage(c.disc, op)
}

// withAlpha returns rgb with a straight (non-premultiplied) alpha.
func withAlpha(rgb color.RGBA, alpha uint8) color.NRGBA {
	return color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: alpha}
}
