package display

import (
	"image/color"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/teslashibe/gaze-swarm/pkg/swarm"
)

// Palette
var (
	colorPink      = swarm.ColorPink.RGBA()
	colorCyan      = swarm.ColorCyan.RGBA()
	colorYellow    = swarm.ColorYellow.RGBA()
	colorWhite     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorGreen     = color.RGBA{R: 50, G: 255, B: 50, A: 255}
	colorRed       = color.RGBA{R: 255, G: 50, B: 50, A: 255}
	colorGray      = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	colorPanelFill = color.NRGBA{R: 0, G: 0, B: 0, A: 180}
)

// Cursor
const (
	cursorRadius = 20
	cursorDot    = 4
)

// Eye reticle
const (
	reticleRadius   = 28
	reticleArcLen   = 1.5   // radians per segment
	reticleSpin     = 0.005 // radians per millisecond
	bracketHalf     = 35
	bracketLen      = 10
	reticleCoreSize = 3
)

// HUD panel
const (
	panelX = 20
	panelY = 20
	panelW = 340
	panelH = 150
)

// cursorColor is pink while gathering and cyan while free.
func cursorColor(gathering bool) color.RGBA {
	if gathering {
		return colorPink
	}
	return colorCyan
}

// drawCursor draws the aim ring and its center dot.
func drawCursor(dst *ebiten.Image, aim mgl64.Vec2, gathering bool) {
	x, y := float32(aim.X()), float32(aim.Y())
	vector.StrokeCircle(dst, x, y, cursorRadius, 2, withAlpha(cursorColor(gathering), 100), true)
	vector.DrawFilledCircle(dst, x, y, cursorDot, withAlpha(colorWhite, 200), true)
}

// reticleArcs returns the start and end angles of the three rotating arc
// segments at the given time.
func reticleArcs(elapsed time.Duration) [3][2]float64 {
	spin := ms(elapsed) * reticleSpin
	var arcs [3][2]float64
	for i := range arcs {
		start := spin + float64(i)*(2*math.Pi/3)
		arcs[i] = [2]float64{start, start + reticleArcLen}
	}
	return arcs
}

// brackets returns the four corner brackets around (cx, cy) as three-point
// polylines: top-left, top-right, bottom-left, bottom-right.
func brackets(cx, cy float64) [4][3]mgl64.Vec2 {
	b, l := float64(bracketHalf), float64(bracketLen)
	return [4][3]mgl64.Vec2{
		{{cx - b, cy - b + l}, {cx - b, cy - b}, {cx - b + l, cy - b}},
		{{cx + b - l, cy - b}, {cx + b, cy - b}, {cx + b, cy - b + l}},
		{{cx - b, cy + b - l}, {cx - b, cy + b}, {cx - b + l, cy + b}},
		{{cx + b - l, cy + b}, {cx + b, cy + b}, {cx + b, cy + b - l}},
	}
}

// drawEyeReticle draws the lock-on reticle around the iris with a faint
// link to the aim point.
func drawEyeReticle(dst *ebiten.Image, iris, aim mgl64.Vec2, elapsed time.Duration) {
	cx, cy := iris.X(), iris.Y()

	for _, arc := range reticleArcs(elapsed) {
		strokeArc(dst, cx, cy, reticleRadius, arc[0], arc[1], 2, colorCyan)
	}

	for _, pl := range brackets(cx, cy) {
		for i := 0; i < len(pl)-1; i++ {
			vector.StrokeLine(dst, float32(pl[i].X()), float32(pl[i].Y()),
				float32(pl[i+1].X()), float32(pl[i+1].Y()), 2, colorCyan, true)
		}
	}

	vector.StrokeLine(dst, float32(cx), float32(cy), float32(aim.X()), float32(aim.Y()),
		1, withAlpha(colorCyan, 80), true)
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), reticleCoreSize, withAlpha(colorWhite, 200), true)
}

// strokeArc draws a counter-clockwise arc (screen y pointing down) as a
// chain of short segments.
func strokeArc(dst *ebiten.Image, cx, cy, r, start, end float64, width float32, clr color.Color) {
	const step = 0.15
	prevX, prevY := cx+r*math.Cos(start), cy-r*math.Sin(start)
	for a := start + step; ; a += step {
		if a > end {
			a = end
		}
		x, y := cx+r*math.Cos(a), cy-r*math.Sin(a)
		vector.StrokeLine(dst, float32(prevX), float32(prevY), float32(x), float32(y), width, clr, true)
		prevX, prevY = x, y
		if a >= end {
			return
		}
	}
}

// statusLabel returns the phase line and lamp color for the HUD.
func statusLabel(phase swarm.Phase) (string, color.RGBA) {
	if phase == swarm.PhaseGathering {
		return "STATUS: GATHERING", colorRed
	}
	return "STATUS: FREE", colorGreen
}

// faceMarker is shown next to the status while the phase is frozen for
// lack of a face. It is empty while a face is tracked.
func faceMarker(faceVisible bool) string {
	if faceVisible {
		return ""
	}
	return "[NO FACE]"
}

// lampGlowRadius pulses the status lamp halo while gathering.
func lampGlowRadius(elapsed time.Duration) float64 {
	return 12 + math.Sin(ms(elapsed)*0.01)*3
}

// hud draws the opaque status panel.
type hud struct {
	face text.Face
}

func newHUD(face text.Face) *hud {
	return &hud{face: face}
}

func (h *hud) draw(dst *ebiten.Image, phase swarm.Phase, faceVisible bool, elapsed time.Duration) {
	vector.DrawFilledRect(dst, panelX, panelY, panelW, panelH, colorPanelFill, true)
	vector.StrokeRect(dst, panelX, panelY, panelW, panelH, 2, colorCyan, true)

	h.label(dst, "GAZE SWARM", panelX+20, panelY+10, 2, colorWhite)
	h.label(dst, "EYE CONTROL SYSTEM // V5.0", panelX+22, panelY+38, 1, colorCyan)
	vector.StrokeLine(dst, panelX+20, panelY+70, panelX+panelW-20, panelY+70, 1, withAlpha(colorWhite, 100), true)

	status, lamp := statusLabel(phase)
	h.label(dst, status, panelX+22, panelY+54, 1, lamp)
	if marker := faceMarker(faceVisible); marker != "" {
		h.label(dst, marker, panelX+160, panelY+54, 1, colorGray)
	}

	lx, ly := float32(panelX+280), float32(panelY+35)
	if phase == swarm.PhaseGathering {
		r := float32(lampGlowRadius(elapsed))
		vector.DrawFilledCircle(dst, lx, ly, r, withAlpha(lamp, 100), true)
	}
	vector.DrawFilledCircle(dst, lx, ly, 8, lamp, true)

	h.label(dst, "* CLOSE / BLINK  >>>  CHARGE", panelX+20, panelY+86, 1, colorPink)
	h.label(dst, "* OPEN EYES      >>>  BURST", panelX+20, panelY+116, 1, colorYellow)
}

func (h *hud) label(dst *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, h.face, op)
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
