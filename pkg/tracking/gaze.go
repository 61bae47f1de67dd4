// Package tracking turns facial landmarks into a stable control signal:
// a smoothed on-screen aim point and an eyes-closed flag.
package tracking

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/teslashibe/gaze-swarm/pkg/debug"
	"github.com/teslashibe/gaze-swarm/pkg/landmark"
)

// minSpan is the smallest eye width or lid gap we are willing to divide by.
const minSpan = 1e-9

// GazeTracker converts face landmarks into a smoothed aim point and an
// eyes-closed flag. State persists across calls; it is not safe for
// concurrent use.
type GazeTracker struct {
	config Config

	// Smoothing
	current mgl64.Vec2 // filtered aim point
	target  mgl64.Vec2 // last clamped raw target

	// Eyelids
	eyesClosed bool
	lastLidGap float64

	// Raw signal, for diagnostics
	ratioX float64
	ratioY float64
}

// NewGazeTracker creates a tracker aimed at the screen center with eyes open.
func NewGazeTracker(config Config) *GazeTracker {
	g := &GazeTracker{config: config}
	g.Reset()
	return g
}

// Reset puts the aim point back at the screen center and marks the eyes open.
func (g *GazeTracker) Reset() {
	g.current = g.center()
	g.target = g.current
	g.eyesClosed = false
	g.lastLidGap = 0
	g.ratioX, g.ratioY = 0, 0
}

// Update consumes one frame of landmarks and returns the new aim point and
// eyes-closed flag. On error nothing is changed and the previous values are
// returned alongside it.
func (g *GazeTracker) Update(face *landmark.Face) (mgl64.Vec2, bool, error) {
	if face == nil {
		return g.current, g.eyesClosed, ErrNoFace
	}

	iris := face.IrisCenter()
	outer, inner := face.EyeCorners()
	rUpper, rLower := face.RightLids()
	lUpper, lLower := face.LeftLids()

	eyeWidth := landmark.Dist(outer, inner)
	rightGap := landmark.Dist(rUpper, rLower)
	if eyeWidth < minSpan || rightGap < minSpan {
		return g.current, g.eyesClosed, ErrDegenerateEye
	}
	leftGap := landmark.Dist(lUpper, lLower)

	avgGap := (rightGap + leftGap) / 2.0
	g.eyesClosed = g.closedFor(avgGap)
	g.lastLidGap = avgGap

	g.ratioX = landmark.Dist(iris, outer) / eyeWidth
	g.ratioY = landmark.Dist(iris, rUpper) / rightGap

	g.target = g.targetFor(g.ratioX, g.ratioY)
	g.current = g.current.Add(g.target.Sub(g.current).Mul(g.config.SmoothFactor))

	debug.GazeLog("gaze",
		"ratio_x", g.ratioX, "ratio_y", g.ratioY, "lid_gap", avgGap,
		"target_x", g.target.X(), "target_y", g.target.Y(),
		"aim_x", g.current.X(), "aim_y", g.current.Y(), "closed", g.eyesClosed)

	return g.current, g.eyesClosed, nil
}

// closedFor applies the closure threshold, with the optional reopen band.
func (g *GazeTracker) closedFor(avgGap float64) bool {
	if g.eyesClosed && g.config.ReopenMargin > 0 {
		return avgGap < g.config.ClosedThreshold+g.config.ReopenMargin
	}
	return avgGap < g.config.ClosedThreshold
}

// targetFor maps iris ratios to a clamped screen position.
func (g *GazeTracker) targetFor(ratioX, ratioY float64) mgl64.Vec2 {
	c := g.config
	x := c.ScreenWidth/2 + (ratioX-c.CenterX)*c.ScreenWidth*c.Sensitivity*c.GainX
	y := c.ScreenHeight/2 + (ratioY-c.CenterY)*c.ScreenHeight*c.Sensitivity*c.GainY

	x = clamp(x, c.Margin, c.ScreenWidth-c.Margin)
	y = clamp(y, c.Margin, c.ScreenHeight-c.Margin)
	return mgl64.Vec2{x, y}
}

func (g *GazeTracker) center() mgl64.Vec2 {
	return mgl64.Vec2{g.config.ScreenWidth / 2, g.config.ScreenHeight / 2}
}

// Aim returns the current smoothed aim point
func (g *GazeTracker) Aim() mgl64.Vec2 {
	return g.current
}

// Target returns the last clamped, unsmoothed target
func (g *GazeTracker) Target() mgl64.Vec2 {
	return g.target
}

// EyesClosed returns the last eyes-closed decision
func (g *GazeTracker) EyesClosed() bool {
	return g.eyesClosed
}

// Ratios returns the last iris ratios and average lid gap
func (g *GazeTracker) Ratios() (ratioX, ratioY, lidGap float64) {
	return g.ratioX, g.ratioY, g.lastLidGap
}

// clamp limits a value to a range
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
