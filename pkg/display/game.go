// Package display presents the gaze swarm in an ebiten window: the camera
// picture, an additive effects layer with the swarm, cursor and eye
// reticle, and an opaque status panel on top.
package display

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/teslashibe/gaze-swarm/internal/log"
	"github.com/teslashibe/gaze-swarm/pkg/debug"
	"github.com/teslashibe/gaze-swarm/pkg/engine"
	"github.com/teslashibe/gaze-swarm/pkg/landmark"
	"github.com/teslashibe/gaze-swarm/pkg/swarm"
)

// Options configures the window.
type Options struct {
	Title      string
	Width      int
	Height     int
	TPS        int
	Fullscreen bool
}

// DefaultOptions returns a 1280x720 window at 60 ticks per second.
func DefaultOptions() Options {
	return Options{
		Title:  "Gaze Swarm",
		Width:  1280,
		Height: 720,
		TPS:    60,
	}
}

// Game implements ebiten.Game on top of an engine.
type Game struct {
	engine  *engine.Engine
	options Options

	fx     *ebiten.Image
	canvas *fxCanvas
	hud    *hud

	camera    *ebiten.Image
	lastImage *image.RGBA
}

// NewGame creates the render surface for e.
func NewGame(e *engine.Engine, opts Options) *Game {
	fx := ebiten.NewImage(opts.Width, opts.Height)
	return &Game{
		engine:  e,
		options: opts,
		fx:      fx,
		canvas:  newFxCanvas(fx),
		hud:     newHUD(text.NewGoXFace(basicfont.Face7x13)),
	}
}

// Update advances the engine one tick. Escape and end of stream end the
// game; any other engine error is returned as is.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	if _, err := g.engine.Tick(); err != nil {
		if errors.Is(err, landmark.ErrEndOfStream) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

// Draw composites camera, effects and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	st := g.engine.State()
	gathering := st.Phase == swarm.PhaseGathering

	screen.Fill(color.Black)
	g.drawCamera(screen, st.Image)

	g.fx.Clear()
	g.engine.Draw(g.canvas)
	drawCursor(g.fx, st.Aim, gathering)
	if st.FaceVisible {
		iris := irisToScreen(st.Iris, g.options.Width, g.options.Height)
		drawEyeReticle(g.fx, iris, st.Aim, st.Elapsed)
	}

	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendLighter
	screen.DrawImage(g.fx, op)

	g.hud.draw(screen, st.Phase, st.FaceVisible, st.Elapsed)

	if debug.Enabled {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  FPS %.0f  frame %d  bursts %d  speed %.2f",
			ebiten.ActualTPS(), ebiten.ActualFPS(), st.Frame, st.Bursts, g.engine.Swarm().MeanSpeed()),
			10, g.options.Height-20)
	}
}

// drawCamera uploads a new picture when it changes and stretches it to the
// window.
func (g *Game) drawCamera(screen *ebiten.Image, img *image.RGBA) {
	if img == nil {
		return
	}

	if img != g.lastImage {
		b := img.Bounds()
		if g.camera == nil || g.camera.Bounds().Dx() != b.Dx() || g.camera.Bounds().Dy() != b.Dy() {
			if g.camera != nil {
				g.camera.Deallocate()
			}
			g.camera = ebiten.NewImage(b.Dx(), b.Dy())
		}
		if img.Stride == 4*b.Dx() && b.Min == (image.Point{}) {
			g.camera.WritePixels(img.Pix)
		} else {
			tmp := ebiten.NewImageFromImage(img)
			g.camera.DrawImage(tmp, nil)
			tmp.Deallocate()
		}
		g.lastImage = img
	}

	b := g.camera.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.options.Width)/float64(b.Dx()), float64(g.options.Height)/float64(b.Dy()))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.camera, op)
}

// Layout keeps a fixed logical resolution.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.options.Width, g.options.Height
}

// irisToScreen maps a frame-normalized landmark to window pixels.
func irisToScreen(p landmark.Point, width, height int) mgl64.Vec2 {
	return mgl64.Vec2{p.X * float64(width), p.Y * float64(height)}
}

// Run opens the window and blocks until the game ends. Escape, closing the
// window and end of stream return nil.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.options.Width, g.options.Height)
	ebiten.SetWindowTitle(g.options.Title)
	ebiten.SetTPS(g.options.TPS)
	ebiten.SetFullscreen(g.options.Fullscreen)

	log.Info("display started", "width", g.options.Width, "height", g.options.Height,
		"tps", g.options.TPS, "fullscreen", g.options.Fullscreen)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
