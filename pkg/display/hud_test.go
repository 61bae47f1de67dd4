package display

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/teslashibe/gaze-swarm/pkg/landmark"
	"github.com/teslashibe/gaze-swarm/pkg/swarm"
)

func TestCursorColor(t *testing.T) {
	if cursorColor(true) != colorPink {
		t.Errorf("Expected pink while gathering, got %v", cursorColor(true))
	}
	if cursorColor(false) != colorCyan {
		t.Errorf("Expected cyan while free, got %v", cursorColor(false))
	}
}

func TestReticleArcs(t *testing.T) {
	arcs := reticleArcs(0)
	for i, arc := range arcs {
		wantStart := float64(i) * 2 * math.Pi / 3
		if math.Abs(arc[0]-wantStart) > 1e-12 {
			t.Errorf("arc %d: start %v, want %v", i, arc[0], wantStart)
		}
		if math.Abs(arc[1]-arc[0]-1.5) > 1e-12 {
			t.Errorf("arc %d: length %v, want 1.5", i, arc[1]-arc[0])
		}
	}

	// 200ms at 0.005 rad/ms turns every segment by one radian
	later := reticleArcs(200 * time.Millisecond)
	for i := range later {
		if d := later[i][0] - arcs[i][0]; math.Abs(d-1) > 1e-12 {
			t.Errorf("arc %d rotated by %v, want 1", i, d)
		}
	}
}

func TestBrackets(t *testing.T) {
	b := brackets(100, 200)

	corners := []mgl64.Vec2{{65, 165}, {135, 165}, {65, 235}, {135, 235}}
	for i, pl := range b {
		if pl[1] != corners[i] {
			t.Errorf("bracket %d: corner %v, want %v", i, pl[1], corners[i])
		}
		// both arms are bracketLen long
		for _, end := range []mgl64.Vec2{pl[0], pl[2]} {
			if l := end.Sub(pl[1]).Len(); math.Abs(l-bracketLen) > 1e-12 {
				t.Errorf("bracket %d: arm length %v, want %d", i, l, bracketLen)
			}
		}
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		phase swarm.Phase
		text  string
		lamp  color.RGBA
	}{
		{swarm.PhaseFree, "STATUS: FREE", colorGreen},
		{swarm.PhaseGathering, "STATUS: GATHERING", colorRed},
	}
	for _, tt := range tests {
		s, lamp := statusLabel(tt.phase)
		if s != tt.text || lamp != tt.lamp {
			t.Errorf("statusLabel(%v) = %q %v, want %q %v", tt.phase, s, lamp, tt.text, tt.lamp)
		}
	}
}

// A lost face freezes the phase; the HUD keeps showing it and adds a marker.
func TestFaceMarker(t *testing.T) {
	if m := faceMarker(true); m != "" {
		t.Errorf("Expected no marker with a face, got %q", m)
	}
	if m := faceMarker(false); m != "[NO FACE]" {
		t.Errorf("Expected [NO FACE] marker, got %q", m)
	}

	// the frozen gathering phase still reads as gathering
	if s, lamp := statusLabel(swarm.PhaseGathering); s != "STATUS: GATHERING" || lamp != colorRed {
		t.Errorf("Expected gathering status while the face is lost, got %q %v", s, lamp)
	}
}

func TestLampGlowRadius(t *testing.T) {
	for ms := 0; ms < 2000; ms += 37 {
		r := lampGlowRadius(time.Duration(ms) * time.Millisecond)
		if r < 9 || r > 15 {
			t.Fatalf("glow radius %v at %dms outside [9, 15]", r, ms)
		}
	}
}

func TestIrisToScreen(t *testing.T) {
	got := irisToScreen(landmark.Point{X: 0.25, Y: 0.5}, 1280, 720)
	if got != (mgl64.Vec2{320, 360}) {
		t.Errorf("Expected (320, 360), got %v", got)
	}
}

func TestWithAlpha(t *testing.T) {
	got := withAlpha(swarm.ColorPink.RGBA(), 120)
	want := color.NRGBA{R: 255, G: 105, B: 180, A: 120}
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.Width != 1280 || o.Height != 720 || o.TPS != 60 {
		t.Errorf("Expected 1280x720 at 60 TPS, got %+v", o)
	}
}
