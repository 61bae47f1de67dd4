// Package engine runs one frame of the gaze swarm at a time: it pulls
// landmarks from a source, updates the gaze tracker and phase machine,
// fires bursts on release, and advances every particle.
package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/teslashibe/gaze-swarm/internal/log"
	"github.com/teslashibe/gaze-swarm/pkg/debug"
	"github.com/teslashibe/gaze-swarm/pkg/landmark"
	"github.com/teslashibe/gaze-swarm/pkg/swarm"
	"github.com/teslashibe/gaze-swarm/pkg/tracking"
)

// TickResult tells the caller what a Tick did.
type TickResult int

const (
	// TickSkipped means no simulation happened (capture back-off or failure).
	TickSkipped TickResult = iota
	// TickSimulated means the swarm advanced one frame.
	TickSimulated
)

func (r TickResult) String() string {
	if r == TickSimulated {
		return "simulated"
	}
	return "skipped"
}

// State is the per-run context shared by simulation and presentation.
type State struct {
	Frame uint64 // ticks simulated

	Aim         mgl64.Vec2
	EyesClosed  bool
	Phase       swarm.Phase
	FaceVisible bool
	Iris        landmark.Point // last iris center, frame-normalized

	Elapsed time.Duration // since the engine started
	Bursts  int

	Image *image.RGBA // last camera picture, nil for headless sources

	CaptureFailures int // current consecutive streak
}

// Clock abstracts time for tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock used for elapsed time and back-off.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithRand sets the random source for particle spawn and burst jitter.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Engine owns the tracker, phase machine and swarm for one run.
// Tick and Draw must be called from the same goroutine.
type Engine struct {
	config Config
	source landmark.Source

	clock  Clock
	rng    *rand.Rand
	logger *slog.Logger

	tracker *tracking.GazeTracker
	machine swarm.PhaseMachine
	swarm   *swarm.Swarm

	state   State
	start   time.Time
	retryAt time.Time

	closeOnce sync.Once
	closeErr  error
}

// New validates config and builds an engine reading from source.
// The engine takes ownership of source and closes it in Close or Run.
func New(source landmark.Source, config Config, opts ...Option) (*Engine, error) {
	if source == nil {
		return nil, errors.New("engine: nil source")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		config: config,
		source: source,
		clock:  systemClock{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.logger == nil {
		e.logger = log.L()
	}

	e.tracker = tracking.NewGazeTracker(config.Gaze)
	e.swarm = swarm.New(config.Swarm, e.rng)
	e.start = e.clock.Now()
	e.state.Aim = e.tracker.Aim()
	e.state.Phase = e.machine.Current()

	return e, nil
}

// Tick advances the run by one frame.
//
// A transient capture failure skips the frame and schedules an exponential
// back-off; ticks inside that window are skipped without reading. After
// MaxCaptureFailures consecutive failures Tick returns ErrCaptureFailed.
// landmark.ErrEndOfStream from the source is returned as is.
func (e *Engine) Tick() (TickResult, error) {
	now := e.clock.Now()
	if now.Before(e.retryAt) {
		return TickSkipped, nil
	}

	frame, err := e.source.Next()
	switch {
	case errors.Is(err, landmark.ErrNoFrame):
		return e.captureFailed(now)
	case errors.Is(err, landmark.ErrEndOfStream):
		return TickSkipped, err
	case err != nil:
		return TickSkipped, fmt.Errorf("engine: read frame: %w", err)
	}

	if e.state.CaptureFailures > 0 {
		e.logger.Info("camera recovered", "failures", e.state.CaptureFailures)
		e.state.CaptureFailures = 0
		e.retryAt = time.Time{}
	}
	if frame.Image != nil {
		e.state.Image = frame.Image
	}

	e.observe(frame.Face)

	// Particles move every simulated frame, face or not.
	e.swarm.Update(e.state.Aim, e.state.Phase == swarm.PhaseGathering)

	e.state.Frame++
	e.state.Elapsed = now.Sub(e.start)
	return TickSimulated, nil
}

// observe feeds one face to the tracker and phase machine. Without a usable
// face the aim point, eyelid flag and phase stay frozen.
func (e *Engine) observe(face *landmark.Face) {
	if face == nil {
		e.state.FaceVisible = false
		return
	}

	aim, closed, err := e.tracker.Update(face)
	if err != nil {
		e.state.FaceVisible = false
		debug.Log("gaze frame rejected", "frame", e.state.Frame, "error", err)
		return
	}

	e.state.FaceVisible = true
	e.state.Iris = face.IrisCenter()
	e.state.Aim = aim
	e.state.EyesClosed = closed

	switch e.machine.Observe(closed) {
	case swarm.TransitionGather:
		e.logger.Debug("gathering", "frame", e.state.Frame+1,
			"aim_x", aim.X(), "aim_y", aim.Y())
	case swarm.TransitionRelease:
		before := e.swarm.MeanSpeed()
		e.swarm.Burst(aim)
		e.state.Bursts++
		e.logger.Debug("burst", "frame", e.state.Frame+1, "bursts", e.state.Bursts,
			"aim_x", aim.X(), "aim_y", aim.Y(),
			"speed_before", before, "speed_after", e.swarm.MeanSpeed())
	}
	e.state.Phase = e.machine.Current()
}

func (e *Engine) captureFailed(now time.Time) (TickResult, error) {
	e.state.CaptureFailures++
	n := e.state.CaptureFailures
	limit := e.config.Loop.MaxCaptureFailures

	if n >= limit {
		e.logger.Error("camera gave up", "failures", n)
		return TickSkipped, fmt.Errorf("%w: %d consecutive read failures", ErrCaptureFailed, n)
	}

	wait := e.config.Loop.backoff(n)
	e.retryAt = now.Add(wait)

	if n == 1 || n%60 == 0 {
		e.logger.Warn("camera read failed", "failures", n, "max", limit, "retry_in", wait)
	}
	return TickSkipped, nil
}

// Draw renders the swarm at the current elapsed time.
func (e *Engine) Draw(c swarm.Canvas) {
	e.swarm.Draw(c, e.state.Elapsed)
}

// State returns a snapshot of the run state.
func (e *Engine) State() State {
	return e.state
}

// Swarm exposes the particle pool for inspection.
func (e *Engine) Swarm() *swarm.Swarm {
	return e.swarm
}

// Tracker exposes the gaze tracker for diagnostics.
func (e *Engine) Tracker() *tracking.GazeTracker {
	return e.tracker
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Close releases the source. It is safe to call more than once.
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		e.closeErr = e.source.Close()
	})
	return e.closeErr
}

// Run ticks at the configured rate until ctx is cancelled, the source ends,
// or a fatal error occurs. Cancellation and end of stream return nil.
// The source is always closed on return.
func (e *Engine) Run(ctx context.Context) (err error) {
	defer func() {
		if cerr := e.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("engine: close source: %w", cerr)
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(e.config.Loop.TPS))
	defer ticker.Stop()

	e.logger.Info("engine started",
		"tps", e.config.Loop.TPS,
		"orbs", e.swarm.Len(),
		"smooth", e.config.Gaze.SmoothFactor,
		"closed_threshold", e.config.Gaze.ClosedThreshold)

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("engine stopped", "frames", e.state.Frame, "bursts", e.state.Bursts)
			return nil

		case <-ticker.C:
			if _, err := e.Tick(); err != nil {
				if errors.Is(err, landmark.ErrEndOfStream) {
					e.logger.Info("source ended", "frames", e.state.Frame, "bursts", e.state.Bursts)
					return nil
				}
				return err
			}
		}
	}
}
