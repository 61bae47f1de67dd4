// Swarm Sim - headless gaze swarm driven by a scripted blink cycle
//
// Runs the engine without a camera or window and logs swarm statistics.
// Useful for tuning swarm physics and checking the blink state machine.
package main

import (
	"context"
	"flag"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teslashibe/gaze-swarm/internal/config"
	"github.com/teslashibe/gaze-swarm/internal/log"
	"github.com/teslashibe/gaze-swarm/pkg/debug"
	"github.com/teslashibe/gaze-swarm/pkg/engine"
	"github.com/teslashibe/gaze-swarm/pkg/landmark"
)

const (
	openLidGap   = 0.03
	closedLidGap = 0.005
)

func main() {
	configPath := flag.String("config", "", "YAML tuning file (overrides GAZESWARM_CONFIG env var)")
	frames := flag.Int("frames", 600, "Frames to simulate (ignored with -realtime)")
	seed := flag.Int64("seed", 1, "Random seed for spawn and burst jitter")
	orbs := flag.Int("orbs", 0, "Override swarm size (0 keeps the config)")
	cycle := flag.Int("cycle", 90, "Frames per blink cycle: two thirds open, one third closed")
	every := flag.Int("log-every", 30, "Log swarm stats every N frames")
	realtime := flag.Bool("realtime", false, "Tick at the configured rate until Ctrl+C")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	flag.Parse()

	log.Init(config.LogLevel(*logLevel))
	debug.Enabled = *debugFlag

	tuning, err := config.Load(config.Path(*configPath))
	if err != nil {
		log.Error("configuration error", "error", err)
		os.Exit(1)
	}
	cfg := tuning.Engine()
	if *orbs > 0 {
		cfg.Swarm.MaxOrbs = *orbs
	}
	if *cycle < 3 {
		log.Error("cycle must be at least 3 frames", "cycle", *cycle)
		os.Exit(1)
	}

	script := landmark.NewScript(blinkCycle(*cycle)...).Loop()
	rng := rand.New(rand.NewSource(*seed))

	if *realtime {
		eng, err := engine.New(script, cfg, engine.WithRand(rng))
		if err != nil {
			log.Error("engine error", "error", err)
			os.Exit(1)
		}
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		if err := eng.Run(ctx); err != nil {
			log.Error("engine stopped", "error", err)
			os.Exit(1)
		}
		logStats(eng)
		return
	}

	clock := &stepClock{now: time.Now(), step: time.Second / time.Duration(cfg.Loop.TPS)}
	eng, err := engine.New(script, cfg, engine.WithRand(rng), engine.WithClock(clock))
	if err != nil {
		log.Error("engine error", "error", err)
		os.Exit(1)
	}
	defer eng.Close()

	for i := 1; i <= *frames; i++ {
		if _, err := eng.Tick(); err != nil {
			log.Error("tick failed", "frame", i, "error", err)
			os.Exit(1)
		}
		clock.advance()
		if *every > 0 && i%*every == 0 {
			logStats(eng)
		}
	}

	st := eng.State()
	log.Info("simulation done", "frames", st.Frame, "bursts", st.Bursts,
		"elapsed", st.Elapsed, "mean_speed", eng.Swarm().MeanSpeed())
}

// blinkCycle sweeps the gaze left to right with open eyes, then closes them.
func blinkCycle(n int) []landmark.Step {
	open := n * 2 / 3
	steps := make([]landmark.Step, 0, n)
	for i := 0; i < open; i++ {
		t := float64(i) / float64(open)
		steps = append(steps, landmark.Step{Face: landmark.Synthesize(landmark.Gaze{
			RatioX: 0.42 + 0.2*t,
			RatioY: 0.45 + 0.05*math.Sin(2*math.Pi*t),
			LidGap: openLidGap,
		})})
	}
	for len(steps) < n {
		steps = append(steps, landmark.Step{Face: landmark.Synthesize(landmark.Gaze{
			RatioX: 0.52,
			RatioY: 0.45,
			LidGap: closedLidGap,
		})})
	}
	return steps
}

func logStats(eng *engine.Engine) {
	st := eng.State()
	log.Info("swarm",
		"frame", st.Frame,
		"phase", st.Phase,
		"aim", [2]int{int(st.Aim.X()), int(st.Aim.Y())},
		"bursts", st.Bursts,
		"mean_speed", eng.Swarm().MeanSpeed())
}

// stepClock advances by one tick per simulated frame.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time { return c.now }

func (c *stepClock) advance() { c.now = c.now.Add(c.step) }
