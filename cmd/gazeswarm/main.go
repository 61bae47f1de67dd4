// Gaze Swarm - webcam eye tracking drives a particle swarm
//
// Look around to steer the cursor. Close your eyes to gather the swarm
// under it, open them to blow it apart.
package main

import (
	"flag"
	"os"

	"github.com/teslashibe/gaze-swarm/internal/config"
	"github.com/teslashibe/gaze-swarm/internal/log"
	"github.com/teslashibe/gaze-swarm/pkg/camera"
	"github.com/teslashibe/gaze-swarm/pkg/debug"
	"github.com/teslashibe/gaze-swarm/pkg/display"
	"github.com/teslashibe/gaze-swarm/pkg/engine"
)

func main() {
	configPath := flag.String("config", "", "YAML tuning file (overrides GAZESWARM_CONFIG env var)")
	device := flag.Int("device", -1, "Camera device index (overrides config and CAMERA_DEVICE)")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging and the stats overlay")
	debugGaze := flag.Bool("debug-gaze", false, "Log gaze ratios and lid gaps every frame")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	fullscreen := flag.Bool("fullscreen", false, "Start in fullscreen (toggle with F)")
	flag.Parse()

	log.Init(config.LogLevel(*logLevel))
	debug.Enabled = *debugFlag
	debug.Gaze = *debugGaze

	tuning, err := config.Load(config.Path(*configPath))
	if err != nil {
		log.Error("configuration error", "error", err)
		os.Exit(1)
	}
	if *device >= 0 {
		tuning.Camera.Device = *device
	}

	if err := run(tuning, *fullscreen); err != nil {
		log.Error("gaze swarm stopped", "error", err)
		os.Exit(1)
	}
}

func run(tuning config.Tuning, fullscreen bool) error {
	src, err := camera.Open(tuning.Camera)
	if err != nil {
		return err
	}

	cfg := tuning.Engine()
	eng, err := engine.New(src, cfg)
	if err != nil {
		src.Close()
		return err
	}
	defer eng.Close()

	opts := display.DefaultOptions()
	opts.Width = int(cfg.Swarm.Width)
	opts.Height = int(cfg.Swarm.Height)
	opts.TPS = cfg.Loop.TPS
	opts.Fullscreen = fullscreen

	log.Info("gaze swarm ready", "session", log.Session(), "orbs", cfg.Swarm.MaxOrbs,
		"camera", tuning.Camera.Device, "screen", [2]int{opts.Width, opts.Height})

	return display.Run(display.NewGame(eng, opts))
}
