// Package config loads the start-up tuning for gaze-swarm commands.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/teslashibe/gaze-swarm/pkg/camera"
	"github.com/teslashibe/gaze-swarm/pkg/engine"
	"github.com/teslashibe/gaze-swarm/pkg/swarm"
	"github.com/teslashibe/gaze-swarm/pkg/tracking"
)

// Environment variables.
const (
	EnvConfigPath   = "GAZESWARM_CONFIG"
	EnvCameraDevice = "CAMERA_DEVICE"
	EnvLogLevel     = "LOG_LEVEL"
)

// Screen sets the shared coordinate space of the aim point and the swarm.
type Screen struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Tuning is every start-up parameter. It is loaded once and never reloaded.
type Tuning struct {
	// Screen, when present, overrides the gaze screen and swarm world sizes.
	Screen *Screen `yaml:"screen,omitempty"`

	// CameraPreset picks the camera base before the camera section applies.
	CameraPreset string `yaml:"camera_preset,omitempty"`

	Gaze   tracking.Config   `yaml:"gaze"`
	Swarm  swarm.Config      `yaml:"swarm"`
	Camera camera.Config     `yaml:"camera"`
	Loop   engine.LoopConfig `yaml:"engine"`
}

// Defaults returns the tuned defaults for a 1280x720 window.
func Defaults() Tuning {
	return Tuning{
		Gaze:   tracking.DefaultConfig(),
		Swarm:  swarm.DefaultConfig(),
		Camera: camera.DefaultConfig(),
		Loop:   engine.DefaultLoopConfig(),
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
// Unknown keys are rejected.
func Load(path string) (Tuning, error) {
	t := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Tuning{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := t.decode(data); err != nil {
			return Tuning{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := t.applyEnv(); err != nil {
		return Tuning{}, err
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

func (t *Tuning) decode(data []byte) error {
	// The preset has to be known before the camera section is laid over it.
	var head struct {
		CameraPreset string `yaml:"camera_preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return err
	}
	if head.CameraPreset != "" {
		preset := camera.GetPreset(head.CameraPreset)
		if preset == nil {
			return fmt.Errorf("unknown camera preset %q (have %v)", head.CameraPreset, camera.PresetNames())
		}
		t.Camera = *preset
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(t); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (t *Tuning) applyEnv() error {
	if v := os.Getenv(EnvCameraDevice); v != "" {
		device, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s=%q is not a device index", EnvCameraDevice, v)
		}
		t.Camera.Device = device
	}
	return nil
}

// Engine returns the engine configuration with the screen applied.
func (t Tuning) Engine() engine.Config {
	cfg := engine.Config{
		Gaze:  t.Gaze,
		Swarm: t.Swarm,
		Loop:  t.Loop,
	}
	if t.Screen != nil {
		cfg.Gaze.ScreenWidth, cfg.Gaze.ScreenHeight = t.Screen.Width, t.Screen.Height
		cfg.Swarm.Width, cfg.Swarm.Height = t.Screen.Width, t.Screen.Height
	}
	return cfg
}

// Validate checks the engine and camera sections.
func (t Tuning) Validate() error {
	if err := t.Engine().Validate(); err != nil {
		return err
	}
	return t.Camera.Validate()
}

// Path returns flagValue when set, otherwise GAZESWARM_CONFIG.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvConfigPath)
}

// LogLevel returns flagValue when set, otherwise LOG_LEVEL, otherwise "info".
func LogLevel(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		return v
	}
	return "info"
}
