// Package camera captures webcam frames and turns them into face meshes.
// This follows the same pattern as pkg/tracking for tunable parameters.
package camera

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("camera: invalid config")

// Config holds all camera and landmark extraction parameters.
// They are read once at start-up.
type Config struct {
	// === Capture ===
	Device int `yaml:"device"` // Video device index
	Width  int `yaml:"width"`  // Requested frame width in pixels
	Height int `yaml:"height"` // Requested frame height in pixels
	FPS    int `yaml:"fps"`    // Requested frame rate

	// === Preprocessing ===
	// Each pixel becomes |Contrast*p + Brightness|, saturated to 0-255.
	Contrast   float64 `yaml:"contrast"`
	Brightness float64 `yaml:"brightness"`

	// Mirror flips the frame horizontally so the picture behaves like a mirror.
	Mirror bool `yaml:"mirror"`

	// === Landmark models ===
	FaceModelPath string  `yaml:"face_model"` // YuNet face detector (ONNX)
	MeshModelPath string  `yaml:"mesh_model"` // Face landmarks detector with iris points (ONNX, 478 points)
	Confidence    float64 `yaml:"confidence"` // Minimum face detection score
	MeshInput     int     `yaml:"mesh_input"` // Mesh network input side in pixels
	ROIScale      float64 `yaml:"roi_scale"`  // Face box enlargement before cropping for the mesh

	// MeshNHWC feeds the mesh network a 1xHxWx3 tensor, the layout of models
	// converted straight from TFLite. False feeds the OpenCV 1x3xHxW blob.
	MeshNHWC bool `yaml:"mesh_nhwc"`

	// MeshPresence is the minimum face presence probability reported by the
	// mesh network. Models without a presence output skip the check.
	MeshPresence float64 `yaml:"mesh_presence"`
}

// Capture limits we accept.
const (
	MinWidth  = 160
	MaxWidth  = 3840
	MinHeight = 120
	MaxHeight = 2160
	MaxFPS    = 120
)

// DefaultConfig returns 720p capture with the dimmed, mirrored look.
func DefaultConfig() Config {
	return Config{
		Device: 0,
		Width:  1280,
		Height: 720,
		FPS:    30,

		// Darker picture so the additive swarm stands out
		Contrast:   0.7,
		Brightness: -20,
		Mirror:     true,

		FaceModelPath: "models/face_detection_yunet.onnx",
		MeshModelPath: "models/face_landmarks_detector.onnx",
		Confidence:    0.7,
		MeshInput:     256,
		ROIScale:      1.5,
		MeshNHWC:      true,
		MeshPresence:  0.5,
	}
}

// Validate checks if the config values are within valid ranges.
func (c *Config) Validate() error {
	var problems []string

	// Capture
	if c.Device < 0 {
		problems = append(problems, "device must not be negative")
	}
	if c.Width < MinWidth || c.Width > MaxWidth {
		problems = append(problems, fmt.Sprintf("width must be between %d and %d", MinWidth, MaxWidth))
	}
	if c.Height < MinHeight || c.Height > MaxHeight {
		problems = append(problems, fmt.Sprintf("height must be between %d and %d", MinHeight, MaxHeight))
	}
	if c.FPS < 1 || c.FPS > MaxFPS {
		problems = append(problems, fmt.Sprintf("fps must be between 1 and %d", MaxFPS))
	}

	// Preprocessing
	if c.Contrast <= 0 || c.Contrast > 3 {
		problems = append(problems, "contrast must be in (0, 3]")
	}
	if c.Brightness < -255 || c.Brightness > 255 {
		problems = append(problems, "brightness must be between -255 and 255")
	}

	// Models
	if c.FaceModelPath == "" {
		problems = append(problems, "face_model is required")
	}
	if c.MeshModelPath == "" {
		problems = append(problems, "mesh_model is required")
	}
	if c.Confidence <= 0 || c.Confidence > 1 {
		problems = append(problems, "confidence must be in (0, 1]")
	}
	if c.MeshInput < 32 {
		problems = append(problems, "mesh_input must be at least 32")
	}
	if c.ROIScale < 1 {
		problems = append(problems, "roi_scale must be at least 1")
	}
	if c.MeshPresence < 0 || c.MeshPresence >= 1 {
		problems = append(problems, "mesh_presence must be in [0, 1)")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
