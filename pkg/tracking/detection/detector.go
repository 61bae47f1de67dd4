// Package detection locates faces in camera frames. It is used only to find
// the region of interest handed to the face mesh network.
package detection

import (
	"errors"
	"image"
	"math"

	"gocv.io/x/gocv"
)

var (
	// ErrModelNotFound is returned when the model file does not exist.
	ErrModelNotFound = errors.New("detection: model not found")

	// ErrEmptyImage is returned when Detect is handed an empty Mat.
	ErrEmptyImage = errors.New("detection: empty image")
)

// Detection represents a detected face
type Detection struct {
	X, Y       float64 // Top-left corner (0-1 normalized)
	W, H       float64 // Width and height (0-1 normalized)
	Confidence float64 // Detection confidence (0-1)
}

// Center returns the center point of the detection
func (d Detection) Center() (x, y float64) {
	return d.X + d.W/2, d.Y + d.H/2
}

// Area returns the area of the bounding box
func (d Detection) Area() float64 {
	return d.W * d.H
}

// SquareROI returns a square pixel region centered on the detection whose
// side is the longer box edge times scale, clipped to a cols x rows frame.
// The result is empty when the detection lies outside the frame.
func (d Detection) SquareROI(cols, rows int, scale float64) image.Rectangle {
	cx, cy := d.Center()
	side := math.Max(d.W*float64(cols), d.H*float64(rows)) * scale
	half := side / 2

	px, py := cx*float64(cols), cy*float64(rows)
	r := image.Rect(
		int(math.Round(px-half)), int(math.Round(py-half)),
		int(math.Round(px+half)), int(math.Round(py+half)),
	)
	return r.Intersect(image.Rect(0, 0, cols, rows))
}

// Detector is the interface for face detection backends
type Detector interface {
	// Detect finds faces in a BGR frame and returns their positions
	Detect(img gocv.Mat) ([]Detection, error)

	// Close releases resources
	Close() error
}

// Config holds detector configuration
type Config struct {
	ModelPath        string  // Path to ONNX model
	ConfidenceThresh float64 // Minimum confidence
	NMSThresh        float64 // Non-maximum suppression overlap
	InputWidth       int     // Model input width
	InputHeight      int     // Model input height
}

// DefaultConfig returns production defaults for YuNet
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/face_detection_yunet.onnx",
		ConfidenceThresh: 0.7,
		NMSThresh:        0.3,
		InputWidth:       320,
		InputHeight:      320,
	}
}

// SelectBest picks the best face from multiple detections
// Priority: confidence * 0.7 + area * 0.3
func SelectBest(dets []Detection) *Detection {
	if len(dets) == 0 {
		return nil
	}

	if len(dets) == 1 {
		return &dets[0]
	}

	// Find max area for normalization
	maxArea := 0.0
	for _, d := range dets {
		if d.Area() > maxArea {
			maxArea = d.Area()
		}
	}

	// Score each detection
	bestScore := -1.0
	var best *Detection

	for i := range dets {
		score := dets[i].Confidence * 0.7
		if maxArea > 0 {
			score += (dets[i].Area() / maxArea) * 0.3
		}
		if score > bestScore {
			bestScore = score
			best = &dets[i]
		}
	}

	return best
}
