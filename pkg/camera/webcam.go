package camera

import (
	"fmt"
	"image"
	"image/draw"
	"sync"

	"gocv.io/x/gocv"

	"github.com/teslashibe/gaze-swarm/pkg/landmark"
)

// Webcam reads and preprocesses frames from a local video device.
type Webcam struct {
	capture *gocv.VideoCapture
	config  Config
	raw     gocv.Mat
	mu      sync.Mutex
}

// OpenWebcam opens the configured device and requests its resolution and
// frame rate. Drivers may pick the nearest supported mode.
func OpenWebcam(cfg Config) (*Webcam, error) {
	capture, err := gocv.OpenVideoCapture(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("camera: open device %d: %w", cfg.Device, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("camera: device %d not available", cfg.Device)
	}

	capture.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	capture.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	capture.Set(gocv.VideoCaptureFPS, float64(cfg.FPS))

	return &Webcam{
		capture: capture,
		config:  cfg,
		raw:     gocv.NewMat(),
	}, nil
}

// Read grabs one frame, applies contrast/brightness and the mirror flip into
// dst (BGR), and returns an RGBA copy for display.
// A failed or empty read returns landmark.ErrNoFrame.
func (w *Webcam) Read(dst *gocv.Mat) (*image.RGBA, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ok := w.capture.Read(&w.raw); !ok || w.raw.Empty() {
		return nil, landmark.ErrNoFrame
	}

	gocv.ConvertScaleAbs(w.raw, dst, w.config.Contrast, w.config.Brightness)
	if w.config.Mirror {
		gocv.Flip(*dst, dst, 1)
	}

	img, err := dst.ToImage()
	if err != nil {
		return nil, fmt.Errorf("camera: convert frame: %w", err)
	}
	return toRGBA(img), nil
}

// Size returns the resolution the driver actually delivers.
func (w *Webcam) Size() (width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return int(w.capture.Get(gocv.VideoCaptureFrameWidth)), int(w.capture.Get(gocv.VideoCaptureFrameHeight))
}

// Close releases the device.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.raw.Close()
	return w.capture.Close()
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
