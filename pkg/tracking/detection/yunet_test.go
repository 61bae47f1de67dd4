package detection

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"gocv.io/x/gocv"
)

func newTestYuNet(t *testing.T) *YuNetDetector {
	t.Helper()
	modelPath := findModelPath()
	if modelPath == "" {
		t.Skip("YuNet model not found, skipping test")
	}

	cfg := DefaultConfig()
	cfg.ModelPath = modelPath

	detector, err := NewYuNet(cfg)
	if err != nil {
		t.Fatalf("NewYuNet failed: %v", err)
	}
	return detector
}

// TestYuNetNewInvalidPath tests error handling for missing model
func TestYuNetNewInvalidPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelPath = "/nonexistent/path/model.onnx"

	_, err := NewYuNet(cfg)
	if !errors.Is(err, ErrModelNotFound) {
		t.Errorf("Expected ErrModelNotFound, got %v", err)
	}
}

// TestYuNetDetect_EmptyImage tests detection on an empty Mat
func TestYuNetDetect_EmptyImage(t *testing.T) {
	detector := newTestYuNet(t)
	defer detector.Close()

	empty := gocv.NewMat()
	defer empty.Close()

	if _, err := detector.Detect(empty); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("Expected ErrEmptyImage, got %v", err)
	}
}

// TestYuNetDetect_SolidImage tests detection on solid color image (no faces)
func TestYuNetDetect_SolidImage(t *testing.T) {
	detector := newTestYuNet(t)
	defer detector.Close()

	img := solidMat(320, 240, gocv.NewScalar(255, 0, 0, 0))
	defer img.Close()

	detections, err := detector.Detect(img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(detections) > 0 {
		t.Errorf("Expected no detections in solid color image, got %d", len(detections))
	}
}

// TestYuNetDetect_ResizesInput runs frames of different sizes back to back
func TestYuNetDetect_ResizesInput(t *testing.T) {
	detector := newTestYuNet(t)
	defer detector.Close()

	for _, size := range [][2]int{{320, 240}, {640, 480}, {320, 240}} {
		img := solidMat(size[0], size[1], gocv.NewScalar(90, 90, 90, 0))
		if _, err := detector.Detect(img); err != nil {
			t.Errorf("Detect %dx%d failed: %v", size[0], size[1], err)
		}
		img.Close()
	}
}

// TestYuNetClose tests proper resource cleanup
func TestYuNetClose(t *testing.T) {
	detector := newTestYuNet(t)

	if err := detector.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

// TestYuNetConcurrency tests thread safety
func TestYuNetConcurrency(t *testing.T) {
	detector := newTestYuNet(t)
	defer detector.Close()

	img := solidMat(320, 240, gocv.NewScalar(100, 100, 100, 0))
	defer img.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := detector.Detect(img); err != nil {
				t.Errorf("Concurrent detection failed: %v", err)
			}
		}()
	}
	wg.Wait()
}

// Helper functions

func findModelPath() string {
	if p := os.Getenv("YUNET_MODEL"); p != "" {
		return p
	}

	// Walk up to find models directory
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for dir := cwd; dir != "/"; dir = filepath.Dir(dir) {
		modelPath := filepath.Join(dir, "models", "face_detection_yunet.onnx")
		if _, err := os.Stat(modelPath); err == nil {
			return modelPath
		}
	}
	return ""
}

func solidMat(width, height int, bgr gocv.Scalar) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(bgr, height, width, gocv.MatTypeCV8UC3)
}
