package camera

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"

	"github.com/teslashibe/gaze-swarm/internal/log"
	"github.com/teslashibe/gaze-swarm/pkg/landmark"
)

// Source is a landmark.Source backed by a webcam and the mesh networks.
type Source struct {
	webcam *Webcam
	mesh   *MeshExtractor
	frame  gocv.Mat

	rejected int // mesh outputs without a 478-point tensor

	closeOnce sync.Once
	closeErr  error
}

// Open validates cfg, loads the models and opens the camera.
func Open(cfg Config) (*Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mesh, err := NewMeshExtractor(cfg)
	if err != nil {
		return nil, err
	}

	webcam, err := OpenWebcam(cfg)
	if err != nil {
		mesh.Close()
		return nil, err
	}

	w, h := webcam.Size()
	log.Info("camera opened", "device", cfg.Device, "width", w, "height", h,
		"mirror", cfg.Mirror, "face_model", cfg.FaceModelPath, "mesh_model", cfg.MeshModelPath,
		"mesh_input", cfg.MeshInput, "mesh_nhwc", cfg.MeshNHWC)

	return &Source{
		webcam: webcam,
		mesh:   mesh,
		frame:  gocv.NewMat(),
	}, nil
}

// Next captures one frame and extracts the face mesh.
// A frame without a face has a nil Face but still carries the picture.
func (s *Source) Next() (landmark.Frame, error) {
	img, err := s.webcam.Read(&s.frame)
	if err != nil {
		return landmark.Frame{}, err
	}

	face, err := s.mesh.Extract(s.frame)
	if err != nil {
		// A malformed network output is treated as a frame without a face.
		if errors.Is(err, landmark.ErrShortMesh) {
			s.rejected++
			if s.rejected == 1 || s.rejected%300 == 0 {
				log.Warn("mesh model output rejected, check mesh_model", "rejected", s.rejected, "error", err)
			}
			return landmark.Frame{Image: img}, nil
		}
		return landmark.Frame{}, err
	}

	return landmark.Frame{Face: face, Image: img}, nil
}

// Close releases the camera and the networks.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = errors.Join(s.webcam.Close(), s.mesh.Close())
		s.frame.Close()
	})
	return s.closeErr
}
