package camera

import (
	"fmt"
	"image"
	"math"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/teslashibe/gaze-swarm/pkg/debug"
	"github.com/teslashibe/gaze-swarm/pkg/landmark"
	"github.com/teslashibe/gaze-swarm/pkg/tracking/detection"
)

// MeshExtractor finds the single best face in a frame and runs the face
// mesh network on it.
type MeshExtractor struct {
	detector detection.Detector
	net      gocv.Net
	outputs  []string // every unconnected output layer
	config   Config
	mu       sync.Mutex // Protects inference
}

// NewMeshExtractor loads the face detector and the mesh network.
func NewMeshExtractor(cfg Config) (*MeshExtractor, error) {
	if _, err := os.Stat(cfg.MeshModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", detection.ErrModelNotFound, cfg.MeshModelPath)
	}

	detCfg := detection.DefaultConfig()
	detCfg.ModelPath = cfg.FaceModelPath
	detCfg.ConfidenceThresh = cfg.Confidence

	detector, err := detection.NewYuNet(detCfg)
	if err != nil {
		return nil, err
	}

	net := gocv.ReadNetFromONNX(cfg.MeshModelPath)
	if net.Empty() {
		detector.Close()
		return nil, fmt.Errorf("camera: failed to load mesh model from %s", cfg.MeshModelPath)
	}
	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	outputs := outputNames(net)
	if len(outputs) == 0 {
		detector.Close()
		net.Close()
		return nil, fmt.Errorf("camera: mesh model %s has no outputs", cfg.MeshModelPath)
	}

	return &MeshExtractor{
		detector: detector,
		net:      net,
		outputs:  outputs,
		config:   cfg,
	}, nil
}

// outputNames lists the output layers. Layer ids are 1-based indices into
// the layer names.
func outputNames(net gocv.Net) []string {
	names := net.GetLayerNames()
	var out []string
	for _, id := range net.GetUnconnectedOutLayers() {
		if id > 0 && id <= len(names) {
			out = append(out, names[id-1])
		}
	}
	return out
}

// Extract returns the face mesh in frame-normalized coordinates, or nil when
// no face is visible.
func (m *MeshExtractor) Extract(frame gocv.Mat) (*landmark.Face, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dets, err := m.detector.Detect(frame)
	if err != nil {
		return nil, err
	}
	best := detection.SelectBest(dets)
	if best == nil {
		return nil, nil
	}

	roi := best.SquareROI(frame.Cols(), frame.Rows(), m.config.ROIScale)
	if roi.Dx() < 8 || roi.Dy() < 8 {
		return nil, nil
	}

	crop := frame.Region(roi)
	defer crop.Close()

	blob, err := meshBlob(crop, m.config.MeshInput, m.config.MeshNHWC)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	m.net.SetInput(blob, "")
	mats := m.net.ForwardLayers(m.outputs)
	defer func() {
		for i := range mats {
			mats[i].Close()
		}
	}()

	tensors := make([][]float32, 0, len(mats))
	for _, mat := range mats {
		data, err := mat.DataPtrFloat32()
		if err != nil {
			return nil, fmt.Errorf("camera: read mesh output: %w", err)
		}
		tensors = append(tensors, data)
	}

	out, err := decodeMeshOutputs(tensors)
	if err != nil {
		return nil, err
	}
	if out.hasPresence && out.presence < m.config.MeshPresence {
		debug.Log("mesh: face not present", "presence", out.presence)
		return nil, nil
	}

	points, err := meshPoints(out.landmarks, roi, frame.Cols(), frame.Rows(), m.config.MeshInput)
	if err != nil {
		return nil, err
	}

	debug.Log("mesh", "confidence", best.Confidence, "roi", roi.String())
	return landmark.NewFace(points)
}

// meshBlob turns a BGR crop into the mesh network input: RGB scaled to
// [0, 1] and resized to input x input, as 1xHxWx3 when nhwc is set and as
// 1x3xHxW otherwise.
func meshBlob(crop gocv.Mat, input int, nhwc bool) (gocv.Mat, error) {
	size := image.Pt(input, input)
	if !nhwc {
		return gocv.BlobFromImage(crop, 1.0/255.0, size, gocv.NewScalar(0, 0, 0, 0), true, false), nil
	}

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(crop, &resized, size, 0, 0, gocv.InterpolationLinear)

	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(resized, &rgb, gocv.ColorBGRToRGB)

	scaled := gocv.NewMat()
	defer scaled.Close()
	rgb.ConvertToWithParams(&scaled, gocv.MatTypeCV32FC3, 1.0/255.0, 0)

	// A continuous HxWx3 float Mat is already NHWC order in memory.
	blob, err := gocv.NewMatWithSizesFromBytes([]int{1, input, input, 3}, gocv.MatTypeCV32F, scaled.ToBytes())
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("camera: build mesh input: %w", err)
	}
	return blob, nil
}

// meshOutput is the decoded result of one mesh forward pass.
type meshOutput struct {
	landmarks   []float32 // x, y, z triples in input pixels
	presence    float64   // face presence probability
	hasPresence bool
}

// decodeMeshOutputs picks the landmark tensor and the presence score out of
// the network outputs, whatever their order. The face landmarks detector
// returns 1434 landmark values, a single presence logit and a 4x4 face
// transform; the transform is ignored.
func decodeMeshOutputs(tensors [][]float32) (meshOutput, error) {
	var out meshOutput
	largest := 0
	for _, t := range tensors {
		switch {
		case len(t) == 1 && !out.hasPresence:
			out.presence = 1 / (1 + math.Exp(-float64(t[0])))
			out.hasPresence = true
		case len(t) == landmark.MeshSize*3:
			out.landmarks = t
		case len(t) > landmark.MeshSize*3 && out.landmarks == nil:
			out.landmarks = t
		}
		largest = max(largest, len(t))
	}
	if out.landmarks == nil {
		return meshOutput{}, fmt.Errorf("%w: largest output has %d values", landmark.ErrShortMesh, largest)
	}
	return out, nil
}

// meshPoints maps network output (x, y, z triples in input pixels) back to
// frame-normalized points. The crop may have been stretched to the square
// input, so each axis is rescaled on its own.
func meshPoints(data []float32, roi image.Rectangle, cols, rows, input int) ([]landmark.Point, error) {
	if len(data) < landmark.MeshSize*3 {
		return nil, fmt.Errorf("%w: %d values", landmark.ErrShortMesh, len(data))
	}

	sx := float64(roi.Dx()) / float64(input)
	sy := float64(roi.Dy()) / float64(input)

	points := make([]landmark.Point, landmark.MeshSize)
	for i := range points {
		x := float64(data[i*3])
		y := float64(data[i*3+1])
		points[i] = landmark.Point{
			X: (float64(roi.Min.X) + x*sx) / float64(cols),
			Y: (float64(roi.Min.Y) + y*sy) / float64(rows),
		}
	}
	return points, nil
}

// Close releases both networks.
func (m *MeshExtractor) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.detector.Close()
	m.net.Close()
	return err
}
