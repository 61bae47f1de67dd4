// Package landmark defines the facial landmark input boundary: normalized
// points from an upstream face-mesh model, a named view over the indices the
// gaze tracker relies on, and the per-tick frame source interface.
package landmark

import "math"

// Face mesh indices following the MediaPipe convention with refined iris
// landmarks. "Right" and "left" are the subject's.
// See: https://github.com/google-ai-edge/mediapipe/blob/master/mediapipe/modules/face_geometry/data/canonical_face_model_uv_visualization.png
const (
	RightEyeOuter = 33
	RightEyeInner = 133
	RightEyeUpper = 159
	RightEyeLower = 145
	LeftEyeUpper  = 386
	LeftEyeLower  = 374
	RightIris     = 468

	// MeshSize is the number of points in a refined face mesh.
	MeshSize = 478
)

// Point is a 2D landmark in normalized image coordinates ([0,1] on both axes).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Face is a read-only view over one detected face mesh.
type Face struct {
	points []Point
}

// NewFace wraps a face mesh. The slice is copied.
func NewFace(points []Point) (*Face, error) {
	if len(points) < MeshSize {
		return nil, ErrShortMesh
	}
	cp := make([]Point, len(points))
	copy(cp, points)
	return &Face{points: cp}, nil
}

// IrisCenter returns the tracked iris center.
func (f *Face) IrisCenter() Point {
	return f.points[RightIris]
}

// EyeCorners returns the outer and inner corner of the tracked eye.
func (f *Face) EyeCorners() (outer, inner Point) {
	return f.points[RightEyeOuter], f.points[RightEyeInner]
}

// RightLids returns the upper and lower lid points of the tracked eye.
func (f *Face) RightLids() (upper, lower Point) {
	return f.points[RightEyeUpper], f.points[RightEyeLower]
}

// LeftLids returns the upper and lower lid points of the other eye.
func (f *Face) LeftLids() (upper, lower Point) {
	return f.points[LeftEyeUpper], f.points[LeftEyeLower]
}

// Points returns a copy of the whole mesh, for overlays.
func (f *Face) Points() []Point {
	cp := make([]Point, len(f.points))
	copy(cp, f.points)
	return cp
}
