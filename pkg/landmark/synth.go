package landmark

// Gaze describes the eye geometry to synthesize.
type Gaze struct {
	RatioX     float64 // iris distance from the outer corner, as a fraction of eye width
	RatioY     float64 // iris distance from the upper lid, as a fraction of lid gap
	LidGap     float64 // tracked eye lid distance (normalized)
	LeftLidGap float64 // other eye; zero means same as LidGap
}

// Synthetic eye layout.
const (
	synthEyeWidth = 0.06
	synthEyeX     = 0.40
	synthEyeY     = 0.42
	synthLeftEyeX = 0.60
	synthIrisRing = 0.008
)

// Synthesize builds a full face mesh whose iris ratios and lid gaps match g
// exactly. Points the tracker does not read sit at the face center.
func Synthesize(g Gaze) *Face {
	pts := make([]Point, MeshSize)
	for i := range pts {
		pts[i] = Point{X: 0.5, Y: 0.5}
	}

	outer := Point{X: synthEyeX, Y: synthEyeY}
	inner := Point{X: synthEyeX + synthEyeWidth, Y: synthEyeY}
	iris := Point{X: outer.X + g.RatioX*synthEyeWidth, Y: outer.Y}
	upper := Point{X: iris.X, Y: iris.Y - g.RatioY*g.LidGap}
	lower := Point{X: upper.X, Y: upper.Y + g.LidGap}

	leftGap := g.LeftLidGap
	if leftGap == 0 {
		leftGap = g.LidGap
	}

	pts[RightEyeOuter] = outer
	pts[RightEyeInner] = inner
	pts[RightIris] = iris
	pts[RightEyeUpper] = upper
	pts[RightEyeLower] = lower
	pts[LeftEyeUpper] = Point{X: synthLeftEyeX, Y: synthEyeY - leftGap/2}
	pts[LeftEyeLower] = Point{X: synthLeftEyeX, Y: synthEyeY + leftGap/2}

	// iris contour rings, right then left
	ring := [4]Point{{1, 0}, {0, -1}, {-1, 0}, {0, 1}}
	for i, d := range ring {
		pts[RightIris+1+i] = Point{X: iris.X + d.X*synthIrisRing, Y: iris.Y + d.Y*synthIrisRing}
	}
	leftIris := Point{X: synthLeftEyeX, Y: synthEyeY}
	pts[RightIris+5] = leftIris
	for i, d := range ring {
		pts[RightIris+6+i] = Point{X: leftIris.X + d.X*synthIrisRing, Y: leftIris.Y + d.Y*synthIrisRing}
	}

	return &Face{points: pts}
}
