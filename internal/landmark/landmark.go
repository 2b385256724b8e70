// Package landmark defines the per-frame facial landmark schema and the
// validation that gates what the engine is allowed to see. Point names follow
// the MediaPipe face mesh regions the detector samples from.
package landmark

import "math"

// Named points the engine consumes. The external detector may emit more;
// anything not listed here is ignored by the normalizer.
const (
	BrowInnerLeft  = "brow_inner_left"
	BrowInnerRight = "brow_inner_right"
	MouthLeft      = "mouth_left"
	MouthRight     = "mouth_right"
	MouthTop       = "mouth_top"
	MouthBottom    = "mouth_bottom"
	NoseTip        = "nose_tip"
	EyeInnerLeft   = "eye_inner_left"
	EyeOuterLeft   = "eye_outer_left"
	EyeTopLeft     = "eye_top_left"
	EyeBottomLeft  = "eye_bottom_left"
	EyeInnerRight  = "eye_inner_right"
	EyeOuterRight  = "eye_outer_right"
	EyeTopRight    = "eye_top_right"
	EyeBottomRight = "eye_bottom_right"
)

// requiredPoints must all be present for a single-face frame to be usable.
var requiredPoints = []string{
	BrowInnerLeft, BrowInnerRight,
	MouthLeft, MouthRight, MouthTop, MouthBottom,
	NoseTip,
	EyeInnerLeft, EyeOuterLeft, EyeTopLeft, EyeBottomLeft,
	EyeInnerRight, EyeOuterRight, EyeTopRight, EyeBottomRight,
}

// Point is one named 2-D landmark in pixel coordinates.
type Point struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Frame is one timestamped landmark observation. Landmarks is empty when
// FaceCount != 1 (the detector emits only the count sentinels then).
type Frame struct {
	FaceCount   int     `json:"faceCount"`
	TimestampMs int64   `json:"timestampMs"`
	Landmarks   []Point `json:"landmarks,omitempty"`
}

// Geometry is a normalized frame: the named points the engine needs, indexed
// for O(1) lookup, with validated coordinates.
type Geometry struct {
	TimestampMs int64
	points      map[string]Point
}

// Point returns the named point. The bool is false only for names outside
// the normalized set, which Normalize guarantees cannot happen for required
// points.
func (g *Geometry) Point(name string) (Point, bool) {
	p, ok := g.points[name]
	return p, ok
}

// Distance is the Euclidean distance between two named points.
func (g *Geometry) Distance(a, b string) float64 {
	pa := g.points[a]
	pb := g.points[b]
	return Dist(pa, pb)
}

// Dist is the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func validCoord(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// Normalize validates a single-face frame and reshapes it into a Geometry.
// Returns false when the frame is unusable: wrong face count, missing
// required points, or NaN/Inf/negative coordinates. Callers drop such frames
// without touching any session state.
func Normalize(f Frame) (*Geometry, bool) {
	if f.FaceCount != 1 {
		return nil, false
	}

	pts := make(map[string]Point, len(requiredPoints))
	for _, p := range f.Landmarks {
		if !validCoord(p.X) || !validCoord(p.Y) {
			return nil, false
		}
		pts[p.Name] = p
	}

	for _, name := range requiredPoints {
		if _, ok := pts[name]; !ok {
			return nil, false
		}
	}

	return &Geometry{TimestampMs: f.TimestampMs, points: pts}, true
}
