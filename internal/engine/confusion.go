package engine

import (
	"math"

	"github.com/smartsession/backend/internal/landmark"
)

// Reason strings surfaced to observers when an indicator fires.
const (
	ReasonBrowFurrow = "brow furrowing"
	ReasonFlatMouth  = "neutral mouth"
	ReasonStillness  = "prolonged stillness"
)

// Indicators is the per-frame evaluation of the three confusion signals.
// Ephemeral: produced and consumed within one ingest cycle.
type Indicators struct {
	BrowFurrowed bool
	MouthNeutral bool
	HeadStill    bool
}

// Confused reports whether the indicator majority fired (2 of 3).
func (i Indicators) Confused() bool {
	n := 0
	if i.BrowFurrowed {
		n++
	}
	if i.MouthNeutral {
		n++
	}
	if i.HeadStill {
		n++
	}
	return n >= 2
}

// Reasons lists the active indicators in a fixed order.
func (i Indicators) Reasons() []string {
	var rs []string
	if i.BrowFurrowed {
		rs = append(rs, ReasonBrowFurrow)
	}
	if i.MouthNeutral {
		rs = append(rs, ReasonFlatMouth)
	}
	if i.HeadStill {
		rs = append(rs, ReasonStillness)
	}
	return rs
}

// EvaluateConfusion scores the three indicators for one frame against the
// locked baseline and the tracker's temporal signals. Pure: no state beyond
// its inputs, deterministic, re-run every accepted frame.
func EvaluateConfusion(g *landmark.Geometry, b *Baseline, sig Signals, th Thresholds) Indicators {
	interBrow := g.Distance(landmark.BrowInnerLeft, landmark.BrowInnerRight)

	return Indicators{
		BrowFurrowed: b.InterBrow > 0 && interBrow <= b.InterBrow*(1-th.FurrowReduction),
		MouthNeutral: math.Abs(MouthCurvature(g)) < th.MouthFlatness,
		HeadStill:    sig.IsStill,
	}
}

// MouthCurvature measures how far the mouth deviates from a straight line:
// the mean perpendicular distance of the top and bottom lip points from the
// corner-to-corner chord, normalized by mouth width so the metric is
// invariant to face scale. Near zero means a flat, neutral mouth.
func MouthCurvature(g *landmark.Geometry) float64 {
	left, _ := g.Point(landmark.MouthLeft)
	right, _ := g.Point(landmark.MouthRight)
	top, _ := g.Point(landmark.MouthTop)
	bottom, _ := g.Point(landmark.MouthBottom)

	width := landmark.Dist(left, right)
	if width == 0 {
		return 0
	}

	// Line through the corners: ax + by + c = 0.
	a := right.Y - left.Y
	b := left.X - right.X
	c := right.X*left.Y - left.X*right.Y
	denom := math.Sqrt(a*a + b*b)
	if denom == 0 {
		return 0
	}

	dTop := math.Abs(a*top.X+b*top.Y+c) / denom
	dBottom := math.Abs(a*bottom.X+b*bottom.Y+c) / denom
	return ((dTop + dBottom) / 2) / width
}
