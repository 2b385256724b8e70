package engine

import (
	"github.com/smartsession/backend/internal/landmark"
)

// Direction is the coarse gaze classification for one frame. The resolver
// only cares about on-screen vs away; the named directions are reported to
// observers for diagnostics.
type Direction string

const (
	GazeCenter Direction = "center"
	GazeLeft   Direction = "left"
	GazeRight  Direction = "right"
	GazeUp     Direction = "up"
	GazeDown   Direction = "down"
)

// OnScreen reports whether the direction counts as looking at the screen.
func (d Direction) OnScreen() bool {
	return d == GazeCenter
}

// Signals is the temporal state derived for one frame: how long gaze has been
// continuously away (wall-clock, from frame timestamps) and whether the head
// has been still over the recent window.
type Signals struct {
	Direction       Direction
	GazeAwaySeconds float64
	IsStill         bool
}

type timedPoint struct {
	ms  int64
	pos landmark.Point
}

// Tracker accumulates gaze-away duration and a timestamp-keyed nose-position
// history for a single session. It is updated only from that session's
// ingest path, once per valid frame. Frames without usable geometry must not
// be passed in; their absence leaves both accumulators untouched.
type Tracker struct {
	th Thresholds

	awayStartMs int64 // -1 while gaze is on-screen
	last        Signals

	positions []timedPoint
}

func NewTracker(th Thresholds) *Tracker {
	return &Tracker{th: th, awayStartMs: -1}
}

// Last returns the most recently computed signals without advancing any
// state. Used when a degenerate frame arrives and the prior accumulators
// must be preserved.
func (t *Tracker) Last() Signals {
	return t.last
}

// Update folds one valid frame into the tracker and returns the signals for
// that frame.
func (t *Tracker) Update(g *landmark.Geometry) Signals {
	dir := classifyGaze(g, t.th.GazeRatio)

	var away float64
	if dir.OnScreen() {
		t.awayStartMs = -1
	} else {
		if t.awayStartMs < 0 {
			t.awayStartMs = g.TimestampMs
		}
		away = float64(g.TimestampMs-t.awayStartMs) / 1000.0
	}

	t.last = Signals{
		Direction:       dir,
		GazeAwaySeconds: away,
		IsStill:         t.updateStillness(g),
	}
	return t.last
}

// updateStillness appends the nose position, evicts entries older than the
// window, and reports whether the max pairwise displacement stayed under the
// movement threshold. Needs at least 3 samples before it can claim stillness.
func (t *Tracker) updateStillness(g *landmark.Geometry) bool {
	nose, _ := g.Point(landmark.NoseTip)
	t.positions = append(t.positions, timedPoint{ms: g.TimestampMs, pos: nose})

	cutoff := g.TimestampMs - t.th.StillWindowMs
	keep := t.positions[:0]
	for _, p := range t.positions {
		if p.ms >= cutoff {
			keep = append(keep, p)
		}
	}
	t.positions = keep

	if len(t.positions) < 3 {
		return false
	}

	var maxDisp float64
	for i := 0; i < len(t.positions); i++ {
		for j := i + 1; j < len(t.positions); j++ {
			if d := landmark.Dist(t.positions[i].pos, t.positions[j].pos); d > maxDisp {
				maxDisp = d
			}
		}
	}
	return maxDisp < t.th.MovementMin
}

// classifyGaze derives the gaze direction from landmark geometry: the nose
// tip's horizontal offset from the midpoint between the eye outer corners,
// normalized by face width, picks left/right (head yaw); eye openness
// against the expected height (face width / 10) picks up/down.
func classifyGaze(g *landmark.Geometry, ratio float64) Direction {
	outerL, _ := g.Point(landmark.EyeOuterLeft)
	outerR, _ := g.Point(landmark.EyeOuterRight)
	nose, _ := g.Point(landmark.NoseTip)

	faceWidth := abs(outerR.X - outerL.X)
	if faceWidth > 0 {
		offset := (nose.X - (outerL.X+outerR.X)/2) / faceWidth
		if offset < -ratio {
			return GazeLeft
		}
		if offset > ratio {
			return GazeRight
		}
	}

	topL, _ := g.Point(landmark.EyeTopLeft)
	bottomL, _ := g.Point(landmark.EyeBottomLeft)
	topR, _ := g.Point(landmark.EyeTopRight)
	bottomR, _ := g.Point(landmark.EyeBottomRight)

	heightL := abs(topL.Y - bottomL.Y)
	heightR := abs(topR.Y - bottomR.Y)
	if heightL > 0 && heightR > 0 && faceWidth > 0 {
		expected := faceWidth / 10
		avg := (heightL/expected + heightR/expected) / 2
		if avg < 0.7 {
			return GazeUp
		}
		if avg > 1.3 {
			return GazeDown
		}
	}

	return GazeCenter
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
