package engine

import (
	"gonum.org/v1/gonum/stat"

	"github.com/smartsession/backend/internal/landmark"
)

// Baseline holds the session's frozen reference measurements. Built once by
// the Calibrator, never mutated afterwards.
type Baseline struct {
	InterBrow       float64
	InterBrowStdDev float64
	MouthCurvature  float64
}

// Calibrator accumulates reference measurements over the first run of
// consecutive stable frames and then locks. A stable frame has a single face,
// valid geometry, and gaze on-screen; anything else resets the run so the
// baseline is never polluted by a transitional expression.
type Calibrator struct {
	target   int
	brow     []float64
	mouth    []float64
	baseline *Baseline
}

func NewCalibrator(targetFrames int) *Calibrator {
	return &Calibrator{
		target: targetFrames,
		brow:   make([]float64, 0, targetFrames),
		mouth:  make([]float64, 0, targetFrames),
	}
}

// Complete reports whether the baseline is locked.
func (c *Calibrator) Complete() bool {
	return c.baseline != nil
}

// Baseline returns the locked baseline, or nil while calibration is pending.
func (c *Calibrator) Baseline() *Baseline {
	return c.baseline
}

// Interrupt clears the in-progress sample run. Called when a degenerate or
// off-screen frame breaks the consecutive stable period. No-op once locked.
func (c *Calibrator) Interrupt() {
	if c.baseline != nil {
		return
	}
	c.brow = c.brow[:0]
	c.mouth = c.mouth[:0]
}

// Observe folds one stable frame into the calibration run and locks the
// baseline once the target count is reached. Calls after locking are no-ops;
// the frozen baseline is always returned once Complete.
func (c *Calibrator) Observe(g *landmark.Geometry) *Baseline {
	if c.baseline != nil {
		return c.baseline
	}

	c.brow = append(c.brow, g.Distance(landmark.BrowInnerLeft, landmark.BrowInnerRight))
	c.mouth = append(c.mouth, MouthCurvature(g))

	if len(c.brow) < c.target {
		return nil
	}

	c.baseline = &Baseline{
		InterBrow:       stat.Mean(c.brow, nil),
		InterBrowStdDev: stat.StdDev(c.brow, nil),
		MouthCurvature:  stat.Mean(c.mouth, nil),
	}
	c.brow = nil
	c.mouth = nil
	return c.baseline
}
