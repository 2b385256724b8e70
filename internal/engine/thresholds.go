package engine

// Thresholds are the tunable constants of the indicator pipeline. Defaults
// match the values the detection rules were calibrated against; deployments
// override them through the engine section of the config file.
type Thresholds struct {
	// CalibrationFrames is the number of consecutive stable frames the
	// calibrator averages before locking the baseline.
	CalibrationFrames int

	// FurrowReduction is the fractional inter-brow shrink (vs baseline)
	// that counts as furrowing. 0.20 means 20% closer than resting.
	FurrowReduction float64

	// MouthFlatness is the curvature band (normalized by mouth width)
	// below which the mouth counts as neutral.
	MouthFlatness float64

	// GazeRatio is the horizontal eye-corner offset ratio beyond which
	// gaze counts as off-screen left or right.
	GazeRatio float64

	// StillWindowMs is the span of the nose-position history used for the
	// stillness indicator.
	StillWindowMs int64

	// MovementMin is the max pairwise nose displacement (pixels) under
	// which the head counts as still over the window.
	MovementMin float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		CalibrationFrames: 30,
		FurrowReduction:   0.20,
		MouthFlatness:     0.08,
		GazeRatio:         0.2,
		StillWindowMs:     2000,
		MovementMin:       3.0,
	}
}
