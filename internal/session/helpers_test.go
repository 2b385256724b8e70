package session

import (
	"github.com/smartsession/backend/internal/engine"
	"github.com/smartsession/backend/internal/landmark"
)

// frameOpts perturbs a canonical resting face (inter-brow 60, mouth width 80,
// face width 140, nose at 320,250).
type frameOpts struct {
	browSqueeze float64
	flatMouth   bool
	noseDX      float64
}

func testFrame(tsMs int64, o frameOpts) landmark.Frame {
	mouthTopY, mouthBottomY := 290.0, 310.0
	if o.flatMouth {
		mouthTopY, mouthBottomY = 297.0, 303.0
	}

	return landmark.Frame{
		FaceCount:   1,
		TimestampMs: tsMs,
		Landmarks: []landmark.Point{
			{Name: landmark.BrowInnerLeft, X: 290 + o.browSqueeze, Y: 200},
			{Name: landmark.BrowInnerRight, X: 350 - o.browSqueeze, Y: 200},
			{Name: landmark.MouthLeft, X: 280, Y: 300},
			{Name: landmark.MouthRight, X: 360, Y: 300},
			{Name: landmark.MouthTop, X: 320, Y: mouthTopY},
			{Name: landmark.MouthBottom, X: 320, Y: mouthBottomY},
			{Name: landmark.NoseTip, X: 320 + o.noseDX, Y: 250},
			{Name: landmark.EyeInnerLeft, X: 290, Y: 220},
			{Name: landmark.EyeOuterLeft, X: 250, Y: 220},
			{Name: landmark.EyeTopLeft, X: 270, Y: 213},
			{Name: landmark.EyeBottomLeft, X: 270, Y: 227},
			{Name: landmark.EyeInnerRight, X: 350, Y: 220},
			{Name: landmark.EyeOuterRight, X: 390, Y: 220},
			{Name: landmark.EyeTopRight, X: 370, Y: 213},
			{Name: landmark.EyeBottomRight, X: 370, Y: 227},
		},
	}
}

// awayDX turns the head far enough to cross the default gaze ratio.
const awayDX = 40

func testThresholds() engine.Thresholds {
	th := engine.DefaultThresholds()
	th.CalibrationFrames = 2
	return th
}
