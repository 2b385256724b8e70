package engine

import (
	"testing"

	"github.com/smartsession/backend/internal/landmark"
)

// faceOpts perturbs a canonical 640x480 resting face: inter-brow distance 60,
// mouth width 80, face width 140, nose at (320, 250), eyes fully open.
type faceOpts struct {
	browSqueeze float64 // px each inner brow moves toward center
	flatMouth   bool    // neutral mouth instead of the open resting one
	noseDX      float64 // nose offset from center (head yaw / movement)
	noseDY      float64
	eyeHeight   float64 // eye openness in px; 0 means the default 14
}

func testGeometry(t *testing.T, tsMs int64, o faceOpts) *landmark.Geometry {
	t.Helper()

	mouthTopY, mouthBottomY := 290.0, 310.0
	if o.flatMouth {
		mouthTopY, mouthBottomY = 297.0, 303.0
	}

	eyeHalf := 7.0
	if o.eyeHeight > 0 {
		eyeHalf = o.eyeHeight / 2
	}

	f := landmark.Frame{
		FaceCount:   1,
		TimestampMs: tsMs,
		Landmarks: []landmark.Point{
			{Name: landmark.BrowInnerLeft, X: 290 + o.browSqueeze, Y: 200},
			{Name: landmark.BrowInnerRight, X: 350 - o.browSqueeze, Y: 200},
			{Name: landmark.MouthLeft, X: 280, Y: 300},
			{Name: landmark.MouthRight, X: 360, Y: 300},
			{Name: landmark.MouthTop, X: 320, Y: mouthTopY},
			{Name: landmark.MouthBottom, X: 320, Y: mouthBottomY},
			{Name: landmark.NoseTip, X: 320 + o.noseDX, Y: 250 + o.noseDY},
			{Name: landmark.EyeInnerLeft, X: 290, Y: 220},
			{Name: landmark.EyeOuterLeft, X: 250, Y: 220},
			{Name: landmark.EyeTopLeft, X: 270, Y: 220 - eyeHalf},
			{Name: landmark.EyeBottomLeft, X: 270, Y: 220 + eyeHalf},
			{Name: landmark.EyeInnerRight, X: 350, Y: 220},
			{Name: landmark.EyeOuterRight, X: 390, Y: 220},
			{Name: landmark.EyeTopRight, X: 370, Y: 220 - eyeHalf},
			{Name: landmark.EyeBottomRight, X: 370, Y: 220 + eyeHalf},
		},
	}

	g, ok := landmark.Normalize(f)
	if !ok {
		t.Fatal("test geometry failed to normalize")
	}
	return g
}
