// Package mock drives the engine with synthetic landmark frames so the
// server can be demoed without a real landmark-detection client.
package mock

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/smartsession/backend/internal/landmark"
	"github.com/smartsession/backend/internal/session"
)

const (
	demoSessionID = "demo"
	frameInterval = 100 * time.Millisecond
)

// Phase boundaries in ticks (100ms each). The cycle walks through a focused
// stretch (long enough to calibrate), a confusion episode, a glance-away run
// that crosses the gaze alert threshold, and a transient second face.
const (
	phaseFocusedEnd  = 80  // 8s focused, baseline locks in the first 3s
	phaseConfusedEnd = 160 // 8s confused
	phaseGlanceEnd   = 216 // 5.6s looking away
	phaseTwoFaceEnd  = 236 // 2s second face in frame
)

type Generator struct {
	registry *session.Registry
	rng      *rand.Rand
}

func NewGenerator(registry *session.Registry) *Generator {
	return &Generator{
		registry: registry,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *Generator) Start(ctx context.Context) {
	if _, err := g.registry.AttachProducer(demoSessionID); err != nil {
		log.Printf("mock: attach failed: %v", err)
		return
	}
	log.Printf("mock: producing synthetic frames for session %q", demoSessionID)
	go g.run(ctx)
}

func (g *Generator) run(ctx context.Context) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case <-ctx.Done():
			g.registry.DetachProducer(demoSessionID)
			return
		case <-ticker.C:
			g.registry.Ingest(demoSessionID, g.frameFor(tick))
			tick = (tick + 1) % phaseTwoFaceEnd
		}
	}
}

func (g *Generator) frameFor(tick int) landmark.Frame {
	now := time.Now().UnixMilli()

	switch {
	case tick < phaseFocusedEnd:
		// Resting face with natural head jitter.
		return g.face(now, faceParams{noseJitter: 4})
	case tick < phaseConfusedEnd:
		// Furrowed brow, neutral mouth, rigid head.
		return g.face(now, faceParams{browSqueeze: 9, flatMouth: true})
	case tick < phaseGlanceEnd:
		// Head turned away; everything else resting.
		return g.face(now, faceParams{gazeShift: 40, noseJitter: 2})
	default:
		return landmark.Frame{FaceCount: 2, TimestampMs: now}
	}
}

type faceParams struct {
	browSqueeze float64 // px each inner brow moves toward center
	flatMouth   bool
	gazeShift   float64 // px the nose tip shifts right (head turned away)
	noseJitter  float64 // px of random nose movement
}

// face synthesizes a 640x480 frame around a canonical resting face.
func (g *Generator) face(tsMs int64, p faceParams) landmark.Frame {
	jx := (g.rng.Float64()*2 - 1) * p.noseJitter
	jy := (g.rng.Float64()*2 - 1) * p.noseJitter

	mouthTopY, mouthBottomY := 290.0, 310.0
	if p.flatMouth {
		mouthTopY, mouthBottomY = 297.0, 303.0
	}

	return landmark.Frame{
		FaceCount:   1,
		TimestampMs: tsMs,
		Landmarks: []landmark.Point{
			{Name: landmark.BrowInnerLeft, X: 290 + p.browSqueeze, Y: 200},
			{Name: landmark.BrowInnerRight, X: 350 - p.browSqueeze, Y: 200},
			{Name: landmark.MouthLeft, X: 280, Y: 300},
			{Name: landmark.MouthRight, X: 360, Y: 300},
			{Name: landmark.MouthTop, X: 320, Y: mouthTopY},
			{Name: landmark.MouthBottom, X: 320, Y: mouthBottomY},
			{Name: landmark.NoseTip, X: 320 + p.gazeShift + jx, Y: 250 + jy},
			{Name: landmark.EyeOuterLeft, X: 250, Y: 220},
			{Name: landmark.EyeInnerLeft, X: 290, Y: 220},
			{Name: landmark.EyeTopLeft, X: 270, Y: 213},
			{Name: landmark.EyeBottomLeft, X: 270, Y: 227},
			{Name: landmark.EyeInnerRight, X: 350, Y: 220},
			{Name: landmark.EyeOuterRight, X: 390, Y: 220},
			{Name: landmark.EyeTopRight, X: 370, Y: 213},
			{Name: landmark.EyeBottomRight, X: 370, Y: 227},
		},
	}
}
