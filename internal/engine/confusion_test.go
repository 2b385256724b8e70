package engine

import (
	"math"
	"testing"
)

func testBaseline() *Baseline {
	return &Baseline{InterBrow: 60, MouthCurvature: 0.125}
}

func TestEvaluateConfusionIndicators(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name  string
		opts  faceOpts
		still bool
		want  Indicators
	}{
		{
			name: "AllQuiet",
			opts: faceOpts{},
			want: Indicators{},
		},
		{
			// Inter-brow at 70% of baseline: 60 -> 42 <= 48.
			name: "BrowFurrowed",
			opts: faceOpts{browSqueeze: 9},
			want: Indicators{BrowFurrowed: true},
		},
		{
			// Exactly at the 80% boundary counts as furrowed (<=).
			name: "BrowAtBoundary",
			opts: faceOpts{browSqueeze: 6},
			want: Indicators{BrowFurrowed: true},
		},
		{
			name: "FlatMouth",
			opts: faceOpts{flatMouth: true},
			want: Indicators{MouthNeutral: true},
		},
		{
			name:  "StillOnly",
			opts:  faceOpts{},
			still: true,
			want:  Indicators{HeadStill: true},
		},
		{
			name:  "AllThree",
			opts:  faceOpts{browSqueeze: 9, flatMouth: true},
			still: true,
			want:  Indicators{BrowFurrowed: true, MouthNeutral: true, HeadStill: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGeometry(t, 0, tt.opts)
			got := EvaluateConfusion(g, testBaseline(), Signals{IsStill: tt.still}, th)
			if got != tt.want {
				t.Errorf("EvaluateConfusion = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConfusedMajority(t *testing.T) {
	tests := []struct {
		ind  Indicators
		want bool
	}{
		{Indicators{}, false},
		{Indicators{BrowFurrowed: true}, false},
		{Indicators{MouthNeutral: true}, false},
		{Indicators{HeadStill: true}, false},
		{Indicators{BrowFurrowed: true, MouthNeutral: true}, true},
		{Indicators{BrowFurrowed: true, HeadStill: true}, true},
		{Indicators{MouthNeutral: true, HeadStill: true}, true},
		{Indicators{BrowFurrowed: true, MouthNeutral: true, HeadStill: true}, true},
	}

	for _, tt := range tests {
		if got := tt.ind.Confused(); got != tt.want {
			t.Errorf("%+v: Confused() = %v, want %v", tt.ind, got, tt.want)
		}
	}
}

func TestReasonsMatchIndicators(t *testing.T) {
	ind := Indicators{BrowFurrowed: true, HeadStill: true}
	got := ind.Reasons()
	want := []string{ReasonBrowFurrow, ReasonStillness}

	if len(got) != len(want) {
		t.Fatalf("Reasons() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Reasons()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if rs := (Indicators{}).Reasons(); len(rs) != 0 {
		t.Errorf("no indicators should give no reasons, got %v", rs)
	}
}

func TestMouthCurvature(t *testing.T) {
	// Open resting mouth: lips 10px off an 80px chord -> 0.125.
	g := testGeometry(t, 0, faceOpts{})
	if c := MouthCurvature(g); math.Abs(c-0.125) > 1e-9 {
		t.Errorf("open mouth curvature = %v, want 0.125", c)
	}

	// Neutral mouth: 3px off -> 0.0375, inside the default flatness band.
	g = testGeometry(t, 0, faceOpts{flatMouth: true})
	c := MouthCurvature(g)
	if math.Abs(c-0.0375) > 1e-9 {
		t.Errorf("flat mouth curvature = %v, want 0.0375", c)
	}
	if c >= DefaultThresholds().MouthFlatness {
		t.Errorf("flat mouth curvature %v not inside flatness band", c)
	}
}
