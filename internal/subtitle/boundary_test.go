package subtitle

import (
	"errors"
	"testing"
)

func twoSegments(policy Policy, spacing int64) *Document {
	doc := testDoc([2]int64{0, 1000}, [2]int64{1000, 2000})
	doc.Policy = policy
	doc.Spacing = spacing
	return doc
}

func TestAdjustPushesNeighbor(t *testing.T) {
	doc := twoSegments(PolicyAdjust, 0)

	if err := doc.SetStop(0, 1500); err != nil {
		t.Fatalf("SetStop failed: %v", err)
	}
	if doc.Segment(0).Stop != 1500 {
		t.Errorf("segment 0 stop = %d, want 1500", doc.Segment(0).Stop)
	}
	if doc.Segment(1).Start != 1500 {
		t.Errorf(
			"segment 1 start = %d, want 1500 after cascade",
			doc.Segment(1).Start,
		)
	}
	if doc.Segment(1).Stop != 2000 {
		t.Errorf("segment 1 stop = %d, want 2000", doc.Segment(1).Stop)
	}
}

func TestAdjustRespectsSpacing(t *testing.T) {
	doc := twoSegments(PolicyAdjust, 100)

	if err := doc.SetStop(0, 950); err != nil {
		t.Fatalf("SetStop failed: %v", err)
	}
	if doc.Segment(1).Start != 1050 {
		t.Errorf(
			"segment 1 start = %d, want 1050 (stop + spacing)",
			doc.Segment(1).Start,
		)
	}
}

func TestAdjustRepairsInvertedNeighbor(t *testing.T) {
	doc := twoSegments(PolicyAdjust, 0)

	// pushing past the neighbor's stop would invert it
	if err := doc.SetStop(0, 2500); err != nil {
		t.Fatalf("SetStop failed: %v", err)
	}
	next := doc.Segment(1)
	if next.Start != 2500 {
		t.Errorf("segment 1 start = %d, want 2500", next.Start)
	}
	if next.Stop <= next.Start {
		t.Errorf("segment 1 inverted: %d-%d", next.Start, next.Stop)
	}
}

func TestAdjustStartFixesOwnStop(t *testing.T) {
	doc := twoSegments(PolicyAdjust, 0)

	if err := doc.SetStart(1, 2200); err != nil {
		t.Fatalf("SetStart failed: %v", err)
	}
	seg := doc.Segment(1)
	if seg.Start != 2200 {
		t.Errorf("start = %d, want 2200", seg.Start)
	}
	if seg.Stop <= seg.Start {
		t.Errorf("segment inverted: %d-%d", seg.Start, seg.Stop)
	}
}

func TestErrorPolicyRejects(t *testing.T) {
	doc := twoSegments(PolicyError, 0)

	err := doc.SetStop(0, 2500)
	var bv *BoundaryViolationError
	if !errors.As(err, &bv) {
		t.Fatalf("want BoundaryViolationError, got %v", err)
	}
	if bv.Index != 0 {
		t.Errorf("violation index = %d, want 0", bv.Index)
	}
	// nothing moved
	if doc.Segment(0).Stop != 1000 || doc.Segment(1).Start != 1000 {
		t.Error("document mutated by a rejected edit")
	}

	if err := doc.SetStop(0, 500); err != nil {
		t.Errorf("valid edit rejected: %v", err)
	}
}

func TestErrorPolicyRejectsInversion(t *testing.T) {
	doc := twoSegments(PolicyError, 0)

	if err := doc.SetStart(0, 1000); err == nil {
		t.Error("start equal to stop should be rejected")
	}
	if err := doc.SetStop(1, 1000); err == nil {
		t.Error("stop equal to start should be rejected")
	}
}

func TestClipPolicyClamps(t *testing.T) {
	doc := twoSegments(PolicyClip, 0)

	if err := doc.SetStop(0, 2500); err != nil {
		t.Fatalf("SetStop failed: %v", err)
	}
	if doc.Segment(0).Stop != 1000 {
		t.Errorf(
			"segment 0 stop = %d, want clamped to 1000",
			doc.Segment(0).Stop,
		)
	}
	if doc.Segment(1).Start != 1000 {
		t.Error("neighbor moved under clip policy")
	}
}

func TestClipDurationWinsOverSpacing(t *testing.T) {
	doc := twoSegments(PolicyClip, 1500)

	// the spacing-valid window for segment 1's start is empty; duration
	// validity wins and the result stays strictly inside the segment
	if err := doc.SetStart(1, 900); err != nil {
		t.Fatalf("SetStart failed: %v", err)
	}
	seg := doc.Segment(1)
	if seg.Start >= seg.Stop {
		t.Errorf("segment inverted: %d-%d", seg.Start, seg.Stop)
	}
	if seg.Stop != 2000 {
		t.Errorf("stop moved under clip policy: %d", seg.Stop)
	}
}

func TestNonePolicyUnchecked(t *testing.T) {
	doc := twoSegments(PolicyNone, 0)

	if err := doc.SetStop(0, 2500); err != nil {
		t.Fatalf("SetStop failed: %v", err)
	}
	if doc.Segment(0).Stop != 2500 {
		t.Errorf("segment 0 stop = %d, want 2500", doc.Segment(0).Stop)
	}
	if doc.Segment(1).Start != 1000 {
		t.Error("neighbor moved under none policy")
	}
}

func TestNegativeSpacingAllowsOverlap(t *testing.T) {
	doc := twoSegments(PolicyError, -100)

	// a 50ms overlap is inside the negative spacing allowance
	if err := doc.SetStop(0, 1050); err != nil {
		t.Errorf("overlap within negative spacing rejected: %v", err)
	}
	// a 150ms overlap is not
	if err := doc.SetStop(0, 1150); err == nil {
		t.Error("overlap beyond negative spacing accepted")
	}
}

func TestShiftPolicies(t *testing.T) {
	t.Run("adjust pushes neighbor", func(t *testing.T) {
		doc := twoSegments(PolicyAdjust, 0)
		if err := doc.Shift(0, 500); err != nil {
			t.Fatalf("Shift failed: %v", err)
		}
		if doc.Segment(0).Start != 500 || doc.Segment(0).Stop != 1500 {
			t.Errorf(
				"segment 0 = %d-%d, want 500-1500",
				doc.Segment(0).Start, doc.Segment(0).Stop,
			)
		}
		if doc.Segment(1).Start != 1500 {
			t.Errorf("segment 1 start = %d, want 1500", doc.Segment(1).Start)
		}
	})

	t.Run("clip limits delta", func(t *testing.T) {
		doc := twoSegments(PolicyClip, 0)
		if err := doc.Shift(0, 5000); err != nil {
			t.Fatalf("Shift failed: %v", err)
		}
		// delta clamps so the segment stops where the neighbor starts
		if doc.Segment(0).Stop != 1000 {
			t.Errorf("segment 0 stop = %d, want 1000", doc.Segment(0).Stop)
		}
	})

	t.Run("error rejects collision", func(t *testing.T) {
		doc := twoSegments(PolicyError, 0)
		var bv *BoundaryViolationError
		if err := doc.Shift(0, 500); !errors.As(err, &bv) {
			t.Fatalf("want BoundaryViolationError, got %v", err)
		}
		if doc.Segment(0).Start != 0 {
			t.Error("document mutated by a rejected shift")
		}
	})
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		name string
		want Policy
	}{
		{"adjust", PolicyAdjust},
		{"", PolicyAdjust},
		{"clip", PolicyClip},
		{"error", PolicyError},
		{"none", PolicyNone},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.name)
		if err != nil {
			t.Errorf("ParsePolicy(%q) failed: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if _, err := ParsePolicy("bogus"); err == nil {
		t.Error("ParsePolicy should reject unknown names")
	}
}
