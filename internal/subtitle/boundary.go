package subtitle

import "fmt"

// Policy is the conflict-resolution rule applied when a timestamp edit
// would invert a segment or violate the configured spacing.
type Policy int

const (
	// PolicyAdjust writes the proposed value and moves the minimal other
	// boundary needed to restore validity, cascading to exactly one
	// neighbor.
	PolicyAdjust Policy = iota
	// PolicyClip bounds the proposed value to the nearest valid one.
	PolicyClip
	// PolicyError rejects invalid edits with a BoundaryViolationError.
	PolicyError
	// PolicyNone writes the value unchecked.
	PolicyNone
)

func (p Policy) String() string {
	switch p {
	case PolicyClip:
		return "clip"
	case PolicyError:
		return "error"
	case PolicyNone:
		return "none"
	default:
		return "adjust"
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "adjust", "":
		return PolicyAdjust, nil
	case "clip":
		return PolicyClip, nil
	case "error":
		return PolicyError, nil
	case "none":
		return PolicyNone, nil
	default:
		return PolicyAdjust, fmt.Errorf(
			"unknown boundary policy %q (want adjust, clip, error or none)",
			s,
		)
	}
}

func (d *Document) applyStart(i int, ms int64) error {
	seg := &d.segs[i]
	var prev *Segment
	if i > 0 {
		prev = &d.segs[i-1]
	}

	switch d.Policy {
	case PolicyNone:
		seg.Start = ms

	case PolicyError:
		if ms >= seg.Stop {
			return &BoundaryViolationError{
				Index:  i,
				Reason: fmt.Sprintf("start %d inverts duration (stop %d)", ms, seg.Stop),
			}
		}
		if prev != nil && ms-prev.Stop < d.Spacing {
			return &BoundaryViolationError{
				Index: i,
				Reason: fmt.Sprintf(
					"start %d leaves %dms before previous stop %d, need %dms",
					ms, ms-prev.Stop, prev.Stop, d.Spacing,
				),
			}
		}
		seg.Start = ms

	case PolicyClip:
		if prev != nil && ms < prev.Stop+d.Spacing {
			ms = prev.Stop + d.Spacing
		}
		// duration wins over spacing when the valid window is empty
		if ms >= seg.Stop {
			ms = seg.Stop - 1
		}
		if ms < 0 {
			ms = 0
		}
		seg.Start = ms

	case PolicyAdjust:
		seg.Start = ms
		if seg.Stop <= ms {
			seg.Stop = ms + 1
		}
		if prev != nil && ms-prev.Stop < d.Spacing {
			prev.Stop = ms - d.Spacing
			if prev.Stop <= prev.Start {
				prev.Start = prev.Stop - 1
			}
		}
	}
	return nil
}

func (d *Document) applyStop(i int, ms int64) error {
	seg := &d.segs[i]
	var next *Segment
	if i+1 < len(d.segs) {
		next = &d.segs[i+1]
	}

	switch d.Policy {
	case PolicyNone:
		seg.Stop = ms

	case PolicyError:
		if ms <= seg.Start {
			return &BoundaryViolationError{
				Index:  i,
				Reason: fmt.Sprintf("stop %d inverts duration (start %d)", ms, seg.Start),
			}
		}
		if next != nil && next.Start-ms < d.Spacing {
			return &BoundaryViolationError{
				Index: i,
				Reason: fmt.Sprintf(
					"stop %d leaves %dms before next start %d, need %dms",
					ms, next.Start-ms, next.Start, d.Spacing,
				),
			}
		}
		seg.Stop = ms

	case PolicyClip:
		if next != nil && ms > next.Start-d.Spacing {
			ms = next.Start - d.Spacing
		}
		if ms <= seg.Start {
			ms = seg.Start + 1
		}
		seg.Stop = ms

	case PolicyAdjust:
		seg.Stop = ms
		if seg.Start >= ms {
			seg.Start = ms - 1
		}
		if next != nil && next.Start-ms < d.Spacing {
			next.Start = ms + d.Spacing
			if next.Stop <= next.Start {
				next.Stop = next.Start + 1
			}
		}
	}
	return nil
}

func (d *Document) applyShift(i int, delta int64) error {
	seg := &d.segs[i]
	var prev, next *Segment
	if i > 0 {
		prev = &d.segs[i-1]
	}
	if i+1 < len(d.segs) {
		next = &d.segs[i+1]
	}

	switch d.Policy {
	case PolicyNone:
		seg.Start += delta
		seg.Stop += delta

	case PolicyError:
		if prev != nil && (seg.Start+delta)-prev.Stop < d.Spacing {
			return &BoundaryViolationError{
				Index:  i,
				Reason: fmt.Sprintf("shift by %d collides with previous segment", delta),
			}
		}
		if next != nil && next.Start-(seg.Stop+delta) < d.Spacing {
			return &BoundaryViolationError{
				Index:  i,
				Reason: fmt.Sprintf("shift by %d collides with next segment", delta),
			}
		}
		seg.Start += delta
		seg.Stop += delta

	case PolicyClip:
		if next != nil {
			if max := next.Start - d.Spacing - seg.Stop; delta > max {
				delta = max
			}
		}
		if prev != nil {
			if min := prev.Stop + d.Spacing - seg.Start; delta < min {
				delta = min
			}
		}
		seg.Start += delta
		seg.Stop += delta

	case PolicyAdjust:
		seg.Start += delta
		seg.Stop += delta
		if prev != nil && seg.Start-prev.Stop < d.Spacing {
			prev.Stop = seg.Start - d.Spacing
			if prev.Stop <= prev.Start {
				prev.Start = prev.Stop - 1
			}
		}
		if next != nil && next.Start-seg.Stop < d.Spacing {
			next.Start = seg.Stop + d.Spacing
			if next.Stop <= next.Start {
				next.Stop = next.Start + 1
			}
		}
	}
	return nil
}
