package subtitle

import (
	"fmt"
	"sort"
)

// Document is an ordered sequence of segments bound to one source format.
// It owns the canonical in-memory state; segments are always presented in
// non-decreasing start order, ties broken by original position.
type Document struct {
	Format   Format
	Policy   Policy
	Spacing  int64  // minimum gap between adjacent segments in ms, may be negative
	Trailing string // comment block following the last cue

	// fired after every successful boundary change, so an active
	// playback-loop window can follow the segment it is bound to
	OnEdit func(index int, seg Segment)

	segs []Segment
}

// NewDocument builds a document from segments in any order.
func NewDocument(f Format, segs ...Segment) *Document {
	d := &Document{Format: f, Policy: PolicyAdjust, segs: segs}
	d.sortSegments()
	return d
}

func (d *Document) Len() int {
	return len(d.segs)
}

// Segment returns a copy of the segment at index i.
func (d *Document) Segment(i int) Segment {
	return d.segs[i]
}

// Segments returns a copy of the ordered segment sequence.
func (d *Document) Segments() []Segment {
	out := make([]Segment, len(d.segs))
	copy(out, d.segs)
	return out
}

// IndexAt returns the index of the segment whose span contains ms, or the
// index of the last segment starting at or before ms when no span contains
// it. Returns -1 when ms precedes every segment.
func (d *Document) IndexAt(ms int64) int {
	idx := -1
	for i, seg := range d.segs {
		if seg.Start > ms {
			break
		}
		idx = i
	}
	return idx
}

// Window returns the inclusive index range of segments overlapping
// [from, to], or (-1, -1) when none do.
func (d *Document) Window(from, to int64) (int, int) {
	first, last := -1, -1
	for i, seg := range d.segs {
		if seg.Stop <= from || seg.Start >= to {
			continue
		}
		if first == -1 {
			first = i
		}
		last = i
	}
	return first, last
}

// Insert adds a segment at its ordered position and returns its index.
func (d *Document) Insert(seg Segment) int {
	d.segs = append(d.segs, seg)
	return d.resortTracking(len(d.segs) - 1)
}

// Remove deletes the segment at index i and returns it.
func (d *Document) Remove(i int) (Segment, error) {
	if err := d.checkIndex(i); err != nil {
		return Segment{}, err
	}
	seg := d.segs[i]
	d.segs = append(d.segs[:i], d.segs[i+1:]...)
	return seg, nil
}

func (d *Document) SetText(i int, text string) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	d.segs[i].SetText(text)
	return nil
}

func (d *Document) SetComment(i int, comment string) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	d.segs[i].Comment = comment
	return nil
}

// SetStart applies a start edit under the active boundary policy.
func (d *Document) SetStart(i int, ms int64) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	if err := d.applyStart(i, ms); err != nil {
		return err
	}
	d.finishEdit(i)
	return nil
}

// SetStop applies a stop edit under the active boundary policy.
func (d *Document) SetStop(i int, ms int64) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	if err := d.applyStop(i, ms); err != nil {
		return err
	}
	d.finishEdit(i)
	return nil
}

// Shift moves both boundaries of segment i by delta under the active policy.
func (d *Document) Shift(i int, delta int64) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	if err := d.applyShift(i, delta); err != nil {
		return err
	}
	d.finishEdit(i)
	return nil
}

// ShiftAll retimes the whole document by delta without policy checks;
// relative spacing is unchanged so no invariant can be introduced.
func (d *Document) ShiftAll(delta int64) {
	for i := range d.segs {
		d.segs[i].Start += delta
		d.segs[i].Stop += delta
	}
}

// SetTimes writes both boundaries unchecked, for programmatic construction
// and reconciliation paths that restore consistency themselves.
func (d *Document) SetTimes(i int, start, stop int64) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	d.segs[i].Start = start
	d.segs[i].Stop = stop
	return nil
}

// Resort restores start ordering after a series of unchecked writes.
func (d *Document) Resort() {
	d.sortSegments()
}

func (d *Document) checkIndex(i int) error {
	if i < 0 || i >= len(d.segs) {
		return fmt.Errorf("index %d out of range (0-%d)", i, len(d.segs)-1)
	}
	return nil
}

func (d *Document) finishEdit(i int) {
	idx := d.resortTracking(i)
	if d.OnEdit != nil {
		d.OnEdit(idx, d.segs[idx])
	}
}

// resortTracking restores start order and returns the new index of the
// element previously at i. Tracking by position rather than by value keeps
// the answer right when segments share the same span and text.
func (d *Document) resortTracking(i int) int {
	order := make([]int, len(d.segs))
	for k := range order {
		order[k] = k
	}
	sort.SliceStable(order, func(a, b int) bool {
		return d.segs[order[a]].Start < d.segs[order[b]].Start
	})

	sorted := make([]Segment, len(d.segs))
	pos := i
	for newIdx, old := range order {
		sorted[newIdx] = d.segs[old]
		if old == i {
			pos = newIdx
		}
	}
	d.segs = sorted
	return pos
}

func (d *Document) sortSegments() {
	sort.SliceStable(d.segs, func(i, j int) bool {
		return d.segs[i].Start < d.segs[j].Start
	})
}
