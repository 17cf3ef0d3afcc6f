package subtitle

import (
	"fmt"
	"strings"
)

// Merge combines the contiguous segments first..last (inclusive) into one.
// The merged segment spans min(start)..max(stop) and joins the texts with a
// single space. It carries the first original comment; comments from the
// other merged segments move ahead of the next cue so they still render
// immediately after the merged segment.
func Merge(d *Document, first, last int) error {
	if first < 0 || last >= len(d.segs) || first >= last {
		return fmt.Errorf("cannot merge range %d-%d of %d segments", first, last, len(d.segs))
	}

	merged := Segment{ID: d.segs[first].ID}
	merged.Start = d.segs[first].Start
	merged.Stop = d.segs[first].Stop

	var texts []string
	var comments []string
	for _, seg := range d.segs[first : last+1] {
		if seg.Start < merged.Start {
			merged.Start = seg.Start
		}
		if seg.Stop > merged.Stop {
			merged.Stop = seg.Stop
		}
		if t := seg.Text(); t != "" {
			texts = append(texts, t)
		}
		if seg.Comment != "" {
			comments = append(comments, seg.Comment)
		}
	}
	merged.SetText(strings.Join(texts, " "))
	if len(comments) > 0 {
		merged.Comment = comments[0]
		comments = comments[1:]
	}

	d.segs[first] = merged
	d.segs = append(d.segs[:first+1], d.segs[last+1:]...)

	if len(comments) > 0 {
		leftover := strings.Join(comments, "\n")
		if first+1 < len(d.segs) {
			d.segs[first+1].Comment = joinComments(leftover, d.segs[first+1].Comment)
		} else {
			d.Trailing = joinComments(leftover, d.Trailing)
		}
	}

	d.sortSegments()
	return nil
}

// MergeWindow merges every segment overlapping [from, to]. A point anchor
// (from == to) merges the segment holding the anchor with its follower;
// when the anchor sits exactly on a segment's start, that segment is
// excluded and only the following ones are merged. The exclusion is
// deliberate and mirrors how an empty selection at a cue boundary behaves.
func MergeWindow(d *Document, from, to int64) error {
	if from > to {
		from, to = to, from
	}

	if from == to {
		i := d.IndexAt(from)
		if i < 0 {
			i = 0
		} else if d.segs[i].Start == from {
			i++
		}
		return Merge(d, i, i+1)
	}

	first, last := d.Window(from, to)
	if first == -1 {
		return fmt.Errorf("no segments between %dms and %dms", from, to)
	}
	return Merge(d, first, last)
}

// SplitAtOffset divides segment i in two at a rune offset into its text.
// The boundary between the halves is interpolated linearly over the text
// length; the offset must fall strictly inside the text so neither half
// ends up with a zero duration. Returns the index of the second half.
func SplitAtOffset(d *Document, i, offset int) (int, error) {
	if err := d.checkIndex(i); err != nil {
		return 0, err
	}
	seg := d.segs[i]
	total := len([]rune(seg.Text()))
	if offset <= 0 || offset >= total {
		return 0, fmt.Errorf(
			"split offset %d outside text of segment %d (1-%d)",
			offset, i, total-1,
		)
	}

	boundary := seg.Start + seg.Duration()*int64(offset)/int64(total)
	if boundary <= seg.Start || boundary >= seg.Stop {
		return 0, fmt.Errorf(
			"segment %d is too short to split at offset %d",
			i, offset,
		)
	}
	return splitSegment(d, i, boundary, offset)
}

// SplitAtTime divides segment i in two at an explicit boundary; the text is
// divided at the proportional position.
func SplitAtTime(d *Document, i int, ms int64) (int, error) {
	if err := d.checkIndex(i); err != nil {
		return 0, err
	}
	seg := d.segs[i]
	if ms <= seg.Start || ms >= seg.Stop {
		return 0, fmt.Errorf(
			"split time %dms outside segment %d (%d-%d)",
			ms, i, seg.Start, seg.Stop,
		)
	}
	total := len([]rune(seg.Text()))
	offset := total
	if seg.Duration() > 0 {
		offset = int(int64(total) * (ms - seg.Start) / seg.Duration())
	}
	return splitSegment(d, i, ms, offset)
}

// splitSegment performs the actual division. The first half keeps the
// comment, since it renders ahead of the original cue position; a comment
// attached to the following cue stays where it is.
func splitSegment(d *Document, i int, boundary int64, offset int) (int, error) {
	seg := d.segs[i]
	runes := []rune(seg.Text())
	if offset < 0 {
		offset = 0
	}
	if offset > len(runes) {
		offset = len(runes)
	}

	first := seg
	first.SetText(strings.TrimSpace(string(runes[:offset])))
	first.Stop = boundary

	second := Segment{Start: boundary, Stop: seg.Stop}
	second.SetText(strings.TrimSpace(string(runes[offset:])))

	d.segs[i] = first
	d.segs = append(d.segs, Segment{})
	copy(d.segs[i+2:], d.segs[i+1:])
	d.segs[i+1] = second
	d.sortSegments()
	return i + 1, nil
}

// Crop restricts the document to [from, to]: segments fully outside the
// window are removed, segments straddling a window edge are clipped to it.
// Returns the number of removed segments.
func Crop(d *Document, from, to int64) (int, error) {
	if from >= to {
		return 0, fmt.Errorf("empty crop window %d-%d", from, to)
	}

	kept := d.segs[:0]
	removed := 0
	for _, seg := range d.segs {
		if seg.Stop <= from || seg.Start >= to {
			removed++
			continue
		}
		if seg.Start < from {
			seg.Start = from
		}
		if seg.Stop > to {
			seg.Stop = to
		}
		kept = append(kept, seg)
	}
	d.segs = kept
	return removed, nil
}
