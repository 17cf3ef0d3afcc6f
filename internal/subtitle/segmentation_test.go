package subtitle

import (
	"strings"
	"testing"
)

func TestMerge(t *testing.T) {
	doc := NewDocument(FormatSRT,
		Segment{Start: 0, Stop: 1000, Lines: []string{"a"}},
		Segment{Start: 1000, Stop: 2000, Lines: []string{"b"}},
		Segment{Start: 2000, Stop: 3000, Lines: []string{"c"}},
	)

	if err := Merge(doc, 0, 2); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if doc.Len() != 1 {
		t.Fatalf("expected 1 segment, got %d", doc.Len())
	}
	seg := doc.Segment(0)
	if seg.Start != 0 || seg.Stop != 3000 {
		t.Errorf("merged span = %d-%d, want 0-3000", seg.Start, seg.Stop)
	}
	if seg.Text() != "a b c" {
		t.Errorf("merged text = %q, want \"a b c\"", seg.Text())
	}
}

func TestMergeInvalidRange(t *testing.T) {
	doc := testDoc([2]int64{0, 1000}, [2]int64{1000, 2000})
	if err := Merge(doc, 0, 0); err == nil {
		t.Error("single-segment merge should fail")
	}
	if err := Merge(doc, 0, 5); err == nil {
		t.Error("out-of-range merge should fail")
	}
}

func TestMergeKeepsComment(t *testing.T) {
	doc := NewDocument(FormatSRT,
		Segment{Start: 0, Stop: 1000, Lines: []string{"a"}},
		Segment{Start: 1000, Stop: 2000, Lines: []string{"b"}, Comment: "keep me"},
	)

	if err := Merge(doc, 0, 1); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if doc.Segment(0).Comment != "keep me" {
		t.Errorf("comment lost in merge: %q", doc.Segment(0).Comment)
	}

	// and it still renders after a save round trip
	text, err := Render(doc)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(text, "# keep me") {
		t.Errorf("comment missing from rendered output:\n%s", text)
	}
}

func TestMergeMovesLeftoverComments(t *testing.T) {
	doc := NewDocument(FormatSRT,
		Segment{Start: 0, Stop: 1000, Lines: []string{"a"}, Comment: "one"},
		Segment{Start: 1000, Stop: 2000, Lines: []string{"b"}, Comment: "two"},
		Segment{Start: 2000, Stop: 3000, Lines: []string{"c"}},
	)

	if err := Merge(doc, 0, 1); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if doc.Segment(0).Comment != "one" {
		t.Errorf("merged comment = %q, want one", doc.Segment(0).Comment)
	}
	// the second comment moves ahead of the following segment
	if doc.Segment(1).Comment != "two" {
		t.Errorf("leftover comment = %q, want two", doc.Segment(1).Comment)
	}
}

func TestMergeTrailingComments(t *testing.T) {
	doc := NewDocument(FormatSRT,
		Segment{Start: 0, Stop: 1000, Lines: []string{"a"}, Comment: "one"},
		Segment{Start: 1000, Stop: 2000, Lines: []string{"b"}, Comment: "two"},
	)

	if err := Merge(doc, 0, 1); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	// no following segment, so the leftover comment trails the document
	if doc.Trailing != "two" {
		t.Errorf("trailing comment = %q, want two", doc.Trailing)
	}
}

func TestMergeWindowRange(t *testing.T) {
	doc := testDoc(
		[2]int64{0, 1000},
		[2]int64{1000, 2000},
		[2]int64{2000, 3000},
		[2]int64{3000, 4000},
	)

	if err := MergeWindow(doc, 1500, 2500); err != nil {
		t.Fatalf("MergeWindow failed: %v", err)
	}
	if doc.Len() != 3 {
		t.Fatalf("expected 3 segments, got %d", doc.Len())
	}
	if doc.Segment(1).Start != 1000 || doc.Segment(1).Stop != 3000 {
		t.Errorf(
			"merged span = %d-%d, want 1000-3000",
			doc.Segment(1).Start, doc.Segment(1).Stop,
		)
	}
}

func TestMergeWindowPointAnchor(t *testing.T) {
	spans := [][2]int64{
		{0, 1000},
		{1000, 2000},
		{2000, 3000},
		{3000, 4000},
	}

	// an anchor inside a segment merges it with its follower
	doc := testDoc(spans...)
	if err := MergeWindow(doc, 1500, 1500); err != nil {
		t.Fatalf("MergeWindow failed: %v", err)
	}
	if doc.Segment(1).Start != 1000 || doc.Segment(1).Stop != 3000 {
		t.Errorf(
			"merged span = %d-%d, want 1000-3000",
			doc.Segment(1).Start, doc.Segment(1).Stop,
		)
	}

	// an anchor exactly on a segment's start leaves that segment alone and
	// merges the two after it
	doc = testDoc(spans...)
	if err := MergeWindow(doc, 1000, 1000); err != nil {
		t.Fatalf("MergeWindow failed: %v", err)
	}
	if doc.Segment(1).Start != 1000 || doc.Segment(1).Stop != 2000 {
		t.Errorf(
			"anchored segment changed: %d-%d",
			doc.Segment(1).Start, doc.Segment(1).Stop,
		)
	}
	if doc.Segment(2).Start != 2000 || doc.Segment(2).Stop != 4000 {
		t.Errorf(
			"merged span = %d-%d, want 2000-4000",
			doc.Segment(2).Start, doc.Segment(2).Stop,
		)
	}
}

func TestSplitAtOffset(t *testing.T) {
	doc := NewDocument(FormatSRT,
		Segment{Start: 0, Stop: 1000, Lines: []string{"aaaaabbbbb"}},
	)

	i, err := SplitAtOffset(doc, 0, 5)
	if err != nil {
		t.Fatalf("SplitAtOffset failed: %v", err)
	}
	if i != 1 {
		t.Errorf("second half index = %d, want 1", i)
	}
	if doc.Len() != 2 {
		t.Fatalf("expected 2 segments, got %d", doc.Len())
	}

	first, second := doc.Segment(0), doc.Segment(1)
	if first.Start != 0 || first.Stop != 500 {
		t.Errorf("first half = %d-%d, want 0-500", first.Start, first.Stop)
	}
	if second.Start != 500 || second.Stop != 1000 {
		t.Errorf("second half = %d-%d, want 500-1000", second.Start, second.Stop)
	}
	if first.Text() != "aaaaa" || second.Text() != "bbbbb" {
		t.Errorf("split texts = %q / %q", first.Text(), second.Text())
	}
}

func TestSplitAtOffsetEdges(t *testing.T) {
	doc := NewDocument(FormatSRT,
		Segment{Start: 0, Stop: 1000, Lines: []string{"aaaaabbbbb"}},
	)

	// offsets at or beyond the text edges would leave a zero-duration,
	// empty-text half
	for _, offset := range []int{-1, 0, 10, 11} {
		if _, err := SplitAtOffset(doc, 0, offset); err == nil {
			t.Errorf("SplitAtOffset(%d) should have failed", offset)
		}
	}
	if doc.Len() != 1 {
		t.Fatalf("document mutated by rejected splits: %d segments", doc.Len())
	}
	if doc.Segment(0).Start != 0 || doc.Segment(0).Stop != 1000 {
		t.Errorf(
			"segment changed by rejected splits: %d-%d",
			doc.Segment(0).Start, doc.Segment(0).Stop,
		)
	}

	// too short for the interpolated boundary to land strictly inside
	tiny := NewDocument(FormatSRT,
		Segment{Start: 0, Stop: 1, Lines: []string{"ab"}},
	)
	if _, err := SplitAtOffset(tiny, 0, 1); err == nil {
		t.Error("splitting a 1ms segment should have failed")
	}
}

func TestSplitAtTime(t *testing.T) {
	doc := NewDocument(FormatSRT,
		Segment{Start: 0, Stop: 1000, Lines: []string{"hello world"}},
	)

	if _, err := SplitAtTime(doc, 0, 500); err != nil {
		t.Fatalf("SplitAtTime failed: %v", err)
	}
	first, second := doc.Segment(0), doc.Segment(1)
	if first.Stop != 500 || second.Start != 500 {
		t.Errorf(
			"split boundary = %d / %d, want 500",
			first.Stop, second.Start,
		)
	}
	if first.Text() != "hello" || second.Text() != "world" {
		t.Errorf("split texts = %q / %q", first.Text(), second.Text())
	}
}

func TestSplitAtTimeOutsideSpan(t *testing.T) {
	doc := NewDocument(FormatSRT,
		Segment{Start: 1000, Stop: 2000, Lines: []string{"text"}},
	)
	for _, ms := range []int64{500, 1000, 2000, 2500} {
		if _, err := SplitAtTime(doc, 0, ms); err == nil {
			t.Errorf("SplitAtTime(%d) should have failed", ms)
		}
	}
}

func TestSplitKeepsCommentOnFirstHalf(t *testing.T) {
	doc := NewDocument(FormatSRT,
		Segment{Start: 0, Stop: 1000, Lines: []string{"ab"}, Comment: "stays"},
	)
	if _, err := SplitAtOffset(doc, 0, 1); err != nil {
		t.Fatalf("SplitAtOffset failed: %v", err)
	}
	if doc.Segment(0).Comment != "stays" {
		t.Errorf("first half comment = %q, want stays", doc.Segment(0).Comment)
	}
	if doc.Segment(1).Comment != "" {
		t.Errorf("second half comment = %q, want empty", doc.Segment(1).Comment)
	}
}

func TestCrop(t *testing.T) {
	doc := testDoc(
		[2]int64{0, 1000},
		[2]int64{1500, 2500},
		[2]int64{3000, 4000},
	)

	removed, err := Crop(doc, 1200, 3500)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if doc.Len() != 2 {
		t.Fatalf("expected 2 segments, got %d", doc.Len())
	}
	if doc.Segment(0).Start != 1500 || doc.Segment(0).Stop != 2500 {
		t.Errorf(
			"segment 0 = %d-%d, want 1500-2500",
			doc.Segment(0).Start, doc.Segment(0).Stop,
		)
	}
	// the straddling segment is clipped to the window edge
	if doc.Segment(1).Stop != 3500 {
		t.Errorf("segment 1 stop = %d, want 3500", doc.Segment(1).Stop)
	}

	if _, err := Crop(doc, 2000, 2000); err == nil {
		t.Error("empty crop window should fail")
	}
}
