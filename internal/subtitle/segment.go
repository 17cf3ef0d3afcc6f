package subtitle

import "strings"

// supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
	FormatASS Format = "ass"
	FormatTSV Format = "tsv"
)

// represents a single timed text unit
type Segment struct {
	ID      string   // format-native cue identifier, empty when absent
	Start   int64    // milliseconds
	Stop    int64    // milliseconds
	Lines   []string // text lines, format-agnostic
	Comment string   // annotation rendered ahead of the cue, empty when absent
}

// joined text of the segment
func (s Segment) Text() string {
	return strings.Join(s.Lines, "\n")
}

// replaces the segment text, splitting on newlines
func (s *Segment) SetText(text string) {
	if text == "" {
		s.Lines = nil
		return
	}
	s.Lines = strings.Split(text, "\n")
}

// duration in milliseconds
func (s Segment) Duration() int64 {
	return s.Stop - s.Start
}
