package subtitle

import (
	"fmt"
	"strings"
)

// Adapter parses one wire format into a document and renders a document
// back to that format's text.
type Adapter interface {
	Format() Format
	Parse(text string) (*Document, error)
	Render(doc *Document) (string, error)
}

// AdapterFor returns the adapter for a format.
func AdapterFor(f Format) (Adapter, error) {
	switch f {
	case FormatSRT:
		return srtAdapter{}, nil
	case FormatVTT:
		return vttAdapter{}, nil
	case FormatASS:
		return assAdapter{}, nil
	case FormatTSV:
		return tsvAdapter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedFormat, f)
	}
}

// Detect inspects document text and picks the format that claims it.
func Detect(text string) (Format, error) {
	lines := splitLines(text)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "WEBVTT") {
			return FormatVTT, nil
		}
		lower := strings.ToLower(trimmed)
		if lower == "[script info]" || lower == "[events]" || lower == "[v4+ styles]" {
			return FormatASS, nil
		}
		if idx := strings.Index(trimmed, "-->"); idx >= 0 {
			// the sub-second separator tells SRT and VTT apart; a VTT
			// cue without a fraction still lacks the SRT comma
			if strings.Contains(trimmed[:idx], ",") {
				return FormatSRT, nil
			}
			return FormatVTT, nil
		}
		if fields := strings.Split(trimmed, "\t"); len(fields) >= 3 {
			if _, err := parseTSVTime(fields[0]); err == nil {
				if _, err := parseTSVTime(fields[1]); err == nil {
					return FormatTSV, nil
				}
			}
		}
		// a line directly ahead of a timing line is a cue identifier,
		// numeric or not; any other non-numeric line ends the scan
		if i+1 < len(lines) && strings.Contains(lines[i+1], "-->") {
			continue
		}
		if !isNumeric(trimmed) {
			break
		}
	}
	return "", ErrUnrecognizedFormat
}

// Parse detects the format of text and parses it with the matching adapter.
func Parse(text string) (*Document, error) {
	f, err := Detect(text)
	if err != nil {
		return nil, err
	}
	adapter, err := AdapterFor(f)
	if err != nil {
		return nil, err
	}
	return adapter.Parse(text)
}

// Render serializes the document in its own format.
func Render(doc *Document) (string, error) {
	adapter, err := AdapterFor(doc.Format)
	if err != nil {
		return "", err
	}
	return adapter.Render(doc)
}

func splitLines(text string) []string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// parseCueTiming splits a "start --> stop" line, tolerating cue settings
// after the stop timestamp, and tags failures with the line number.
func parseCueTiming(f Format, line string, lineNum int) (int64, int64, error) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, &MalformedTimestampError{
			Text: strings.TrimSpace(line),
			Line: lineNum,
		}
	}
	start, err := ParseTime(f, strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, atLine(err, lineNum)
	}
	fields := strings.Fields(parts[1])
	if len(fields) == 0 {
		return 0, 0, &MalformedTimestampError{
			Text: strings.TrimSpace(line),
			Line: lineNum,
		}
	}
	stop, err := ParseTime(f, fields[0])
	if err != nil {
		return 0, 0, atLine(err, lineNum)
	}
	return start, stop, nil
}

func atLine(err error, lineNum int) error {
	if mt, ok := err.(*MalformedTimestampError); ok {
		return &MalformedTimestampError{Text: mt.Text, Line: lineNum}
	}
	return err
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
