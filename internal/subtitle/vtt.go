package subtitle

import (
	"fmt"
	"strings"
)

// WebVTT format
type vttAdapter struct{}

func (vttAdapter) Format() Format {
	return FormatVTT
}

func (vttAdapter) Parse(text string) (*Document, error) {
	doc := &Document{Format: FormatVTT, Policy: PolicyAdjust}
	lines := splitLines(text)

	var pendingComment string
	headerParsed := false
	i := 0
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			i++
			continue
		}

		if !headerParsed && strings.HasPrefix(trimmed, "WEBVTT") {
			headerParsed = true
			// header metadata runs until the first blank line
			for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
				i++
			}
			continue
		}

		// NOTE is only a comment marker at the start of a block, after a
		// proper blank separator; cue text containing the word is untouched
		if trimmed == "NOTE" || strings.HasPrefix(trimmed, "NOTE ") ||
			strings.HasPrefix(trimmed, "NOTE\t") {
			var block []string
			if body := strings.TrimSpace(strings.TrimPrefix(trimmed, "NOTE")); body != "" {
				block = append(block, body)
			}
			i++
			for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
				block = append(block, strings.TrimSpace(lines[i]))
				i++
			}
			pendingComment = joinComments(pendingComment, strings.Join(block, "\n"))
			continue
		}

		// STYLE and REGION blocks are structural, not timed text
		if trimmed == "STYLE" || strings.HasPrefix(trimmed, "REGION") {
			for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
				i++
			}
			continue
		}

		seg := Segment{Comment: pendingComment}
		pendingComment = ""

		// optional cue identifier: any non-arrow line before the timing line
		if !strings.Contains(lines[i], "-->") &&
			i+1 < len(lines) && strings.Contains(lines[i+1], "-->") {
			seg.ID = trimmed
			i++
		}

		if !strings.Contains(lines[i], "-->") {
			return nil, &MalformedTimestampError{
				Text: strings.TrimSpace(lines[i]),
				Line: i + 1,
			}
		}
		start, stop, err := parseCueTiming(FormatVTT, lines[i], i+1)
		if err != nil {
			return nil, err
		}
		seg.Start = start
		seg.Stop = stop
		i++

		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			seg.Lines = append(seg.Lines, lines[i])
			i++
		}

		doc.segs = append(doc.segs, seg)
	}

	doc.Trailing = pendingComment
	doc.sortSegments()
	return doc, nil
}

func (vttAdapter) Render(doc *Document) (string, error) {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")
	for i, seg := range doc.segs {
		writeNoteComment(&sb, seg.Comment)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatVTTTime(seg.Start),
			formatVTTTime(seg.Stop)))
		for _, line := range seg.Lines {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	writeNoteComment(&sb, doc.Trailing)
	return sb.String(), nil
}

func writeNoteComment(sb *strings.Builder, comment string) {
	if comment == "" {
		return
	}
	sb.WriteString("NOTE\n")
	sb.WriteString(comment)
	sb.WriteString("\n\n")
}
