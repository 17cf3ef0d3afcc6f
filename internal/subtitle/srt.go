package subtitle

import (
	"fmt"
	"strings"
)

// SubRip format. Comments follow the community convention of "#" blocks
// between cues; SubRip itself has no comment syntax.
type srtAdapter struct{}

func (srtAdapter) Format() Format {
	return FormatSRT
}

func (srtAdapter) Parse(text string) (*Document, error) {
	doc := &Document{Format: FormatSRT, Policy: PolicyAdjust}
	lines := splitLines(text)

	var pendingComment string
	i := 0
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			i++
			continue
		}

		// a comment block is only recognized at the start of a block, so
		// cue text that happens to contain the marker is never misread
		if strings.HasPrefix(trimmed, "#") {
			var block []string
			for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
				block = append(block, commentBody(lines[i], "#"))
				i++
			}
			pendingComment = joinComments(pendingComment, strings.Join(block, "\n"))
			continue
		}

		seg := Segment{Comment: pendingComment}
		pendingComment = ""

		// optional cue identifier line preceding the timestamp line
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
		start, stop, err := parseCueTiming(FormatSRT, lines[i], i+1)
		if err != nil {
			return nil, err
		}
		seg.Start = start
		seg.Stop = stop
		i++

		// numeric-only lines here are ordinary text, not cue ids
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

func (srtAdapter) Render(doc *Document) (string, error) {
	var sb strings.Builder
	for i, seg := range doc.segs {
		writeHashComment(&sb, seg.Comment)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatSRTTime(seg.Start),
			formatSRTTime(seg.Stop)))
		for _, line := range seg.Lines {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	writeHashComment(&sb, doc.Trailing)
	return sb.String(), nil
}

func writeHashComment(sb *strings.Builder, comment string) {
	if comment == "" {
		return
	}
	for _, line := range strings.Split(comment, "\n") {
		if line == "" {
			sb.WriteString("#\n")
			continue
		}
		sb.WriteString("# ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func commentBody(line, marker string) string {
	body := strings.TrimPrefix(strings.TrimSpace(line), marker)
	return strings.TrimPrefix(body, " ")
}

func joinComments(existing, incoming string) string {
	if existing == "" {
		return incoming
	}
	if incoming == "" {
		return existing
	}
	return existing + "\n" + incoming
}
