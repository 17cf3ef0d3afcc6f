package subtitle

import (
	"fmt"
	"strings"
)

// Advanced SubStation Alpha format. Only the [Events] section carries timed
// text; rendering regenerates a standard header the way a fresh export would.
type assAdapter struct{}

const assEventColumns = "Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text"

func (assAdapter) Format() Format {
	return FormatASS
}

func (assAdapter) Parse(text string) (*Document, error) {
	doc := &Document{Format: FormatASS, Policy: PolicyAdjust}
	lines := splitLines(text)

	columns := splitColumns(assEventColumns)
	startIdx, endIdx, textIdx := columnIndexes(columns)

	inEvents := false
	var pendingComment string

	for n, raw := range lines {
		line := raw
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			inEvents = strings.EqualFold(trimmed, "[Events]")
			continue
		}
		if !inEvents {
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "Format:"):
			columns = splitColumns(strings.TrimPrefix(trimmed, "Format:"))
			startIdx, endIdx, textIdx = columnIndexes(columns)
			if startIdx < 0 || endIdx < 0 || textIdx < 0 {
				return nil, fmt.Errorf(
					"line %d: Format line missing Start, End or Text column",
					n+1,
				)
			}

		case strings.HasPrefix(trimmed, ";"):
			pendingComment = joinComments(pendingComment, commentBody(trimmed, ";"))

		case strings.HasPrefix(trimmed, "Comment:"):
			fields := splitASSFields(strings.TrimSpace(strings.TrimPrefix(trimmed, "Comment:")), len(columns))
			if textIdx < len(fields) {
				pendingComment = joinComments(pendingComment, decodeASSText(fields[textIdx]))
			}

		case strings.HasPrefix(trimmed, "Dialogue:"):
			fields := splitASSFields(strings.TrimSpace(strings.TrimPrefix(trimmed, "Dialogue:")), len(columns))
			if len(fields) < len(columns) {
				return nil, fmt.Errorf(
					"line %d: Dialogue has %d fields, want %d",
					n+1, len(fields), len(columns),
				)
			}
			start, err := parseASSTime(fields[startIdx])
			if err != nil {
				return nil, atLine(err, n+1)
			}
			stop, err := parseASSTime(fields[endIdx])
			if err != nil {
				return nil, atLine(err, n+1)
			}
			seg := Segment{
				Start:   start,
				Stop:    stop,
				Comment: pendingComment,
			}
			seg.SetText(decodeASSText(fields[textIdx]))
			pendingComment = ""
			doc.segs = append(doc.segs, seg)
		}
	}

	doc.Trailing = pendingComment
	doc.sortSegments()
	return doc, nil
}

func (assAdapter) Render(doc *Document) (string, error) {
	var sb strings.Builder

	sb.WriteString("[Script Info]\n")
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString("Collisions: Normal\n")
	sb.WriteString("PlayDepth: 0\n\n")

	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	sb.WriteString("Style: Default,Arial,20,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1\n\n")

	sb.WriteString("[Events]\n")
	sb.WriteString("Format: " + assEventColumns + "\n")

	for _, seg := range doc.segs {
		writeASSComment(&sb, seg.Comment)
		sb.WriteString(fmt.Sprintf("Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			formatASSTime(seg.Start),
			formatASSTime(seg.Stop),
			encodeASSText(seg.Text())))
	}
	writeASSComment(&sb, doc.Trailing)

	return sb.String(), nil
}

func writeASSComment(sb *strings.Builder, comment string) {
	if comment == "" {
		return
	}
	for _, line := range strings.Split(comment, "\n") {
		sb.WriteString("; ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}

func splitColumns(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func columnIndexes(columns []string) (start, end, text int) {
	start, end, text = -1, -1, -1
	for i, col := range columns {
		switch strings.ToLower(col) {
		case "start":
			start = i
		case "end":
			end = i
		case "text":
			text = i
		}
	}
	return start, end, text
}

// splitASSFields splits a Dialogue payload on commas, keeping every comma
// after the last declared column inside the text field.
func splitASSFields(content string, numFields int) []string {
	if numFields <= 0 {
		return nil
	}
	parts := make([]string, 0, numFields)
	remaining := content
	for i := 0; i < numFields-1; i++ {
		idx := strings.Index(remaining, ",")
		if idx == -1 {
			parts = append(parts, remaining)
			remaining = ""
			break
		}
		parts = append(parts, remaining[:idx])
		remaining = remaining[idx+1:]
	}
	parts = append(parts, remaining)
	return parts
}

func decodeASSText(text string) string {
	text = strings.ReplaceAll(text, "\\N", "\n")
	text = strings.ReplaceAll(text, "\\n", "\n")
	return text
}

func encodeASSText(text string) string {
	return strings.ReplaceAll(text, "\n", "\\N")
}
