package subtitle

import (
	"fmt"
	"strings"
)

// tab-separated label export: "start<TAB>stop<TAB>text", times in decimal
// seconds, one row per segment, no comment support
type tsvAdapter struct{}

func (tsvAdapter) Format() Format {
	return FormatTSV
}

func (tsvAdapter) Parse(text string) (*Document, error) {
	doc := &Document{Format: FormatTSV, Policy: PolicyAdjust}

	for n, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) < 3 {
			return nil, fmt.Errorf(
				"line %d: want start, stop and text separated by tabs",
				n+1,
			)
		}
		start, err := parseTSVTime(fields[0])
		if err != nil {
			return nil, atLine(err, n+1)
		}
		stop, err := parseTSVTime(fields[1])
		if err != nil {
			return nil, atLine(err, n+1)
		}
		seg := Segment{Start: start, Stop: stop}
		seg.SetText(fields[2])
		doc.segs = append(doc.segs, seg)
	}

	doc.sortSegments()
	return doc, nil
}

func (tsvAdapter) Render(doc *Document) (string, error) {
	var sb strings.Builder
	for _, seg := range doc.segs {
		// rows are single-line; internal line breaks flatten to spaces
		text := strings.Join(seg.Lines, " ")
		sb.WriteString(fmt.Sprintf("%s\t%s\t%s\n",
			formatTSVTime(seg.Start),
			formatTSVTime(seg.Stop),
			text))
	}
	return sb.String(), nil
}
