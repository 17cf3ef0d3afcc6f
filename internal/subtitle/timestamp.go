package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	srtTimeRegex = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2}),(\d{3})$`)
	// hour field and fractional seconds are both optional in WebVTT
	vttTimeRegex = regexp.MustCompile(`^(?:(\d{1,4}):)?(\d{2}):(\d{2})(?:\.(\d{1,3}))?$`)
	assTimeRegex = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})\.(\d{2})$`)
)

// ParseTime converts a textual timestamp to a millisecond offset using the
// grammar of the given format.
func ParseTime(f Format, text string) (int64, error) {
	switch f {
	case FormatSRT:
		return parseSRTTime(text)
	case FormatVTT:
		return parseVTTTime(text)
	case FormatASS:
		return parseASSTime(text)
	case FormatTSV:
		return parseTSVTime(text)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnrecognizedFormat, f)
	}
}

// FormatTime renders a millisecond offset in the given format's grammar.
func FormatTime(f Format, ms int64) string {
	switch f {
	case FormatVTT:
		return formatVTTTime(ms)
	case FormatASS:
		return formatASSTime(ms)
	case FormatTSV:
		return formatTSVTime(ms)
	default:
		return formatSRTTime(ms)
	}
}

func parseSRTTime(text string) (int64, error) {
	matches := srtTimeRegex.FindStringSubmatch(strings.TrimSpace(text))
	if matches == nil {
		return 0, &MalformedTimestampError{Text: text}
	}
	return millisFromParts(matches[1], matches[2], matches[3], matches[4])
}

func parseVTTTime(text string) (int64, error) {
	matches := vttTimeRegex.FindStringSubmatch(strings.TrimSpace(text))
	if matches == nil {
		return 0, &MalformedTimestampError{Text: text}
	}
	hours := matches[1]
	if hours == "" {
		hours = "0"
	}
	millis := matches[4]
	if millis == "" {
		millis = "0"
	}
	// a short fraction like ".5" means 500ms
	for len(millis) < 3 {
		millis += "0"
	}
	return millisFromParts(hours, matches[2], matches[3], millis)
}

func parseASSTime(text string) (int64, error) {
	matches := assTimeRegex.FindStringSubmatch(strings.TrimSpace(text))
	if matches == nil {
		return 0, &MalformedTimestampError{Text: text}
	}
	centis, err := strconv.Atoi(matches[4])
	if err != nil {
		return 0, &MalformedTimestampError{Text: text}
	}
	ms, err := millisFromParts(matches[1], matches[2], matches[3], "0")
	if err != nil {
		return 0, err
	}
	return ms + int64(centis)*10, nil
}

func parseTSVTime(text string) (int64, error) {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || seconds < 0 {
		return 0, &MalformedTimestampError{Text: text}
	}
	return int64(seconds*1000 + 0.5), nil
}

func millisFromParts(hours, minutes, seconds, millis string) (int64, error) {
	h, err1 := strconv.Atoi(hours)
	m, err2 := strconv.Atoi(minutes)
	s, err3 := strconv.Atoi(seconds)
	ms, err4 := strconv.Atoi(millis)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return 0, &MalformedTimestampError{
			Text: fmt.Sprintf("%s:%s:%s.%s", hours, minutes, seconds, millis),
		}
	}
	return int64(h)*3600000 + int64(m)*60000 + int64(s)*1000 + int64(ms), nil
}

func formatSRTTime(ms int64) string {
	h, m, s, frac := clockParts(ms)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, frac)
}

func formatVTTTime(ms int64) string {
	h, m, s, frac := clockParts(ms)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, frac)
}

func formatASSTime(ms int64) string {
	h, m, s, frac := clockParts(ms)
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, frac/10)
}

func formatTSVTime(ms int64) string {
	return strconv.FormatFloat(float64(ms)/1000, 'f', 3, 64)
}

func clockParts(ms int64) (int64, int64, int64, int64) {
	if ms < 0 {
		ms = 0
	}
	return ms / 3600000, ms / 60000 % 60, ms / 1000 % 60, ms % 1000
}
