package wordtime

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/subtide/subtide/internal/subtitle"
)

// lookahead bound keeps a token the recognizer never emitted from dragging
// the cursor across the rest of the transcript
const matchLookahead = 20

// Apply adjusts the boundaries of segments first..last (inclusive) to the
// timing of the first and last word matched within each segment's text.
// Matching is fuzzy and sequential, not exact string equality. The apply is
// all-or-nothing: boundaries are computed for the whole region before any
// segment is touched.
func Apply(doc *subtitle.Document, words []Word, first, last int) error {
	if doc.Len() == 0 {
		return &subtitle.ReconciliationMismatchError{Want: 0, Got: len(words)}
	}
	if first < 0 || last >= doc.Len() || first > last {
		return &subtitle.ReconciliationMismatchError{
			Want: last - first + 1,
			Got:  len(words),
		}
	}

	type update struct {
		index int
		start int64
		stop  int64
	}
	var updates []update

	cursor := 0
	for i := first; i <= last; i++ {
		tokens := tokenize(doc.Segment(i).Text())
		if len(tokens) == 0 {
			continue
		}

		segStart, segStop := int64(-1), int64(-1)
		next := cursor
		for _, tok := range tokens {
			j := matchFrom(words, next, tok)
			if j < 0 {
				continue
			}
			if segStart < 0 {
				segStart = words[j].Start
			}
			if words[j].Stop > segStop {
				segStop = words[j].Stop
			}
			next = j + 1
		}

		if segStart >= 0 {
			updates = append(updates, update{index: i, start: segStart, stop: segStop})
			cursor = next
		}
	}

	if len(updates) == 0 {
		return &subtitle.ReconciliationMismatchError{
			Want: last - first + 1,
			Got:  0,
		}
	}

	for _, u := range updates {
		if err := doc.SetTimes(u.index, u.start, u.stop); err != nil {
			return err
		}
	}
	doc.Resort()
	return nil
}

func matchFrom(words []Word, from int, token string) int {
	limit := from + matchLookahead
	for j := from; j < len(words) && j < limit; j++ {
		if tokensMatch(words[j].Text, token) {
			return j
		}
	}
	return -1
}

func tokensMatch(a, b string) bool {
	na, nb := normalizeToken(a), normalizeToken(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	// tolerate small recognizer spelling drift on longer words
	if len(na) >= 4 && len(nb) >= 4 {
		return fuzzy.LevenshteinDistance(na, nb) <= 1
	}
	return false
}

func normalizeToken(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func tokenize(text string) []string {
	var out []string
	for _, f := range strings.Fields(text) {
		if normalizeToken(f) != "" {
			out = append(out, f)
		}
	}
	return out
}
