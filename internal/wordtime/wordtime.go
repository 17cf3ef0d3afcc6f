package wordtime

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Word is one externally timed token with its recognition confidence.
type Word struct {
	Text       string
	Start      int64 // milliseconds
	Stop       int64 // milliseconds
	Confidence float64
}

// Load reads word timings from path. A directory implies a per-document
// lookup: a file named after the document's base name, in any supported
// extension.
func Load(path, docPath string) ([]Word, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("word-timing source not found: %s", path)
	}
	if info.IsDir() {
		return loadDir(path, docPath)
	}
	return LoadFile(path)
}

func loadDir(dir, docPath string) ([]Word, error) {
	base := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	for _, ext := range []string{".json", ".srv2", ".tsv", ".txt"} {
		candidate := filepath.Join(dir, base+ext)
		if _, err := os.Stat(candidate); err == nil {
			return LoadFile(candidate)
		}
	}
	return nil, fmt.Errorf("no word-timing file for %q in %s", base, dir)
}

// LoadFile reads a single word-timing file, JSON or tab-separated.
func LoadFile(path string) ([]Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word timings: %w", err)
	}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return parseJSON(data)
	}
	return parseTSV(string(data))
}

// parseJSON accepts a bare array of token objects, a {"words": [...]}
// envelope, or a token-to-timing object map.
func parseJSON(data []byte) ([]Word, error) {
	root := gjson.ParseBytes(data)

	arr := root
	if root.IsObject() {
		if w := root.Get("words"); w.Exists() {
			arr = w
		}
	}

	var words []Word
	if arr.IsArray() {
		arr.ForEach(func(_, v gjson.Result) bool {
			text := v.Get("word").String()
			if text == "" {
				text = v.Get("text").String()
			}
			if w, ok := wordFromJSON(text, v); ok {
				words = append(words, w)
			}
			return true
		})
	} else if root.IsObject() {
		root.ForEach(func(k, v gjson.Result) bool {
			if v.IsObject() {
				if w, ok := wordFromJSON(k.String(), v); ok {
					words = append(words, w)
				}
			}
			return true
		})
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("no word timings found in JSON input")
	}
	return words, nil
}

func wordFromJSON(text string, v gjson.Result) (Word, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Word{}, false
	}
	w := Word{Text: text, Confidence: 1}
	if c := v.Get("confidence"); c.Exists() {
		w.Confidence = c.Float()
	}
	if ms := v.Get("start_ms"); ms.Exists() {
		w.Start = ms.Int()
		w.Stop = v.Get("stop_ms").Int()
		return w, true
	}
	// seconds-based sources use start/end floats
	w.Start = int64(v.Get("start").Float()*1000 + 0.5)
	stop := v.Get("end")
	if !stop.Exists() {
		stop = v.Get("stop")
	}
	w.Stop = int64(stop.Float()*1000 + 0.5)
	return w, true
}

// parseTSV reads the SRV2-class tab-separated form:
// start<TAB>stop<TAB>word[<TAB>confidence], one token per line.
func parseTSV(text string) ([]Word, error) {
	var words []Word
	for n, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, fmt.Errorf(
				"line %d: want start, stop and word separated by tabs",
				n+1,
			)
		}
		start, err := parseClock(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		stop, err := parseClock(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		w := Word{
			Text:       strings.TrimSpace(fields[2]),
			Start:      start,
			Stop:       stop,
			Confidence: 1,
		}
		if len(fields) > 3 {
			if c, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64); err == nil {
				w.Confidence = c
			}
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no word timings found in tab-separated input")
	}
	return words, nil
}

// parseClock reads integer milliseconds, or decimal seconds when the value
// carries a fraction.
func parseClock(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ".") {
		sec, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("bad time value %q", s)
		}
		return int64(sec*1000 + 0.5), nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad time value %q", s)
	}
	return ms, nil
}
