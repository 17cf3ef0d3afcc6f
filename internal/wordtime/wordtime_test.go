package wordtime

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadJSONArray(t *testing.T) {
	content := `[
		{"word": "hello", "start_ms": 100, "stop_ms": 400, "confidence": 0.95},
		{"word": "world", "start_ms": 450, "stop_ms": 800}
	]`
	path := writeFile(t, t.TempDir(), "words.json", content)

	words, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if words[0].Text != "hello" || words[0].Start != 100 || words[0].Stop != 400 {
		t.Errorf("word 0 = %+v", words[0])
	}
	if words[0].Confidence != 0.95 {
		t.Errorf("word 0 confidence = %v, want 0.95", words[0].Confidence)
	}
	// confidence defaults to 1 when absent
	if words[1].Confidence != 1 {
		t.Errorf("word 1 confidence = %v, want 1", words[1].Confidence)
	}
}

func TestLoadJSONEnvelope(t *testing.T) {
	content := `{"language": "en", "words": [
		{"text": "hello", "start": 0.1, "end": 0.4},
		{"text": "world", "start": 0.45, "end": 0.8}
	]}`
	path := writeFile(t, t.TempDir(), "words.json", content)

	words, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	// seconds-based sources convert to milliseconds
	if words[0].Start != 100 || words[0].Stop != 400 {
		t.Errorf("word 0 = %d-%d, want 100-400", words[0].Start, words[0].Stop)
	}
}

func TestLoadJSONTokenMap(t *testing.T) {
	content := `{
		"hello": {"start_ms": 100, "stop_ms": 400},
		"world": {"start_ms": 450, "stop_ms": 800}
	}`
	path := writeFile(t, t.TempDir(), "words.json", content)

	words, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	for _, w := range words {
		if w.Text != "hello" && w.Text != "world" {
			t.Errorf("unexpected token %q", w.Text)
		}
	}
}

func TestLoadJSONEmpty(t *testing.T) {
	path := writeFile(t, t.TempDir(), "words.json", `{"language": "en"}`)
	if _, err := LoadFile(path); err == nil {
		t.Error("empty timing JSON should fail")
	}
}

func TestLoadTSV(t *testing.T) {
	content := "100\t400\thello\t0.9\n450\t800\tworld\n"
	path := writeFile(t, t.TempDir(), "words.tsv", content)

	words, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if words[0].Start != 100 || words[0].Stop != 400 || words[0].Confidence != 0.9 {
		t.Errorf("word 0 = %+v", words[0])
	}
	if words[1].Confidence != 1 {
		t.Errorf("word 1 confidence = %v, want 1", words[1].Confidence)
	}
}

func TestLoadTSVDecimalSeconds(t *testing.T) {
	content := "0.100\t0.400\thello\n"
	path := writeFile(t, t.TempDir(), "words.tsv", content)

	words, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if words[0].Start != 100 || words[0].Stop != 400 {
		t.Errorf("word 0 = %d-%d, want 100-400", words[0].Start, words[0].Stop)
	}
}

func TestLoadDirLookup(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "episode.json", `[{"word": "hi", "start_ms": 0, "stop_ms": 200}]`)

	words, err := Load(dir, "/somewhere/episode.srt")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(words) != 1 || words[0].Text != "hi" {
		t.Errorf("words = %+v", words)
	}

	if _, err := Load(dir, "/somewhere/missing.srt"); err == nil {
		t.Error("lookup of a missing base name should fail")
	}
}
