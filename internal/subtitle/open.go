package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Open reads and parses a subtitle file. The format is detected from the
// content first, falling back to the file extension.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}
	text := string(data)

	f, err := Detect(text)
	if err != nil {
		var ok bool
		if f, ok = FormatFromExtension(path); !ok {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	adapter, err := AdapterFor(f)
	if err != nil {
		return nil, err
	}
	doc, err := adapter.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Save renders the document in the format implied by the target extension
// (falling back to the document's own format) and writes it out.
func Save(doc *Document, path string) error {
	f := doc.Format
	if byExt, ok := FormatFromExtension(path); ok {
		f = byExt
	}
	return SaveAs(doc, path, f)
}

// SaveAs renders the document in an explicit format and writes it out; the
// target extension carries no weight here.
func SaveAs(doc *Document, path string, f Format) error {
	adapter, err := AdapterFor(f)
	if err != nil {
		return err
	}
	text, err := adapter.Render(doc)
	if err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0644)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}

// FormatFromExtension maps a file extension to a format.
func FormatFromExtension(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		return FormatSRT, true
	case ".vtt":
		return FormatVTT, true
	case ".ass", ".ssa":
		return FormatASS, true
	case ".tsv", ".txt":
		return FormatTSV, true
	default:
		return "", false
	}
}

// ExtensionForFormat returns the canonical file extension for a format.
func ExtensionForFormat(f Format) string {
	switch f {
	case FormatVTT:
		return ".vtt"
	case FormatASS:
		return ".ass"
	case FormatTSV:
		return ".tsv"
	default:
		return ".srt"
	}
}
