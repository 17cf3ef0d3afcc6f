package align

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/subtide/subtide/internal/logging"
	"github.com/subtide/subtide/internal/subtitle"
)

func writeAudioStub(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0644); err != nil {
		t.Fatalf("failed to write audio stub: %v", err)
	}
	return path
}

func TestRunnerAlign(t *testing.T) {
	// stands in for the alignment tool: checks its input artifact exists
	// and writes a fixed SRT result to the output artifact
	script := `test -f "$2" || exit 1
cat > "$4" <<'EOF'
1
00:00:00,500 --> 00:00:01,500
one

2
00:00:01,500 --> 00:00:03,000
two
EOF`
	r := NewRunner([]string{"sh", "-c", script, "aligner"}, logging.NewNop())

	req := Request{
		AudioPath:    writeAudioStub(t),
		OutputFormat: subtitle.FormatSRT,
	}
	spans, err := r.Align(context.Background(), req, "one\n\ntwo")
	if err != nil {
		t.Fatalf("Align failed: %v", err)
	}
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Start != 500 || spans[0].Stop != 1500 {
		t.Errorf("span 0 = %d-%d, want 500-1500", spans[0].Start, spans[0].Stop)
	}
	if spans[1].Start != 1500 || spans[1].Stop != 3000 {
		t.Errorf("span 1 = %d-%d, want 1500-3000", spans[1].Start, spans[1].Stop)
	}
}

func TestRunnerToolFailure(t *testing.T) {
	r := NewRunner([]string{"sh", "-c", "echo boom >&2; exit 3"}, logging.NewNop())

	req := Request{
		AudioPath:    writeAudioStub(t),
		OutputFormat: subtitle.FormatSRT,
	}
	_, err := r.Align(context.Background(), req, "one")
	var tf *ExternalToolFailureError
	if !errors.As(err, &tf) {
		t.Fatalf("want ExternalToolFailureError, got %v", err)
	}
	if tf.Output != "boom" {
		t.Errorf("captured output = %q, want boom", tf.Output)
	}
}

func TestRunnerMissingArtifact(t *testing.T) {
	// exits cleanly but never writes the output artifact
	r := NewRunner([]string{"sh", "-c", "true"}, logging.NewNop())

	req := Request{
		AudioPath:    writeAudioStub(t),
		OutputFormat: subtitle.FormatSRT,
	}
	_, err := r.Align(context.Background(), req, "one")
	var tf *ExternalToolFailureError
	if !errors.As(err, &tf) {
		t.Fatalf("want ExternalToolFailureError, got %v", err)
	}
}

func TestRunnerMissingAudio(t *testing.T) {
	r := NewRunner([]string{"sh", "-c", "true"}, logging.NewNop())

	req := Request{
		AudioPath:    filepath.Join(t.TempDir(), "missing.wav"),
		OutputFormat: subtitle.FormatSRT,
	}
	if _, err := r.Align(context.Background(), req, "one"); err == nil {
		t.Error("missing audio file should fail before the tool runs")
	}
}
