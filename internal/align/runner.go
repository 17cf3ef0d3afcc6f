package align

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/subtide/subtide/internal/logging"
	"github.com/subtide/subtide/internal/subtitle"
)

// Request describes one forced-alignment invocation.
type Request struct {
	AudioPath     string
	HeadOffsetSec float64 // start of the aligned window within the audio
	ProcessLenSec float64 // length of the aligned window
	Language      string
	OutputFormat  subtitle.Format
	ExtraOptions  string // pipe-delimited key=value pairs appended verbatim
}

// Span is one timed unit returned by the aligner, positionally matched to
// the input text units.
type Span struct {
	Start int64
	Stop  int64
}

// Aligner maps blank-line-separated text units onto audio-derived spans.
type Aligner interface {
	Align(ctx context.Context, req Request, text string) ([]Span, error)
}

// the external tool exited non-zero or produced no output artifact
type ExternalToolFailureError struct {
	Tool   string
	Output string
	Err    error
}

func (e *ExternalToolFailureError) Error() string {
	msg := fmt.Sprintf("alignment tool %s failed", e.Tool)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Output != "" {
		msg += "\n" + e.Output
	}
	return msg
}

func (e *ExternalToolFailureError) Unwrap() error {
	return e.Err
}

// Runner invokes an aeneas-class forced-alignment tool through file
// exchange: the text units go in as a transient input artifact, the timed
// result comes back as a subtitle file in the requested format.
type Runner struct {
	command []string
	log     *logging.Logger
}

// NewRunner takes the command template, e.g.
// ["python3", "-m", "aeneas.tools.execute_task"].
func NewRunner(command []string, log *logging.Logger) *Runner {
	return &Runner{command: command, log: log}
}

func (r *Runner) Align(
	ctx context.Context,
	req Request,
	text string,
) ([]Span, error) {
	if len(r.command) == 0 {
		return nil, fmt.Errorf("no alignment command configured")
	}
	if _, err := os.Stat(req.AudioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", req.AudioPath)
	}

	// fresh names per invocation so overlapping sessions on the same
	// machine never collide; both artifacts are removed on every exit path
	id := uuid.NewString()
	inputPath := filepath.Join(os.TempDir(), "subtide-align-"+id+".txt")
	outputPath := filepath.Join(
		os.TempDir(),
		"subtide-align-"+id+subtitle.ExtensionForFormat(req.OutputFormat),
	)
	if err := os.WriteFile(inputPath, []byte(text), 0600); err != nil {
		return nil, fmt.Errorf("failed to write alignment input: %w", err)
	}
	defer func() {
		_ = os.Remove(inputPath)
		_ = os.Remove(outputPath)
	}()

	args := append([]string{}, r.command[1:]...)
	args = append(args, req.AudioPath, inputPath, OptionString(req), outputPath)

	r.log.Debugw("invoking alignment tool",
		"command", r.command[0],
		"args", args,
	)

	cmd := exec.CommandContext(ctx, r.command[0], args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, &ExternalToolFailureError{
			Tool:   r.command[0],
			Output: strings.TrimSpace(string(out)),
			Err:    err,
		}
	}

	result, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, &ExternalToolFailureError{
			Tool:   r.command[0],
			Output: "missing output artifact " + outputPath,
			Err:    err,
		}
	}

	adapter, err := subtitle.AdapterFor(req.OutputFormat)
	if err != nil {
		return nil, err
	}
	doc, err := adapter.Parse(string(result))
	if err != nil {
		return nil, fmt.Errorf("failed to parse alignment output: %w", err)
	}

	spans := make([]Span, doc.Len())
	for i, seg := range doc.Segments() {
		spans[i] = Span{Start: seg.Start, Stop: seg.Stop}
	}
	return spans, nil
}

// OptionString builds the pipe-delimited task configuration handed to the
// tool as its third positional argument.
func OptionString(req Request) string {
	lang := req.Language
	if lang == "" {
		lang = "eng"
	}
	opts := []string{
		"task_language=" + lang,
		"os_task_file_format=" + string(req.OutputFormat),
		"is_text_type=subtitles",
		fmt.Sprintf("is_audio_file_head_length=%.3f", req.HeadOffsetSec),
		fmt.Sprintf("is_audio_file_process_length=%.3f", req.ProcessLenSec),
	}
	if req.ExtraOptions != "" {
		opts = append(opts, req.ExtraOptions)
	}
	return strings.Join(opts, "|")
}
