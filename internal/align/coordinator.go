package align

import (
	"context"
	"fmt"
	"strings"

	"github.com/subtide/subtide/internal/logging"
	"github.com/subtide/subtide/internal/subtitle"
)

// Coordinator drives a forced-alignment run and reconciles the result back
// into the document. Reconciliation is all-or-nothing: the document is only
// touched once the result has been validated against the request.
type Coordinator struct {
	aligner Aligner
	log     *logging.Logger
}

func NewCoordinator(aligner Aligner, log *logging.Logger) *Coordinator {
	return &Coordinator{aligner: aligner, log: log}
}

// Options carries the caller-facing alignment configuration.
type Options struct {
	Language     string
	ExtraOptions string
}

// AlignAll retimes the whole document against the audio file.
func (c *Coordinator) AlignAll(
	ctx context.Context,
	doc *subtitle.Document,
	audioPath string,
	opts Options,
) error {
	return c.AlignRegion(ctx, doc, 0, doc.Len()-1, audioPath, opts)
}

// AlignRegion retimes segments first..last (inclusive) against the audio
// file. The returned spans are applied positionally, in original sequence
// order; a count mismatch fails without mutating the document. Comments
// stay attached to their segments through the retiming.
func (c *Coordinator) AlignRegion(
	ctx context.Context,
	doc *subtitle.Document,
	first, last int,
	audioPath string,
	opts Options,
) error {
	if doc.Len() == 0 {
		return fmt.Errorf("nothing to align: document is empty")
	}
	if first < 0 || last >= doc.Len() || first > last {
		return fmt.Errorf(
			"alignment range %d-%d outside document of %d segments",
			first, last, doc.Len(),
		)
	}

	segs := doc.Segments()[first : last+1]

	// blank-line separators preserve unit boundaries for the tool
	texts := make([]string, len(segs))
	for i, seg := range segs {
		texts[i] = seg.Text()
	}
	text := strings.Join(texts, "\n\n")

	head := float64(segs[0].Start) / 1000
	length := float64(segs[len(segs)-1].Stop)/1000 - head

	req := Request{
		AudioPath:     audioPath,
		HeadOffsetSec: head,
		ProcessLenSec: length,
		Language:      opts.Language,
		OutputFormat:  subtitle.FormatSRT,
		ExtraOptions:  opts.ExtraOptions,
	}

	c.log.Infow("aligning segments",
		"first", first,
		"last", last,
		"head_s", head,
		"length_s", length,
	)

	spans, err := c.aligner.Align(ctx, req, text)
	if err != nil {
		return err
	}

	// the tool is assumed to preserve unit count and order; anything else
	// is a fatal mismatch, never silently truncated or padded
	if len(spans) != len(segs) {
		return &subtitle.ReconciliationMismatchError{
			Want: len(segs),
			Got:  len(spans),
		}
	}

	for k, span := range spans {
		if err := doc.SetTimes(first+k, span.Start, span.Stop); err != nil {
			return err
		}
	}
	doc.Resort()
	return nil
}
