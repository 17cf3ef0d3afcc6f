package subtitle

import (
	"errors"
	"fmt"
)

// no adapter claimed the input
var ErrUnrecognizedFormat = errors.New("unrecognized subtitle format")

// timestamp text that does not match the format grammar
type MalformedTimestampError struct {
	Text string
	Line int // 1-based line number, 0 when unknown
}

func (e *MalformedTimestampError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed timestamp %q at line %d", e.Text, e.Line)
	}
	return fmt.Sprintf("malformed timestamp %q", e.Text)
}

// edit rejected under the Error boundary policy
type BoundaryViolationError struct {
	Index  int
	Reason string
}

func (e *BoundaryViolationError) Error() string {
	return fmt.Sprintf("segment %d: %s", e.Index, e.Reason)
}

// external timing result does not line up with the targeted segments
type ReconciliationMismatchError struct {
	Want int
	Got  int
}

func (e *ReconciliationMismatchError) Error() string {
	return fmt.Sprintf(
		"alignment returned %d timed units for %d segments",
		e.Got,
		e.Want,
	)
}
