package patchfix

import (
	"errors"
	"fmt"
)

// ErrNotFixed reports a hunk that reached rendering without corrected
// headers. It indicates a bug in the pipeline, not bad input.
var ErrNotFixed = errors.New("patchfix: hunk has no corrected header")

// ParseError reports malformed patch input. Line is the offending line of
// the patch text.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("patchfix: %s: %q", e.Reason, e.Line)
}
