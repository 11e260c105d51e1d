package unified

import (
	"fmt"
	"log/slog"
	"strings"

	patchfix "github.com/fourlexboehm/patchfix"
)

// Compile-time interface verification.
var _ patchfix.Fixer = (*Fixer)(nil)

// Fixer runs the full pipeline: parse, locate each hunk by content,
// rebuild headers, render the corrected patch, and apply it strictly.
//
// The zero value is ready to use. A Fixer holds no state between calls
// and is safe for concurrent use.
type Fixer struct {
	// Logger receives trace output from the candidate search. Nil
	// disables logging.
	Logger *slog.Logger
}

// NewFixer creates a Fixer with logging disabled.
func NewFixer() *Fixer {
	return &Fixer{}
}

// Fix corrects patchText against original and applies the result. The
// returned error is non-nil only for malformed patch input; unresolved
// hunks and apply mismatches are reported in the Result. An empty patch
// is a no-op that returns the original text unchanged.
func (f *Fixer) Fix(original, patchText string) (*patchfix.Result, error) {
	parser := NewParser()
	patch, err := parser.Parse(strings.NewReader(patchText))
	if err != nil {
		return nil, err
	}
	if len(patch.Hunks) == 0 {
		return &patchfix.Result{Text: original}, nil
	}

	cands := newSearcher(f.Logger).run(original, patch.Hunks)

	resolved := make(map[int]bool, len(cands))
	for _, c := range cands {
		resolved[c.hunkIndex] = true
	}
	var unresolved []string
	for i, h := range patch.Hunks {
		if !resolved[i] {
			unresolved = append(unresolved, h.RawBody)
		}
	}
	if len(cands) == 0 {
		return &patchfix.Result{Unresolved: unresolved}, nil
	}

	corrected, err := renderPatch(patch.Preamble, rebuild(cands))
	if err != nil {
		return nil, err
	}

	// Round-trip through the parser so application sees exactly what a
	// caller consuming the corrected patch text would see.
	reparsed, err := parser.Parse(strings.NewReader(corrected))
	if err != nil {
		return nil, fmt.Errorf("reparsing corrected patch: %w", err)
	}

	res := &patchfix.Result{Patch: corrected, Unresolved: unresolved}
	text, mismatch := apply(original, reparsed)
	if mismatch != nil {
		res.Mismatch = mismatch
		return res, nil
	}
	res.Text = text
	return res, nil
}
