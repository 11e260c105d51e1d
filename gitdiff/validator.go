// Package gitdiff validates corrected patch text using the go-gitdiff
// library, guaranteeing that standard diff tooling can consume what the
// renderer produced.
package gitdiff

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	patchfix "github.com/fourlexboehm/patchfix"
)

// Compile-time interface verification.
var _ patchfix.Validator = (*Validator)(nil)

// Validator parses patch text with go-gitdiff and reports parse failures.
type Validator struct{}

// NewValidator creates a go-gitdiff-backed validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns an error when patch does not parse as a unified diff.
// Patch text without file headers is wrapped in a synthetic header first;
// go-gitdiff only recognizes fragments within a file.
func (v *Validator) Validate(patch string) error {
	if strings.TrimSpace(patch) == "" {
		return nil
	}
	if !strings.HasPrefix(patch, "---") && !strings.HasPrefix(patch, "diff --git") {
		patch = "--- a/file\n+++ b/file\n" + patch
	}
	files, _, err := gitdiff.Parse(strings.NewReader(patch))
	if err != nil {
		return fmt.Errorf("invalid patch: %w", err)
	}
	for _, f := range files {
		if len(f.TextFragments) == 0 && !f.IsBinary && !f.IsDelete && !f.IsNew && !f.IsRename {
			return fmt.Errorf("invalid patch: file %s has no hunks", f.NewName)
		}
	}
	return nil
}
