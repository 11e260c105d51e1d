package patchfix

// Result is the outcome of one fix-and-apply call.
//
// Text is populated when the corrected patch applied cleanly to the
// original (possibly with some hunks left unresolved). Patch is the
// corrected unified-diff text covering the resolved hunks; it is empty
// when nothing resolved. Unresolved carries the raw bodies of hunks whose
// matchable lines were not found anywhere in the original. Mismatch is
// non-nil when strict application of the corrected patch failed, in which
// case Text is empty and the original is untouched.
type Result struct {
	Text       string
	Patch      string
	Unresolved []string
	Mismatch   *Mismatch
}

// Applied reports whether every hunk resolved and the corrected patch
// applied cleanly.
func (r *Result) Applied() bool {
	return r.Mismatch == nil && len(r.Unresolved) == 0
}

// Mismatch describes the point at which strict application failed: a
// declared removal or context line did not match the original text at the
// corrected position.
type Mismatch struct {
	// Line is the 1-based line number in the original text.
	Line int

	// Expected is the hunk line that should have been found.
	Expected string

	// Found is the original text at that position ("" past end of file).
	Found string

	// Before and After are one line of surrounding original text on each
	// side, for diagnostics.
	Before string
	After  string
}
