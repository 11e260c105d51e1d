package patchfix

// Fixer locates a patch's hunks in the original text by content, corrects
// their headers, and applies the corrected patch.
type Fixer interface {
	// Fix returns the outcome of correcting and applying patch against
	// original. The error is non-nil only for malformed patch input;
	// unresolved hunks and apply mismatches are reported in the Result.
	Fix(original, patch string) (*Result, error)
}
