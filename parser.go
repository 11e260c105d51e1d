package patchfix

import "io"

// Parser parses unified-diff content into domain types.
type Parser interface {
	// Parse reads patch content and returns the parsed result. Empty
	// input is not an error; it yields a patch with no hunks.
	Parse(r io.Reader) (*Patch, error)
}
