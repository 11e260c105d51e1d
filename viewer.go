package patchfix

import "context"

// Preview is what a Viewer displays: the outcome of fixing one file's
// patch, alongside the inputs it was derived from.
type Preview struct {
	Path      string // target file path, for display
	Original  string // original file content
	RawPatch  string // patch as supplied
	Corrected string // corrected patch text ("" when nothing resolved)
	Result    *Result
}

// Viewer displays a fix preview to the user.
type Viewer interface {
	// View displays the preview and blocks until the user exits.
	View(ctx context.Context, p *Preview) error
}
