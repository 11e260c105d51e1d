package patchfix

import "context"

// ResolveRequest asks for a rewritten patch when hunks could not be
// located in the original text.
type ResolveRequest struct {
	// Original is the full original file content.
	Original string

	// Patch is the patch as supplied.
	Patch string

	// Unresolved holds the raw bodies of the hunks that failed to match.
	Unresolved []string
}

// Resolver produces a corrected unified diff for hunks the content search
// could not place, typically by asking the model that authored the diff
// to try again with the original text in front of it.
type Resolver interface {
	// Resolve returns rewritten unified-diff text for the request.
	Resolve(ctx context.Context, req ResolveRequest) (string, error)
}
