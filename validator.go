package patchfix

// Validator checks that corrected patch text is well formed enough for
// standard diff tooling to consume.
type Validator interface {
	// Validate returns a non-nil error when the patch text does not
	// parse as a unified diff.
	Validate(patch string) error
}
