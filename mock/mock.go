// Package mock provides test doubles for the patchfix interfaces. Each
// mock delegates to an Fn field the test sets.
package mock

import (
	"context"
	"io"

	patchfix "github.com/fourlexboehm/patchfix"
)

// Compile-time interface verification.
var (
	_ patchfix.Parser    = (*Parser)(nil)
	_ patchfix.Fixer     = (*Fixer)(nil)
	_ patchfix.Resolver  = (*Resolver)(nil)
	_ patchfix.Tokenizer = (*Tokenizer)(nil)
	_ patchfix.Validator = (*Validator)(nil)
	_ patchfix.Viewer    = (*Viewer)(nil)
)

// Parser is a mock implementation of patchfix.Parser.
type Parser struct {
	ParseFn func(r io.Reader) (*patchfix.Patch, error)
}

func (m *Parser) Parse(r io.Reader) (*patchfix.Patch, error) {
	return m.ParseFn(r)
}

// Fixer is a mock implementation of patchfix.Fixer.
type Fixer struct {
	FixFn func(original, patch string) (*patchfix.Result, error)
}

func (m *Fixer) Fix(original, patch string) (*patchfix.Result, error) {
	return m.FixFn(original, patch)
}

// Resolver is a mock implementation of patchfix.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, req patchfix.ResolveRequest) (string, error)
}

func (m *Resolver) Resolve(ctx context.Context, req patchfix.ResolveRequest) (string, error) {
	return m.ResolveFn(ctx, req)
}

// Tokenizer is a mock implementation of patchfix.Tokenizer.
type Tokenizer struct {
	TokenizeFn func(language, source string) []patchfix.Token
}

func (m *Tokenizer) Tokenize(language, source string) []patchfix.Token {
	return m.TokenizeFn(language, source)
}

// Validator is a mock implementation of patchfix.Validator.
type Validator struct {
	ValidateFn func(patch string) error
}

func (m *Validator) Validate(patch string) error {
	return m.ValidateFn(patch)
}

// Viewer is a mock implementation of patchfix.Viewer.
type Viewer struct {
	ViewFn func(ctx context.Context, p *patchfix.Preview) error
}

func (m *Viewer) View(ctx context.Context, p *patchfix.Preview) error {
	return m.ViewFn(ctx, p)
}
