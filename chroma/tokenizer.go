// Package chroma provides syntax highlighting for patch previews using
// the chroma library.
package chroma

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	patchfix "github.com/fourlexboehm/patchfix"
)

// Compile-time interface verification.
var _ patchfix.Tokenizer = (*Tokenizer)(nil)

// Tokenizer extracts syntax tokens using chroma.
type Tokenizer struct{}

// NewTokenizer creates a new chroma-based tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// DetectLanguage returns the chroma language name for a file path, or ""
// when no lexer matches. Used to pick a language for the file a patch
// targets.
func (t *Tokenizer) DetectLanguage(path string) string {
	lexer := lexers.Match(path)
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}

// Tokenize splits source code into styled tokens for the given language.
// Returns nil if the language is not supported, so callers fall back to
// unstyled text. Returns an empty slice for empty source.
func (t *Tokenizer) Tokenize(language, source string) []patchfix.Token {
	if source == "" {
		return []patchfix.Token{}
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil
	}

	var tokens []patchfix.Token
	for token := iterator(); token != chroma.EOF; token = iterator() {
		tokens = append(tokens, patchfix.Token{
			Text:  token.Value,
			Style: tokenStyle(token.Type),
		})
	}
	return tokens
}

// tokenStyle maps a chroma token type to a preview style. Previews only
// need coarse classes; sub-types inherit from their category.
func tokenStyle(tt chroma.TokenType) patchfix.Style {
	switch {
	case tt == chroma.NameFunction || tt == chroma.NameFunctionMagic:
		return patchfix.Style{Foreground: "#61afef"}
	case tt == chroma.NameBuiltin || tt == chroma.NameBuiltinPseudo:
		return patchfix.Style{Foreground: "#e5c07b"}
	case tt.InCategory(chroma.Keyword):
		return patchfix.Style{Foreground: "#c678dd", Bold: true}
	case tt.InCategory(chroma.Comment):
		return patchfix.Style{Foreground: "#5c6370"}
	case tt.InSubCategory(chroma.LiteralString):
		return patchfix.Style{Foreground: "#98c379"}
	case tt.InSubCategory(chroma.LiteralNumber):
		return patchfix.Style{Foreground: "#d19a66"}
	case tt.InCategory(chroma.Operator):
		return patchfix.Style{Foreground: "#56b6c2"}
	default:
		return patchfix.Style{}
	}
}
