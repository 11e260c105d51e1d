package patchfix

// Token is a run of source text with a visual style.
type Token struct {
	Text  string
	Style Style
}

// Style describes how a token should be rendered.
type Style struct {
	Foreground string // hex color, e.g. "#c678dd"; "" for default
	Bold       bool
}

// Tokenizer splits source code into syntax-highlighted tokens.
type Tokenizer interface {
	// Tokenize returns tokens for source in the given language. A nil
	// result means the language is unsupported and the caller should
	// render the text unstyled.
	Tokenize(language, source string) []Token
}
