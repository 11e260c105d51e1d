// Package genai asks a Gemini model to rewrite hunks that could not be
// located in the original text by content search.
package genai

import (
	"context"
	"fmt"
	"strings"

	patchfix "github.com/fourlexboehm/patchfix"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Compile-time interface verification.
var _ patchfix.Resolver = (*Resolver)(nil)

// Resolver rewrites unresolved hunks by prompting a Gemini model with the
// original file content.
type Resolver struct {
	client *genai.Client
	model  string
}

// NewResolver creates a Resolver. An empty model selects DefaultModel.
func NewResolver(ctx context.Context, apiKey, model string) (*Resolver, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Resolver{client: client, model: model}, nil
}

// Resolve asks the model for a rewritten unified diff covering the hunks
// that failed to match.
func (r *Resolver) Resolve(ctx context.Context, req patchfix.ResolveRequest) (string, error) {
	resp, err := r.client.Models.GenerateContent(ctx, r.model,
		genai.Text(buildPrompt(req)), nil)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	text := stripFences(resp.Text())
	if text == "" {
		return "", fmt.Errorf("model returned no diff")
	}
	return text, nil
}

func buildPrompt(req patchfix.ResolveRequest) string {
	var b strings.Builder
	b.WriteString("The following unified-diff hunks could not be located in the file they target. ")
	b.WriteString("Rewrite them so their context lines match the file exactly. ")
	b.WriteString("Respond with only the rewritten unified diff, no prose.\n\n")

	b.WriteString("File content:\n```\n")
	b.WriteString(req.Original)
	if !strings.HasSuffix(req.Original, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString("```\n\n")

	b.WriteString("Hunks that failed to match:\n```diff\n")
	for _, h := range req.Unresolved {
		b.WriteString(h)
		if !strings.HasSuffix(h, "\n") {
			b.WriteByte('\n')
		}
	}
	b.WriteString("```\n")
	return b.String()
}

// stripFences removes a surrounding markdown code fence, which models add
// despite instructions not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
