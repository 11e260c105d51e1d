package unified

import (
	"strings"

	patchfix "github.com/fourlexboehm/patchfix"
)

// apply performs a strict, context-verified application of a corrected
// patch against the original text. Hunks are walked in source order:
// original lines before each hunk's source start are copied verbatim,
// Added lines are emitted, and Removed/Context lines must equal the
// original text at the cursor exactly (Context re-emitted, Removed
// consumed). All-or-nothing: any mismatch discards the partial output and
// returns where application failed.
func apply(original string, p *patchfix.Patch) (string, *patchfix.Mismatch) {
	lines := splitLines(original)
	out := make([]string, 0, len(lines))
	cursor := 0

	for _, h := range p.Hunks {
		for cursor < h.Header.Source.Start && cursor < len(lines) {
			out = append(out, lines[cursor])
			cursor++
		}
		for _, hl := range h.Lines {
			if hl.Kind == patchfix.LineAdded {
				out = append(out, hl.Text)
				continue
			}
			if cursor >= len(lines) || lines[cursor] != hl.Text {
				return "", mismatchAt(lines, cursor, hl.Text)
			}
			if hl.Kind == patchfix.LineContext {
				out = append(out, hl.Text)
			}
			cursor++
		}
	}
	out = append(out, lines[cursor:]...)

	text := strings.Join(out, "\n")
	if text != "" && strings.HasSuffix(original, "\n") {
		text += "\n"
	}
	return text, nil
}

func mismatchAt(lines []string, at int, expected string) *patchfix.Mismatch {
	m := &patchfix.Mismatch{Line: at + 1, Expected: expected}
	if at < len(lines) {
		m.Found = lines[at]
	}
	if at > 0 && at-1 < len(lines) {
		m.Before = lines[at-1]
	}
	if at+1 < len(lines) {
		m.After = lines[at+1]
	}
	return m
}
