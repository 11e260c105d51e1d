package unified

import (
	"fmt"
	"strings"

	patchfix "github.com/fourlexboehm/patchfix"
)

// renderPatch serializes corrected hunks back into unified-diff text,
// preceded by the preserved preamble lines. Starts render 1-based.
func renderPatch(preamble []string, hunks []*patchfix.Hunk) (string, error) {
	var b strings.Builder
	for _, line := range preamble {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, h := range hunks {
		if err := renderHunk(&b, h); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func renderHunk(b *strings.Builder, h *patchfix.Hunk) error {
	src, dst := h.Header.FixedSource, h.Header.FixedDest
	if src == nil || dst == nil {
		return patchfix.ErrNotFixed
	}
	fmt.Fprintf(b, "@@ -%d,%d +%d,%d @@%s\n",
		src.Start+1, src.Range, dst.Start+1, dst.Range, h.Section())
	for _, l := range h.Lines {
		b.WriteString(l.Render())
		b.WriteByte('\n')
	}
	return nil
}
