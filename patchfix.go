// Package patchfix provides domain types for locating and applying
// unified-diff hunks whose declared line numbers may be wrong.
//
// Diffs authored by language models routinely miscount lines, drop blank
// context lines, or drift on whitespace. The types here describe a patch in
// terms of its content rather than its headers: a Hunk carries both the
// declared ranges and, after a successful content search, the corrected
// ("fixed") ranges that make the patch apply cleanly.
package patchfix

import "strings"

// LineKind classifies a line within a hunk body.
type LineKind int

// Hunk line kinds.
const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

// HunkLine is a single line of a hunk body.
type HunkLine struct {
	Kind LineKind
	Text string
}

// Matchable reports whether the line must be found verbatim in the
// original text. Context and Removed lines are matchable; Added lines are
// pure insertions.
func (l HunkLine) Matchable() bool {
	return l.Kind != LineAdded
}

// Render returns the line with its one-character unified-diff prefix.
func (l HunkLine) Render() string {
	switch l.Kind {
	case LineAdded:
		return "+" + l.Text
	case LineRemoved:
		return "-" + l.Text
	default:
		return " " + l.Text
	}
}

// HeaderRange is one side of a hunk header: a start line and a visible
// line count. Start is 0-based internally and rendered 1-based.
type HeaderRange struct {
	Start int
	Range int
}

// HunkHeader holds the declared ranges of a hunk and, once the hunk has
// been located by content, the corrected ones. Nil Fixed fields mean the
// hunk is unresolved.
type HunkHeader struct {
	Source HeaderRange
	Dest   HeaderRange

	FixedSource *HeaderRange
	FixedDest   *HeaderRange
}

// Hunk is one contiguous block of a unified diff. A Hunk is immutable
// after parsing; the recovery heuristics produce modified copies via
// WithContextAt and TruncatedAt rather than mutating a shared value.
type Hunk struct {
	Header HunkHeader

	// Lines is the parsed hunk body, in order.
	Lines []HunkLine

	// RawBody is the original hunk text including the header line. It is
	// carried through clones unchanged and identifies the hunk in
	// duplicate filtering and unresolved reporting.
	RawBody string
}

// Clone returns a deep copy of the hunk.
func (h *Hunk) Clone() *Hunk {
	c := *h
	c.Lines = make([]HunkLine, len(h.Lines))
	copy(c.Lines, h.Lines)
	if h.Header.FixedSource != nil {
		fs := *h.Header.FixedSource
		c.Header.FixedSource = &fs
	}
	if h.Header.FixedDest != nil {
		fd := *h.Header.FixedDest
		c.Header.FixedDest = &fd
	}
	return &c
}

// MatchableCount returns the number of Context and Removed lines.
func (h *Hunk) MatchableCount() int {
	n := 0
	for _, l := range h.Lines {
		if l.Matchable() {
			n++
		}
	}
	return n
}

// MatchableAt returns the i-th matchable line (0-based), if any.
func (h *Hunk) MatchableAt(i int) (HunkLine, bool) {
	for _, l := range h.Lines {
		if !l.Matchable() {
			continue
		}
		if i == 0 {
			return l, true
		}
		i--
	}
	return HunkLine{}, false
}

// realIndex converts an index into the matchable-lines view to an index
// into Lines. Returns len(Lines) when i is past the last matchable line.
func (h *Hunk) realIndex(i int) int {
	for j, l := range h.Lines {
		if !l.Matchable() {
			continue
		}
		if i == 0 {
			return j
		}
		i--
	}
	return len(h.Lines)
}

// TailIsContext reports whether every line of the body from the i-th
// matchable line onward is a Context line. Removed lines there mean a
// deletion is still pending; Added lines there would be lost by
// truncation. Either blocks the trailing-context recovery.
func (h *Hunk) TailIsContext(i int) bool {
	for _, l := range h.Lines[h.realIndex(i):] {
		if l.Kind != LineContext {
			return false
		}
	}
	return true
}

// WithContextAt returns a copy of the hunk with a Context line inserted
// before the i-th matchable line. Used to tolerate a diff that omitted a
// blank context line: text carries the actual (whitespace-only) file line
// so that exact application still verifies.
func (h *Hunk) WithContextAt(text string, i int) *Hunk {
	c := h.Clone()
	at := c.realIndex(i)
	c.Lines = append(c.Lines[:at], append([]HunkLine{{Kind: LineContext, Text: text}}, c.Lines[at:]...)...)
	return c
}

// TruncatedAt returns a copy of the hunk with the i-th matchable line and
// everything after it dropped.
func (h *Hunk) TruncatedAt(i int) *Hunk {
	c := h.Clone()
	c.Lines = c.Lines[:c.realIndex(i)]
	return c
}

// SourceLineCount returns the number of lines visible on the original
// side (Removed + Context).
func (h *Hunk) SourceLineCount() int {
	n := 0
	for _, l := range h.Lines {
		if l.Kind != LineAdded {
			n++
		}
	}
	return n
}

// DestLineCount returns the number of lines visible on the new side
// (Added + Context).
func (h *Hunk) DestLineCount() int {
	n := 0
	for _, l := range h.Lines {
		if l.Kind != LineRemoved {
			n++
		}
	}
	return n
}

// Offset returns the visible-line delta this hunk contributes to the
// start positions of the hunks that follow it.
func (h *Hunk) Offset() int {
	added, removed := 0, 0
	for _, l := range h.Lines {
		switch l.Kind {
		case LineAdded:
			added++
		case LineRemoved:
			removed++
		}
	}
	return added - removed
}

// Section returns any text following the closing "@@" of the original
// header line, commonly the name of the containing function. It is copied
// verbatim into the corrected header.
func (h *Hunk) Section() string {
	first, _, _ := strings.Cut(h.RawBody, "\n")
	if i := strings.LastIndex(first, "@@"); i >= 0 {
		return first[i+2:]
	}
	return ""
}

// Patch is an ordered sequence of hunks plus the optional two-line file
// header preamble ("--- a/...", "+++ b/..."), carried through verbatim.
type Patch struct {
	Preamble []string
	Hunks    []*Hunk
}
