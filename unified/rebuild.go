package unified

import (
	"sort"

	patchfix "github.com/fourlexboehm/patchfix"
)

// rebuild converts completed candidates into hunks with corrected headers.
// Duplicates are filtered first so that each surviving hunk contributes to
// the running offset exactly once, then source order is restored and the
// cumulative added-minus-removed delta of preceding hunks is folded into
// each destination start.
func rebuild(cands []*candidate) []*patchfix.Hunk {
	sorted := make([]*candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].start < sorted[j].start
	})
	sorted = dedupe(sorted)

	offset := 0
	hunks := make([]*patchfix.Hunk, 0, len(sorted))
	for _, c := range sorted {
		h := c.hunk.Clone()
		h.Header.FixedSource = &patchfix.HeaderRange{
			Start: c.start,
			Range: h.SourceLineCount(),
		}
		// Overlapping matches can drive the running offset below the
		// start; the destination clamps at the top of the file.
		h.Header.FixedDest = &patchfix.HeaderRange{
			Start: max(c.start+offset, 0),
			Range: h.DestLineCount(),
		}
		offset += h.Offset()
		hunks = append(hunks, h)
	}
	return hunks
}

// dedupe keeps one candidate per raw hunk body. The same hunk often
// completes at several locations (or via both a plain match and a
// recovery); the survivor is chosen by supersedes.
func dedupe(cands []*candidate) []*candidate {
	out := cands[:0:0]
	for _, c := range cands {
		i := -1
		for j, e := range out {
			if e.hunk.RawBody == c.hunk.RawBody {
				i = j
				break
			}
		}
		if i < 0 {
			out = append(out, c)
		} else if supersedes(c, out[i]) {
			out[i] = c
		}
	}
	return out
}

// supersedes reports whether candidate a replaces the current survivor b:
// a's start is at least as close to the hunk's declared source start as
// b's. Ties go to a, so of two equidistant duplicates the one matched
// later in the file wins. This favors the interpretation nearest to what
// the diff author intended; the heuristic is kept isolated so the
// tie-break policy can change without touching search or rebuild logic.
func supersedes(a, b *candidate) bool {
	return declaredDistance(a) <= declaredDistance(b)
}

func declaredDistance(c *candidate) int {
	d := c.start - c.hunk.Header.Source.Start
	if d < 0 {
		return -d
	}
	return d
}
