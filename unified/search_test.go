package unified

import (
	"strings"
	"testing"

	patchfix "github.com/fourlexboehm/patchfix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseHunks(t *testing.T, patch string) []*patchfix.Hunk {
	t.Helper()
	p, err := NewParser().Parse(strings.NewReader(patch))
	require.NoError(t, err)
	return p.Hunks
}

func TestSearcher_PlainMatch(t *testing.T) {
	t.Parallel()

	hunks := parseHunks(t, "@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n")
	cands := newSearcher(nil).run("a\nb\nc\nd\n", hunks)

	require.Len(t, cands, 1)
	assert.Equal(t, 0, cands[0].start)
	assert.True(t, cands[0].complete())
}

func TestSearcher_IgnoresDeclaredLineNumbers(t *testing.T) {
	t.Parallel()

	// Header says line 40; the content lives at line 2 (0-based 1).
	hunks := parseHunks(t, "@@ -40,2 +40,2 @@\n b\n-c\n+C\n")
	cands := newSearcher(nil).run("a\nb\nc\nd\n", hunks)

	require.Len(t, cands, 1)
	assert.Equal(t, 1, cands[0].start)
}

func TestSearcher_TracksMultipleCandidates(t *testing.T) {
	t.Parallel()

	// The two-line sequence occurs twice; both completions are reported.
	hunks := parseHunks(t, "@@ -1,2 +1,2 @@\n x\n-y\n+Y\n")
	cands := newSearcher(nil).run("x\ny\npad\nx\ny\n", hunks)

	require.Len(t, cands, 2)
	assert.Equal(t, 0, cands[0].start)
	assert.Equal(t, 3, cands[1].start)
}

func TestSearcher_SpawnsForEveryMatchingHunk(t *testing.T) {
	t.Parallel()

	// Two distinct hunks start on the same line; both must be tracked.
	hunks := parseHunks(t, "@@ -1,2 +1,2 @@\n a\n-b\n+B\n@@ -1,2 +1,2 @@\n a\n-b2\n+B2\n")
	cands := newSearcher(nil).run("a\nb\nz\na\nb2\n", hunks)

	require.Len(t, cands, 2)
	starts := map[int][]int{}
	for _, c := range cands {
		starts[c.hunkIndex] = append(starts[c.hunkIndex], c.start)
	}
	assert.Equal(t, []int{0}, starts[0])
	assert.Equal(t, []int{3}, starts[1])
}

func TestSearcher_RecoversOmittedBlankLine(t *testing.T) {
	t.Parallel()

	// The diff forgot the blank line between alpha and beta.
	hunks := parseHunks(t, "@@ -1,3 +1,3 @@\n alpha\n beta\n-gamma\n+delta\n")
	cands := newSearcher(nil).run("alpha\n\nbeta\ngamma\n", hunks)

	require.Len(t, cands, 1)
	c := cands[0]
	assert.Equal(t, 0, c.start)
	require.True(t, c.complete())

	// The surviving hunk carries the inserted blank context line so the
	// shared parsed hunk stays untouched.
	require.Len(t, c.hunk.Lines, 5)
	assert.Equal(t, patchfix.HunkLine{Kind: patchfix.LineContext, Text: ""}, c.hunk.Lines[1])
	require.Len(t, hunks[0].Lines, 4)
}

func TestSearcher_RecoveryKeepsWhitespaceLineText(t *testing.T) {
	t.Parallel()

	hunks := parseHunks(t, "@@ -1,2 +1,2 @@\n alpha\n-beta\n+BETA\n")
	cands := newSearcher(nil).run("alpha\n  \nbeta\n", hunks)

	require.Len(t, cands, 1)
	assert.Equal(t, "  ", cands[0].hunk.Lines[1].Text)
}

func TestSearcher_TruncatesUnmatchedTrailingContext(t *testing.T) {
	t.Parallel()

	// Trailing context "four" does not exist at that position; the match
	// is accepted without it because only context failed.
	hunks := parseHunks(t, "@@ -1,4 +1,4 @@\n one\n-two\n+TWO\n three\n four\n")
	cands := newSearcher(nil).run("one\ntwo\nthree\nX\n", hunks)

	require.Len(t, cands, 1)
	c := cands[0]
	require.True(t, c.complete())
	require.Len(t, c.hunk.Lines, 4)
	assert.Equal(t, "three", c.hunk.Lines[3].Text)
}

func TestSearcher_NeverTruncatesPendingRemoval(t *testing.T) {
	t.Parallel()

	// Same shape, but the unmatched tail contains a removal. Deletions
	// must match exactly, so the candidate is abandoned.
	hunks := parseHunks(t, "@@ -1,4 +1,3 @@\n one\n-two\n+TWO\n three\n-four\n")
	cands := newSearcher(nil).run("one\ntwo\nthree\nX\n", hunks)

	assert.Empty(t, cands)
}

func TestSearcher_NeverTruncatesPendingInsertion(t *testing.T) {
	t.Parallel()

	// An insertion after the unmatched context would be lost by
	// truncation, so the candidate is abandoned instead.
	hunks := parseHunks(t, "@@ -1,4 +1,5 @@\n one\n-two\n+TWO\n three\n four\n+five\n")
	cands := newSearcher(nil).run("one\ntwo\nthree\nX\n", hunks)

	assert.Empty(t, cands)
}

func TestSearcher_IncompleteCandidateAtEOFIsDiscarded(t *testing.T) {
	t.Parallel()

	hunks := parseHunks(t, "@@ -1,3 +1,3 @@\n a\n b\n-c\n+C\n")
	cands := newSearcher(nil).run("a\nb\n", hunks)

	assert.Empty(t, cands)
}

func TestSearcher_UnmatchableHunkYieldsNoCandidates(t *testing.T) {
	t.Parallel()

	hunks := parseHunks(t, "@@ -1,2 +1,2 @@\n nowhere\n-to be found\n+x\n")
	cands := newSearcher(nil).run("a\nb\nc\n", hunks)

	assert.Empty(t, cands)
}
