package unified

import (
	"strings"
	"testing"

	patchfix "github.com/fourlexboehm/patchfix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parsePatch(t *testing.T, patch string) *patchfix.Patch {
	t.Helper()
	p, err := NewParser().Parse(strings.NewReader(patch))
	require.NoError(t, err)
	return p
}

func TestApply_ReplacesLines(t *testing.T) {
	t.Parallel()

	p := parsePatch(t, "@@ -2,3 +2,3 @@\n b\n-c\n+C\n d\n")
	text, mismatch := apply("a\nb\nc\nd\ne\n", p)

	require.Nil(t, mismatch)
	assert.Equal(t, "a\nb\nC\nd\ne\n", text)
}

func TestApply_PureInsertion(t *testing.T) {
	t.Parallel()

	p := parsePatch(t, "@@ -2,1 +2,3 @@\n b\n+x\n+y\n")
	text, mismatch := apply("a\nb\nc\n", p)

	require.Nil(t, mismatch)
	assert.Equal(t, "a\nb\nx\ny\nc\n", text)
}

func TestApply_PureDeletion(t *testing.T) {
	t.Parallel()

	p := parsePatch(t, "@@ -2,2 +2,1 @@\n b\n-c\n")
	text, mismatch := apply("a\nb\nc\nd\n", p)

	require.Nil(t, mismatch)
	assert.Equal(t, "a\nb\nd\n", text)
}

func TestApply_MismatchReportsContext(t *testing.T) {
	t.Parallel()

	p := parsePatch(t, "@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n")
	text, mismatch := apply("a\nX\nc\n", p)

	assert.Empty(t, text)
	require.NotNil(t, mismatch)
	assert.Equal(t, 2, mismatch.Line)
	assert.Equal(t, "b", mismatch.Expected)
	assert.Equal(t, "X", mismatch.Found)
	assert.Equal(t, "a", mismatch.Before)
	assert.Equal(t, "c", mismatch.After)
}

func TestApply_MismatchPastEndOfFile(t *testing.T) {
	t.Parallel()

	p := parsePatch(t, "@@ -1,3 +1,3 @@\n a\n b\n-c\n+C\n")
	text, mismatch := apply("a\nb\n", p)

	assert.Empty(t, text)
	require.NotNil(t, mismatch)
	assert.Equal(t, 3, mismatch.Line)
	assert.Equal(t, "c", mismatch.Expected)
	assert.Empty(t, mismatch.Found)
}

func TestApply_PreservesTrailingNewlineState(t *testing.T) {
	t.Parallel()

	p := parsePatch(t, "@@ -1,1 +1,1 @@\n-a\n+A\n")

	text, mismatch := apply("a\nb", p)
	require.Nil(t, mismatch)
	assert.Equal(t, "A\nb", text)

	text, mismatch = apply("a\nb\n", p)
	require.Nil(t, mismatch)
	assert.Equal(t, "A\nb\n", text)
}

func TestApply_CopiesRemainderVerbatim(t *testing.T) {
	t.Parallel()

	p := parsePatch(t, "@@ -1,1 +1,1 @@\n-a\n+A\n")
	text, mismatch := apply("a\nb\nc\nd\n", p)

	require.Nil(t, mismatch)
	assert.Equal(t, "A\nb\nc\nd\n", text)
}

func TestRenderHunk_RequiresFixedHeaders(t *testing.T) {
	t.Parallel()

	p := parsePatch(t, "@@ -1,1 +1,1 @@\n-a\n+A\n")
	_, err := renderPatch(nil, p.Hunks)
	assert.ErrorIs(t, err, patchfix.ErrNotFixed)
}

func TestRenderPatch_PreservesPreambleAndSection(t *testing.T) {
	t.Parallel()

	p := parsePatch(t, "--- a/x\n+++ b/x\n@@ -4,2 +4,2 @@ func thing()\n a\n-b\n+B\n")
	h := p.Hunks[0]
	h.Header.FixedSource = &patchfix.HeaderRange{Start: 6, Range: 2}
	h.Header.FixedDest = &patchfix.HeaderRange{Start: 8, Range: 2}

	out, err := renderPatch(p.Preamble, p.Hunks)
	require.NoError(t, err)
	assert.Equal(t, "--- a/x\n+++ b/x\n@@ -7,2 +9,2 @@ func thing()\n a\n-b\n+B\n", out)
}
