package unified_test

import (
	"strings"
	"testing"

	patchfix "github.com/fourlexboehm/patchfix"
	"github.com/fourlexboehm/patchfix/unified"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("parses hunks with preamble", func(t *testing.T) {
		t.Parallel()

		input := `--- a/main.rs
+++ b/main.rs
@@ -1,2 +1,3 @@ fn main()
 fn main() {
-    old();
+    new();
+    extra();
 }
`
		p, err := unified.NewParser().Parse(strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, []string{"--- a/main.rs", "+++ b/main.rs"}, p.Preamble)
		require.Len(t, p.Hunks, 1)

		h := p.Hunks[0]
		assert.Equal(t, patchfix.HeaderRange{Start: 0, Range: 2}, h.Header.Source)
		assert.Equal(t, patchfix.HeaderRange{Start: 0, Range: 3}, h.Header.Dest)
		assert.Nil(t, h.Header.FixedSource)
		assert.Nil(t, h.Header.FixedDest)
		assert.Equal(t, " fn main()", h.Section())

		require.Len(t, h.Lines, 5)
		assert.Equal(t, patchfix.HunkLine{Kind: patchfix.LineContext, Text: "fn main() {"}, h.Lines[0])
		assert.Equal(t, patchfix.HunkLine{Kind: patchfix.LineRemoved, Text: "    old();"}, h.Lines[1])
		assert.Equal(t, patchfix.HunkLine{Kind: patchfix.LineAdded, Text: "    new();"}, h.Lines[2])
		assert.Equal(t, patchfix.HunkLine{Kind: patchfix.LineAdded, Text: "    extra();"}, h.Lines[3])
		assert.Equal(t, patchfix.HunkLine{Kind: patchfix.LineContext, Text: "}"}, h.Lines[4])
	})

	t.Run("raw body reconstructs the hunk", func(t *testing.T) {
		t.Parallel()

		input := "@@ -3,2 +3,2 @@\n a\n-b\n+c\n"
		p, err := unified.NewParser().Parse(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, p.Hunks, 1)
		assert.Equal(t, "@@ -3,2 +3,2 @@\n a\n-b\n+c", p.Hunks[0].RawBody)
	})

	t.Run("splits multiple hunks", func(t *testing.T) {
		t.Parallel()

		input := "@@ -1,1 +1,1 @@\n-a\n+b\n@@ -5,1 +5,1 @@\n-x\n+y\n"
		p, err := unified.NewParser().Parse(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, p.Hunks, 2)
		assert.Equal(t, 4, p.Hunks[1].Header.Source.Start)
	})

	t.Run("count defaults to 1 when omitted", func(t *testing.T) {
		t.Parallel()

		p, err := unified.NewParser().Parse(strings.NewReader("@@ -3 +4 @@\n-a\n+b\n"))
		require.NoError(t, err)
		require.Len(t, p.Hunks, 1)
		assert.Equal(t, patchfix.HeaderRange{Start: 2, Range: 1}, p.Hunks[0].Header.Source)
		assert.Equal(t, patchfix.HeaderRange{Start: 3, Range: 1}, p.Hunks[0].Header.Dest)
	})

	t.Run("zero start clamps to line zero", func(t *testing.T) {
		t.Parallel()

		p, err := unified.NewParser().Parse(strings.NewReader("@@ -0,0 +1,1 @@\n+a\n"))
		require.NoError(t, err)
		assert.Equal(t, 0, p.Hunks[0].Header.Source.Start)
	})

	t.Run("line without prefix is context", func(t *testing.T) {
		t.Parallel()

		p, err := unified.NewParser().Parse(strings.NewReader("@@ -1,2 +1,2 @@\nplain\n\n"))
		require.NoError(t, err)
		require.Len(t, p.Hunks[0].Lines, 2)
		assert.Equal(t, patchfix.HunkLine{Kind: patchfix.LineContext, Text: "plain"}, p.Hunks[0].Lines[0])
		assert.Equal(t, patchfix.HunkLine{Kind: patchfix.LineContext, Text: ""}, p.Hunks[0].Lines[1])
	})

	t.Run("empty input is a no-op patch", func(t *testing.T) {
		t.Parallel()

		p, err := unified.NewParser().Parse(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, p.Hunks)
		assert.Empty(t, p.Preamble)
	})

	t.Run("ignores git noise before the first hunk", func(t *testing.T) {
		t.Parallel()

		input := "diff --git a/f b/f\nindex 123..456 100644\n--- a/f\n+++ b/f\n@@ -1,1 +1,1 @@\n-a\n+b\n"
		p, err := unified.NewParser().Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, []string{"--- a/f", "+++ b/f"}, p.Preamble)
		require.Len(t, p.Hunks, 1)
	})

	t.Run("rejects malformed headers", func(t *testing.T) {
		t.Parallel()

		for _, tc := range []struct {
			name  string
			input string
		}{
			{"too few tokens", "@@ -1,2 @@\n a\n"},
			{"missing minus marker", "@@ 1,2 +1,2 @@\n a\n"},
			{"missing plus marker", "@@ -1,2 1,2 @@\n a\n"},
			{"unparsable start", "@@ -x,2 +1,2 @@\n a\n"},
			{"unparsable count", "@@ -1,y +1,2 @@\n a\n"},
		} {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				_, err := unified.NewParser().Parse(strings.NewReader(tc.input))
				var perr *patchfix.ParseError
				require.ErrorAs(t, err, &perr)
				assert.NotEmpty(t, perr.Line)
			})
		}
	})
}
