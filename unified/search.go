package unified

import (
	"log/slog"
	"sort"
	"strings"

	patchfix "github.com/fourlexboehm/patchfix"
)

// candidate is one in-progress (or finished) attempt to align a hunk's
// matchable lines against the original text, starting at a specific line.
// hunk is shared with the parsed patch until a recovery heuristic clones
// it; candidates never mutate a shared hunk.
type candidate struct {
	hunkIndex int
	hunk      *patchfix.Hunk
	start     int // 0-based original line where matching began
	cursor    int // next matchable line to match
}

func (c *candidate) complete() bool {
	return c.cursor >= c.hunk.MatchableCount()
}

func (c *candidate) matches(line string) bool {
	l, ok := c.hunk.MatchableAt(c.cursor)
	return ok && l.Text == line
}

// searcher finds, for each hunk, the locations in the original text where
// its matchable lines occur contiguously, ignoring the declared header
// line numbers. Worst-case cost is O(hunks × file lines): every line may
// spawn one candidate per hunk and advances every live candidate.
type searcher struct {
	log *slog.Logger
}

func newSearcher(log *slog.Logger) *searcher {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &searcher{log: log}
}

// run performs a single left-to-right pass over the original text and
// returns the completed candidates, ordered by start line. Hunks with no
// completed candidate are unresolved; the caller detects them by absence.
func (s *searcher) run(content string, hunks []*patchfix.Hunk) []*candidate {
	var live []*candidate

	for i, line := range splitLines(content) {
		// Spawn a candidate for every hunk whose first matchable line is
		// this line. The same hunk may have candidates at several starts;
		// all are tracked until they complete or fail.
		for hi, h := range hunks {
			if first, ok := h.MatchableAt(0); ok && first.Text == line {
				s.log.Debug("spawning candidate", "line", i, "hunk", hi)
				live = append(live, &candidate{hunkIndex: hi, hunk: h, start: i})
			}
		}

		next := live[:0:0]
		for _, c := range live {
			switch {
			case c.complete():
				next = append(next, c)
			case c.matches(line):
				c.cursor++
				next = append(next, c)
			case strings.TrimSpace(line) == "":
				// The diff likely omitted a blank context line. Continue
				// with a copy of the hunk that carries the actual file
				// line, so exact application still verifies.
				s.log.Debug("inserting omitted blank context", "line", i, "hunk", c.hunkIndex)
				next = append(next, &candidate{
					hunkIndex: c.hunkIndex,
					hunk:      c.hunk.WithContextAt(line, c.cursor),
					start:     c.start,
					cursor:    c.cursor + 1,
				})
			case c.hunk.TailIsContext(c.cursor):
				// Only unmatched trailing context remains; accept the
				// match without it. Pending removals or insertions in the
				// tail block this path, so edits are never dropped.
				s.log.Debug("truncating unmatched trailing context", "line", i, "hunk", c.hunkIndex)
				next = append(next, &candidate{
					hunkIndex: c.hunkIndex,
					hunk:      c.hunk.TruncatedAt(c.cursor),
					start:     c.start,
					cursor:    c.cursor,
				})
			default:
				s.log.Debug("dropping candidate", "line", i, "hunk", c.hunkIndex)
			}
		}
		live = next
	}

	completed := live[:0:0]
	for _, c := range live {
		if c.complete() {
			completed = append(completed, c)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].start < completed[j].start
	})
	return completed
}
