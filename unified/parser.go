// Package unified implements the patchfix pipeline for unified-diff text:
// parsing, content-addressed candidate search, header rebuilding, patch
// rendering, and strict application.
package unified

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	patchfix "github.com/fourlexboehm/patchfix"
)

// Compile-time interface verification.
var _ patchfix.Parser = (*Parser)(nil)

// Parser parses unified-diff text. Headers are validated syntactically;
// their line numbers are taken as declared and may be wrong.
type Parser struct{}

// NewParser creates a unified-diff parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads patch content from r. Empty input yields a patch with no
// hunks. Lines before the first "@@" are scanned for the "---"/"+++"
// preamble, which is preserved verbatim; other non-hunk lines (e.g.
// "diff --git", "index ...") are ignored.
func (p *Parser) Parse(r io.Reader) (*patchfix.Patch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading patch: %w", err)
	}
	return parse(string(data))
}

func parse(text string) (*patchfix.Patch, error) {
	patch := &patchfix.Patch{}
	var block []string

	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		h, err := parseHunk(block)
		if err != nil {
			return err
		}
		patch.Hunks = append(patch.Hunks, h)
		block = nil
		return nil
	}

	for _, line := range splitLines(text) {
		switch {
		case strings.HasPrefix(line, "@@"):
			if err := flush(); err != nil {
				return nil, err
			}
			block = []string{line}
		case len(block) > 0:
			block = append(block, line)
		case len(patch.Preamble) < 2 &&
			(strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++")):
			patch.Preamble = append(patch.Preamble, line)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return patch, nil
}

func parseHunk(block []string) (*patchfix.Hunk, error) {
	header, err := parseHeader(block[0])
	if err != nil {
		return nil, err
	}
	lines := make([]patchfix.HunkLine, 0, len(block)-1)
	for _, l := range block[1:] {
		lines = append(lines, parseLine(l))
	}
	return &patchfix.Hunk{
		Header:  header,
		Lines:   lines,
		RawBody: strings.Join(block, "\n"),
	}, nil
}

func parseHeader(s string) (patchfix.HunkHeader, error) {
	var h patchfix.HunkHeader
	if !strings.HasPrefix(s, "@@") {
		return h, &patchfix.ParseError{Line: s, Reason: "hunk header must start with @@"}
	}
	parts := strings.Fields(s)
	if len(parts) < 4 {
		return h, &patchfix.ParseError{Line: s, Reason: "invalid hunk header format"}
	}

	src, err := parseRange(parts[1], '-', s)
	if err != nil {
		return h, err
	}
	dst, err := parseRange(parts[2], '+', s)
	if err != nil {
		return h, err
	}
	h.Source = src
	h.Dest = dst
	return h, nil
}

// parseRange parses one side of a hunk header, e.g. "-12,3" or "+7". The
// count defaults to 1 when omitted. The 1-based start from the header is
// stored 0-based (a 0 start, as in new-file hunks, clamps to 0).
func parseRange(tok string, marker byte, header string) (patchfix.HeaderRange, error) {
	var r patchfix.HeaderRange
	if len(tok) == 0 || tok[0] != marker {
		return r, &patchfix.ParseError{Line: header, Reason: fmt.Sprintf("range must start with %q", string(marker))}
	}
	startStr, countStr, hasCount := strings.Cut(tok[1:], ",")

	start, err := strconv.Atoi(startStr)
	if err != nil {
		return r, &patchfix.ParseError{Line: header, Reason: "invalid start line"}
	}
	count := 1
	if hasCount {
		count, err = strconv.Atoi(countStr)
		if err != nil {
			return r, &patchfix.ParseError{Line: header, Reason: "invalid line count"}
		}
	}

	r.Start = max(start-1, 0)
	r.Range = count
	return r, nil
}

func parseLine(s string) patchfix.HunkLine {
	switch {
	case strings.HasPrefix(s, "+"):
		return patchfix.HunkLine{Kind: patchfix.LineAdded, Text: s[1:]}
	case strings.HasPrefix(s, "-"):
		return patchfix.HunkLine{Kind: patchfix.LineRemoved, Text: s[1:]}
	case strings.HasPrefix(s, " "):
		return patchfix.HunkLine{Kind: patchfix.LineContext, Text: s[1:]}
	default:
		return patchfix.HunkLine{Kind: patchfix.LineContext, Text: s}
	}
}
