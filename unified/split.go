package unified

import "strings"

// FilePatch is one file's portion of a combined unified diff.
type FilePatch struct {
	OldPath string
	NewPath string
	Text    string
}

// Path returns the file the patch targets: the new-side path, falling
// back to the old side for deletions.
func (fp FilePatch) Path() string {
	if fp.NewPath != "" {
		return fp.NewPath
	}
	return fp.OldPath
}

// SplitFiles splits a combined diff into per-file patches. File
// boundaries are "diff --git" lines, or "--- " headers that follow hunk
// content. A patch with no file headers yields a single FilePatch with
// empty paths.
func SplitFiles(patch string) []FilePatch {
	var sections [][]string
	var cur []string
	seenHunk := false

	for _, line := range splitLines(patch) {
		boundary := strings.HasPrefix(line, "diff --git") ||
			(strings.HasPrefix(line, "--- ") && seenHunk)
		if boundary && len(cur) > 0 {
			sections = append(sections, cur)
			cur = nil
			seenHunk = false
		}
		cur = append(cur, line)
		if strings.HasPrefix(line, "@@") {
			seenHunk = true
		}
	}
	if len(cur) > 0 {
		sections = append(sections, cur)
	}

	out := make([]FilePatch, 0, len(sections))
	for _, sec := range sections {
		fp := FilePatch{Text: strings.Join(sec, "\n") + "\n"}
		for _, l := range sec {
			if strings.HasPrefix(l, "@@") {
				break
			}
			if fp.OldPath == "" && strings.HasPrefix(l, "--- ") {
				fp.OldPath = cleanPath(l[4:])
			}
			if fp.NewPath == "" && strings.HasPrefix(l, "+++ ") {
				fp.NewPath = cleanPath(l[4:])
			}
		}
		out = append(out, fp)
	}
	return out
}

func cleanPath(s string) string {
	s = strings.TrimSpace(s)
	if s == "/dev/null" {
		return ""
	}
	s = strings.TrimPrefix(s, "a/")
	s = strings.TrimPrefix(s, "b/")
	return s
}
