package unified

import "strings"

// splitLines splits s into lines without producing a trailing empty entry
// for a final newline. Parse, search, and apply must all view text through
// the same splitting or corrected line numbers drift by one.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
