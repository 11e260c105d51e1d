// Package jsonl loads fix regression cases from JSONL files, one case per
// line. Corpus files collect real patches whose headers were wrong so a
// fix that worked once keeps working.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Case is one recorded fix scenario.
type Case struct {
	// Name identifies the case in test output.
	Name string `json:"name"`

	// Original is the file content the patch targets.
	Original string `json:"original"`

	// Patch is the unified diff as supplied, headers possibly wrong.
	Patch string `json:"patch"`

	// Want is the expected file content after the corrected patch is
	// applied. Empty when the case expects no hunk to resolve.
	Want string `json:"want"`

	// WantUnresolved holds raw hunk bodies expected to fail to match.
	WantUnresolved []string `json:"want_unresolved,omitempty"`
}

// Loader reads cases from JSONL files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads all cases from the file at path. Blank lines are skipped;
// a malformed line fails the whole load with its line number.
func (l *Loader) Load(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// Cases embed whole files; the default 64KB token limit is too small.
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024)

	var cases []Case
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var c Case
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		cases = append(cases, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}
	return cases, nil
}
