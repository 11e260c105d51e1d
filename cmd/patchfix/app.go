package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	patchfix "github.com/fourlexboehm/patchfix"
	"github.com/fourlexboehm/patchfix/jsonl"
	"github.com/fourlexboehm/patchfix/unified"
	"golang.org/x/sync/errgroup"
)

// ErrNoChanges is returned when the input contains no hunks.
var ErrNoChanges = errors.New("patch contains no hunks")

// FileResult is the outcome of fixing one file's portion of the input.
type FileResult struct {
	Path      string
	Original  string
	RawPatch  string
	Corrected string
	Result    *patchfix.Result
}

// Preview converts the result to the form viewers display.
func (fr *FileResult) Preview() *patchfix.Preview {
	return &patchfix.Preview{
		Path:      fr.Path,
		Original:  fr.Original,
		RawPatch:  fr.RawPatch,
		Corrected: fr.Corrected,
		Result:    fr.Result,
	}
}

// App runs the fix pipeline over a combined diff: split per file, locate
// each file's hunks by content, and optionally retry unresolved hunks
// through a Resolver. Dependencies are injected so tests can substitute
// mocks.
type App struct {
	Fixer     patchfix.Fixer
	Validator patchfix.Validator

	// Resolver retries hunks the content search could not place. Nil
	// disables the retry.
	Resolver patchfix.Resolver

	// ReadFile loads a target file's content. Nil uses os.ReadFile.
	ReadFile func(path string) ([]byte, error)

	Logger *slog.Logger
}

func (a *App) readFile(path string) ([]byte, error) {
	if a.ReadFile != nil {
		return a.ReadFile(path)
	}
	return os.ReadFile(path)
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Run fixes every file in patchText. Results come back in input order;
// the first hard error (unreadable file, malformed hunk) aborts the run.
// Unresolved hunks and apply mismatches are reported per file, not as
// errors.
func (a *App) Run(ctx context.Context, patchText string) ([]*FileResult, error) {
	if !hasHunks(patchText) {
		return nil, ErrNoChanges
	}
	files := unified.SplitFiles(patchText)

	results := make([]*FileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			res, err := a.fixFile(ctx, f)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func hasHunks(patchText string) bool {
	for _, line := range strings.Split(patchText, "\n") {
		if strings.HasPrefix(line, "@@") {
			return true
		}
	}
	return false
}

func (a *App) fixFile(ctx context.Context, f unified.FilePatch) (*FileResult, error) {
	log := a.logger().With("file", f.Path())

	var original string
	if f.Path() != "" {
		data, err := a.readFile(f.Path())
		if err != nil {
			return nil, fmt.Errorf("reading target file: %w", err)
		}
		original = string(data)
	}

	res, err := a.Fixer.Fix(original, f.Text)
	if err != nil {
		return nil, fmt.Errorf("fixing %s: %w", f.Path(), err)
	}

	if len(res.Unresolved) > 0 && a.Resolver != nil {
		log.Info("retrying unresolved hunks", "count", len(res.Unresolved))
		res, err = a.resolve(ctx, original, f.Text, res)
		if err != nil {
			return nil, err
		}
	}

	if res.Patch != "" && a.Validator != nil {
		if err := a.Validator.Validate(res.Patch); err != nil {
			return nil, fmt.Errorf("corrected patch for %s is malformed: %w", f.Path(), err)
		}
	}

	log.Debug("fixed file",
		"applied", res.Applied(),
		"unresolved", len(res.Unresolved))

	return &FileResult{
		Path:      f.Path(),
		Original:  original,
		RawPatch:  f.Text,
		Corrected: res.Patch,
		Result:    res,
	}, nil
}

// ReplayCorpus runs every case in a JSONL corpus file through the fixer
// and reports per-case outcomes to out. It returns an error when any case
// fails, so corpus runs can gate CI.
func ReplayCorpus(out io.Writer, fixer patchfix.Fixer, path string) error {
	cases, err := jsonl.NewLoader().Load(path)
	if err != nil {
		return err
	}

	failed := 0
	for _, c := range cases {
		if err := replayCase(fixer, c); err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", c.Name, err)
			continue
		}
		fmt.Fprintf(out, "ok   %s\n", c.Name)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d case(s) failed", failed, len(cases))
	}
	return nil
}

func replayCase(fixer patchfix.Fixer, c jsonl.Case) error {
	res, err := fixer.Fix(c.Original, c.Patch)
	if err != nil {
		return err
	}
	if len(c.WantUnresolved) > 0 {
		if !slices.Equal(res.Unresolved, c.WantUnresolved) {
			return fmt.Errorf("unresolved hunks = %q, want %q", res.Unresolved, c.WantUnresolved)
		}
		return nil
	}
	if res.Mismatch != nil {
		return fmt.Errorf("apply failed at line %d: expected %q, found %q",
			res.Mismatch.Line, res.Mismatch.Expected, res.Mismatch.Found)
	}
	if len(res.Unresolved) > 0 {
		return fmt.Errorf("%d hunk(s) unresolved", len(res.Unresolved))
	}
	if res.Text != c.Want {
		return fmt.Errorf("applied text does not match the expected output")
	}
	return nil
}

// resolve asks the Resolver to rewrite the unresolved hunks and runs the
// fixer again on its output. A resolver that still fails to produce a
// working patch leaves the original result in place.
func (a *App) resolve(ctx context.Context, original, rawPatch string, prev *patchfix.Result) (*patchfix.Result, error) {
	rewritten, err := a.Resolver.Resolve(ctx, patchfix.ResolveRequest{
		Original:   original,
		Patch:      rawPatch,
		Unresolved: prev.Unresolved,
	})
	if err != nil {
		return nil, fmt.Errorf("resolving hunks: %w", err)
	}

	res, err := a.Fixer.Fix(original, rewritten)
	if err != nil {
		return nil, fmt.Errorf("fixing resolved patch: %w", err)
	}
	if !res.Applied() {
		return prev, nil
	}
	return res, nil
}
