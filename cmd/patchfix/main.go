// Command patchfix corrects the hunk headers of unified diffs whose line
// numbers are wrong, by locating each hunk in the target file by content,
// and applies the corrected patch.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	patchfixtea "github.com/fourlexboehm/patchfix/bubbletea"
	"github.com/fourlexboehm/patchfix/chroma"
	"github.com/fourlexboehm/patchfix/config"
	"github.com/fourlexboehm/patchfix/fs"
	"github.com/fourlexboehm/patchfix/genai"
	"github.com/fourlexboehm/patchfix/gitdiff"
	"github.com/fourlexboehm/patchfix/unified"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

type options struct {
	verbose bool
	resolve bool
	write   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "patchfix",
		Short:         "Fix unified diffs whose hunk headers point at the wrong lines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&opts.resolve, "resolve", false, "retry unresolved hunks via the configured Gemini model")

	root.AddCommand(newFixCmd(opts))
	root.AddCommand(newApplyCmd(opts))
	root.AddCommand(newPreviewCmd(opts))
	root.AddCommand(newVerifyCmd())
	return root
}

func newFixCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fix [patch file]",
		Short: "Print the corrected patch without touching any files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := run(cmd, opts, args)
			if err != nil {
				return err
			}
			for _, r := range results {
				if r.Corrected != "" {
					fmt.Fprint(cmd.OutOrStdout(), r.Corrected)
				}
			}
			return firstFailure(results)
		},
	}
}

func newApplyCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [patch file]",
		Short: "Fix the patch and apply it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{})
			if err != nil {
				return err
			}
			results, err := run(cmd, opts, args)
			if err != nil {
				return err
			}
			if err := firstFailure(results); err != nil {
				return err
			}
			for _, r := range results {
				if !opts.write || r.Path == "" {
					fmt.Fprint(cmd.OutOrStdout(), r.Result.Text)
					continue
				}
				if cfg.Backup {
					if _, err := fs.Backup(r.Path); err != nil {
						return err
					}
				}
				if err := fs.WriteFileAtomic(r.Path, []byte(r.Result.Text), 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", r.Path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write results back to the target files")
	return cmd
}

func newPreviewCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "preview [patch file]",
		Short: "Interactively preview the corrected patch",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := run(cmd, opts, args)
			if err != nil {
				return err
			}
			tokenizer := chroma.NewTokenizer()
			for _, r := range results {
				var viewerOpts []patchfixtea.Option
				if lang := tokenizer.DetectLanguage(r.Path); lang != "" {
					viewerOpts = append(viewerOpts, patchfixtea.WithTokenizer(tokenizer, lang))
				}
				viewer := patchfixtea.NewViewer(viewerOpts...)
				if err := viewer.View(cmd.Context(), r.Preview()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [patch file | corpus.jsonl]",
		Short: "Check that a patch parses, or replay a JSONL corpus of fix cases",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && strings.HasSuffix(args[0], ".jsonl") {
				return ReplayCorpus(cmd.OutOrStdout(), unified.NewFixer(), args[0])
			}
			patchText, err := readPatch(cmd, args)
			if err != nil {
				return err
			}
			if err := gitdiff.NewValidator().Validate(patchText); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

// run assembles an App from the command-line options and fixes the patch.
func run(cmd *cobra.Command, opts *options, args []string) ([]*FileResult, error) {
	patchText, err := readPatch(cmd, args)
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	app := &App{
		Fixer:     &unified.Fixer{Logger: logger},
		Validator: gitdiff.NewValidator(),
		Logger:    logger,
	}

	if opts.resolve {
		cfg, err := config.Load(config.LoadOptions{})
		if err != nil {
			return nil, err
		}
		if cfg.APIKey == "" {
			return nil, errors.New("--resolve requires GEMINI_API_KEY or api_key in the config file")
		}
		resolver, err := genai.NewResolver(cmd.Context(), cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		app.Resolver = resolver
	}

	return app.Run(cmd.Context(), patchText)
}

// readPatch reads the patch from the file argument, or stdin when no
// argument is given.
func readPatch(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading patch from stdin: %w", err)
	}
	return string(data), nil
}

// firstFailure reports the first file whose patch did not fully apply.
func firstFailure(results []*FileResult) error {
	for _, r := range results {
		res := r.Result
		if res == nil {
			continue
		}
		if len(res.Unresolved) > 0 {
			return fmt.Errorf("%d hunk(s) in %s could not be located in the file",
				len(res.Unresolved), displayPath(r))
		}
		if res.Mismatch != nil {
			return fmt.Errorf("corrected patch for %s failed at line %d: expected %q, found %q",
				displayPath(r), res.Mismatch.Line, res.Mismatch.Expected, res.Mismatch.Found)
		}
	}
	return nil
}

func displayPath(r *FileResult) string {
	if r.Path != "" {
		return r.Path
	}
	return "patch"
}
