package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/parser"
	"github.com/walteh/patchrc/pkg/patch"
	"github.com/walteh/patchrc/pkg/runner"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(opts *opts.RootOpts) *cobra.Command {
	var dryRun bool
	var async bool

	cmd := &cobra.Command{
		Use:   "apply [script]",
		Short: "Apply a patch script to local files",
		Long: `Apply reads a patch script from the given path (or stdin when no path
or "-" is given) and patches the files it names. It will:
1. Parse the whole script, collecting every parse error
2. Refuse to touch any file if the script has parse errors
3. Apply each file's edits in order, all-or-nothing per file
4. Report every failure as "- path: message" and exit nonzero`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			script, err := readScript(cmd, args)
			if err != nil {
				return errors.Errorf("reading patch script: %w", err)
			}

			ops, parseErrs := parser.ParseWithOptions(script, parser.Options{Strict: opts.Config.Strict})
			if len(parseErrs) > 0 {
				reportParseErrors(parseErrs)
				return errors.Errorf("%d parse error(s)", len(parseErrs))
			}

			cfg := *opts.Config
			if async {
				cfg.Async = true
			}

			scriptName := "stdin"
			if len(args) == 1 && args[0] != "-" {
				scriptName = args[0]
			}
			opts.Console.Header("applying " + scriptName)

			results, applyErrs := runner.New(&cfg, dryRun).Run(ctx, ops)
			for _, res := range results {
				report := log.FileReport{
					Path:       res.Path,
					Operations: res.Operations,
					IsPatched:  res.Status == runner.StatusPatched,
					IsSkipped:  res.Status == runner.StatusSkipped,
					IsDryRun:   dryRun,
				}
				if res.Err != nil {
					report.Err = res.Err
				}
				opts.Console.LogFileReport(report)
			}
			opts.Console.Summary()

			if len(applyErrs) > 0 {
				fmt.Fprintln(os.Stderr, "\nErrors encountered while applying patches:")
				for _, e := range applyErrs {
					fmt.Fprintln(os.Stderr, e.Report())
				}
				return errors.Errorf("%d apply error(s)", len(applyErrs))
			}

			if dryRun {
				pterm.Info.Printfln("Dry run: %d operation(s) across %d file(s) would apply", len(ops), len(results))
			} else {
				pterm.Success.Printfln("Applied %d operation(s) across %d file(s)", len(ops), len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and apply in memory without writing files")
	cmd.Flags().BoolVar(&async, "async", false, "patch independent files concurrently")

	return cmd
}

// readScript reads the whole patch script from the path argument, or from
// stdin when no path (or "-") is given.
func readScript(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// reportParseErrors prints each parse error in the "- path: message" shape.
func reportParseErrors(parseErrs []patch.ParseError) {
	fmt.Fprintln(os.Stderr, "\nParse errors encountered:")
	for _, e := range parseErrs {
		fmt.Fprintln(os.Stderr, e.Report())
	}
}
