package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/parser"
	"gitlab.com/tozd/go/errors"
)

// NewFmtCmd creates a new fmt command
func NewFmtCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [script]",
		Short: "Reprint a patch script in canonical form",
		Long: `Fmt parses the script and writes its canonical serialization to stdout:
operations grouped per file in first-seen order, payloads on their own lines.
A script with parse errors is reported and left unformatted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := readScript(cmd, args)
			if err != nil {
				return errors.Errorf("reading patch script: %w", err)
			}

			ops, parseErrs := parser.ParseWithOptions(script, parser.Options{Strict: opts.Config.Strict})
			if len(parseErrs) > 0 {
				reportParseErrors(parseErrs)
				return errors.Errorf("%d parse error(s)", len(parseErrs))
			}

			fmt.Fprint(cmd.OutOrStdout(), parser.Format(ops))
			return nil
		},
	}

	return cmd
}
