package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/parser"
	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [script]",
		Short: "Parse a patch script without touching any file",
		Long: `Check parses the script and reports what it found. It will:
1. Parse every block, recovering at the next FILE: after a malformed one
2. List the operation count per target file
3. Report every parse error and exit nonzero if any exist`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := readScript(cmd, args)
			if err != nil {
				return errors.Errorf("reading patch script: %w", err)
			}

			ops, parseErrs := parser.ParseWithOptions(script, parser.Options{Strict: opts.Config.Strict})

			grouped, paths := patch.Group(ops)
			for _, path := range paths {
				pterm.Info.Printfln("%s: %d operation(s)", path, len(grouped[path]))
			}

			if len(parseErrs) > 0 {
				reportParseErrors(parseErrs)
				return errors.Errorf("%d parse error(s)", len(parseErrs))
			}

			pterm.Success.Printfln("Script is well-formed: %d operation(s) across %d file(s)", len(ops), len(paths))
			return nil
		},
	}

	return cmd
}

// TODO(dr.methodical): 🧪 Add a --json output mode for editor integrations
