package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// ConfigPath is an explicit config file. Empty looks for fiberna.toml.
	ConfigPath string

	// Flag overrides for config file values. Empty keeps the file value.
	StorePath   string
	Backend     string
	CatalogPath string

	// WorkDir is where fiberna.toml is discovered. Empty means ".".
	WorkDir string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the fiberna CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fiberna",
		Short: "fiberna - optical fiber numerical aperture calculator",
		Long: `Compute the numerical aperture (NA) of an optical fiber from its core and
cladding refractive indices, keep every result in a calculation store, and
plot the history.

  NA = sqrt(n_core^2 - n_cladding^2), rounded to 3 decimals

Materials come from the built-in catalog (or --catalog file); any other
selection is a custom material given by --core-name/--core-index.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default: ./fiberna.toml if present)")
	cmd.PersistentFlags().StringVar(&opts.StorePath, "store", "", "calculation store path (overrides store.path)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "store backend csv|sqlite (overrides store.backend)")
	cmd.PersistentFlags().StringVar(&opts.CatalogPath, "catalog", "", "material catalog file .yaml|.cue (overrides catalog.path)")

	// Add subcommands
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewMaterialsCommand(opts))
	cmd.AddCommand(NewCalcCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewChartCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// Execute runs the CLI with args and returns the process exit code.
// Errors already reported by a command are not printed again.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.ErrCode == "" {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return GetExitCode(err)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
