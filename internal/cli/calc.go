package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fiberna/internal/engine"
	"github.com/roach88/fiberna/internal/ir"
)

// CalcOptions holds flags for the calc command.
type CalcOptions struct {
	*RootOptions
	Core     engine.Selection
	Cladding engine.Selection
}

// CalcResult is a persisted calculation.
type CalcResult struct {
	Record   ir.CalculationRecord `json:"record"`
	Core     string               `json:"core_label"`
	Cladding string               `json:"cladding_label"`
	Records  int                  `json:"records"`
}

// NewCalcCommand creates the calc command.
func NewCalcCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CalcOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate and record a numerical aperture",
		Long: `Calculate the NA for a core and cladding material and append it to the store.

--core and --cladding take a catalog name or label. Any other value,
including "Custom", selects a custom material from --*-name and --*-index.

Exit codes:
  0 - Calculation recorded
  1 - Invalid input (bad index, missing name, cladding index >= core index)
  2 - Command error (store could not be written, bad config or catalog)

Examples:
  fiberna calc --core Silica --cladding "Fluoride Glass"
  fiberna calc --core "Sapphire (1.76)" --cladding "Silica (1.44)"
  fiberna calc --core Custom --core-name "Doped Silica" --core-index 1.46 --cladding Silica`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Core.Label, "core", "", "core material name or label, or Custom (required)")
	cmd.Flags().StringVar(&opts.Core.Name, "core-name", "", "custom core material name")
	cmd.Flags().StringVar(&opts.Core.Index, "core-index", "", "custom core refractive index")
	cmd.Flags().StringVar(&opts.Cladding.Label, "cladding", "", "cladding material name or label, or Custom (required)")
	cmd.Flags().StringVar(&opts.Cladding.Name, "cladding-name", "", "custom cladding material name")
	cmd.Flags().StringVar(&opts.Cladding.Index, "cladding-index", "", "custom cladding refractive index")
	_ = cmd.MarkFlagRequired("core")
	_ = cmd.MarkFlagRequired("cladding")

	return cmd
}

func runCalc(opts *CalcOptions, cmd *cobra.Command) error {
	s, err := newSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	if err := s.openStore(commandContext(cmd)); err != nil {
		return err
	}
	defer s.Close()

	s.out.VerboseLog("core=%q cladding=%q store=%s", opts.Core.Label, opts.Cladding.Label, s.store.Location())

	rec, err := s.engine.CalculateSelections(commandContext(cmd), opts.Core, opts.Cladding)
	if err != nil {
		return s.out.Fail(err)
	}

	result := CalcResult{
		Record:   rec,
		Core:     rec.Core().Label(),
		Cladding: rec.Cladding().Label(),
		Records:  s.store.Len(),
	}
	if s.out.Format == "json" {
		return s.out.Success(result)
	}
	return s.out.Success(fmt.Sprintf("%s / %s: NA = %s", result.Core, result.Cladding, ir.FormatNumber(rec.NA)))
}
