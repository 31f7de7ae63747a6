package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/fiberna/internal/ir"
	"github.com/roach88/fiberna/internal/present"
)

// HistoryResult is the full store contents.
type HistoryResult struct {
	Records []ir.CalculationRecord `json:"records"`
	Rows    []present.Row          `json:"rows"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show every recorded calculation",
		Long: `Show every recorded calculation, oldest first, as a table of
Core, Cladding and NA. An empty store shows the header only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, cmd)
		},
	}
}

func runHistory(opts *RootOptions, cmd *cobra.Command) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}
	if err := s.openStore(commandContext(cmd)); err != nil {
		return err
	}
	defer s.Close()

	records := s.engine.Records()
	if s.out.Format == "json" {
		return s.out.Success(HistoryResult{Records: records, Rows: present.Rows(records)})
	}
	if err := present.RenderTable(s.out.Writer, records); err != nil {
		return s.out.Fail(err)
	}
	return nil
}
