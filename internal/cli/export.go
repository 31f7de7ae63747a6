package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fiberna/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Out string
}

// ExportResult describes a finished export.
type ExportResult struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Records int    `json:"records"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy every record into a CSV file",
		Long: `Copy every record of the configured store into a new CSV store file.

The destination must not already hold records. Use this to move a sqlite
store back to the flat file format.

Example:
  fiberna --backend sqlite --store fiber.db export --out fiber_calculations.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "destination CSV file (required)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	s, err := newSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	if err := s.openStore(ctx); err != nil {
		return err
	}
	defer s.Close()

	dst, err := store.Open(ctx, store.NewCSVLog(opts.Out))
	if dst == nil {
		return s.out.Fail(err)
	}
	defer dst.Close()
	if err != nil || dst.Len() > 0 {
		msg := fmt.Sprintf("destination %s already holds records", opts.Out)
		_ = s.out.Error(ErrCodeGeneric, msg, nil)
		return &ExitError{Code: ExitCommandError, ErrCode: ErrCodeGeneric, Message: msg, Err: err}
	}

	records := s.store.Snapshot()
	for _, rec := range records {
		if err := dst.Append(ctx, rec); err != nil {
			return s.out.Fail(err)
		}
	}
	s.logger.Info("store exported", "from", s.store.Location(), "to", dst.Location(), "records", len(records))

	result := ExportResult{From: s.store.Location(), To: dst.Location(), Records: len(records)}
	if s.out.Format == "json" {
		return s.out.Success(result)
	}
	return s.out.Success(fmt.Sprintf("✓ Exported %d records from %s to %s", result.Records, result.From, result.To))
}
