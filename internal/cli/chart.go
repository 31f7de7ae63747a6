package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fiberna/internal/present"
)

// ChartOptions holds flags for the chart command.
type ChartOptions struct {
	*RootOptions
	Out string
}

// ChartResult describes a written chart.
type ChartResult struct {
	Chart   string `json:"chart"`
	Path    string `json:"path"`
	Records int    `json:"records"`
}

// NewChartCommand creates the chart command.
func NewChartCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ChartOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "chart bar|scatter",
		Short: "Plot recorded calculations to a PNG file",
		Long: `Plot the recorded calculations.

  bar      NA for each calculation, labeled by cladding material
  scatter  NA against cladding refractive index, sorted by index

Files are written to charts.dir as na_<chart>.png unless --out is given.
An empty store prints a warning and exits 1.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(present.ChartBar), string(present.ChartScatter)},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output PNG file")

	return cmd
}

func runChart(opts *ChartOptions, name string, cmd *cobra.Command) error {
	kind, err := present.ParseChart(name)
	if err != nil {
		_ = newFormatter(opts.RootOptions, cmd).Error(ErrCodeGeneric, err.Error(), nil)
		return &ExitError{Code: ExitFailure, ErrCode: ErrCodeGeneric, Message: err.Error()}
	}

	s, err := newSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	if err := s.openStore(commandContext(cmd)); err != nil {
		return err
	}
	defer s.Close()

	records := s.engine.Records()
	p, err := present.Build(kind, records)
	if err != nil {
		return s.out.Fail(err)
	}

	path := opts.Out
	if path == "" {
		path = s.cfg.ChartPath(present.DefaultFile(kind))
	}
	if err := present.Save(kind, p, path); err != nil {
		return s.out.Fail(err)
	}
	s.logger.Debug("chart written", "chart", kind, "path", path, "records", len(records))

	result := ChartResult{Chart: string(kind), Path: path, Records: len(records)}
	if s.out.Format == "json" {
		return s.out.Success(result)
	}
	return s.out.Success(fmt.Sprintf("✓ Wrote %s chart of %d records to %s", kind, len(records), path))
}
