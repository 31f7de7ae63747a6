package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fiberna/internal/ir"
)

// MaterialsResult lists the selectable materials.
type MaterialsResult struct {
	Materials []ir.Material `json:"materials"`
	Options   []string      `json:"options"`
}

// NewMaterialsCommand creates the materials command.
func NewMaterialsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "materials",
		Short: "List catalog materials",
		Long: `List the materials that --core and --cladding accept.

Each material can be selected by name or by its label "<name> (<index>)".
"Custom" selects a material given by --*-name and --*-index.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaterials(rootOpts, cmd)
		},
	}
}

func runMaterials(opts *RootOptions, cmd *cobra.Command) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}

	result := MaterialsResult{
		Materials: s.catalog.Materials(),
		Options:   s.catalog.Options(),
	}
	if s.out.Format == "json" {
		return s.out.Success(result)
	}

	w := s.out.Writer
	for _, label := range result.Options {
		fmt.Fprintln(w, label)
	}
	return nil
}
