package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// InitResult describes an initialized store.
type InitResult struct {
	Path    string `json:"path"`
	Backend string `json:"backend"`
	Records int    `json:"records"`
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the calculation store",
		Long: `Create the calculation store if it does not exist.

For the csv backend this writes the header row:
  Core Material,Core RI,Cladding Material,Cladding RI,NA

Running init on an existing store leaves its records untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(rootOpts, cmd)
		},
	}
}

func runInit(opts *RootOptions, cmd *cobra.Command) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}
	if err := s.openStore(commandContext(cmd)); err != nil {
		return err
	}
	defer s.Close()

	result := InitResult{
		Path:    s.store.Location(),
		Backend: s.cfg.Store.Backend,
		Records: s.store.Len(),
	}
	if s.out.Format == "json" {
		return s.out.Success(result)
	}
	return s.out.Success(fmt.Sprintf("✓ Store ready: %s (%s, %d records)", result.Path, result.Backend, result.Records))
}
