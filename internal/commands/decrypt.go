package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/aescbc/internal/config"
	"github.com/idelchi/aescbc/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] files...",
		Aliases: []string{"dec"},
		Short:   "Decrypt files",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Decrypt = true

			return preRun(cfg, true)(cmd, args)
		},
		RunE: runE(cfg, logic.Run),
	}
}
