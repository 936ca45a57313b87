package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/aescbc/internal/config"
	"github.com/idelchi/aescbc/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt [flags] files...",
		Aliases: []string{"enc"},
		Short:   "Encrypt files",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, true),
		RunE:    runE(cfg, logic.Run),
	}
}
