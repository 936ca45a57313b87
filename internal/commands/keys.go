package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/aescbc/internal/config"
	"github.com/idelchi/aescbc/internal/logic"
)

// NewDigestCommand creates a new cobra command for the digest subcommand.
func NewDigestCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "digest [flags] files...",
		Aliases: []string{"md5"},
		Short:   "Print the MD5 digest of files",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, false),
		RunE:    runE(cfg, logic.RunDigest),
	}
}

// NewDeriveCommand creates a new cobra command for the derive subcommand.
func NewDeriveCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "derive [flags]",
		Short: "Print the key derived from --passphrase",
		Long: `Print the hex key derived from --passphrase with the --kdf method for the --size cipher.
The legacy method is MD5 based and kept for compatibility; prefer pbkdf2 for new keys.`,
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg, true),
		RunE:    runE(cfg, logic.RunDerive),
	}
}

// NewGenerateCommand creates a new cobra command for the generate subcommand.
func NewGenerateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "generate [flags]",
		Aliases: []string{"gen"},
		Short:   "Generate a new random key for --size",
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg, false),
		RunE:    runE(cfg, logic.RunGenerate),
	}
}
