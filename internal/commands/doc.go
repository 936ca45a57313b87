// Package commands provides the command-line interface for the aescbc tool.
//
// It implements commands for:
//   - encryption and decryption of files
//   - MD5 digests of files
//   - key derivation and key generation
//
// Configuration is merged by viper from flags, AESCBC_ prefixed environment variables,
// an optional dotenv file and an optional config file, then validated before any command runs.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idelchi/aescbc/internal/config"
)

// preRun returns a PreRunE handler that stores positional args in cfg.Files and validates
// the configuration. With --show, validation is skipped so the configuration can be inspected.
func preRun(cfg *config.Config, needsKey bool) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		cfg.Files = args

		if cfg.Show {
			return nil
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		if needsKey {
			return cfg.RequireKey()
		}

		return nil
	}
}

// runE wraps a command body so that --show prints the configuration instead of running it.
func runE(cfg *config.Config, run func(*config.Config) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if !cfg.Show {
			return run(cfg)
		}

		out, err := cfg.Display()
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), out)

		return nil
	}
}
