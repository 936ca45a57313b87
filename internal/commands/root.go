package commands

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/aescbc/internal/config"
)

// envPrefix prefixes every environment variable, e.g. AESCBC_KEY_FILE for --key-file.
const envPrefix = "AESCBC"

// ErrNotString is returned when a config file gives a secret as a number, e.g. an unquoted
// all-digit hex key, which YAML would otherwise read as a number and alter.
var ErrNotString = errors.New("value must be a string")

// stringKeys must reach the configuration exactly as written.
//
//nolint:gochecknoglobals
var stringKeys = []string{"key", "key-file", "passphrase", "salt"}

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "aescbc [flags] command [flags]",
		Short: "AES-CBC file encryption utility",
		Long: `A file encryption utility built on AES-128/192/256 in CBC mode with PKCS7 padding.
Encrypted files are laid out as IV || ciphertext. Keys are given in hex, read from a file,
or derived from a passphrase.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return load(cmd, cfg)
		},
	}

	flags := root.PersistentFlags()

	flags.BoolP("show", "s", false, "Show the configuration and exit")
	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.BoolP("delete", "d", false, "Delete the original file after successful encryption/decryption")
	flags.Bool("stats", false, "Print a summary after processing")
	flags.Bool("preserve-timestamps", false, "Copy the modification time of the input to the output")

	flags.StringP("key", "k", "", "Encryption key, hex-encoded (32, 48 or 64 characters)")
	flags.StringP("key-file", "f", "", "Path to a file with the hex-encoded encryption key")
	flags.StringP("passphrase", "p", "", "Passphrase to derive the key from")

	flags.Int("size", 256, "Key size in bits: 128, 192 or 256")
	flags.StringP("mode", "m", "cbc", "Cipher mode: cbc or ecb")
	flags.String("kdf", "legacy", "Passphrase key derivation: legacy, hkdf or pbkdf2")
	flags.String("salt", "", "Salt for the hkdf and pbkdf2 derivations")
	flags.Int("iterations", 600_000, "Iterations for the pbkdf2 derivation")

	flags.String("encrypt-ext", ".enc", "Suffix to append to encrypted files")
	flags.String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")

	flags.StringP("config", "c", "", "Path to a config file (yaml, json or toml)")
	flags.String("env-file", "", "Path to a dotenv file to load before reading the environment")

	root.AddCommand(
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
		NewDigestCommand(cfg),
		NewDeriveCommand(cfg),
		NewGenerateCommand(cfg),
	)

	return root
}

// load merges flags, the dotenv file, the environment and the config file into cfg.
// Precedence, highest first: flags, environment, config file, flag defaults.
func load(cmd *cobra.Command, cfg *config.Config) error {
	v := viper.New()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if envFile := v.GetString("env-file"); envFile != "" {
		path, err := homedir.Expand(envFile)
		if err != nil {
			return fmt.Errorf("expanding env file path: %w", err)
		}

		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading env file: %w", err)
		}
	}

	if configFile := v.GetString("config"); configFile != "" {
		path, err := homedir.Expand(configFile)
		if err != nil {
			return fmt.Errorf("expanding config file path: %w", err)
		}

		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	for _, name := range stringKeys {
		if value := v.Get(name); value != nil {
			if _, ok := value.(string); !ok {
				return fmt.Errorf("%w: %q is a %T, quote it in the config file", ErrNotString, name, value)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	return nil
}
