// Package config holds the command-line configuration and its validation.
package config

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/showa-93/go-mask"
)

// ErrNoKeySource is returned when a command needs a key and none of --key, --key-file or
// --passphrase was given.
var ErrNoKeySource = errors.New("one of --key, --key-file or --passphrase is required")

// Key selects where the key material comes from. At most one source may be set.
type Key struct {
	// Hex is a raw key, hex encoded.
	Hex string `label:"--key" mapstructure:"key" mask:"filled" validate:"omitempty,hexadecimal,exclusive=File,exclusive=Passphrase" yaml:"key"`
	// File is the path to a file holding a hex encoded key.
	File string `label:"--key-file" mapstructure:"key-file" validate:"exclusive=Passphrase" yaml:"key-file"`
	// Passphrase is run through the configured key derivation.
	Passphrase string `label:"--passphrase" mapstructure:"passphrase" mask:"filled" yaml:"passphrase"`
}

// Set reports whether any key source was given.
func (k Key) Set() bool {
	return k.Hex != "" || k.File != "" || k.Passphrase != ""
}

// Cipher selects the cipher configuration and, for passphrases, the key derivation.
type Cipher struct {
	Size       int    `label:"--size"       mapstructure:"size"       validate:"oneof=128 192 256"                  yaml:"size"`
	Mode       string `label:"--mode"       mapstructure:"mode"       validate:"oneof=cbc ecb"                      yaml:"mode"`
	KDF        string `label:"--kdf"        mapstructure:"kdf"        validate:"oneof=legacy hkdf pbkdf2"           yaml:"kdf"`
	Salt       string `label:"--salt"       mapstructure:"salt"       validate:"required_unless=KDF legacy"         yaml:"salt"`
	Iterations int    `label:"--iterations" mapstructure:"iterations" validate:"min=1"                              yaml:"iterations"`
}

// Suffixes controls output file naming.
type Suffixes struct {
	Encrypt string `label:"--encrypt-ext" mapstructure:"encrypt-ext" validate:"required" yaml:"encrypt-ext"`
	Decrypt string `label:"--decrypt-ext" mapstructure:"decrypt-ext"                     yaml:"decrypt-ext"`
}

// Config holds the merged configuration from flags, environment, dotenv and config files.
type Config struct {
	Key      `mapstructure:",squash" yaml:",inline"`
	Cipher   `mapstructure:",squash" yaml:",inline"`
	Suffixes `mapstructure:",squash" yaml:",inline"`

	Parallel           int  `label:"--parallel" mapstructure:"parallel" validate:"min=1" yaml:"parallel"`
	Quiet              bool `mapstructure:"quiet"               yaml:"quiet"`
	Delete             bool `mapstructure:"delete"              yaml:"delete"`
	Stats              bool `mapstructure:"stats"               yaml:"stats"`
	PreserveTimestamps bool `mapstructure:"preserve-timestamps" yaml:"preserve-timestamps"`
	Show               bool `mapstructure:"show"                yaml:"-"`

	// ConfigFile and EnvFile are consumed while loading and only kept for display.
	ConfigFile string `mapstructure:"config"   yaml:"config,omitempty"`
	EnvFile    string `mapstructure:"env-file" yaml:"env-file,omitempty"`

	// Set by the command, not by the user.
	Decrypt bool     `mapstructure:"-" yaml:"-"`
	Files   []string `mapstructure:"-" yaml:"files,omitempty"`
}

// Validate checks the configuration against its struct tags and the key length against the
// cipher size.
func (c Config) Validate() error {
	validate, err := newValidator()
	if err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", describe(err))
	}

	if want := c.Size / 4; c.Hex != "" && len(c.Hex) != want {
		return fmt.Errorf("--key: got %d hex characters, want %d for AES-%d", len(c.Hex), want, c.Size)
	}

	return nil
}

// RequireKey returns ErrNoKeySource if no key source is set.
func (c Config) RequireKey() error {
	if !c.Key.Set() {
		return ErrNoKeySource
	}

	return nil
}

// Display renders the configuration as YAML with secrets masked.
func (c Config) Display() (string, error) {
	masked, err := mask.Mask(c)
	if err != nil {
		return "", fmt.Errorf("masking configuration: %w", err)
	}

	out, err := yaml.Marshal(masked)
	if err != nil {
		return "", fmt.Errorf("marshalling configuration: %w", err)
	}

	return string(out), nil
}
