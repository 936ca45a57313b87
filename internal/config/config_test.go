package config_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/idelchi/aescbc/internal/config"
)

func valid() config.Config {
	return config.Config{
		Cipher: config.Cipher{
			Size:       256,
			Mode:       "cbc",
			KDF:        "legacy",
			Iterations: 600000,
		},
		Suffixes: config.Suffixes{Encrypt: ".enc"},
		Parallel: 4,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*config.Config)
		wantErr string
	}{
		{name: "defaults", modify: func(*config.Config) {}},
		{name: "hex key", modify: func(c *config.Config) { c.Hex = strings.Repeat("ab", 32) }},
		{name: "hex key for AES-128", modify: func(c *config.Config) {
			c.Size = 128
			c.Hex = strings.Repeat("0f", 16)
		}},
		{name: "passphrase with pbkdf2", modify: func(c *config.Config) {
			c.Passphrase = "secret"
			c.KDF = "pbkdf2"
			c.Salt = "salt"
		}},
		{
			name:    "key and passphrase",
			modify: func(c *config.Config) {
				c.Hex = strings.Repeat("ab", 32)
				c.Passphrase = "secret"
			},
			wantErr: "--key is mutually exclusive with --passphrase",
		},
		{
			name:    "key file and passphrase",
			modify: func(c *config.Config) {
				c.File = "key.txt"
				c.Passphrase = "secret"
			},
			wantErr: "--key-file is mutually exclusive with --passphrase",
		},
		{
			name:    "key and key file",
			modify: func(c *config.Config) {
				c.Hex = strings.Repeat("ab", 32)
				c.File = "key.txt"
			},
			wantErr: "--key is mutually exclusive with --key-file",
		},
		{
			name:    "non-hex key",
			modify:  func(c *config.Config) { c.Hex = strings.Repeat("zz", 32) },
			wantErr: "--key",
		},
		{
			name:    "key length does not match size",
			modify: func(c *config.Config) {
				c.Size = 192
				c.Hex = strings.Repeat("ab", 32)
			},
			wantErr: "want 48 for AES-192",
		},
		{
			name:    "unknown size",
			modify:  func(c *config.Config) { c.Size = 512 },
			wantErr: "--size must be one of",
		},
		{
			name:    "unknown mode",
			modify:  func(c *config.Config) { c.Mode = "ctr" },
			wantErr: "--mode must be one of",
		},
		{
			name:    "hkdf without salt",
			modify:  func(c *config.Config) { c.KDF = "hkdf" },
			wantErr: "--salt is required",
		},
		{
			name:    "no workers",
			modify:  func(c *config.Config) { c.Parallel = 0 },
			wantErr: "--parallel must be at least 1",
		},
		{
			name:    "empty encrypt suffix",
			modify:  func(c *config.Config) { c.Suffixes.Encrypt = "" },
			wantErr: "--encrypt-ext is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}

				return
			}

			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRequireKey(t *testing.T) {
	cfg := valid()

	if err := cfg.RequireKey(); !errors.Is(err, config.ErrNoKeySource) {
		t.Errorf("RequireKey() = %v, want ErrNoKeySource", err)
	}

	cfg.File = "key.txt"

	if err := cfg.RequireKey(); err != nil {
		t.Errorf("RequireKey() = %v, want nil", err)
	}
}

func TestDisplayMasksSecrets(t *testing.T) {
	cfg := valid()
	cfg.Passphrase = "hunter2"
	cfg.Files = []string{"a.txt"}

	out, err := cfg.Display()
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(out, "hunter2") {
		t.Errorf("Display() leaked the passphrase:\n%s", out)
	}

	for _, want := range []string{"passphrase:", "size: 256", "mode: cbc", "a.txt"} {
		if !strings.Contains(out, want) {
			t.Errorf("Display() missing %q:\n%s", want, out)
		}
	}

	if cfg.Passphrase != "hunter2" {
		t.Error("Display() modified the configuration")
	}
}
