package encryption

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/idelchi/aescbc/internal/config"
	"github.com/idelchi/aescbc/pkg/kdf"
	"github.com/idelchi/aescbc/pkg/rijndael"
)

// LoadKey resolves the raw key from whichever source the configuration names:
// a hex string, a file holding a hex string, or a passphrase run through the configured KDF.
func LoadKey(cfg *config.Config) ([]byte, error) {
	size, err := rijndael.ParseSize(cfg.Size)
	if err != nil {
		return nil, err
	}

	switch {
	case cfg.Hex != "":
		return fromHex(cfg.Hex, size)
	case cfg.File != "":
		path, err := homedir.Expand(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("expanding key file path: %w", err)
		}

		data, err := os.ReadFile(path) //nolint:gosec // path is user supplied
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}

		return fromHex(string(data), size)
	case cfg.Passphrase != "":
		key, err := kdf.Derive([]byte(cfg.Passphrase), kdf.Params{
			Method:     kdf.Method(cfg.KDF),
			Salt:       []byte(cfg.Salt),
			Iterations: cfg.Iterations,
			Size:       size,
		})
		if err != nil {
			return nil, fmt.Errorf("deriving key: %w", err)
		}

		return key, nil
	default:
		return nil, config.ErrNoKeySource
	}
}

func fromHex(s string, size rijndael.Size) ([]byte, error) {
	key, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("decoding hex key: %w", err)
	}

	if len(key) != size.KeySize() {
		return nil, fmt.Errorf("%s requires a %d-byte key (%d hex characters), got %d bytes",
			size, size.KeySize(), 2*size.KeySize(), len(key))
	}

	return key, nil
}
