package kdf

import (
	"fmt"

	"github.com/idelchi/aescbc/pkg/rijndael"
)

// Method selects a derivation function.
type Method string

const (
	// MethodLegacy is the MD5-chained derivation, see Legacy.
	MethodLegacy Method = "legacy"
	// MethodHKDF is HKDF-SHA256, see HKDF.
	MethodHKDF Method = "hkdf"
	// MethodPBKDF2 is PBKDF2-HMAC-SHA256, see PBKDF2.
	MethodPBKDF2 Method = "pbkdf2"
)

// Params carries the inputs shared by all methods.
type Params struct {
	Method     Method
	Salt       []byte
	Iterations int
	Size       rijndael.Size
}

// Derive derives a key from secret with the method and parameters in p.
func Derive(secret []byte, p Params) ([]byte, error) {
	switch p.Method {
	case MethodLegacy, "":
		return Legacy(secret, p.Size), nil
	case MethodHKDF:
		return HKDF(secret, p.Salt, p.Size)
	case MethodPBKDF2:
		if p.Iterations < 1 {
			return nil, fmt.Errorf("pbkdf2: iterations must be positive, got %d", p.Iterations)
		}

		return PBKDF2(secret, p.Salt, p.Iterations, p.Size), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, p.Method)
	}
}
