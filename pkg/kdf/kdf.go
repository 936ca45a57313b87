// Package kdf turns passphrases into AES keys and produces initialization vectors.
//
// Legacy reproduces the MD5-chained derivation used by existing encrypted payloads. It is not a
// standard KDF and offers no work factor; use it only where those payloads must stay readable.
// New call sites should use HKDF for high-entropy secrets or PBKDF2 for human passphrases.
package kdf

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"

	"github.com/idelchi/aescbc/pkg/digest"
	"github.com/idelchi/aescbc/pkg/rijndael"
)

const (
	// IVSize is the length of an initialization vector in bytes.
	IVSize = rijndael.BlockSize

	// legacyMask is XORed into the first digest to form the second half of longer keys.
	legacyMask = 0x55

	// hkdfInfo separates keys derived here from other uses of the same secret.
	hkdfInfo = "aescbc/v1"
)

// ErrUnknownMethod is returned for an unrecognized derivation method.
var ErrUnknownMethod = errors.New("unknown key derivation method")

// Legacy derives a key of size.KeySize() bytes from passphrase.
//
//	k1 = md5(passphrase)
//	AES-128: k1
//	k2 = k1 XOR 0x55 (every byte), k1' = md5(k1), k2' = md5(k2)
//	AES-192: k1'[4:16] || k2'[0:12]
//	AES-256: k1' || k2'
func Legacy(passphrase []byte, size rijndael.Size) []byte {
	k1 := digest.Sum(passphrase)

	if size == rijndael.AES128 {
		return k1[:]
	}

	var k2 [digest.Size]byte
	for i, b := range k1 {
		k2[i] = b ^ legacyMask
	}

	h1 := digest.Sum(k1[:])
	h2 := digest.Sum(k2[:])

	key := make([]byte, 0, size.KeySize())

	switch size {
	case rijndael.AES192:
		const half = 12

		key = append(key, h1[digest.Size-half:]...)
		key = append(key, h2[:half]...)
	case rijndael.AES256:
		key = append(key, h1[:]...)
		key = append(key, h2[:]...)
	default:
		panic(rijndael.UnsupportedSizeError(int(size)))
	}

	return key
}

// HKDF derives a key of size.KeySize() bytes from a high-entropy secret using HKDF-SHA256.
func HKDF(secret, salt []byte, size rijndael.Size) ([]byte, error) {
	reader := hkdf.New(sha256.New, secret, salt, []byte(hkdfInfo))
	key := make([]byte, size.KeySize())

	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}

	return key, nil
}

// PBKDF2 derives a key of size.KeySize() bytes from a passphrase using PBKDF2-HMAC-SHA256.
func PBKDF2(passphrase, salt []byte, iterations int, size rijndael.Size) []byte {
	return pbkdf2.Key(passphrase, salt, iterations, size.KeySize(), sha256.New)
}

// NewIV returns IVSize fresh bytes read from r, or from crypto/rand when r is nil.
func NewIV(r io.Reader) ([]byte, error) {
	if r == nil {
		r = rand.Reader
	}

	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(r, iv); err != nil {
		return nil, fmt.Errorf("generating IV: %w", err)
	}

	return iv, nil
}
