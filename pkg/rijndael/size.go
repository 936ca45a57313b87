package rijndael

import (
	"fmt"
	"strconv"
)

// BlockSize is the AES block size in bytes.
const BlockSize = 16

// nb is the number of 32-bit columns in the state.
const nb = 4

// Size selects one of the three AES configurations.
type Size int

const (
	// AES128 uses a 16-byte key and 10 rounds.
	AES128 Size = iota
	// AES192 uses a 24-byte key and 12 rounds.
	AES192
	// AES256 uses a 32-byte key and 14 rounds.
	AES256
)

// params are the fixed parameters of a configuration.
type params struct {
	keySize int
	nk      int
	nr      int
	bits    int
}

//nolint:gochecknoglobals
var configurations = [...]params{
	AES128: {keySize: 16, nk: 4, nr: 10, bits: 128},
	AES192: {keySize: 24, nk: 6, nr: 12, bits: 192},
	AES256: {keySize: 32, nk: 8, nr: 14, bits: 256},
}

// UnsupportedSizeError is returned when a configuration selector is not recognized.
type UnsupportedSizeError int

func (e UnsupportedSizeError) Error() string {
	return "rijndael: unsupported key size " + strconv.Itoa(int(e))
}

// ParseSize maps a key length in bits (128, 192 or 256) to a Size.
func ParseSize(bits int) (Size, error) {
	for size, p := range configurations {
		if p.bits == bits {
			return Size(size), nil
		}
	}

	return 0, UnsupportedSizeError(bits)
}

// SizeForKey maps a raw key length in bytes (16, 24 or 32) to a Size.
func SizeForKey(keyLen int) (Size, error) {
	for size, p := range configurations {
		if p.keySize == keyLen {
			return Size(size), nil
		}
	}

	return 0, UnsupportedSizeError(keyLen * 8) //nolint:mnd
}

// Valid reports whether s is one of the defined configurations.
func (s Size) Valid() bool {
	return s >= AES128 && s <= AES256
}

// KeySize returns the raw key length in bytes.
func (s Size) KeySize() int { return s.params().keySize }

// Nk returns the number of 32-bit words in the key.
func (s Size) Nk() int { return s.params().nk }

// Nr returns the number of rounds.
func (s Size) Nr() int { return s.params().nr }

// Bits returns the key length in bits.
func (s Size) Bits() int { return s.params().bits }

// String returns the conventional name, e.g. "AES-256".
func (s Size) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Size(%d)", int(s))
	}

	return fmt.Sprintf("AES-%d", s.Bits())
}

// roundKeySize is the length of the expanded key schedule in bytes.
func (s Size) roundKeySize() int {
	return BlockSize * (s.Nr() + 1)
}

func (s Size) params() params {
	if !s.Valid() {
		panic(UnsupportedSizeError(int(s)))
	}

	return configurations[s]
}
