package session

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	// ErrInvalidArgument is returned for wrong-length keys or IVs and for operations the
	// current state does not allow.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCorruptData is returned when input cannot be a valid ciphertext.
	ErrCorruptData = errors.New("corrupt data")
	// ErrUnsupportedConfiguration is returned for an unknown cipher size.
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")
)

var (
	// ErrNoKey is returned when a cipher operation is attempted before SetKey.
	ErrNoKey = fmt.Errorf("%w: no key set", ErrInvalidArgument)
	// ErrInvalidKeySize is returned when a raw key does not match the configured key size.
	ErrInvalidKeySize = fmt.Errorf("%w: unacceptable key", ErrInvalidArgument)
	// ErrInvalidIVSize is returned when an IV is not exactly one block long.
	ErrInvalidIVSize = fmt.Errorf("%w: IV must be %d bytes", ErrInvalidArgument, BlockSize)
	// ErrNotStreaming is returned by chunk and End calls made before Start.
	ErrNotStreaming = fmt.Errorf("%w: CBC stream not started", ErrInvalidArgument)
	// ErrWriterClosed is returned when writing to a closed stream writer.
	ErrWriterClosed = fmt.Errorf("%w: writer is closed", ErrInvalidArgument)

	// ErrEmptyData is returned when an operation needs at least one block and got none.
	ErrEmptyData = fmt.Errorf("%w: no data", ErrCorruptData)
	// ErrInvalidBlockSize is returned when ciphertext is not aligned with the block size.
	ErrInvalidBlockSize = fmt.Errorf("%w: ciphertext is not a multiple of block size", ErrCorruptData)
	// ErrInvalidPadding is returned when PKCS7 padding is malformed.
	ErrInvalidPadding = fmt.Errorf("%w: invalid padding", ErrCorruptData)
	// ErrMissingIV is returned when a ciphertext is too short to carry its IV.
	ErrMissingIV = fmt.Errorf("%w: ciphertext shorter than IV", ErrCorruptData)
)
