package session

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/idelchi/aescbc/pkg/kdf"
	"github.com/idelchi/aescbc/pkg/rijndael"
)

// BlockSize is the AES block size in bytes.
const BlockSize = rijndael.BlockSize

type state int

const (
	stateNoKey state = iota
	stateKeyed
	stateStreaming
)

// Session bundles an AES context, its IV register and the CBC streaming carry.
type Session struct {
	ctx   *rijndael.Context
	state state

	// carry holds input that has not yet completed a block.
	carry []byte

	// rand is the source of fresh IVs.
	rand io.Reader
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the source of IVs generated by Encrypt and NewEncryptWriter.
// The default is crypto/rand.
func WithRand(r io.Reader) Option {
	return func(s *Session) {
		s.rand = r
	}
}

// New returns an unkeyed session for the given cipher size.
func New(size rijndael.Size, opts ...Option) (*Session, error) {
	if !size.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedConfiguration, size)
	}

	s := &Session{
		ctx:   rijndael.NewContext(size),
		carry: make([]byte, 0, BlockSize),
		rand:  rand.Reader,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// NewFromBits returns an unkeyed session for a key length of 128, 192 or 256 bits.
func NewFromBits(bits int, opts ...Option) (*Session, error) {
	size, err := rijndael.ParseSize(bits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedConfiguration, err)
	}

	return New(size, opts...)
}

// Default returns an unkeyed AES-256 session.
func Default(opts ...Option) *Session {
	s, _ := New(rijndael.AES256, opts...)

	return s
}

// Size returns the cipher configuration.
func (s *Session) Size() rijndael.Size { return s.ctx.Size() }

// HasKey reports whether a key has been set.
func (s *Session) HasKey() bool { return s.state != stateNoKey }

// Streaming reports whether a CBC stream has been started and not yet ended.
func (s *Session) Streaming() bool { return s.state == stateStreaming }

// IV returns a copy of the IV register. While streaming it holds the last ciphertext block
// processed.
func (s *Session) IV() []byte { return s.ctx.IV() }

// SetKey installs a raw key, which must be exactly Size().KeySize() bytes.
// On failure the session keeps its previous key, if any. Setting a key ends any stream
// in progress.
func (s *Session) SetKey(key []byte) error {
	if len(key) != s.Size().KeySize() {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeySize, len(key), s.Size().KeySize())
	}

	s.ctx.SetKey(key)
	s.endStream()

	return nil
}

// SetPassphrase derives a key from passphrase with the legacy derivation (kdf.Legacy)
// and installs it.
func (s *Session) SetPassphrase(passphrase []byte) error {
	return s.SetKey(kdf.Legacy(passphrase, s.Size()))
}

// Clone returns a session with a copy of the key, IV register and keying state.
// The clone never shares or inherits the streaming carry; a clone of a streaming session
// is keyed but must be started again.
func (s *Session) Clone() *Session {
	clone := &Session{
		ctx:   s.ctx.Clone(),
		state: s.state,
		carry: make([]byte, 0, BlockSize),
		rand:  s.rand,
	}

	if clone.state == stateStreaming {
		clone.state = stateKeyed
	}

	return clone
}

// Reset wipes the key and returns the session to the unkeyed state.
func (s *Session) Reset() {
	s.ctx.Reset()
	clear(s.carry)

	s.carry = s.carry[:0]
	s.state = stateNoKey
}

func (s *Session) requireKey() error {
	if s.state == stateNoKey {
		return ErrNoKey
	}

	return nil
}

func (s *Session) requireStreaming() error {
	switch s.state {
	case stateNoKey:
		return ErrNoKey
	case stateKeyed:
		return ErrNotStreaming
	default:
		return nil
	}
}

// endStream discards the carry and moves a keyed session out of streaming.
func (s *Session) endStream() {
	clear(s.carry)

	s.carry = s.carry[:0]
	s.state = stateKeyed
}
