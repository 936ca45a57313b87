package session

import (
	"fmt"
	"io"

	"github.com/idelchi/aescbc/pkg/kdf"
)

// encryptWriter streams plaintext through a session and writes IV || ciphertext to w.
type encryptWriter struct {
	w      io.Writer
	s      *Session
	closed bool
}

// NewEncryptWriter starts a CBC stream on s under a fresh IV, writes the IV to w and returns a
// writer that encrypts everything written to it. Close must be called to write the final,
// padded block. The output has the same layout as Encrypt.
func NewEncryptWriter(w io.Writer, s *Session) (io.WriteCloser, error) {
	if err := s.requireKey(); err != nil {
		return nil, err
	}

	iv, err := kdf.NewIV(s.rand)
	if err != nil {
		return nil, err
	}

	if err := s.Start(iv); err != nil {
		return nil, err
	}

	if _, err := w.Write(iv); err != nil {
		return nil, fmt.Errorf("writing IV: %w", err)
	}

	return &encryptWriter{w: w, s: s}, nil
}

// Write implements io.Writer, emitting ciphertext for every completed block.
func (ew *encryptWriter) Write(data []byte) (int, error) {
	if ew.closed {
		return 0, ErrWriterClosed
	}

	ciphertext, err := ew.s.EncryptChunk(data)
	if err != nil {
		return 0, err
	}

	if len(ciphertext) > 0 {
		if _, err := ew.w.Write(ciphertext); err != nil {
			return 0, fmt.Errorf("writing encrypted blocks: %w", err)
		}
	}

	return len(data), nil
}

// Close implements io.Closer, padding and writing the final block.
func (ew *encryptWriter) Close() error {
	if ew.closed {
		return nil
	}

	ew.closed = true

	ciphertext, err := ew.s.EndEncrypt(nil)
	if err != nil {
		return err
	}

	if _, err := ew.w.Write(ciphertext); err != nil {
		return fmt.Errorf("writing final encrypted block: %w", err)
	}

	return nil
}

// decryptWriter consumes IV || ciphertext and writes the plaintext to w.
type decryptWriter struct {
	w  io.Writer
	s  *Session
	iv []byte

	// pending holds the trailing ciphertext block, which carries the padding.
	pending []byte

	started bool
	closed  bool
}

// NewDecryptWriter returns a writer that expects the layout produced by Encrypt: the first
// BlockSize bytes written are the IV, the rest is ciphertext. The last block is held back until
// Close, which strips the padding.
func NewDecryptWriter(w io.Writer, s *Session) (io.WriteCloser, error) {
	if err := s.requireKey(); err != nil {
		return nil, err
	}

	return &decryptWriter{
		w:       w,
		s:       s,
		iv:      make([]byte, 0, BlockSize),
		pending: make([]byte, 0, 2*BlockSize),
	}, nil
}

// Write implements io.Writer, emitting plaintext for every block except the last one seen.
func (dw *decryptWriter) Write(data []byte) (int, error) {
	if dw.closed {
		return 0, ErrWriterClosed
	}

	n := len(data)

	if !dw.started {
		take := min(BlockSize-len(dw.iv), len(data))
		dw.iv = append(dw.iv, data[:take]...)
		data = data[take:]

		if len(dw.iv) < BlockSize {
			return n, nil
		}

		if err := dw.s.Start(dw.iv); err != nil {
			return 0, err
		}

		dw.started = true
	}

	dw.pending = append(dw.pending, data...)

	if len(dw.pending) <= BlockSize {
		return n, nil
	}

	release := len(dw.pending) - BlockSize

	plaintext, err := dw.s.DecryptChunk(dw.pending[:release])
	if err != nil {
		return 0, err
	}

	dw.pending = append(dw.pending[:0], dw.pending[release:]...)

	if len(plaintext) > 0 {
		if _, err := dw.w.Write(plaintext); err != nil {
			return 0, fmt.Errorf("writing decrypted blocks: %w", err)
		}
	}

	return n, nil
}

// Close implements io.Closer, decrypting the held-back block and removing the padding.
func (dw *decryptWriter) Close() error {
	if dw.closed {
		return nil
	}

	dw.closed = true

	if !dw.started {
		return ErrMissingIV
	}

	plaintext, err := dw.s.EndDecrypt(dw.pending)
	if err != nil {
		return fmt.Errorf("finalizing decryption: %w", err)
	}

	if _, err := dw.w.Write(plaintext); err != nil {
		return fmt.Errorf("writing final decrypted block: %w", err)
	}

	return nil
}
