package session

import (
	"fmt"

	"github.com/idelchi/aescbc/pkg/kdf"
)

// Encrypt encrypts data in CBC mode under a fresh random IV and returns IV || ciphertext.
// Any stream in progress is ended.
func (s *Session) Encrypt(data []byte) ([]byte, error) {
	if err := s.requireKey(); err != nil {
		return nil, err
	}

	iv, err := kdf.NewIV(s.rand)
	if err != nil {
		return nil, fmt.Errorf("encrypting: %w", err)
	}

	return s.encrypt(iv, data)
}

// EncryptWithIV is Encrypt with a caller-chosen IV, which must be BlockSize bytes.
func (s *Session) EncryptWithIV(iv, data []byte) ([]byte, error) {
	if err := s.requireKey(); err != nil {
		return nil, err
	}

	if len(iv) != BlockSize {
		return nil, ErrInvalidIVSize
	}

	return s.encrypt(iv, data)
}

func (s *Session) encrypt(iv, data []byte) ([]byte, error) {
	if err := s.Start(iv); err != nil {
		return nil, err
	}

	body, err := s.EncryptChunk(data)
	if err != nil {
		return nil, err
	}

	tail, err := s.EndEncrypt(nil)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(iv)+len(body)+len(tail))
	out = append(out, iv...)
	out = append(out, body...)

	return append(out, tail...), nil
}

// Decrypt reverses Encrypt: it reads the IV from the first block of data, decrypts the rest
// and strips the padding. Any stream in progress is ended, also on failure.
func (s *Session) Decrypt(data []byte) ([]byte, error) {
	if err := s.requireKey(); err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	if len(data) < BlockSize {
		return nil, ErrMissingIV
	}

	iv, ciphertext := data[:BlockSize], data[BlockSize:]

	if len(ciphertext) == 0 {
		return nil, ErrEmptyData
	}

	if len(ciphertext)%BlockSize != 0 {
		return nil, ErrInvalidBlockSize
	}

	if err := s.Start(iv); err != nil {
		return nil, err
	}

	last := len(ciphertext) - BlockSize

	body, err := s.DecryptChunk(ciphertext[:last])
	if err != nil {
		s.endStream()

		return nil, err
	}

	tail, err := s.EndDecrypt(ciphertext[last:])
	if err != nil {
		s.endStream()

		return nil, err
	}

	return append(body, tail...), nil
}
