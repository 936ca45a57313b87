package session

// Start begins a CBC stream with the given IV, discarding any previous carry.
func (s *Session) Start(iv []byte) error {
	if err := s.requireKey(); err != nil {
		return err
	}

	if len(iv) != BlockSize {
		return ErrInvalidIVSize
	}

	s.ctx.SetIV(iv)
	s.endStream()
	s.state = stateStreaming

	return nil
}

// EncryptChunk feeds plaintext into the stream and returns the ciphertext of every block
// completed so far. Input that does not complete a block is kept for the next call.
func (s *Session) EncryptChunk(data []byte) ([]byte, error) {
	if err := s.requireStreaming(); err != nil {
		return nil, err
	}

	return s.feed(data, s.ctx.CBCEncryptBuffer), nil
}

// DecryptChunk feeds ciphertext into the stream and returns the plaintext of every block
// completed so far, padding included. The final block should be passed to EndDecrypt instead
// so the padding is removed.
func (s *Session) DecryptChunk(data []byte) ([]byte, error) {
	if err := s.requireStreaming(); err != nil {
		return nil, err
	}

	return s.feed(data, s.ctx.CBCDecryptBuffer), nil
}

// EndEncrypt feeds the last plaintext, pads, and returns the remaining ciphertext.
// The session returns to the keyed state.
func (s *Session) EndEncrypt(data []byte) ([]byte, error) {
	if err := s.requireStreaming(); err != nil {
		return nil, err
	}

	buf := pkcs7Pad(concat(s.carry, data), BlockSize)
	s.ctx.CBCEncryptBuffer(buf)
	s.endStream()

	return buf, nil
}

// EndDecrypt feeds the last ciphertext, decrypts everything still buffered and strips the
// padding. The buffered input must be a non-empty multiple of the block size. On failure the
// carry and IV register are left as they were and the stream stays open.
func (s *Session) EndDecrypt(data []byte) ([]byte, error) {
	if err := s.requireStreaming(); err != nil {
		return nil, err
	}

	buf := concat(s.carry, data)

	if len(buf) == 0 {
		return nil, ErrEmptyData
	}

	if len(buf)%BlockSize != 0 {
		return nil, ErrInvalidBlockSize
	}

	iv := s.ctx.IV()
	s.ctx.CBCDecryptBuffer(buf)

	plaintext, err := pkcs7Unpad(buf)
	if err != nil {
		s.ctx.SetIV(iv)

		return nil, err
	}

	s.endStream()

	return plaintext, nil
}

// feed appends data to the carry, transforms every whole block and keeps the rest.
func (s *Session) feed(data []byte, transform func([]byte)) []byte {
	s.carry = append(s.carry, data...)

	whole := len(s.carry) / BlockSize * BlockSize
	if whole == 0 {
		return nil
	}

	out := make([]byte, whole)
	copy(out, s.carry[:whole])
	transform(out)

	s.carry = append(s.carry[:0], s.carry[whole:]...)

	return out
}

func concat(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+len(b))

	return append(append(out, a...), b...)
}
