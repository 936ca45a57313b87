package session

import "github.com/idelchi/aescbc/pkg/rijndael"

// EncryptECB pads data with PKCS7 and encrypts every block independently.
// It does not touch the IV register or a stream in progress.
func (s *Session) EncryptECB(data []byte) ([]byte, error) {
	if err := s.requireKey(); err != nil {
		return nil, err
	}

	buf := pkcs7Pad(data, BlockSize)
	rijndael.NewECBEncrypter(s.ctx).CryptBlocks(buf, buf)

	return buf, nil
}

// DecryptECB decrypts every block of data independently and strips the PKCS7 padding.
// data must be a non-empty multiple of the block size.
func (s *Session) DecryptECB(data []byte) ([]byte, error) {
	if err := s.requireKey(); err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	if len(data)%BlockSize != 0 {
		return nil, ErrInvalidBlockSize
	}

	buf := make([]byte, len(data))
	rijndael.NewECBDecrypter(s.ctx).CryptBlocks(buf, data)

	return pkcs7Unpad(buf)
}
