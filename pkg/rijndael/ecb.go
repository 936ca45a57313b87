package rijndael

import "crypto/cipher"

// ecb runs a block cipher over each block independently.
type ecb struct {
	b       cipher.Block
	decrypt bool
}

// NewECBEncrypter returns a BlockMode which encrypts in electronic codebook mode.
func NewECBEncrypter(b cipher.Block) cipher.BlockMode {
	return &ecb{b: b}
}

// NewECBDecrypter returns a BlockMode which decrypts in electronic codebook mode.
func NewECBDecrypter(b cipher.Block) cipher.BlockMode {
	return &ecb{b: b, decrypt: true}
}

func (x *ecb) BlockSize() int { return x.b.BlockSize() }

func (x *ecb) CryptBlocks(dst, src []byte) {
	size := x.b.BlockSize()

	if len(src)%size != 0 {
		panic("rijndael: input not full blocks")
	}

	if len(dst) < len(src) {
		panic("rijndael: output smaller than input")
	}

	for len(src) > 0 {
		if x.decrypt {
			x.b.Decrypt(dst[:size], src[:size])
		} else {
			x.b.Encrypt(dst[:size], src[:size])
		}

		src = src[size:]
		dst = dst[size:]
	}
}
