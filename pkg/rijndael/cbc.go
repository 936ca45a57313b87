package rijndael

import "crypto/subtle"

// CBCEncryptBuffer encrypts buf in place in cipher block chaining mode, starting from the
// IV register. len(buf) must be a multiple of BlockSize. On return the IV register holds the
// last ciphertext block, so a following call continues the same chain.
func (c *Context) CBCEncryptBuffer(buf []byte) {
	if len(buf)%BlockSize != 0 {
		panic("rijndael: input not full blocks")
	}

	iv := c.iv[:]

	for len(buf) > 0 {
		block := buf[:BlockSize]

		subtle.XORBytes(block, block, iv)
		c.EncryptBlock(block)

		iv = block
		buf = buf[BlockSize:]
	}

	copy(c.iv[:], iv)
}

// CBCDecryptBuffer decrypts buf in place in cipher block chaining mode, starting from the
// IV register. len(buf) must be a multiple of BlockSize. On return the IV register holds the
// last ciphertext block that was consumed.
func (c *Context) CBCDecryptBuffer(buf []byte) {
	if len(buf)%BlockSize != 0 {
		panic("rijndael: input not full blocks")
	}

	var next [BlockSize]byte

	for len(buf) > 0 {
		block := buf[:BlockSize]

		copy(next[:], block)
		c.DecryptBlock(block)
		subtle.XORBytes(block, block, c.iv[:])

		c.iv = next
		buf = buf[BlockSize:]
	}
}
