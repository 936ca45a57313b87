package rijndael

// Context is an AES instance for one configuration. It owns the expanded key schedule
// and the IV register used by the CBC functions.
//
// A Context is not safe for concurrent use.
type Context struct {
	size     Size
	roundKey []byte
	iv       [BlockSize]byte
	hasKey   bool
}

// NewContext returns an unkeyed Context for the given configuration.
// It panics if size is not a valid Size.
func NewContext(size Size) *Context {
	return &Context{
		size:     size,
		roundKey: make([]byte, size.roundKeySize()),
	}
}

// Size returns the configuration of the context.
func (c *Context) Size() Size { return c.size }

// HasKey reports whether SetKey has been called.
func (c *Context) HasKey() bool { return c.hasKey }

// SetKey expands key into the round-key schedule.
// The length of key must equal c.Size().KeySize().
func (c *Context) SetKey(key []byte) {
	if len(key) != c.size.KeySize() {
		panic("rijndael: key length does not match configuration")
	}

	expandKey(c.roundKey, key, c.size.Nk(), c.size.Nr())

	c.hasKey = true
}

// SetIV loads iv into the IV register. The length of iv must be BlockSize.
func (c *Context) SetIV(iv []byte) {
	if len(iv) != BlockSize {
		panic("rijndael: IV length must equal block size")
	}

	copy(c.iv[:], iv)
}

// IV returns a copy of the IV register.
func (c *Context) IV() []byte {
	iv := make([]byte, BlockSize)
	copy(iv, c.iv[:])

	return iv
}

// Clone returns an independent copy of the key schedule, IV register and key state.
func (c *Context) Clone() *Context {
	clone := &Context{
		size:     c.size,
		roundKey: make([]byte, len(c.roundKey)),
		iv:       c.iv,
		hasKey:   c.hasKey,
	}

	copy(clone.roundKey, c.roundKey)

	return clone
}

// Reset zeroes the key schedule and IV register.
func (c *Context) Reset() {
	clear(c.roundKey)
	clear(c.iv[:])

	c.hasKey = false
}

// BlockSize returns the cipher's block size.
func (c *Context) BlockSize() int { return BlockSize }

// Encrypt encrypts the first block in src into dst.
// Dst and src must overlap entirely or not at all.
func (c *Context) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rijndael: input not full block")
	}

	if len(dst) < BlockSize {
		panic("rijndael: output not full block")
	}

	copy(dst[:BlockSize], src[:BlockSize])
	c.EncryptBlock(dst[:BlockSize])
}

// Decrypt decrypts the first block in src into dst.
// Dst and src must overlap entirely or not at all.
func (c *Context) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rijndael: input not full block")
	}

	if len(dst) < BlockSize {
		panic("rijndael: output not full block")
	}

	copy(dst[:BlockSize], src[:BlockSize])
	c.DecryptBlock(dst[:BlockSize])
}

// EncryptBlock encrypts exactly one block in place.
func (c *Context) EncryptBlock(block []byte) {
	state := (*[BlockSize]byte)(block)
	nr := c.size.Nr()

	addRoundKey(state, c.roundKey, 0)

	for round := 1; ; round++ {
		subBytes(state)
		shiftRows(state)

		if round == nr {
			break
		}

		mixColumns(state)
		addRoundKey(state, c.roundKey, round)
	}

	addRoundKey(state, c.roundKey, nr)
}

// DecryptBlock decrypts exactly one block in place.
func (c *Context) DecryptBlock(block []byte) {
	state := (*[BlockSize]byte)(block)
	nr := c.size.Nr()

	addRoundKey(state, c.roundKey, nr)

	for round := nr - 1; ; round-- {
		invShiftRows(state)
		invSubBytes(state)
		addRoundKey(state, c.roundKey, round)

		if round == 0 {
			break
		}

		invMixColumns(state)
	}
}
