package rijndael

// The state is kept in the input byte order, which is column-major:
// state[4*c+r] is row r of column c.

// expandKey fills roundKey with nb*(nr+1) words derived from key.
func expandKey(roundKey, key []byte, nk, nr int) {
	copy(roundKey, key[:4*nk])

	var word [4]byte

	for i := nk; i < nb*(nr+1); i++ {
		copy(word[:], roundKey[4*(i-1):4*i])

		switch {
		case i%nk == 0:
			word[0], word[1], word[2], word[3] = word[1], word[2], word[3], word[0]
			subWord(&word)
			word[0] ^= rcon[i/nk]
		case nk > 6 && i%nk == 4:
			subWord(&word)
		}

		for j := range word {
			roundKey[4*i+j] = roundKey[4*(i-nk)+j] ^ word[j]
		}
	}
}

func subWord(word *[4]byte) {
	for i, b := range word {
		word[i] = sbox[b]
	}
}

func addRoundKey(state *[BlockSize]byte, roundKey []byte, round int) {
	key := roundKey[round*BlockSize : (round+1)*BlockSize]

	for i := range state {
		state[i] ^= key[i]
	}
}

func subBytes(state *[BlockSize]byte) {
	for i, b := range state {
		state[i] = sbox[b]
	}
}

func invSubBytes(state *[BlockSize]byte) {
	for i, b := range state {
		state[i] = invSbox[b]
	}
}

// shiftRows rotates row r left by r columns.
func shiftRows(state *[BlockSize]byte) {
	old := *state

	for c := range nb {
		for r := 1; r < 4; r++ {
			state[4*c+r] = old[4*((c+r)%nb)+r]
		}
	}
}

// invShiftRows rotates row r right by r columns.
func invShiftRows(state *[BlockSize]byte) {
	old := *state

	for c := range nb {
		for r := 1; r < 4; r++ {
			state[4*((c+r)%nb)+r] = old[4*c+r]
		}
	}
}

func mixColumns(state *[BlockSize]byte) {
	for c := range nb {
		col := state[4*c : 4*c+4]
		a0, a1, a2, a3 := col[0], col[1], col[2], col[3]

		col[0] = xtime(a0) ^ xtime(a1) ^ a1 ^ a2 ^ a3
		col[1] = a0 ^ xtime(a1) ^ xtime(a2) ^ a2 ^ a3
		col[2] = a0 ^ a1 ^ xtime(a2) ^ xtime(a3) ^ a3
		col[3] = xtime(a0) ^ a0 ^ a1 ^ a2 ^ xtime(a3)
	}
}

func invMixColumns(state *[BlockSize]byte) {
	for c := range nb {
		col := state[4*c : 4*c+4]
		a0, a1, a2, a3 := col[0], col[1], col[2], col[3]

		col[0] = gmul(a0, 0x0e) ^ gmul(a1, 0x0b) ^ gmul(a2, 0x0d) ^ gmul(a3, 0x09)
		col[1] = gmul(a0, 0x09) ^ gmul(a1, 0x0e) ^ gmul(a2, 0x0b) ^ gmul(a3, 0x0d)
		col[2] = gmul(a0, 0x0d) ^ gmul(a1, 0x09) ^ gmul(a2, 0x0e) ^ gmul(a3, 0x0b)
		col[3] = gmul(a0, 0x0b) ^ gmul(a1, 0x0d) ^ gmul(a2, 0x09) ^ gmul(a3, 0x0e)
	}
}
