package rijndael

// Substitution tables, generated at init from the multiplicative inverse in GF(2^8)
// followed by the FIPS-197 affine transform.
//
//nolint:gochecknoglobals
var (
	sbox    [256]byte
	invSbox [256]byte
)

// rcon holds the round constants; rcon[0] is unused.
//
//nolint:gochecknoglobals
var rcon = [11]byte{0x8d, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36}

//nolint:gochecknoinits
func init() {
	// p walks the multiplicative group by powers of 3, q by powers of 3^-1,
	// so q is always the inverse of p.
	p, q := byte(1), byte(1)

	for {
		p = p ^ (p << 1) ^ xtimeCarry(p)

		q ^= q << 1
		q ^= q << 2
		q ^= q << 4

		if q&0x80 != 0 {
			q ^= 0x09
		}

		x := q ^ rotl8(q, 1) ^ rotl8(q, 2) ^ rotl8(q, 3) ^ rotl8(q, 4)
		sbox[p] = x ^ 0x63

		if p == 1 {
			break
		}
	}

	sbox[0] = 0x63

	for i, v := range sbox {
		invSbox[v] = byte(i)
	}
}

func rotl8(x byte, shift uint) byte {
	return x<<shift | x>>(8-shift)
}

// xtimeCarry returns the reduction term for multiplying x by 2.
func xtimeCarry(x byte) byte {
	if x&0x80 != 0 {
		return 0x1b
	}

	return 0
}

// xtime multiplies x by 2 in GF(2^8).
func xtime(x byte) byte {
	return x<<1 ^ xtimeCarry(x)
}

// gmul multiplies a and b in GF(2^8).
func gmul(a, b byte) byte {
	var r byte

	for b != 0 {
		if b&1 != 0 {
			r ^= a
		}

		a = xtime(a)
		b >>= 1
	}

	return r
}
