// Package digest implements the MD5 message digest (RFC 1321).
//
// MD5 is used here as the building block of the legacy key derivation in package kdf and for
// ad-hoc hashing of data. It is not collision resistant and must not be used for signatures.
package digest

import (
	"encoding/binary"
	"hash"
	"math/bits"
)

const (
	// Size is the size of a digest in bytes.
	Size = 16
	// BlockSize is the block size of the compression function in bytes.
	BlockSize = 64
)

const (
	init0 = 0x67452301
	init1 = 0xefcdab89
	init2 = 0x98badcfe
	init3 = 0x10325476
)

type state struct {
	s   [4]uint32
	x   [BlockSize]byte
	nx  int
	len uint64
}

// New returns a hash.Hash computing the MD5 checksum.
func New() hash.Hash {
	d := new(state)
	d.Reset()

	return d
}

// Sum returns the MD5 checksum of data.
func Sum(data []byte) [Size]byte {
	var d state

	d.Reset()
	d.Write(data) //nolint:errcheck // never fails

	return d.checkSum()
}

func (d *state) Reset() {
	d.s = [4]uint32{init0, init1, init2, init3}
	d.nx = 0
	d.len = 0
}

func (d *state) Size() int { return Size }

func (d *state) BlockSize() int { return BlockSize }

// Write absorbs p. It never returns an error.
func (d *state) Write(p []byte) (int, error) {
	n := len(p)
	d.len += uint64(n)

	if d.nx > 0 {
		copied := copy(d.x[d.nx:], p)
		d.nx += copied

		if d.nx == BlockSize {
			block(d, d.x[:])
			d.nx = 0
		}

		p = p[copied:]
	}

	if len(p) >= BlockSize {
		whole := len(p) &^ (BlockSize - 1)
		block(d, p[:whole])
		p = p[whole:]
	}

	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}

	return n, nil
}

// Sum appends the current digest to in without changing the running state.
func (d *state) Sum(in []byte) []byte {
	d0 := *d
	sum := d0.checkSum()

	return append(in, sum[:]...)
}

func (d *state) checkSum() [Size]byte {
	// Pad with 0x80, zeros up to 56 mod 64, then the little-endian bit length.
	length := d.len

	var tmp [1 + 63 + 8]byte

	tmp[0] = 0x80
	pad := (55 - length) % BlockSize

	binary.LittleEndian.PutUint64(tmp[1+pad:], length<<3)
	d.Write(tmp[:1+pad+8]) //nolint:errcheck // never fails

	if d.nx != 0 {
		panic("digest: internal error, buffer not flushed")
	}

	var out [Size]byte
	for i, v := range d.s {
		binary.LittleEndian.PutUint32(out[4*i:], v)
	}

	return out
}

// block runs the compression function over every 64-byte block of p.
func block(d *state, p []byte) {
	a, b, c, dd := d.s[0], d.s[1], d.s[2], d.s[3]

	var m [16]uint32

	for len(p) >= BlockSize {
		for i := range m {
			m[i] = binary.LittleEndian.Uint32(p[4*i:])
		}

		aa, bb, cc, ddd := a, b, c, dd

		for i := range 64 {
			var f uint32

			var g int

			switch i / 16 {
			case 0:
				f = (b & c) | (^b & dd)
				g = i
			case 1:
				f = (dd & b) | (^dd & c)
				g = (5*i + 1) % 16
			case 2:
				f = b ^ c ^ dd
				g = (3*i + 5) % 16
			default:
				f = c ^ (b | ^dd)
				g = (7 * i) % 16
			}

			f += a + sines[i] + m[g]
			a, dd, c = dd, c, b
			b += bits.RotateLeft32(f, shifts[i/16][i%4])
		}

		a += aa
		b += bb
		c += cc
		dd += ddd

		p = p[BlockSize:]
	}

	d.s[0], d.s[1], d.s[2], d.s[3] = a, b, c, dd
}
