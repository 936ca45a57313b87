// Package rijndael implements the AES block cipher (FIPS-197) for 128, 192 and 256-bit keys,
// together with a chained CBC transform over whole-block buffers.
//
// A Context holds the expanded key schedule and an IV register. The CBC functions advance the
// IV register to the last ciphertext block they processed, so repeated calls on the same
// Context continue a single chain without the IV being supplied again.
//
// The primitive performs no input validation beyond panicking on misuse (wrong key or buffer
// lengths), in the manner of crypto/cipher. Callers that accept untrusted lengths should validate
// them first; see package session.
package rijndael
