// Package session provides a symmetric-encryption session over AES: key management, one-shot ECB,
// and CBC encryption either in one call or incrementally in arbitrarily sized chunks.
//
// A Session moves through three states:
//
//	no key  --SetKey-->  keyed  --Start(iv)-->  streaming  --EndEncrypt/EndDecrypt-->  keyed
//
// While streaming, EncryptChunk and DecryptChunk emit every completed 16-byte block and keep the
// remainder (at most 15 bytes) for the next call. Concatenating the output of every chunk call and
// the final End call is byte-identical to a single CBC pass over the concatenated input.
//
// One-shot CBC output is laid out as
//
//	IV (16 bytes) || PKCS7-padded ciphertext
//
// and Decrypt expects the same layout. Padding always adds 1 to 16 bytes, so input that is already
// block aligned gains a full block.
//
// Errors belong to one of three kinds, matched with errors.Is: ErrInvalidArgument,
// ErrCorruptData and ErrUnsupportedConfiguration. A failed call leaves the session in the state
// it had before the call.
//
// A Session is not safe for concurrent use. Give each goroutine its own session, for example
// with Clone.
package session
