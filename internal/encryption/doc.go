// Package encryption encrypts and decrypts files with AES in CBC or ECB mode.
//
// CBC output has the layout IV || ciphertext, identical to session.Encrypt, and is streamed
// through a fixed-size buffer. ECB output is the padded ciphertext blocks only and is processed
// in memory. Files are processed concurrently, each worker driving its own clone of a keyed
// session, and written atomically through a temporary file.
package encryption
