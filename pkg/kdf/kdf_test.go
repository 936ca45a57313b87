package kdf_test

import (
	"bytes"
	"crypto/md5" //nolint:gosec // reference implementation for cross-checks
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/idelchi/aescbc/pkg/kdf"
	"github.com/idelchi/aescbc/pkg/rijndael"
)

// referenceLegacy rebuilds the legacy derivation from crypto/md5.
func referenceLegacy(passphrase []byte, keySize int) []byte {
	k1 := md5.Sum(passphrase) //nolint:gosec // reference
	if keySize == 16 {
		return k1[:]
	}

	k2 := k1
	for i := range k2 {
		k2[i] ^= 0x55
	}

	h1 := md5.Sum(k1[:]) //nolint:gosec // reference
	h2 := md5.Sum(k2[:]) //nolint:gosec // reference

	if keySize == 24 {
		return append(append([]byte{}, h1[4:]...), h2[:12]...)
	}

	return append(append([]byte{}, h1[:]...), h2[:]...)
}

func TestLegacy(t *testing.T) {
	passphrases := []string{"", "p@ss", "correct horse battery staple", strings.Repeat("x", 200)}

	for _, size := range []rijndael.Size{rijndael.AES128, rijndael.AES192, rijndael.AES256} {
		for _, passphrase := range passphrases {
			got := kdf.Legacy([]byte(passphrase), size)

			if len(got) != size.KeySize() {
				t.Fatalf("%s: len = %d, want %d", size, len(got), size.KeySize())
			}

			if want := referenceLegacy([]byte(passphrase), size.KeySize()); !bytes.Equal(got, want) {
				t.Errorf("%s(%q) = %x, want %x", size, passphrase, got, want)
			}
		}
	}
}

func TestLegacyIsDeterministic(t *testing.T) {
	first := kdf.Legacy([]byte("p@ss"), rijndael.AES256)
	second := kdf.Legacy([]byte("p@ss"), rijndael.AES256)

	if !bytes.Equal(first, second) {
		t.Errorf("Legacy is not deterministic: %x != %x", first, second)
	}

	want := md5.Sum([]byte("p@ss")) //nolint:gosec // reference
	if got := kdf.Legacy([]byte("p@ss"), rijndael.AES128); !bytes.Equal(got, want[:]) {
		t.Errorf("Legacy(AES-128) = %x, want digest %x", got, want)
	}
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name    string
		params  kdf.Params
		wantErr error
	}{
		{name: "default is legacy", params: kdf.Params{Size: rijndael.AES192}},
		{name: "hkdf", params: kdf.Params{Method: kdf.MethodHKDF, Salt: []byte("salt"), Size: rijndael.AES256}},
		{
			name:   "pbkdf2",
			params: kdf.Params{Method: kdf.MethodPBKDF2, Salt: []byte("salt"), Iterations: 10, Size: rijndael.AES128},
		},
		{name: "pbkdf2 without iterations", params: kdf.Params{Method: kdf.MethodPBKDF2, Size: rijndael.AES128}},
		{name: "unknown", params: kdf.Params{Method: "scrypt", Size: rijndael.AES128}, wantErr: kdf.ErrUnknownMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := kdf.Derive([]byte("secret"), tt.params)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Derive() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if tt.params.Method == kdf.MethodPBKDF2 && tt.params.Iterations < 1 {
				if err == nil {
					t.Fatal("Derive() accepted zero iterations")
				}

				return
			}

			if err != nil {
				t.Fatalf("Derive() error = %v", err)
			}

			if len(key) != tt.params.Size.KeySize() {
				t.Errorf("len = %d, want %d", len(key), tt.params.Size.KeySize())
			}

			again, _ := kdf.Derive([]byte("secret"), tt.params)
			if !bytes.Equal(key, again) {
				t.Error("Derive is not deterministic")
			}
		})
	}
}

func TestMethodsDisagree(t *testing.T) {
	legacy := kdf.Legacy([]byte("secret"), rijndael.AES256)

	hkdfKey, err := kdf.HKDF([]byte("secret"), nil, rijndael.AES256)
	if err != nil {
		t.Fatal(err)
	}

	pbkdf2Key := kdf.PBKDF2([]byte("secret"), []byte("salt"), 1, rijndael.AES256)

	if bytes.Equal(legacy, hkdfKey) || bytes.Equal(legacy, pbkdf2Key) || bytes.Equal(hkdfKey, pbkdf2Key) {
		t.Error("different methods produced the same key")
	}
}

func TestNewIV(t *testing.T) {
	first, err := kdf.NewIV(nil)
	if err != nil {
		t.Fatal(err)
	}

	second, err := kdf.NewIV(nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != kdf.IVSize || bytes.Equal(first, second) {
		t.Errorf("NewIV() = %x, %x", first, second)
	}

	fixed, err := kdf.NewIV(bytes.NewReader(bytes.Repeat([]byte{7}, 32)))
	if err != nil || !bytes.Equal(fixed, bytes.Repeat([]byte{7}, kdf.IVSize)) {
		t.Errorf("NewIV(fixed) = %x, %v", fixed, err)
	}

	if _, err := kdf.NewIV(iotest.ErrReader(errors.New("boom"))); err == nil {
		t.Error("NewIV() ignored a reader failure")
	}
}
