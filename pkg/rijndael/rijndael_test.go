package rijndael_test

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/idelchi/aescbc/pkg/rijndael"
)

// Vector is a single known-answer case from a YAML golden file.
type Vector struct {
	Key        string `yaml:"key"`
	IV         string `yaml:"iv,omitempty"`
	Plaintext  string `yaml:"plaintext"`
	Ciphertext string `yaml:"ciphertext"`
}

// Group is a named collection of vectors.
type Group struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Cases       []Vector `yaml:"cases"`
}

func loadGroups(t *testing.T, file string) []Group {
	t.Helper()

	data, err := os.ReadFile(file) //nolint:gosec // test helper reads known testdata files
	if err != nil {
		t.Fatalf("reading %s: %v", file, err)
	}

	var groups []Group
	if err := yaml.Unmarshal(data, &groups); err != nil {
		t.Fatalf("parsing %s: %v", file, err)
	}

	if len(groups) == 0 {
		t.Fatalf("no groups in %s", file)
	}

	return groups
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		t.Fatalf("decoding %q: %v", s, err)
	}

	return b
}

func keyed(t *testing.T, key []byte) *rijndael.Context {
	t.Helper()

	size, err := rijndael.SizeForKey(len(key))
	if err != nil {
		t.Fatalf("SizeForKey(%d): %v", len(key), err)
	}

	ctx := rijndael.NewContext(size)
	ctx.SetKey(key)

	return ctx
}

func TestKnownAnswerBlocks(t *testing.T) {
	for _, group := range loadGroups(t, "testdata/fips197.yml") {
		t.Run(group.Name, func(t *testing.T) {
			for _, vector := range group.Cases {
				ctx := keyed(t, mustHex(t, vector.Key))
				plaintext := mustHex(t, vector.Plaintext)
				want := mustHex(t, vector.Ciphertext)

				block := bytes.Clone(plaintext)
				ctx.EncryptBlock(block)

				if !bytes.Equal(block, want) {
					t.Errorf("%s: EncryptBlock = %x, want %x", ctx.Size(), block, want)
				}

				ctx.DecryptBlock(block)

				if !bytes.Equal(block, plaintext) {
					t.Errorf("%s: DecryptBlock = %x, want %x", ctx.Size(), block, plaintext)
				}
			}
		})
	}
}

func TestKnownAnswerCBC(t *testing.T) {
	for _, group := range loadGroups(t, "testdata/sp800-38a.yml") {
		t.Run(group.Name, func(t *testing.T) {
			for _, vector := range group.Cases {
				key := mustHex(t, vector.Key)
				iv := mustHex(t, vector.IV)
				plaintext := mustHex(t, vector.Plaintext)
				want := mustHex(t, vector.Ciphertext)

				enc := keyed(t, key)
				enc.SetIV(iv)

				buf := bytes.Clone(plaintext)
				enc.CBCEncryptBuffer(buf)

				if !bytes.Equal(buf, want) {
					t.Fatalf("CBCEncryptBuffer = %x, want %x", buf, want)
				}

				if !bytes.Equal(enc.IV(), want[len(want)-rijndael.BlockSize:]) {
					t.Errorf("IV register = %x, want last ciphertext block", enc.IV())
				}

				dec := keyed(t, key)
				dec.SetIV(iv)
				dec.CBCDecryptBuffer(buf)

				if !bytes.Equal(buf, plaintext) {
					t.Errorf("CBCDecryptBuffer = %x, want %x", buf, plaintext)
				}
			}
		})
	}
}

func TestMatchesStandardLibrary(t *testing.T) {
	for _, size := range []rijndael.Size{rijndael.AES128, rijndael.AES192, rijndael.AES256} {
		t.Run(size.String(), func(t *testing.T) {
			for range 32 {
				key := make([]byte, size.KeySize())
				block := make([]byte, rijndael.BlockSize)

				if _, err := rand.Read(key); err != nil {
					t.Fatal(err)
				}

				if _, err := rand.Read(block); err != nil {
					t.Fatal(err)
				}

				reference, err := aes.NewCipher(key)
				if err != nil {
					t.Fatal(err)
				}

				want := make([]byte, rijndael.BlockSize)
				reference.Encrypt(want, block)

				ctx := rijndael.NewContext(size)
				ctx.SetKey(key)

				got := make([]byte, rijndael.BlockSize)
				ctx.Encrypt(got, block)

				if !bytes.Equal(got, want) {
					t.Fatalf("Encrypt(%x) with key %x = %x, want %x", block, key, got, want)
				}

				ctx.Decrypt(got, got)

				if !bytes.Equal(got, block) {
					t.Fatalf("Decrypt round trip = %x, want %x", got, block)
				}
			}
		})
	}
}

func TestCBCContinuesAcrossCalls(t *testing.T) {
	key := make([]byte, 32)
	iv := make([]byte, rijndael.BlockSize)
	plaintext := make([]byte, 7*rijndael.BlockSize)

	for _, b := range [][]byte{key, iv, plaintext} {
		if _, err := rand.Read(b); err != nil {
			t.Fatal(err)
		}
	}

	reference, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}

	want := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(reference, iv).CryptBlocks(want, plaintext)

	ctx := rijndael.NewContext(rijndael.AES256)
	ctx.SetKey(key)
	ctx.SetIV(iv)

	got := bytes.Clone(plaintext)

	// Uneven whole-block slices, each continuing from the previous IV register.
	for _, bounds := range [][2]int{{0, 16}, {16, 16}, {16, 64}, {64, 112}} {
		ctx.CBCEncryptBuffer(got[bounds[0]:bounds[1]])
	}

	if !bytes.Equal(got, want) {
		t.Fatalf("chained CBCEncryptBuffer = %x, want %x", got, want)
	}

	ctx.SetIV(iv)

	for _, bounds := range [][2]int{{0, 48}, {48, 64}, {64, 112}} {
		ctx.CBCDecryptBuffer(got[bounds[0]:bounds[1]])
	}

	if !bytes.Equal(got, plaintext) {
		t.Fatalf("chained CBCDecryptBuffer = %x, want %x", got, plaintext)
	}
}

func TestECBModes(t *testing.T) {
	key := make([]byte, 16)
	plaintext := bytes.Repeat([]byte("0123456789abcdef"), 3)

	ctx := rijndael.NewContext(rijndael.AES128)
	ctx.SetKey(key)

	ciphertext := make([]byte, len(plaintext))
	rijndael.NewECBEncrypter(ctx).CryptBlocks(ciphertext, plaintext)

	// Identical plaintext blocks produce identical ciphertext blocks.
	if !bytes.Equal(ciphertext[:16], ciphertext[16:32]) || !bytes.Equal(ciphertext[:16], ciphertext[32:]) {
		t.Errorf("ECB blocks differ: %x", ciphertext)
	}

	decrypted := make([]byte, len(ciphertext))
	rijndael.NewECBDecrypter(ctx).CryptBlocks(decrypted, ciphertext)

	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("ECB round trip = %q, want %q", decrypted, plaintext)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	ctx := rijndael.NewContext(rijndael.AES128)
	ctx.SetKey(make([]byte, 16))
	ctx.SetIV(bytes.Repeat([]byte{1}, rijndael.BlockSize))

	clone := ctx.Clone()

	if !clone.HasKey() {
		t.Fatal("clone lost key state")
	}

	buf := make([]byte, rijndael.BlockSize)
	ctx.CBCEncryptBuffer(buf)

	if bytes.Equal(ctx.IV(), clone.IV()) {
		t.Error("advancing the source IV register changed the clone")
	}

	ctx.Reset()

	if !clone.HasKey() || ctx.HasKey() {
		t.Error("Reset must only affect the receiver")
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		bits    int
		want    rijndael.Size
		keySize int
		rounds  int
		wantErr bool
	}{
		{bits: 128, want: rijndael.AES128, keySize: 16, rounds: 10},
		{bits: 192, want: rijndael.AES192, keySize: 24, rounds: 12},
		{bits: 256, want: rijndael.AES256, keySize: 32, rounds: 14},
		{bits: 512, wantErr: true},
		{bits: 0, wantErr: true},
	}

	for _, tt := range tests {
		size, err := rijndael.ParseSize(tt.bits)
		if tt.wantErr {
			var sizeErr rijndael.UnsupportedSizeError
			if !errors.As(err, &sizeErr) {
				t.Errorf("ParseSize(%d) error = %v, want UnsupportedSizeError", tt.bits, err)
			}

			continue
		}

		if err != nil {
			t.Fatalf("ParseSize(%d): %v", tt.bits, err)
		}

		if size != tt.want || size.KeySize() != tt.keySize || size.Nr() != tt.rounds || size.Nk() != tt.keySize/4 {
			t.Errorf("ParseSize(%d) = %v (key %d, Nr %d)", tt.bits, size, size.KeySize(), size.Nr())
		}
	}
}
