// Package logic implements the command logic: file encryption and decryption, hashing and
// key handling.
package logic

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/aescbc/internal/config"
	"github.com/idelchi/aescbc/internal/encryption"
	"github.com/idelchi/aescbc/internal/fileutil"
	"github.com/idelchi/aescbc/pkg/digest"
	"github.com/idelchi/aescbc/pkg/rijndael"
)

// Run encrypts or decrypts cfg.Files. Directories are walked: decryption picks up files with the
// encrypted suffix, encryption picks up the rest.
func Run(cfg *config.Config) error {
	start := time.Now()

	files, err := fileutil.Expand(cfg.Files, func(path string) bool {
		return strings.HasSuffix(path, cfg.Suffixes.Encrypt) == cfg.Decrypt
	})
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	cfg.Files = files

	proc, err := encryption.NewProcessor(cfg)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	processed, errored, totalSize, err := proc.ProcessFiles()

	if cfg.Stats {
		printStats(len(cfg.Files), processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running logic: %w", err)
	}

	return nil
}

// RunDigest prints the MD5 digest of every file in cfg.Files, in md5sum format.
// Directories are walked.
func RunDigest(cfg *config.Config) error {
	start := time.Now()

	files, err := fileutil.Expand(cfg.Files, nil)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	cfg.Files = files

	sums, sizes, err := HashFiles(cfg.Files, cfg.Parallel)

	var (
		errored   int
		totalSize int64
	)

	for i, file := range cfg.Files {
		if sums[i] == "" {
			errored++

			continue
		}

		totalSize += sizes[i]

		fmt.Printf("%s  %s\n", sums[i], file) //nolint:forbidigo
	}

	if cfg.Stats {
		printStats(len(cfg.Files), len(cfg.Files)-errored, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("hashing files: %w", err)
	}

	return nil
}

// HashFiles computes the hex MD5 digest and size of each file using up to parallel workers.
// Results are in input order; failed files have an empty digest and the errors are joined.
// A parallel below 1 means one worker.
func HashFiles(files []string, parallel int) (sums []string, sizes []int64, err error) {
	sums = make([]string, len(files))
	sizes = make([]int64, len(files))
	errs := make([]error, len(files))

	group := errgroup.Group{}
	group.SetLimit(max(parallel, 1))

	for i, file := range files {
		group.Go(func() error {
			sum, size, err := hashFile(file)
			if err != nil {
				errs[i] = fmt.Errorf("%q: %w", file, err)

				return nil
			}

			sums[i] = hex.EncodeToString(sum)
			sizes[i] = size

			return nil
		})
	}

	_ = group.Wait()

	return sums, sizes, errors.Join(errs...)
}

func hashFile(path string) ([]byte, int64, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	h := digest.New()

	n, err := io.Copy(h, file)
	if err != nil {
		return nil, 0, err
	}

	return h.Sum(nil), n, nil
}

// RunDerive prints the hex key derived from cfg.Passphrase with the configured KDF.
func RunDerive(cfg *config.Config) error {
	if cfg.Passphrase == "" {
		return errors.New("derive: --passphrase is required")
	}

	key, err := encryption.LoadKey(cfg)
	if err != nil {
		return err
	}

	fmt.Println(hex.EncodeToString(key)) //nolint:forbidigo

	return nil
}

// RunGenerate prints a fresh random hex key for the configured cipher size.
func RunGenerate(cfg *config.Config) error {
	key, err := GenerateKey(cfg.Size)
	if err != nil {
		return err
	}

	fmt.Println(key) //nolint:forbidigo

	return nil
}

// GenerateKey returns a random hex encoded key for a cipher of the given bit size.
func GenerateKey(bits int) (string, error) {
	size, err := rijndael.ParseSize(bits)
	if err != nil {
		return "", err
	}

	key := make([]byte, size.KeySize())
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("generating key: %w", err)
	}

	return hex.EncodeToString(key), nil
}

func printStats(files, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Files:      %d\n", files)
	fmt.Fprintf(os.Stderr, "  Processed:  %d\n", processed)
	fmt.Fprintf(os.Stderr, "  Errors:     %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:       %s\n", humanize.IBytes(uint64(max(0, totalSize))))

	if seconds := duration.Seconds(); seconds > 0 {
		//nolint:gosec // non-negative
		fmt.Fprintf(os.Stderr, "  Throughput: %s/s\n", humanize.IBytes(uint64(max(0, float64(totalSize)/seconds))))
	}

	fmt.Fprintf(os.Stderr, "  Duration:   %s\n", duration.Round(time.Millisecond))
}
