package encryption

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/aescbc/internal/config"
	"github.com/idelchi/aescbc/internal/fileutil"
	"github.com/idelchi/aescbc/pkg/rijndael"
	"github.com/idelchi/aescbc/pkg/session"
)

// Processor handles the encryption and decryption of files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// proto is the keyed session every worker clones
	proto *session.Session

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// NewProcessor resolves the key and returns a Processor ready to handle cfg.Files.
func NewProcessor(cfg *config.Config) (*Processor, error) {
	size, err := rijndael.ParseSize(cfg.Size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", session.ErrUnsupportedConfiguration, err)
	}

	key, err := LoadKey(cfg)
	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}

	proto, err := session.New(size)
	if err != nil {
		return nil, err
	}

	if err := proto.SetKey(key); err != nil {
		return nil, fmt.Errorf("setting key: %w", err)
	}

	return &Processor{
		cfg:     cfg,
		proto:   proto,
		results: make(chan Result, len(cfg.Files)),
	}, nil
}

// ProcessFiles concurrently processes all files specified in the configuration.
// It encrypts or decrypts files based on the configuration settings.
// Returns the number of successfully processed files, the number of errors and
// the total size of the written files.
//
//nolint:cyclop
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", result.Input, result.Error)

				continue
			}

			processed++

			totalSize += result.OutputSize

			if !p.cfg.Quiet {
				fmt.Printf("Processed %q -> %q\n", result.Input, result.Output) //nolint:forbidigo
			}

			if p.cfg.Delete {
				if err := os.Remove(result.Input); err != nil {
					fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", result.Input, err)
				} else if !p.cfg.Quiet {
					fmt.Printf("Deleted %q\n", result.Input) //nolint:forbidigo
				}
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := OutputPath(file, p.cfg)

			size, err := p.processFile(p.proto.Clone(), file, outPath)
			if err != nil {
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath, OutputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// encrypt reads plaintext from reader and writes the ciphertext to writer.
func (p *Processor) encrypt(s *session.Session, reader io.Reader, writer io.Writer) error {
	if p.cfg.Mode == "ecb" {
		data, err := io.ReadAll(reader)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		ciphertext, err := s.EncryptECB(data)
		if err != nil {
			return err
		}

		_, err = writer.Write(ciphertext)

		return err
	}

	stream, err := session.NewEncryptWriter(writer, s)
	if err != nil {
		return err
	}

	return copyAndClose(stream, reader)
}

// decrypt reads ciphertext from reader and writes the plaintext to writer.
func (p *Processor) decrypt(s *session.Session, reader io.Reader, writer io.Writer) error {
	if p.cfg.Mode == "ecb" {
		data, err := io.ReadAll(reader)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		plaintext, err := s.DecryptECB(data)
		if err != nil {
			return err
		}

		_, err = writer.Write(plaintext)

		return err
	}

	stream, err := session.NewDecryptWriter(writer, s)
	if err != nil {
		return err
	}

	return copyAndClose(stream, reader)
}

// copyAndClose streams reader into w through a pooled buffer and closes w.
func copyAndClose(w io.WriteCloser, reader io.Reader) error {
	buf, _ := bufferPool.Get().(*[]byte)
	defer bufferPool.Put(buf)

	// Hide any WriterTo on reader so the pooled buffer is used.
	if _, err := io.CopyBuffer(w, struct{ io.Reader }{reader}, *buf); err != nil {
		return err
	}

	return w.Close()
}

// processFile handles the encryption or decryption of a single file with its own session.
// It creates a temporary file for output and performs an atomic rename on completion.
//
//nolint:cyclop
func (p *Processor) processFile(s *session.Session, filename, outPath string) (size int64, err error) {
	if filepath.Clean(filename) == filepath.Clean(outPath) {
		return 0, fmt.Errorf("output path %q is the input file, set a different suffix", outPath)
	}

	tc, err := fileutil.NewTempContext(filename, outPath)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	inFile, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("opening input file: %w", err)
	}
	defer inFile.Close()

	if p.cfg.Decrypt {
		if err := p.decrypt(s, inFile, tc.TmpFile); err != nil {
			return 0, fmt.Errorf("decrypting file: %w", err)
		}
	} else {
		if err := p.encrypt(s, inFile, tc.TmpFile); err != nil {
			return 0, fmt.Errorf("encrypting file: %w", err)
		}
	}

	if err := tc.Commit(inFile, outPath); err != nil {
		return 0, err
	}

	size, err = fileutil.FinalizeOutput(outPath, p.cfg.PreserveTimestamps, tc.SrcInfo.ModTime())
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return size, nil
}

// OutputPath generates the output file path based on the input filename
// and the configured suffixes for encryption/decryption.
func OutputPath(filename string, cfg *config.Config) string {
	ext := cfg.Suffixes.Encrypt

	if cfg.Decrypt {
		filename = strings.TrimSuffix(filename, cfg.Suffixes.Encrypt)
		ext = cfg.Suffixes.Decrypt
	}

	return filepath.Join(filepath.Dir(filename), filepath.Base(filename)+ext)
}
