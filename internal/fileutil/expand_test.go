package fileutil_test

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/idelchi/aescbc/internal/fileutil"
)

func TestExpand(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"a.txt", "a.txt.enc", filepath.Join("sub", "b.txt"), filepath.Join("sub", "b.txt.enc")} {
		path := filepath.Join(dir, name)

		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			t.Fatal(err)
		}

		writeFile(t, path, 0o600)
	}

	explicit := filepath.Join(dir, "a.txt")

	tests := []struct {
		name string
		args []string
		keep func(string) bool
		want []string
	}{
		{
			name: "walk all",
			args: []string{dir},
			want: []string{"a.txt", "a.txt.enc", "sub/b.txt", "sub/b.txt.enc"},
		},
		{
			name: "walk filtered",
			args: []string{dir},
			keep: func(path string) bool { return strings.HasSuffix(path, ".enc") },
			want: []string{"a.txt.enc", "sub/b.txt.enc"},
		},
		{
			name: "explicit file bypasses the filter and is not repeated",
			args: []string{explicit, dir, explicit},
			keep: func(path string) bool { return strings.HasSuffix(path, ".enc") },
			want: []string{"a.txt", "a.txt.enc", "sub/b.txt.enc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := fileutil.Expand(tt.args, tt.keep)
			if err != nil {
				t.Fatal(err)
			}

			got := make([]string, len(files))
			for i, file := range files {
				rel, err := filepath.Rel(dir, file)
				if err != nil {
					t.Fatal(err)
				}

				got[i] = filepath.ToSlash(rel)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("Expand() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpandErrors(t *testing.T) {
	if _, err := fileutil.Expand([]string{filepath.Join(t.TempDir(), "missing")}, nil); err == nil {
		t.Error("Expand accepted a missing path")
	}

	if _, err := fileutil.Expand([]string{t.TempDir()}, nil); err == nil {
		t.Error("Expand accepted an empty directory")
	}
}
