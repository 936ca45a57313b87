package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Expand resolves positional arguments into a list of files. Files are taken as given.
// Directories are walked recursively and their regular files kept when keep returns true;
// a nil keep keeps every file. Duplicates are dropped, order is preserved.
func Expand(args []string, keep func(path string) bool) ([]string, error) {
	var files []string

	seen := make(map[string]struct{})

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", arg, err)
		}

		if !info.IsDir() {
			add(arg)

			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !d.Type().IsRegular() {
				return nil
			}

			if keep == nil || keep(path) {
				add(path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %q: %w", arg, err)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files found in %v", args)
	}

	return files, nil
}
