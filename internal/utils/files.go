package utils

import (
	"io/fs"
	"path/filepath"
	"sort"
)

// FindSchemaFiles recursively finds all .fm files in the specified
// directory, sorted so expansion order is stable across runs
func FindSchemaFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if filepath.Ext(path) == ".fm" {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
