// Package fsutil provides file system utility functions.
package fsutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// declarationFile is the canonical variable-declaration file name of a
// module directory.
const declarationFile = "variables.tf"

// FindVariableFiles returns the variable-declaration files of a single
// module directory, sorted by name. The search is not recursive: nested
// directories are separate modules with their own documentation.
func FindVariableFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if entry.Name() == declarationFile {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// DeclarationDirs maps a list of changed file paths (as a pre-commit hook
// passes them) to the unique set of parent directories of declaration files,
// sorted for a deterministic processing order.
func DeclarationDirs(paths []string) []string {
	seen := make(map[string]struct{})
	var dirs []string
	for _, path := range paths {
		if !strings.HasSuffix(path, ".tf") {
			continue
		}
		dir := filepath.Dir(path)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}
