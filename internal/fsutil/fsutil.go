// Package fsutil provides the file system helpers used by the discovery walk.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
)

// WalkRegularFiles recursively collects every regular file beneath root, at
// any depth, and returns their full paths. The order is the lexical order of
// filepath.WalkDir, which is stable across runs.
func WalkRegularFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ListSubdirectories returns the names of the immediate subdirectories of dir.
// A read failure is returned to the caller; dir is expected to be listable.
func ListSubdirectories(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
