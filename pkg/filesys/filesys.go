// Package filesys provides the small set of file system primitives the
// engine and its supporting packages need: directory creation, glob-based
// directory scanning, and whole-file read/write.
package filesys

import (
	"errors"
	"os"
	"path/filepath"
)

var (
	ErrIsNotDir = errors.New("path isn't a directory")
)

// CreateDir creates a directory at the specified path with the given permissions.
//
// If the directory already exists:
//   - If 'force' is true, it proceeds without error.
//   - If 'force' is false, it returns an error.
//
// It also returns an error if the existing path is a file (not a directory).
func CreateDir(dirPath string, permission os.FileMode, force bool) error {
	stat, err := os.Stat(dirPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if stat != nil && !stat.IsDir() {
		return ErrIsNotDir
	}

	if stat != nil && !force {
		return os.ErrExist
	}

	if err := os.MkdirAll(dirPath, permission); err != nil {
		return err
	}

	return os.Chmod(dirPath, permission)
}

// ReadDir reads the directory specified by `dirName` and returns a list of matching file paths.
// It uses `filepath.Glob` which means `dirName` can contain glob patterns (e.g., "mydir/*.txt").
func ReadDir(dirName string) ([]string, error) {
	files, err := filepath.Glob(dirName)
	return files, err
}

// WriteFile writes the provided `contents` to the file at `filePath` with the given `permission`.
// If the file does not exist, it will be created. If it exists, it will be truncated.
func WriteFile(filePath string, permission os.FileMode, contents []byte) error {
	return os.WriteFile(filePath, contents, permission)
}

// ReadFile reads the entire content of the file at `filePath` into a byte slice.
// It returns the file content and any error encountered.
func ReadFile(filePath string) ([]byte, error) {
	contents, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return contents, err
}
