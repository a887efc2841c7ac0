// Package filex contains small filesystem helpers shared by the stores.
package filex

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// TempPattern is the os.CreateTemp pattern for in-flight writes. The leading
// dot keeps temp files out of validated listings.
const TempPattern = ".tmp-*"

// EnsureDir creates dir (and parents) if needed and returns its absolute path.
// Relative paths are resolved against the current working directory.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// CopyAtomic streams r into a temp file next to path and renames it over
// path once everything is written and synced. On any failure the temp file
// is removed and path is left untouched.
func CopyAtomic(path string, r io.Reader, perm os.FileMode) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), TempPattern)
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(perm); err != nil {
		return 0, err
	}

	n, err := io.Copy(tmp, r)
	if err != nil {
		return n, err
	}

	if err := tmp.Sync(); err != nil {
		return n, err
	}

	if err := tmp.Close(); err != nil {
		return n, err
	}

	if err := os.Rename(tmpName, path); err != nil {
		return n, err
	}

	success = true
	return n, nil
}

// WriteFileAtomic is CopyAtomic for an in-memory payload.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	_, err := CopyAtomic(path, bytes.NewReader(data), perm)
	return err
}
