// File: filex.go
// Title: Core File Utilities
// Description: Atomic write-if-changed and hidden-name helpers for the
//              generation driver.

package filex

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Exists checks if a file or directory exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir checks if the path is a directory
func IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsHidden reports whether a file or directory name is hidden by the dot
// convention. "." and ".." are not hidden.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// Equal reports whether the file at path holds exactly data. A missing file
// is not equal.
func Equal(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return bytes.Equal(existing, data), nil
}

// WriteAtomic writes data to a temporary file next to path and renames it
// into place, so readers never observe a partial file.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace file %s: %w", path, err)
	}
	return nil
}

// WriteIfChanged writes data to path unless the file already holds it. It
// reports whether the file was written.
func WriteIfChanged(path string, data []byte, perm os.FileMode) (bool, error) {
	same, err := Equal(path, data)
	if err != nil {
		return false, err
	}
	if same {
		return false, nil
	}
	if err := WriteAtomic(path, data, perm); err != nil {
		return false, err
	}
	return true, nil
}
