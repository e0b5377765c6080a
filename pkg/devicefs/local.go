package devicefs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalDevice implements FS over a plain local directory.
// Used for dry runs and testing against a directory instead of hardware.
type LocalDevice struct {
	root string
}

// NewLocalDevice creates a directory-backed device filesystem.
func NewLocalDevice(root string) *LocalDevice {
	return &LocalDevice{root: root}
}

// List returns the entries of a directory under the device root.
func (d *LocalDevice) List(dirPath string) ([]Entry, error) {
	full := filepath.Join(d.root, filepath.FromSlash(dirPath))

	dirEntries, err := os.ReadDir(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("list %s: %w", dirPath, ErrNotFound)
		}

		return nil, fmt.Errorf("failed to list directory %s: %w", full, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		info, err := dirEntry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", dirEntry.Name(), err)
		}

		entries = append(entries, Entry{
			Name:  info.Name(),
			Size:  info.Size(),
			IsDir: info.IsDir(),
		})
	}

	return entries, nil
}

// EnsureDir creates a directory (and parents) under the device root.
func (d *LocalDevice) EnsureDir(dirPath string) error {
	full := filepath.Join(d.root, filepath.FromSlash(dirPath))

	err := os.MkdirAll(full, 0o755)
	if err != nil {
		return fmt.Errorf("failed to create directory %s: %w", full, err)
	}

	return nil
}

// WriteFile writes the reader's contents to a path under the device root.
func (d *LocalDevice) WriteFile(filePath string, r io.Reader) error {
	full := filepath.Join(d.root, filepath.FromSlash(filePath))

	file, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", full, err)
	}

	_, copyErr := io.Copy(file, r)
	closeErr := file.Close()

	if copyErr != nil {
		return fmt.Errorf("failed to write %s: %w", full, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close %s: %w", full, closeErr)
	}

	return nil
}
