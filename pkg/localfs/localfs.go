// Package localfs provides an abstraction over the local ROM library
// directory to enable dependency injection and testing without disk I/O.
//
// File contents are read lazily through FileHandle.Open - nothing buffers
// file bytes until transfer time, which keeps memory bounded for large
// ROM trees.
package localfs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Dir is a handle to a local directory.
type Dir interface {
	// Name returns the directory's base name.
	Name() string

	// Subdirs lists the immediate child directories.
	Subdirs() ([]Dir, error)

	// Subdir opens a named child directory.
	// Returns os.ErrNotExist (wrapped) if it doesn't exist or isn't a directory.
	Subdir(name string) (Dir, error)

	// Files lists handles for the immediate child files (not directories).
	Files() ([]FileHandle, error)
}

// FileHandle is a lazy capability to one local file.
type FileHandle interface {
	// Name returns the file's base name.
	Name() string

	// Size returns the file's length in bytes.
	Size() (int64, error)

	// Open opens the file's contents for reading.
	// Callers own the returned reader and must close it.
	Open() (io.ReadCloser, error)
}

// OpenDir opens a real directory rooted at path.
func OpenDir(path string) (Dir, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", path, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", path, os.ErrInvalid)
	}

	return &realDir{path: path}, nil
}

// realDir implements Dir using os functions.
type realDir struct {
	path string
}

// Name returns the directory's base name.
func (d *realDir) Name() string {
	return filepath.Base(d.path)
}

// Subdirs lists the immediate child directories, sorted by name.
func (d *realDir) Subdirs() ([]Dir, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", d.path, err)
	}

	var dirs []Dir
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dirs = append(dirs, &realDir{path: filepath.Join(d.path, entry.Name())})
	}

	return dirs, nil
}

// Subdir opens a named child directory.
func (d *realDir) Subdir(name string) (Dir, error) {
	childPath := filepath.Join(d.path, name)

	info, err := os.Stat(childPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open subdirectory %s: %w", childPath, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", childPath, os.ErrNotExist)
	}

	return &realDir{path: childPath}, nil
}

// Files lists handles for the immediate child files, sorted by name.
func (d *realDir) Files() ([]FileHandle, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", d.path, err)
	}

	var files []FileHandle
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, &realFileHandle{path: filepath.Join(d.path, entry.Name())})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	return files, nil
}

// realFileHandle implements FileHandle using os functions.
type realFileHandle struct {
	path string
}

// Name returns the file's base name.
func (f *realFileHandle) Name() string {
	return filepath.Base(f.path)
}

// Size returns the file's length in bytes.
func (f *realFileHandle) Size() (int64, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", f.path, err)
	}

	return info.Size(), nil
}

// Open opens the file's contents for reading.
func (f *realFileHandle) Open() (io.ReadCloser, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.path, err)
	}

	return file, nil
}
