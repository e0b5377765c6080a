package localfs

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
)

// MockDir is an in-memory Dir implementation for testing.
type MockDir struct {
	mu      sync.RWMutex
	name    string
	subdirs map[string]*MockDir
	files   map[string]*MockFileHandle
}

// NewMockDir creates an empty in-memory directory.
func NewMockDir(name string) *MockDir {
	return &MockDir{
		name:    name,
		subdirs: make(map[string]*MockDir),
		files:   make(map[string]*MockFileHandle),
	}
}

// AddSubdir creates (or returns an existing) child directory.
func (d *MockDir) AddSubdir(name string) *MockDir {
	d.mu.Lock()
	defer d.mu.Unlock()

	if sub, exists := d.subdirs[name]; exists {
		return sub
	}

	sub := NewMockDir(name)
	d.subdirs[name] = sub

	return sub
}

// AddFile creates a child file with the given contents.
func (d *MockDir) AddFile(name string, data []byte) *MockFileHandle {
	d.mu.Lock()
	defer d.mu.Unlock()

	handle := &MockFileHandle{name: name, data: data}
	d.files[name] = handle

	return handle
}

// Name returns the directory's name.
func (d *MockDir) Name() string {
	return d.name
}

// Subdirs lists the child directories, sorted by name for deterministic tests.
func (d *MockDir) Subdirs() ([]Dir, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.subdirs))
	for name := range d.subdirs {
		names = append(names, name)
	}
	sort.Strings(names)

	dirs := make([]Dir, 0, len(names))
	for _, name := range names {
		dirs = append(dirs, d.subdirs[name])
	}

	return dirs, nil
}

// Subdir opens a named child directory.
func (d *MockDir) Subdir(name string) (Dir, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	sub, exists := d.subdirs[name]
	if !exists {
		return nil, fmt.Errorf("subdirectory %s: %w", name, os.ErrNotExist)
	}

	return sub, nil
}

// Files lists handles for the child files, sorted by name.
func (d *MockDir) Files() ([]FileHandle, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.files))
	for name := range d.files {
		names = append(names, name)
	}
	sort.Strings(names)

	files := make([]FileHandle, 0, len(names))
	for _, name := range names {
		files = append(files, d.files[name])
	}

	return files, nil
}

// MockFileHandle is an in-memory FileHandle implementation for testing.
type MockFileHandle struct {
	name string
	data []byte

	// SizeErr, when set, is returned from Size.
	SizeErr error
	// OpenErr, when set, is returned from Open.
	OpenErr error

	mu        sync.Mutex
	openCount int
}

// NewMockFileHandle creates a standalone in-memory file handle.
func NewMockFileHandle(name string, data []byte) *MockFileHandle {
	return &MockFileHandle{name: name, data: data}
}

// Name returns the file's name.
func (f *MockFileHandle) Name() string {
	return f.name
}

// Size returns the file's length in bytes.
func (f *MockFileHandle) Size() (int64, error) {
	if f.SizeErr != nil {
		return 0, f.SizeErr
	}

	return int64(len(f.data)), nil
}

// Open opens the file's contents for reading.
func (f *MockFileHandle) Open() (io.ReadCloser, error) {
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}

	f.mu.Lock()
	f.openCount++
	f.mu.Unlock()

	return io.NopCloser(bytes.NewReader(f.data)), nil
}

// OpenCount returns how many times Open succeeded.
// Tests use this to verify reads stay lazy until transfer time.
func (f *MockFileHandle) OpenCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.openCount
}
