package devicefs

import (
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
)

// MockDevice is an in-memory FS implementation for testing.
type MockDevice struct {
	mu    sync.RWMutex
	dirs  map[string]bool
	files map[string][]byte

	// WriteErrs maps a path to an error returned from WriteFile for it.
	WriteErrs map[string]error
	// EnsureDirErrs maps a path to an error returned from EnsureDir for it.
	EnsureDirErrs map[string]error

	writeLog []string
}

// NewMockDevice creates an empty in-memory device filesystem.
func NewMockDevice() *MockDevice {
	return &MockDevice{
		dirs:          make(map[string]bool),
		files:         make(map[string][]byte),
		WriteErrs:     make(map[string]error),
		EnsureDirErrs: make(map[string]error),
	}
}

// AddDir records a directory as existing on the device.
func (d *MockDevice) AddDir(dirPath string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.addDirLocked(dirPath)
}

// AddFile records a file with contents on the device, creating parent dirs.
func (d *MockDevice) AddFile(filePath string, data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.files[cleanPath(filePath)] = data
	d.addDirLocked(path.Dir(cleanPath(filePath)))
}

// List returns the direct children of a directory.
func (d *MockDevice) List(dirPath string) ([]Entry, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	clean := cleanPath(dirPath)
	if !d.dirs[clean] {
		return nil, fmt.Errorf("list %s: %w", dirPath, ErrNotFound)
	}

	var entries []Entry

	for dir := range d.dirs {
		if path.Dir(dir) == clean && dir != clean {
			entries = append(entries, Entry{Name: path.Base(dir), IsDir: true})
		}
	}

	for file, data := range d.files {
		if path.Dir(file) == clean {
			entries = append(entries, Entry{Name: path.Base(file), Size: int64(len(data))})
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	return entries, nil
}

// EnsureDir creates a directory and its parents.
func (d *MockDevice) EnsureDir(dirPath string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.EnsureDirErrs[cleanPath(dirPath)]; err != nil {
		return err
	}

	d.addDirLocked(dirPath)

	return nil
}

// WriteFile stores the reader's contents at a path.
func (d *MockDevice) WriteFile(filePath string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	clean := cleanPath(filePath)
	if err := d.WriteErrs[clean]; err != nil {
		return err
	}

	d.files[clean] = data
	d.writeLog = append(d.writeLog, clean)

	return nil
}

// Exists reports whether a file exists on the device.
func (d *MockDevice) Exists(filePath string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, exists := d.files[cleanPath(filePath)]

	return exists
}

// FileData returns the stored contents of a file.
func (d *MockDevice) FileData(filePath string) []byte {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.files[cleanPath(filePath)]
}

// WriteLog returns the ordered paths written via WriteFile.
func (d *MockDevice) WriteLog() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	log := make([]string, len(d.writeLog))
	copy(log, d.writeLog)

	return log
}

// addDirLocked records a directory and all its parents. Caller holds mu.
func (d *MockDevice) addDirLocked(dirPath string) {
	clean := cleanPath(dirPath)
	for clean != "." && clean != "/" {
		d.dirs[clean] = true
		clean = path.Dir(clean)
	}
	d.dirs["."] = true
}

// cleanPath normalizes a device path for map keying.
func cleanPath(p string) string {
	clean := path.Clean(strings.TrimPrefix(p, "/"))
	if clean == "" {
		return "."
	}

	return clean
}
