// Package devicefs abstracts the narrow file-transfer protocol exposed by
// the handheld device: list a directory, ensure a directory exists, and
// write a file. SFTP is the real transport; a directory-backed and an
// in-memory implementation exist for dry runs and testing.
package devicefs

import (
	"errors"
	"io"
)

// ErrNotFound indicates a listed path does not exist on the device.
// Probing code treats this as "zero remote files", not a failure.
var ErrNotFound = errors.New("path not found on device")

// Entry is one directory-listing result.
type Entry struct {
	Name  string
	Size  int64
	IsDir bool
}

// FS is the narrow remote-filesystem contract the sync engine consumes.
type FS interface {
	// List returns the entries of a remote directory.
	// Returns an error wrapping ErrNotFound when the directory doesn't exist.
	List(path string) ([]Entry, error)

	// EnsureDir creates a remote directory (and parents) if missing.
	// Idempotent: succeeds when the directory already exists.
	EnsureDir(path string) error

	// WriteFile writes the reader's contents to a remote path,
	// replacing any existing file.
	WriteFile(path string, r io.Reader) error
}

// Closer is implemented by FS backends that hold a connection.
type Closer interface {
	Close() error
}
