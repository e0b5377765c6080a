// Package syncengine implements the folder-to-device ROM synchronization
// engine: scan a local library root, probe the matching tree on the device,
// classify candidates as new or conflicting, and execute the selected set as
// an ordered sequential transfer batch with per-item accounting.
package syncengine

import (
	"errors"

	"github.com/joe/rom-sync/pkg/localfs"
)

// Exported variables.
var (
	ErrNoSystems        = errors.New("no system directories found in the local root")
	ErrNothingSelected  = errors.New("no files selected for transfer")
	ErrTransferAborted = errors.New("transfer aborted")
	ErrWrongPhase      = errors.New("operation not valid in current phase")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Phase is the session's lifecycle state.
type Phase string

// Session phases.
const (
	PhaseScanning Phase = "scanning"
	PhaseReview   Phase = "review"
	PhaseSyncing  Phase = "syncing"
	PhaseDone     Phase = "done"
)

// FileStatus classifies a candidate file against the device tree.
type FileStatus string

// File statuses.
const (
	// StatusNew means the file has no same-named counterpart on the device.
	StatusNew FileStatus = "new"
	// StatusExists means a same-named file is already on the device.
	StatusExists FileStatus = "exists"
)

// ConflictPolicy governs how existing files are handled during transfer.
type ConflictPolicy string

// Conflict policies.
const (
	// PolicyAsk prompts for each conflicting file.
	PolicyAsk ConflictPolicy = "ask"
	// PolicyOverwriteAll overwrites every remaining conflict without prompting.
	PolicyOverwriteAll ConflictPolicy = "overwrite-all"
	// PolicySkipAll skips every remaining conflict without prompting.
	PolicySkipAll ConflictPolicy = "skip-all"
)

// File is one candidate file discovered by the scan.
type File struct {
	Name      string
	IsMedia   bool  // lives in the system's media subfolder
	LocalSize int64 // byte length of the local file
	// DeviceSize is the byte length on the device.
	// Only meaningful when Status == StatusExists.
	DeviceSize int64
	Status     FileStatus
	Selected   bool

	// Source re-reads the local bytes on demand; nothing is buffered
	// until transfer time.
	Source localfs.FileHandle
}

// System is one recognized system directory, shared by name between the
// local library and the device.
type System struct {
	DirName  string
	Files    []*File
	Expanded bool // display-only
}

// Counts returns the system's new, existing, and selected file tallies.
func (s *System) Counts() (newCount, existingCount, selectedCount int) {
	for _, file := range s.Files {
		switch file.Status {
		case StatusNew:
			newCount++
		case StatusExists:
			existingCount++
		}

		if file.Selected {
			selectedCount++
		}
	}

	return newCount, existingCount, selectedCount
}

// Counters tracks batch transfer progress.
// Invariant: Transferred+Skipped+Failed == Completed <= Total.
type Counters struct {
	Completed   int
	Total       int
	Transferred int
	Skipped     int
	Failed      int
}

// FileError records one failed transfer item.
type FileError struct {
	System string
	File   string
	Err    error
}
