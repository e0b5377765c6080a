package syncengine

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/joe/rom-sync/pkg/devicefs"
	"github.com/joe/rom-sync/pkg/localfs"
)

// ActivityLogLimit caps the number of retained activity log entries.
const ActivityLogLimit = 20

// Session is the aggregate root for one synchronization run. It owns the
// classified file set, the selection state, and the transfer counters, and
// advances through scanning → review → syncing → done. A session is
// single-use: a fresh synchronization always starts a new instance.
type Session struct {
	mu            sync.RWMutex
	phase         Phase
	systems       []*System
	counters      Counters
	policy        ConflictPolicy
	currentSystem string
	currentFile   string
	fileErrors    []FileError
	activity      []string

	root     localfs.Dir
	device   devicefs.FS
	basePath string
	mediaDir string
	filter   FileFilter
	emitter  EventEmitter

	cancelChan chan struct{}
	cancelOnce sync.Once
}

// NewSession creates a session over the given local root and device target.
// basePath is the device-side directory the system folders live under;
// mediaDir is the fixed name of the per-system media subfolder.
func NewSession(root localfs.Dir, device devicefs.FS, basePath, mediaDir string) *Session {
	return &Session{
		phase:      PhaseScanning,
		policy:     PolicyAsk,
		root:       root,
		device:     device,
		basePath:   basePath,
		mediaDir:   mediaDir,
		cancelChan: make(chan struct{}),
	}
}

// SetEventEmitter sets the event emitter for UI communication.
// The emitter is optional - if nil, no events are emitted.
func (s *Session) SetEventEmitter(emitter EventEmitter) {
	s.emitter = emitter
}

// SetFilter sets an optional file filter applied during scanning.
func (s *Session) SetFilter(filter FileFilter) {
	s.filter = filter
}

// emit sends an event if an emitter is configured.
func (s *Session) emit(event Event) {
	if s.emitter != nil {
		s.emitter.Emit(event)
	}
}

// Scan runs the local scan, the device probe, and classification, then moves
// the session to review. Returns ErrNoSystems (and stays out of review) when
// the root contains no qualifying system directories - a recoverable notice,
// not a fatal error.
func (s *Session) Scan() error {
	if current := s.Phase(); current != PhaseScanning {
		return fmt.Errorf("scan in phase %s: %w", current, ErrWrongPhase)
	}

	s.emit(ScanStarted{})

	locals, err := scanLocalTree(s.root, s.mediaDir, s.filter)
	if err != nil {
		return err
	}

	systems := make([]*System, 0, len(locals))
	totalFiles := 0

	for _, local := range locals {
		listing := probeSystem(s.device, s.basePath, s.mediaDir, local.dirName)

		system := &System{
			DirName: local.dirName,
			Files:   classifyFiles(local.files, listing),
		}
		systems = append(systems, system)
		totalFiles += len(system.Files)

		s.emit(SystemScanned{DirName: system.DirName, FileCount: len(system.Files)})
	}

	// Stable case-insensitive order; processed in this order during transfer
	sort.SliceStable(systems, func(i, j int) bool {
		return strings.ToLower(systems[i].DirName) < strings.ToLower(systems[j].DirName)
	})

	s.mu.Lock()
	s.systems = systems
	s.phase = PhaseReview
	s.mu.Unlock()

	s.logActivity(fmt.Sprintf("Scanned %d systems, %d files", len(systems), totalFiles))
	s.emit(ScanComplete{Systems: len(systems), Files: totalFiles})

	return nil
}

// Phase returns the session's current phase.
func (s *Session) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.phase
}

// Systems returns the session's systems. The returned slice is shared;
// callers in the UI must treat it as read-only once syncing starts.
func (s *Session) Systems() []*System {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.systems
}

// ToggleFile flips one file's selection flag.
func (s *Session) ToggleFile(systemIdx, fileIdx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseReview {
		return fmt.Errorf("toggle in phase %s: %w", s.phase, ErrWrongPhase)
	}

	if systemIdx < 0 || systemIdx >= len(s.systems) {
		return fmt.Errorf("system %d: %w", systemIdx, ErrIndexOutOfRange)
	}

	system := s.systems[systemIdx]
	if fileIdx < 0 || fileIdx >= len(system.Files) {
		return fmt.Errorf("file %d in %s: %w", fileIdx, system.DirName, ErrIndexOutOfRange)
	}

	system.Files[fileIdx].Selected = !system.Files[fileIdx].Selected

	return nil
}

// ToggleExpanded flips one system's display-only expansion flag.
func (s *Session) ToggleExpanded(systemIdx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if systemIdx < 0 || systemIdx >= len(s.systems) {
		return fmt.Errorf("system %d: %w", systemIdx, ErrIndexOutOfRange)
	}

	s.systems[systemIdx].Expanded = !s.systems[systemIdx].Expanded

	return nil
}

// SelectAllNew selects every new file in every system.
func (s *Session) SelectAllNew() error {
	return s.mutateSelection(func(file *File) {
		if file.Status == StatusNew {
			file.Selected = true
		}
	})
}

// SelectAllNewInSystem selects every new file in one system.
func (s *Session) SelectAllNewInSystem(systemIdx int) error {
	return s.mutateSystemSelection(systemIdx, func(file *File) {
		if file.Status == StatusNew {
			file.Selected = true
		}
	})
}

// SelectAllInSystem selects every file in one system, conflicts included.
func (s *Session) SelectAllInSystem(systemIdx int) error {
	return s.mutateSystemSelection(systemIdx, func(file *File) {
		file.Selected = true
	})
}

// DeselectSystem deselects every file in one system.
func (s *Session) DeselectSystem(systemIdx int) error {
	return s.mutateSystemSelection(systemIdx, func(file *File) {
		file.Selected = false
	})
}

// SelectedCount returns the number of selected files across all systems.
func (s *Session) SelectedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, system := range s.systems {
		_, _, selected := system.Counts()
		count += selected
	}

	return count
}

// Counters returns a copy of the transfer counters.
func (s *Session) Counters() Counters {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.counters
}

// Policy returns the active conflict policy.
func (s *Session) Policy() ConflictPolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.policy
}

// Cancel requests a cooperative stop between transfer items.
func (s *Session) Cancel() {
	s.cancelOnce.Do(func() {
		close(s.cancelChan)
	})
}

// Exit ends the session from review or done and asks the caller to refresh
// its browse view so newly written files show up.
func (s *Session) Exit() error {
	if current := s.Phase(); current != PhaseReview && current != PhaseDone {
		return fmt.Errorf("exit in phase %s: %w", current, ErrWrongPhase)
	}

	s.emit(RefreshRequested{})

	return nil
}

// Snapshot is a point-in-time copy of the session state, safe for the UI to
// read while the transfer loop runs.
type Snapshot struct {
	Phase         Phase
	Systems       []SystemSnapshot
	Counters      Counters
	Policy        ConflictPolicy
	CurrentSystem string
	CurrentFile   string
	Errors        []FileError
	Activity      []string

	// Global derived counts
	NewCount      int
	ExistingCount int
	SelectedCount int
}

// SystemSnapshot is a copy of one system's state.
type SystemSnapshot struct {
	DirName       string
	Files         []File
	Expanded      bool
	NewCount      int
	ExistingCount int
	SelectedCount int
}

// Snapshot returns a copy of the session state for display.
func (s *Session) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{
		Phase:         s.phase,
		Counters:      s.counters,
		Policy:        s.policy,
		CurrentSystem: s.currentSystem,
		CurrentFile:   s.currentFile,
		Systems:       make([]SystemSnapshot, 0, len(s.systems)),
		Errors:        make([]FileError, len(s.fileErrors)),
		Activity:      make([]string, len(s.activity)),
	}

	copy(snap.Errors, s.fileErrors)
	copy(snap.Activity, s.activity)

	for _, system := range s.systems {
		newCount, existingCount, selectedCount := system.Counts()

		sysSnap := SystemSnapshot{
			DirName:       system.DirName,
			Expanded:      system.Expanded,
			NewCount:      newCount,
			ExistingCount: existingCount,
			SelectedCount: selectedCount,
			Files:         make([]File, 0, len(system.Files)),
		}

		for _, file := range system.Files {
			sysSnap.Files = append(sysSnap.Files, *file)
		}

		snap.Systems = append(snap.Systems, sysSnap)
		snap.NewCount += newCount
		snap.ExistingCount += existingCount
		snap.SelectedCount += selectedCount
	}

	return snap
}

// mutateSelection applies fn to every file, in review phase only.
func (s *Session) mutateSelection(fn func(*File)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseReview {
		return fmt.Errorf("selection change in phase %s: %w", s.phase, ErrWrongPhase)
	}

	for _, system := range s.systems {
		for _, file := range system.Files {
			fn(file)
		}
	}

	return nil
}

// mutateSystemSelection applies fn to one system's files, in review phase only.
func (s *Session) mutateSystemSelection(systemIdx int, fn func(*File)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseReview {
		return fmt.Errorf("selection change in phase %s: %w", s.phase, ErrWrongPhase)
	}

	if systemIdx < 0 || systemIdx >= len(s.systems) {
		return fmt.Errorf("system %d: %w", systemIdx, ErrIndexOutOfRange)
	}

	for _, file := range s.systems[systemIdx].Files {
		fn(file)
	}

	return nil
}

// logActivity appends a line to the capped activity log.
func (s *Session) logActivity(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activity = append(s.activity, msg)
	if len(s.activity) > ActivityLogLimit {
		s.activity = s.activity[len(s.activity)-ActivityLogLimit:]
	}
}

// cancelled reports whether Cancel has been called.
func (s *Session) cancelled() bool {
	select {
	case <-s.cancelChan:
		return true
	default:
		return false
	}
}
