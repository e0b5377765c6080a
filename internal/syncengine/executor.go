package syncengine

import (
	"fmt"

	"github.com/joe/rom-sync/pkg/devicefs"
	pkgerrors "github.com/joe/rom-sync/pkg/errors"
)

// transferItem pairs a file with its owning system for batch processing.
type transferItem struct {
	system *System
	file   *File
}

// StartTransfer runs the batch transfer for the currently selected files and
// blocks until every item has been processed. Callers drive it from a
// goroutine and watch progress through events or Snapshot.
//
// Returns ErrNothingSelected (a notice, not a failure) when nothing is
// selected; the session stays in review. Otherwise the session always ends in
// done - partial failures never block completion.
func (s *Session) StartTransfer(prompter ConflictPrompter) error {
	items, err := s.beginTransfer()
	if err != nil {
		return err
	}

	s.emit(TransferStarted{Selected: len(items)})

	executor := &batchExecutor{
		session:  s,
		device:   s.device,
		basePath: s.basePath,
		mediaDir: s.mediaDir,
		prompter: prompter,
		enricher: pkgerrors.NewEnricher(),
		ensured:  make(map[string]bool),
	}

	for _, item := range items {
		if s.cancelled() {
			s.logActivity("Transfer cancelled")
			break
		}

		executor.processItem(item)
	}

	s.mu.Lock()
	s.phase = PhaseDone
	s.currentSystem = ""
	s.currentFile = ""
	counters := s.counters
	s.mu.Unlock()

	s.logActivity(fmt.Sprintf(
		"Transfer finished: %d transferred, %d skipped, %d failed",
		counters.Transferred, counters.Skipped, counters.Failed,
	))
	s.emit(TransferComplete{Counters: counters})

	return nil
}

// beginTransfer validates the start action and snapshots the ordered
// selected set. The file list is frozen from the UI's perspective once the
// session enters syncing.
func (s *Session) beginTransfer() ([]transferItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseReview {
		return nil, fmt.Errorf("start transfer in phase %s: %w", s.phase, ErrWrongPhase)
	}

	var items []transferItem
	for _, system := range s.systems {
		for _, file := range system.Files {
			if file.Selected {
				items = append(items, transferItem{system: system, file: file})
			}
		}
	}

	if len(items) == 0 {
		return nil, ErrNothingSelected
	}

	s.phase = PhaseSyncing
	s.policy = PolicyAsk
	s.counters = Counters{Total: len(items)}

	return items, nil
}

// batchExecutor sequentially realizes selected files as device writes,
// resolving conflicts under the active policy and maintaining the counters.
type batchExecutor struct {
	session  *Session
	device   devicefs.FS
	basePath string
	mediaDir string
	prompter ConflictPrompter
	enricher pkgerrors.Enricher
	ensured  map[string]bool
}

// processItem handles exactly one file: conflict resolution, then transfer.
// Completed increments exactly once per item regardless of outcome, keeping
// transferred+skipped+failed == completed after every item.
func (e *batchExecutor) processItem(item transferItem) {
	session := e.session

	session.mu.Lock()
	session.currentSystem = item.system.DirName
	session.currentFile = item.file.Name
	session.mu.Unlock()

	session.emit(ItemStarted{
		System: item.system.DirName,
		File:   item.file.Name,
		Size:   item.file.LocalSize,
	})

	if item.file.Status == StatusExists && !e.resolveConflict(item) {
		e.complete(item, OutcomeSkipped, nil)
		return
	}

	if err := e.transfer(item); err != nil {
		e.complete(item, OutcomeFailed, err)
		return
	}

	e.complete(item, OutcomeTransferred, nil)
}

// resolveConflict decides whether a conflicting item proceeds, prompting
// under the ask policy. Policy changes from bulk resolutions apply only to
// items processed afterwards.
func (e *batchExecutor) resolveConflict(item transferItem) bool {
	session := e.session

	switch session.Policy() {
	case PolicySkipAll:
		return false
	case PolicyOverwriteAll:
		return true
	case PolicyAsk:
	}

	resolution := e.prompter.Ask(ConflictRequest{
		System:     item.system.DirName,
		File:       item.file.Name,
		LocalSize:  item.file.LocalSize,
		DeviceSize: item.file.DeviceSize,
	})

	switch resolution {
	case ResolveOverwrite:
		return true
	case ResolveSkip:
		return false
	case ResolveOverwriteAll:
		session.setPolicy(PolicyOverwriteAll)
		return true
	case ResolveSkipAll:
		session.setPolicy(PolicySkipAll)
		return false
	default:
		return false
	}
}

// transfer ensures the destination directory and writes the file's bytes,
// read lazily from the local handle.
func (e *batchExecutor) transfer(item transferItem) error {
	destDir := devicefs.Join(e.basePath, item.system.DirName)
	if item.file.IsMedia {
		destDir = devicefs.Join(destDir, e.mediaDir)
	}

	if !e.ensured[destDir] {
		if err := e.device.EnsureDir(destDir); err != nil {
			return fmt.Errorf("failed to ensure %s: %w", destDir, err)
		}
		e.ensured[destDir] = true
	}

	reader, err := item.file.Source.Open()
	if err != nil {
		return fmt.Errorf("failed to open local file %s: %w", item.file.Name, err)
	}
	defer func() { _ = reader.Close() }()

	destPath := devicefs.Join(destDir, item.file.Name)
	if err := e.device.WriteFile(destPath, reader); err != nil {
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}

	return nil
}

// complete records one item's outcome and advances the counters.
func (e *batchExecutor) complete(item transferItem, outcome ItemOutcome, err error) {
	session := e.session

	session.mu.Lock()
	session.counters.Completed++

	switch outcome {
	case OutcomeTransferred:
		session.counters.Transferred++
	case OutcomeSkipped:
		session.counters.Skipped++
	case OutcomeFailed:
		session.counters.Failed++
		session.fileErrors = append(session.fileErrors, FileError{
			System: item.system.DirName,
			File:   item.file.Name,
			Err:    e.enricher.Enrich(err, ""),
		})
	}
	session.mu.Unlock()

	if outcome == OutcomeFailed {
		session.logActivity(fmt.Sprintf("Failed %s/%s: %v", item.system.DirName, item.file.Name, err))
	}

	session.emit(ItemComplete{
		System:  item.system.DirName,
		File:    item.file.Name,
		Outcome: outcome,
		Err:     err,
	})
}

// setPolicy changes the conflict policy mid-transfer.
func (s *Session) setPolicy(policy ConflictPolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.policy = policy
}
