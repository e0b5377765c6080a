package syncengine

// Event is the interface implemented by all sync engine events.
type Event interface {
	isEvent()
}

// EventEmitter is the interface for emitting events.
type EventEmitter interface {
	Emit(event Event)
}

// Scan phase events

// ScanStarted is emitted when the local/device scan begins.
type ScanStarted struct{}

func (ScanStarted) isEvent() {}

// SystemScanned is emitted after one system directory has been scanned and probed.
type SystemScanned struct {
	DirName   string
	FileCount int
}

func (SystemScanned) isEvent() {}

// ScanComplete is emitted when scanning finishes and the session enters review.
type ScanComplete struct {
	Systems int
	Files   int
}

func (ScanComplete) isEvent() {}

// Transfer phase events

// TransferStarted is emitted when the transfer batch begins.
type TransferStarted struct {
	Selected int
}

func (TransferStarted) isEvent() {}

// ItemStarted is emitted when one file's transfer begins.
type ItemStarted struct {
	System string
	File   string
	Size   int64
}

func (ItemStarted) isEvent() {}

// ItemComplete is emitted when one file has been processed, whatever the outcome.
type ItemComplete struct {
	System  string
	File    string
	Outcome ItemOutcome
	Err     error // set only for OutcomeFailed
}

func (ItemComplete) isEvent() {}

// TransferComplete is emitted when every selected item has been processed.
type TransferComplete struct {
	Counters Counters
}

func (TransferComplete) isEvent() {}

// Session events

// RefreshRequested is emitted when the session exits and the caller's
// browse view should be reloaded to reflect newly written files.
type RefreshRequested struct{}

func (RefreshRequested) isEvent() {}

// ItemOutcome is the terminal state of one processed item.
type ItemOutcome string

// Item outcomes.
const (
	OutcomeTransferred ItemOutcome = "transferred"
	OutcomeSkipped     ItemOutcome = "skipped"
	OutcomeFailed      ItemOutcome = "failed"
)
