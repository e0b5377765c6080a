package shared

import (
	"io"

	"github.com/joe/rom-sync/internal/syncengine"
)

// ============================================================================
// Transition Messages
// These messages trigger phase transitions and are handled by AppModel
// ============================================================================

// TargetsEnteredMsg is sent by the input phase when both targets validate
type TargetsEnteredMsg struct {
	LocalRoot    string
	DeviceTarget string
}

// SessionReadyMsg is sent when the device connection is up and a session exists
type SessionReadyMsg struct {
	Session *syncengine.Session
	Closer  io.Closer // nil for local targets
}

// ScanDoneMsg is sent when the library scan finishes
type ScanDoneMsg struct {
	Err error
}

// TransferDoneMsg is sent when the transfer batch finishes
type TransferDoneMsg struct {
	Err error
}

// ============================================================================
// Internal Messages
// These messages are used within phases for internal state management
// ============================================================================

// ConflictMsg is sent when the executor needs an overwrite decision
type ConflictMsg struct {
	Request syncengine.ConflictRequest
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Err error
}
