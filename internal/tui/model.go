// Package tui implements the terminal user interface for rom-sync.
package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/joe/rom-sync/internal/config"
	"github.com/joe/rom-sync/internal/syncengine"
	"github.com/joe/rom-sync/internal/tui/shared"
)

// Phase tracks which stage of the flow the UI is showing.
type Phase int

// UI phases, in flow order.
const (
	PhaseInput Phase = iota
	PhaseConnect
	PhaseScan
	PhaseReview
	PhaseSync
	PhaseSummary
	PhaseError
)

// row maps a visible list line back to session indices.
// fileIdx is -1 for a system header row.
type row struct {
	systemIdx int
	fileIdx   int
}

// AppModel is the top-level model driving the whole flow as a single screen.
type AppModel struct {
	config *config.Config
	phase  Phase

	// Input phase
	localInput      textinput.Model
	deviceInput     textinput.Model
	focusIndex      int
	validationError string

	// Session and plumbing (set once connected)
	session  *syncengine.Session
	bridge   *shared.EventBridge
	prompter *syncengine.ChannelPrompter
	closer   io.Closer

	// Display state
	snapshot     *syncengine.Snapshot
	cursor       int
	scroll       int
	notice       string
	conflict     *syncengine.ConflictRequest
	currentItem  string
	scannedDirs  int
	spinner      spinner.Model
	syncProgress progress.Model
	width        int
	height       int
	err          error
	quitting     bool
}

// NewAppModel creates the app model. When the config carries both targets the
// input phase is skipped and connection starts immediately.
func NewAppModel(cfg *config.Config) *AppModel {
	localInput := textinput.New()
	localInput.Placeholder = "/path/to/rom-library"
	localInput.Prompt = shared.PromptArrow
	localInput.SetValue(cfg.LocalRoot)
	localInput.Focus()

	deviceInput := textinput.New()
	deviceInput.Placeholder = "sftp://root@handheld/roms"
	deviceInput.Prompt = "  "
	deviceInput.SetValue(cfg.DeviceTarget)

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(shared.PrimaryColor())

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = shared.ProgressBarWidth

	phase := PhaseInput
	if !cfg.InteractiveMode {
		phase = PhaseConnect
	}

	return &AppModel{
		config:       cfg,
		phase:        phase,
		localInput:   localInput,
		deviceInput:  deviceInput,
		bridge:       shared.NewEventBridge(),
		prompter:     syncengine.NewChannelPrompter(),
		spinner:      spin,
		syncProgress: prog,
	}
}

// Phase returns the current UI phase (for testing).
func (m AppModel) Phase() Phase {
	return m.phase
}

// Session returns the active session (for testing).
func (m AppModel) Session() *syncengine.Session {
	return m.session
}

// visibleRows flattens the snapshot into list rows, honoring expansion.
func (m AppModel) visibleRows() []row {
	if m.snapshot == nil {
		return nil
	}

	rows := make([]row, 0, len(m.snapshot.Systems))

	for sysIdx, system := range m.snapshot.Systems {
		rows = append(rows, row{systemIdx: sysIdx, fileIdx: -1})

		if !system.Expanded {
			continue
		}

		for fileIdx := range system.Files {
			rows = append(rows, row{systemIdx: sysIdx, fileIdx: fileIdx})
		}
	}

	return rows
}

// refresh pulls a fresh snapshot and keeps the cursor within bounds.
func (m *AppModel) refresh() {
	if m.session == nil {
		return
	}

	m.snapshot = m.session.Snapshot()

	if rows := m.visibleRows(); m.cursor >= len(rows) && len(rows) > 0 {
		m.cursor = len(rows) - 1
	}
}
