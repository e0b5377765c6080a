package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joe/rom-sync/internal/config"
	"github.com/joe/rom-sync/internal/syncengine"
	"github.com/joe/rom-sync/internal/tui/shared"
	"github.com/joe/rom-sync/pkg/devicefs"
)

// Init implements tea.Model
func (m AppModel) Init() tea.Cmd {
	if m.phase == PhaseInput {
		return textinput.Blink
	}

	return tea.Batch(connectCmd(m.config), m.spinner.Tick)
}

// Update implements tea.Model
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	case shared.TargetsEnteredMsg:
		return m.handleTargetsEntered(msg)
	case shared.SessionReadyMsg:
		return m.handleSessionReady(msg)
	case shared.ScanDoneMsg:
		return m.handleScanDone(msg)
	case shared.EngineEventMsg:
		return m.handleEngineEvent(msg)
	case shared.ConflictMsg:
		conflict := msg.Request
		m.conflict = &conflict

		return m, nil
	case shared.TransferDoneMsg:
		return m.handleTransferDone(msg)
	case shared.ErrorMsg:
		m.phase = PhaseError
		m.err = msg.Err

		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m AppModel) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	barWidth := msg.Width - 2*shared.DefaultPadding
	if barWidth > shared.MaxProgressBarWidth {
		barWidth = shared.MaxProgressBarWidth
	}
	if barWidth > 0 {
		m.syncProgress.Width = barWidth
	}

	return m, nil
}

func (m AppModel) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case PhaseConnect, PhaseScan, PhaseSync:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case PhaseInput, PhaseReview, PhaseSummary, PhaseError:
	}

	return m, nil
}

func (m AppModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == shared.KeyCtrlC {
		return m.handleCancel()
	}

	switch m.phase {
	case PhaseInput:
		return m.handleInputKey(msg)
	case PhaseReview:
		return m.handleReviewKey(msg)
	case PhaseSync:
		return m.handleSyncKey(msg)
	case PhaseSummary, PhaseError:
		switch msg.String() {
		case "q", "enter", "esc":
			return m.quit()
		}
	case PhaseConnect, PhaseScan:
	}

	return m, nil
}

// handleCancel maps ctrl+c to a graceful stop: during a transfer it asks the
// engine to stop after the current file, everywhere else it quits.
func (m AppModel) handleCancel() (tea.Model, tea.Cmd) {
	if m.phase == PhaseSync && m.session != nil {
		m.session.Cancel()
		m.notice = "Cancelling after the current file..."

		if m.conflict != nil {
			m.conflict = nil
			m.prompter.Resolve(syncengine.ResolveSkip)

			return m, waitConflictCmd(m.prompter)
		}

		return m, nil
	}

	return m.quit()
}

func (m AppModel) quit() (tea.Model, tea.Cmd) {
	if m.session != nil {
		_ = m.session.Exit() //nolint:errcheck // Wrong-phase exits are harmless on quit
	}

	if m.closer != nil {
		_ = m.closer.Close() //nolint:errcheck // Best-effort connection teardown
	}

	m.quitting = true

	return m, tea.Quit
}

// ============================================================================
// Input phase
// ============================================================================

func (m AppModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down", "up", "shift+tab":
		return m.toggleInputFocus()
	case "enter":
		if m.focusIndex == 0 {
			return m.toggleInputFocus()
		}

		return m.submitTargets()
	}

	return m.updateFocusedInput(msg)
}

func (m AppModel) toggleInputFocus() (tea.Model, tea.Cmd) {
	m.focusIndex = 1 - m.focusIndex

	if m.focusIndex == 0 {
		m.deviceInput.Blur()
		cmd := m.localInput.Focus()
		m.localInput.Prompt = shared.PromptArrow
		m.deviceInput.Prompt = "  "

		return m, cmd
	}

	m.localInput.Blur()
	cmd := m.deviceInput.Focus()
	m.deviceInput.Prompt = shared.PromptArrow
	m.localInput.Prompt = "  "

	return m, cmd
}

func (m AppModel) submitTargets() (tea.Model, tea.Cmd) {
	candidate := config.Config{
		LocalRoot:    m.localInput.Value(),
		DeviceTarget: m.deviceInput.Value(),
		MediaDir:     m.config.MediaDir,
	}

	if err := candidate.ValidateTargets(); err != nil {
		m.validationError = err.Error()

		return m, nil
	}

	m.validationError = ""

	return m, func() tea.Msg {
		return shared.TargetsEnteredMsg{
			LocalRoot:    candidate.LocalRoot,
			DeviceTarget: candidate.DeviceTarget,
		}
	}
}

func (m AppModel) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.phase != PhaseInput {
		return m, nil
	}

	var cmd tea.Cmd
	if m.focusIndex == 0 {
		m.localInput, cmd = m.localInput.Update(msg)
	} else {
		m.deviceInput, cmd = m.deviceInput.Update(msg)
	}

	return m, cmd
}

// ============================================================================
// Review phase
// ============================================================================

func (m AppModel) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.visibleRows()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case " ", "enter":
		m.toggleUnderCursor(rows)
	case "a":
		if current, ok := cursorRow(rows, m.cursor); ok {
			_ = m.session.SelectAllInSystem(current.systemIdx) //nolint:errcheck // Review phase is guaranteed here
			m.refresh()
		}
	case "d":
		if current, ok := cursorRow(rows, m.cursor); ok {
			_ = m.session.DeselectSystem(current.systemIdx) //nolint:errcheck // Review phase is guaranteed here
			m.refresh()
		}
	case "n":
		_ = m.session.SelectAllNew() //nolint:errcheck // Review phase is guaranteed here
		m.refresh()
	case "N":
		if current, ok := cursorRow(rows, m.cursor); ok {
			_ = m.session.SelectAllNewInSystem(current.systemIdx) //nolint:errcheck // Review phase is guaranteed here
			m.refresh()
		}
	case "s":
		return m.startTransfer()
	case "q", "esc":
		return m.quit()
	}

	m.clampScroll()

	return m, nil
}

func (m *AppModel) toggleUnderCursor(rows []row) {
	current, ok := cursorRow(rows, m.cursor)
	if !ok {
		return
	}

	if current.fileIdx < 0 {
		_ = m.session.ToggleExpanded(current.systemIdx) //nolint:errcheck // Review phase is guaranteed here
	} else {
		_ = m.session.ToggleFile(current.systemIdx, current.fileIdx) //nolint:errcheck // Indices come from the snapshot
	}

	m.refresh()
}

func cursorRow(rows []row, cursor int) (row, bool) {
	if cursor < 0 || cursor >= len(rows) {
		return row{}, false
	}

	return rows[cursor], true
}

// clampScroll keeps the cursor inside the visible window.
func (m *AppModel) clampScroll() {
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}

	if m.cursor >= m.scroll+shared.MaxVisibleRows {
		m.scroll = m.cursor - shared.MaxVisibleRows + 1
	}
}

func (m AppModel) startTransfer() (tea.Model, tea.Cmd) {
	if m.session.SelectedCount() == 0 {
		m.notice = "Nothing selected. Toggle files with space, or press n to select everything new."

		return m, nil
	}

	m.phase = PhaseSync
	m.notice = ""
	m.currentItem = ""

	return m, tea.Batch(
		transferCmd(m.session, m.prompter),
		waitConflictCmd(m.prompter),
		m.spinner.Tick,
	)
}

// ============================================================================
// Sync phase
// ============================================================================

func (m AppModel) handleSyncKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.conflict == nil {
		return m, nil
	}

	var res syncengine.Resolution

	switch msg.String() {
	case "o":
		res = syncengine.ResolveOverwrite
	case "s":
		res = syncengine.ResolveSkip
	case "O":
		res = syncengine.ResolveOverwriteAll
	case "S":
		res = syncengine.ResolveSkipAll
	default:
		return m, nil
	}

	m.conflict = nil
	m.prompter.Resolve(res)

	return m, waitConflictCmd(m.prompter)
}

// ============================================================================
// Transition handlers
// ============================================================================

func (m AppModel) handleTargetsEntered(msg shared.TargetsEnteredMsg) (tea.Model, tea.Cmd) {
	m.config.LocalRoot = msg.LocalRoot
	m.config.DeviceTarget = msg.DeviceTarget
	m.phase = PhaseConnect

	return m, tea.Batch(connectCmd(m.config), m.spinner.Tick)
}

func (m AppModel) handleSessionReady(msg shared.SessionReadyMsg) (tea.Model, tea.Cmd) {
	m.session = msg.Session
	m.closer = msg.Closer
	m.session.SetEventEmitter(m.bridge)
	m.phase = PhaseScan

	return m, tea.Batch(scanCmd(m.session), m.bridge.ListenCmd(), m.spinner.Tick)
}

func (m AppModel) handleScanDone(msg shared.ScanDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.phase = PhaseError
		m.err = enrich(msg.Err, m.config.LocalRoot)

		return m, nil
	}

	m.phase = PhaseReview
	m.cursor = 0
	m.scroll = 0
	m.refresh()

	return m, nil
}

func (m AppModel) handleEngineEvent(msg shared.EngineEventMsg) (tea.Model, tea.Cmd) {
	switch event := msg.Event.(type) {
	case syncengine.SystemScanned:
		m.scannedDirs++
	case syncengine.ItemStarted:
		m.currentItem = devicefs.Join(event.System, event.File)
		m.refresh()
	case syncengine.ItemComplete, syncengine.TransferStarted, syncengine.TransferComplete:
		m.refresh()
	}

	return m, m.bridge.ListenCmd()
}

func (m AppModel) handleTransferDone(msg shared.TransferDoneMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.Err, syncengine.ErrNothingSelected) {
		m.phase = PhaseReview
		m.notice = "Nothing selected. Toggle files with space, or press n to select everything new."

		return m, nil
	}

	if msg.Err != nil {
		m.phase = PhaseError
		m.err = msg.Err

		return m, nil
	}

	m.phase = PhaseSummary
	m.conflict = nil
	m.currentItem = ""
	m.refresh()

	return m, nil
}
