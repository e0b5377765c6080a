package tui

import (
	"fmt"
	"strings"

	"github.com/joe/rom-sync/internal/syncengine"
	"github.com/joe/rom-sync/internal/tui/shared"
	pkgerrors "github.com/joe/rom-sync/pkg/errors"
)

const (
	collapsedMarker = "▸"
	expandedMarker  = "▾"
)

// View implements tea.Model
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.phase {
	case PhaseInput:
		content = m.renderInput()
	case PhaseConnect:
		content = m.renderConnect()
	case PhaseScan:
		content = m.renderScan()
	case PhaseReview:
		content = m.renderReview()
	case PhaseSync:
		content = m.renderSync()
	case PhaseSummary:
		content = m.renderSummary()
	case PhaseError:
		content = m.renderError()
	}

	return shared.RenderBox(content)
}

func (m AppModel) renderInput() string {
	var b strings.Builder

	b.WriteString(shared.RenderTitle("rom-sync"))
	b.WriteString("\n\n")
	b.WriteString(shared.RenderLabel("Local ROM library"))
	b.WriteString("\n")
	b.WriteString(m.localInput.View())
	b.WriteString("\n\n")
	b.WriteString(shared.RenderLabel("Device target"))
	b.WriteString("\n")
	b.WriteString(m.deviceInput.View())
	b.WriteString("\n")

	if m.validationError != "" {
		b.WriteString("\n")
		b.WriteString(shared.RenderError(m.validationError))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(shared.RenderDim("tab: switch field · enter: continue · ctrl+c: quit"))

	return b.String()
}

func (m AppModel) renderConnect() string {
	return fmt.Sprintf("%s\n\n%s Connecting to %s...",
		shared.RenderTitle("rom-sync"),
		m.spinner.View(),
		m.config.DeviceTarget)
}

func (m AppModel) renderScan() string {
	return fmt.Sprintf("%s\n\n%s Scanning library (%d system folders so far)...",
		shared.RenderTitle("rom-sync"),
		m.spinner.View(),
		m.scannedDirs)
}

func (m AppModel) renderReview() string {
	var b strings.Builder

	b.WriteString(shared.RenderTitle("rom-sync"))
	b.WriteString("  ")
	b.WriteString(shared.RenderDim(fmt.Sprintf("%s → %s", m.config.LocalRoot, m.config.DeviceTarget)))
	b.WriteString("\n\n")

	if m.snapshot != nil {
		b.WriteString(fmt.Sprintf("%d new · %d on device · %s\n\n",
			m.snapshot.NewCount,
			m.snapshot.ExistingCount,
			shared.RenderLabel(fmt.Sprintf("%d selected", m.snapshot.SelectedCount))))
	}

	rows := m.visibleRows()
	end := m.scroll + shared.MaxVisibleRows
	if end > len(rows) {
		end = len(rows)
	}

	for i := m.scroll; i < end; i++ {
		b.WriteString(m.renderRow(rows[i], i == m.cursor))
		b.WriteString("\n")
	}

	if end < len(rows) {
		b.WriteString(shared.RenderDim(fmt.Sprintf("  ... %d more", len(rows)-end)))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(shared.RenderWarning(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(shared.RenderDim("space: toggle · a/d: select/deselect system · n/N: select new (all/system) · s: sync · q: quit"))

	return b.String()
}

func (m AppModel) renderRow(current row, underCursor bool) string {
	system := m.snapshot.Systems[current.systemIdx]

	marker := "  "
	if underCursor {
		marker = shared.CursorMarker
	}

	var text string

	if current.fileIdx < 0 {
		expand := collapsedMarker
		if system.Expanded {
			expand = expandedMarker
		}

		text = fmt.Sprintf("%s %s  %d new · %d on device · %d selected",
			expand, system.DirName, system.NewCount, system.ExistingCount, system.SelectedCount)
	} else {
		file := system.Files[current.fileIdx]

		box := shared.UncheckedBox
		if file.Selected {
			box = shared.CheckedBox
		}

		name := file.Name
		if file.IsMedia {
			name = m.config.MediaDir + "/" + name
		}

		text = fmt.Sprintf("    %s %s  %s", box, name, shared.FormatBytes(file.LocalSize))

		if file.Status == syncengine.StatusExists {
			text += shared.RenderDim(fmt.Sprintf("  (device: %s)", shared.FormatBytes(file.DeviceSize)))
		}
	}

	if underCursor {
		return marker + shared.HighlightStyle().Render(text)
	}

	return marker + shared.NormalStyle().Render(text)
}

func (m AppModel) renderSync() string {
	if m.conflict != nil {
		return m.renderConflict()
	}

	var b strings.Builder

	b.WriteString(shared.RenderTitle("Syncing"))
	b.WriteString("\n\n")

	counters := syncengine.Counters{}
	if m.snapshot != nil {
		counters = m.snapshot.Counters
	}

	frac := 0.0
	if counters.Total > 0 {
		frac = float64(counters.Completed) / float64(counters.Total)
	}

	b.WriteString(m.syncProgress.ViewAs(frac))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n\n", m.spinner.View(), m.currentItem))
	b.WriteString(fmt.Sprintf("%d/%d · %d copied · %d skipped · %d failed",
		counters.Completed, counters.Total,
		counters.Transferred, counters.Skipped, counters.Failed))

	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(shared.RenderWarning(m.notice))
	}

	return b.String()
}

func (m AppModel) renderConflict() string {
	req := m.conflict

	var b strings.Builder

	b.WriteString(shared.RenderWarning("File already on device"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s\n", shared.RenderLabel(req.System+"/"+req.File)))
	b.WriteString(fmt.Sprintf("  local:  %s\n", shared.FormatBytes(req.LocalSize)))
	b.WriteString(fmt.Sprintf("  device: %s\n\n", shared.FormatBytes(req.DeviceSize)))
	b.WriteString("o: overwrite · s: skip · O: overwrite all · S: skip all")

	return b.String()
}

func (m AppModel) renderSummary() string {
	var b strings.Builder

	counters := syncengine.Counters{}
	if m.snapshot != nil {
		counters = m.snapshot.Counters
	}

	if counters.Failed > 0 {
		b.WriteString(shared.RenderWarning("Sync finished with errors"))
	} else {
		b.WriteString(shared.RenderSuccess("Sync complete"))
	}

	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%d copied · %d skipped · %d failed (of %d)\n",
		counters.Transferred, counters.Skipped, counters.Failed, counters.Total))

	if m.snapshot != nil && len(m.snapshot.Errors) > 0 {
		b.WriteString("\n")

		for _, fileErr := range m.snapshot.Errors {
			b.WriteString(shared.RenderError(fmt.Sprintf("%s/%s: %v", fileErr.System, fileErr.File, fileErr.Err)))
			b.WriteString("\n")

			if suggestions := pkgerrors.FormatSuggestions(fileErr.Err); suggestions != "" {
				b.WriteString(shared.RenderDim(suggestions))
				b.WriteString("\n")
			}
		}
	}

	if m.snapshot != nil && len(m.snapshot.Activity) > 0 {
		b.WriteString("\n")

		for _, line := range m.snapshot.Activity {
			b.WriteString(shared.RenderDim(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(shared.RenderDim("q: quit"))

	return b.String()
}

func (m AppModel) renderError() string {
	var b strings.Builder

	b.WriteString(shared.RenderError("Error"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%v\n", m.err))

	if suggestions := pkgerrors.FormatSuggestions(m.err); suggestions != "" {
		b.WriteString("\n")
		b.WriteString(suggestions)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(shared.RenderDim("q: quit"))

	return b.String()
}
