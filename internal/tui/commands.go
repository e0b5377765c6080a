package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joe/rom-sync/internal/config"
	"github.com/joe/rom-sync/internal/syncengine"
	"github.com/joe/rom-sync/internal/tui/shared"
	"github.com/joe/rom-sync/pkg/devicefs"
	pkgerrors "github.com/joe/rom-sync/pkg/errors"
	"github.com/joe/rom-sync/pkg/localfs"
)

// connectCmd opens the local library and the device target, then builds a
// session. Sent messages: SessionReadyMsg on success, ErrorMsg otherwise.
func connectCmd(cfg *config.Config) tea.Cmd {
	return func() tea.Msg {
		root, err := localfs.OpenDir(cfg.LocalRoot)
		if err != nil {
			return shared.ErrorMsg{Err: enrich(err, cfg.LocalRoot)}
		}

		target, err := devicefs.ParseTarget(cfg.DeviceTarget)
		if err != nil {
			return shared.ErrorMsg{Err: err}
		}

		var (
			device   devicefs.FS
			closer   io.Closer
			basePath string
		)

		if target.IsRemote {
			sftpDevice, err := devicefs.Connect(target.Host, target.Port, target.User)
			if err != nil {
				return shared.ErrorMsg{Err: enrich(err, cfg.DeviceTarget)}
			}

			device = sftpDevice
			closer = sftpDevice
			basePath = target.Path
		} else {
			device = devicefs.NewLocalDevice(target.LocalPath)
			basePath = "."
		}

		session := syncengine.NewSession(root, device, basePath, cfg.MediaDir)

		if cfg.ExcludePattern != "" {
			session.SetFilter(syncengine.NewExcludeFilter(cfg.ExcludePattern))
		}

		return shared.SessionReadyMsg{Session: session, Closer: closer}
	}
}

// scanCmd runs the library scan off the UI goroutine.
func scanCmd(session *syncengine.Session) tea.Cmd {
	return func() tea.Msg {
		return shared.ScanDoneMsg{Err: session.Scan()}
	}
}

// transferCmd runs the transfer batch off the UI goroutine.
func transferCmd(session *syncengine.Session, prompter syncengine.ConflictPrompter) tea.Cmd {
	return func() tea.Msg {
		return shared.TransferDoneMsg{Err: session.StartTransfer(prompter)}
	}
}

// waitConflictCmd blocks until the executor posts an overwrite prompt.
// Re-arm it after every resolution.
func waitConflictCmd(prompter *syncengine.ChannelPrompter) tea.Cmd {
	return func() tea.Msg {
		req, ok := <-prompter.Requests()
		if !ok {
			return nil
		}

		return shared.ConflictMsg{Request: req}
	}
}

func enrich(err error, path string) error {
	return pkgerrors.NewEnricher().Enrich(err, path)
}
