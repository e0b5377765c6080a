package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/joe/rom-sync/internal/config"
	"github.com/joe/rom-sync/internal/syncengine"
	"github.com/joe/rom-sync/internal/tui/shared"
	"github.com/joe/rom-sync/pkg/devicefs"
	"github.com/joe/rom-sync/pkg/localfs"
)

// buildSession returns a scanned session over mock collaborators:
// one system folder with a new file and a file already on the device.
func buildSession() *syncengine.Session {
	root := localfs.NewMockDir("roms")
	gameboy := root.AddSubdir("Game Boy (GB)")
	gameboy.AddFile("alpha.gb", []byte("aaaa"))
	gameboy.AddFile("beta.gb", []byte("bb"))

	device := devicefs.NewMockDevice()
	device.AddDir("Game Boy (GB)")
	device.AddFile("Game Boy (GB)/beta.gb", []byte("bbbb"))

	session := syncengine.NewSession(root, device, ".", ".media")
	if err := session.Scan(); err != nil {
		panic(err)
	}

	return session
}

var _ = Describe("AppModel", func() {
	var (
		cfg   *config.Config
		model *AppModel
	)

	BeforeEach(func() {
		cfg = &config.Config{
			LocalRoot:    "/tmp/roms",
			DeviceTarget: "sftp://root@handheld/roms",
			MediaDir:     ".media",
		}
		model = NewAppModel(cfg)
	})

	Describe("Phase Tracking", func() {
		It("starts at the connect phase when targets are configured", func() {
			Expect(model.phase).To(Equal(PhaseConnect))
		})

		It("starts at the input phase in interactive mode", func() {
			cfg.InteractiveMode = true
			interactive := NewAppModel(cfg)

			Expect(interactive.phase).To(Equal(PhaseInput))
		})

		It("pre-fills the inputs from the config", func() {
			Expect(model.localInput.Value()).To(Equal("/tmp/roms"))
			Expect(model.deviceInput.Value()).To(Equal("sftp://root@handheld/roms"))
		})
	})

	Describe("Phase Transitions", func() {
		It("advances to scan on SessionReadyMsg and wires the event bridge", func() {
			session := buildSessionUnscanned()

			newModel, cmd := model.Update(shared.SessionReadyMsg{Session: session})
			updated := newModel.(AppModel)

			Expect(updated.phase).To(Equal(PhaseScan))
			Expect(updated.session).To(BeIdenticalTo(session))
			Expect(cmd).NotTo(BeNil())
		})

		It("advances to review on a clean ScanDoneMsg", func() {
			model.session = buildSession()

			newModel, _ := model.Update(shared.ScanDoneMsg{})
			updated := newModel.(AppModel)

			Expect(updated.phase).To(Equal(PhaseReview))
			Expect(updated.snapshot).NotTo(BeNil())
			Expect(updated.snapshot.NewCount).To(Equal(1))
			Expect(updated.snapshot.ExistingCount).To(Equal(1))
		})

		It("lands on the error phase when the scan fails", func() {
			newModel, _ := model.Update(shared.ScanDoneMsg{Err: syncengine.ErrNoSystems})
			updated := newModel.(AppModel)

			Expect(updated.phase).To(Equal(PhaseError))
			Expect(updated.err).To(HaveOccurred())
		})

		It("returns to review with a notice when nothing was selected", func() {
			model.session = buildSession()
			model.phase = PhaseSync

			newModel, _ := model.Update(shared.TransferDoneMsg{Err: syncengine.ErrNothingSelected})
			updated := newModel.(AppModel)

			Expect(updated.phase).To(Equal(PhaseReview))
			Expect(updated.notice).NotTo(BeEmpty())
		})

		It("advances to summary when the transfer finishes", func() {
			model.session = buildSession()
			model.phase = PhaseSync

			newModel, _ := model.Update(shared.TransferDoneMsg{})
			updated := newModel.(AppModel)

			Expect(updated.phase).To(Equal(PhaseSummary))
		})
	})

	Describe("Review Navigation", func() {
		BeforeEach(func() {
			model.session = buildSession()
			newModel, _ := model.Update(shared.ScanDoneMsg{})
			updated := newModel.(AppModel)
			model = &updated
		})

		It("shows one row per collapsed system", func() {
			Expect(model.visibleRows()).To(HaveLen(1))
		})

		It("expands a system under the cursor on space", func() {
			newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeySpace})
			updated := newModel.(AppModel)

			Expect(updated.visibleRows()).To(HaveLen(3))
		})

		It("moves the cursor with j and k", func() {
			newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeySpace})
			middle := newModel.(AppModel)

			newModel, _ = middle.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
			updated := newModel.(AppModel)

			Expect(updated.cursor).To(Equal(1))

			newModel, _ = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
			back := newModel.(AppModel)

			Expect(back.cursor).To(Equal(0))
		})

		It("toggles a file's selection on space", func() {
			newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeySpace})
			expanded := newModel.(AppModel)

			newModel, _ = expanded.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
			onFile := newModel.(AppModel)

			// alpha.gb is new, so it starts selected
			Expect(onFile.snapshot.Systems[0].Files[0].Selected).To(BeTrue())

			newModel, _ = onFile.Update(tea.KeyMsg{Type: tea.KeySpace})
			toggled := newModel.(AppModel)

			Expect(toggled.snapshot.Systems[0].Files[0].Selected).To(BeFalse())
		})

		It("selects every file in the system under the cursor on a", func() {
			newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
			updated := newModel.(AppModel)

			Expect(updated.snapshot.SelectedCount).To(Equal(2))
		})

		It("deselects the system under the cursor on d", func() {
			newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
			updated := newModel.(AppModel)

			Expect(updated.snapshot.SelectedCount).To(Equal(0))
		})

		It("keeps a notice instead of starting an empty transfer", func() {
			newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
			deselected := newModel.(AppModel)

			newModel, cmd := deselected.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
			updated := newModel.(AppModel)

			Expect(updated.phase).To(Equal(PhaseReview))
			Expect(updated.notice).NotTo(BeEmpty())
			Expect(cmd).To(BeNil())
		})

		It("moves to the sync phase when a transfer starts", func() {
			newModel, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
			updated := newModel.(AppModel)

			Expect(updated.phase).To(Equal(PhaseSync))
			Expect(cmd).NotTo(BeNil())
		})
	})

	Describe("Conflict Prompt", func() {
		It("stores the pending request from a ConflictMsg", func() {
			req := syncengine.ConflictRequest{
				System:     "Game Boy (GB)",
				File:       "beta.gb",
				LocalSize:  2,
				DeviceSize: 4,
			}

			newModel, _ := model.Update(shared.ConflictMsg{Request: req})
			updated := newModel.(AppModel)

			Expect(updated.conflict).NotTo(BeNil())
			Expect(updated.conflict.File).To(Equal("beta.gb"))
		})

		It("renders both sizes while a conflict is pending", func() {
			model.phase = PhaseSync
			req := syncengine.ConflictRequest{
				System:     "Game Boy (GB)",
				File:       "beta.gb",
				LocalSize:  2048,
				DeviceSize: 4096,
			}
			model.conflict = &req

			view := model.View()

			Expect(view).To(ContainSubstring("beta.gb"))
			Expect(view).To(ContainSubstring("2.0 KB"))
			Expect(view).To(ContainSubstring("4.0 KB"))
		})
	})

	Describe("Rendering", func() {
		It("lists system tallies in the review view", func() {
			model.session = buildSession()
			newModel, _ := model.Update(shared.ScanDoneMsg{})
			updated := newModel.(AppModel)

			view := updated.View()

			Expect(view).To(ContainSubstring("Game Boy (GB)"))
			Expect(view).To(ContainSubstring("1 new"))
		})

		It("shows the outcome tallies in the summary view", func() {
			model.session = buildSession()
			model.phase = PhaseSummary
			model.refresh()

			Expect(model.View()).To(ContainSubstring("0 copied"))
		})
	})
})

// buildSessionUnscanned returns a fresh session that has not scanned yet.
func buildSessionUnscanned() *syncengine.Session {
	root := localfs.NewMockDir("roms")
	root.AddSubdir("Game Boy (GB)").AddFile("alpha.gb", []byte("aaaa"))

	return syncengine.NewSession(root, devicefs.NewMockDevice(), ".", ".media")
}

func TestAppModel(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AppModel Suite")
}
