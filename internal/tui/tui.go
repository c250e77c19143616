// Package tui implements the interactive dataset preview.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/babbaginator/pyDatasetGen/internal/linecfg"
	"github.com/babbaginator/pyDatasetGen/internal/schema"
	"github.com/babbaginator/pyDatasetGen/internal/vault"
)

var accent = lipgloss.Color("#2DD4BF")

type viewID int

const (
	viewPreview viewID = iota
	viewUnlock
	viewSnapshots
)

// Config is what the preview needs to run.
type Config struct {
	Version string
	Interp  *schema.Interpreter
	Rows    int
	Seed    uint64

	// schema source, reread on reload
	SchemaFS   linecfg.FileReader
	SchemaPath string

	// DataDir holds the snapshot vault; empty disables saving.
	DataDir  string
	FirstRun bool

	// Watcher, when set, reloads the schema whenever the file changes.
	Watcher *Watcher
}

// Model is the root TUI model.
type Model struct {
	cfg       Config
	vault     *vault.Vault
	openVault func(password string) (*vault.Vault, error)

	active    viewID
	pending   tea.Msg // replayed once the vault is unlocked
	preview   previewModel
	unlock    unlockModel
	snapshots snapshotsModel

	// seed that reproduces the rows on screen; 0 once they no longer come
	// from the first page of cfg.Seed
	shownSeed uint64

	// terminal dimensions
	width  int
	height int
}

// New creates the root model and generates the first page of rows.
func New(cfg Config) Model {
	if cfg.Rows <= 0 {
		cfg.Rows = 20
	}
	m := Model{
		cfg:       cfg,
		active:    viewPreview,
		shownSeed: cfg.Seed,
	}
	m.openVault = m.openDiskVault
	m.preview = newPreviewModel(cfg.Interp.Generate(cfg.Rows), cfg.SchemaPath)
	return m
}

func (m Model) Init() tea.Cmd {
	return m.watchNext()
}

func (m Model) watchNext() tea.Cmd {
	if m.cfg.Watcher == nil {
		return nil
	}
	return m.cfg.Watcher.Wait()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview = m.preview.resize(msg.Width, msg.Height-chromeHeight)
		return m, nil

	case regenerateMsg:
		m.preview = m.preview.setDataset(m.cfg.Interp.Generate(m.cfg.Rows), m.cfg.SchemaPath)
		m.shownSeed = 0
		return m, nil

	case schemaChangedMsg:
		return m.reloadSchema()

	case watchErrMsg:
		m.preview = m.preview.setFlash("watch: "+msg.err.Error(), true)
		return m, tea.Batch(clearFlashAfter(), m.watchNext())

	case navigateMsg:
		return m.navigate(msg.view)

	case unlockSubmitMsg:
		return m.openWith(msg.password)

	case saveSnapshotMsg:
		return m.handleSave(msg.dataset)

	case openSnapshotMsg:
		m.preview = m.preview.setDataset(msg.snapshot.Dataset(), "snapshot "+msg.snapshot.ShortID())
		m.shownSeed = msg.snapshot.Seed
		m.active = viewPreview
		return m, nil

	case deleteSnapshotMsg:
		return m.handleDelete(msg.id)
	}

	return m.updateActive(msg)
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.active {
	case viewPreview:
		m.preview, cmd = m.preview.Update(msg)
	case viewUnlock:
		m.unlock, cmd = m.unlock.Update(msg)
	case viewSnapshots:
		m.snapshots, cmd = m.snapshots.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	if m.active == viewUnlock {
		return m.unlock.View()
	}

	var content string
	switch m.active {
	case viewPreview:
		content = m.preview.View()
	case viewSnapshots:
		content = m.snapshots.View()
	}

	header := zstyle.RenderHeader("datasetgen", viewTitle(m.active), accent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(m.helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// lines taken by header, separator, status and footer
const chromeHeight = 9

func viewTitle(id viewID) string {
	switch id {
	case viewPreview:
		return "Preview"
	case viewSnapshots:
		return "Saved Datasets"
	}
	return ""
}

func (m Model) helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewSnapshots:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "open"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	}

	pairs := []zstyle.HelpPair{
		{Key: "j/k", Desc: "navigate"},
		{Key: "r", Desc: "regenerate"},
		{Key: "enter", Desc: "copy row"},
	}
	if m.cfg.DataDir != "" {
		pairs = append(pairs,
			zstyle.HelpPair{Key: "s", Desc: "save"},
			zstyle.HelpPair{Key: "l", Desc: "saved"},
		)
	}
	return append(pairs, zstyle.HelpPair{Key: "q", Desc: "quit"})
}

func (m Model) navigate(id viewID) (tea.Model, tea.Cmd) {
	switch id {
	case viewSnapshots:
		if m.vault == nil {
			return m.requireVault(navigateMsg{view: id}, "unlock to browse saved datasets")
		}
		return m.loadSnapshots()
	default:
		m.pending = nil
		m.active = id
		return m, nil
	}
}

// requireVault parks msg and asks for the vault password.
func (m Model) requireVault(msg tea.Msg, reason string) (tea.Model, tea.Cmd) {
	if m.cfg.DataDir == "" {
		m.preview = m.preview.setFlash("no data directory: saving is disabled", true)
		return m, clearFlashAfter()
	}
	m.pending = msg
	m.unlock = newUnlockModel(m.cfg.FirstRun, reason)
	m.active = viewUnlock
	return m, m.unlock.Init()
}

func (m Model) openWith(password string) (tea.Model, tea.Cmd) {
	v, err := m.openVault(password)
	if err != nil {
		m.unlock, _ = m.unlock.Update(unlockFailedMsg{err: err})
		return m, nil
	}

	m.vault = v
	m.cfg.FirstRun = false
	m.active = viewPreview

	pending := m.pending
	m.pending = nil
	if pending == nil {
		return m, nil
	}
	return m.Update(pending)
}

func (m Model) openDiskVault(password string) (*vault.Vault, error) {
	if err := os.MkdirAll(m.cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return vault.Open(zfilesystem.NewOSFileSystem(m.cfg.DataDir), password)
}

func (m Model) reloadSchema() (tea.Model, tea.Cmd) {
	next := m.watchNext()

	if err := m.cfg.Interp.Load(m.cfg.SchemaFS, m.cfg.SchemaPath); err != nil {
		m.preview = m.preview.setFlash("reload: "+err.Error(), true)
		return m, tea.Batch(clearFlashAfter(), next)
	}

	m.preview = m.preview.setDataset(m.cfg.Interp.Generate(m.cfg.Rows), m.cfg.SchemaPath)
	m.preview = m.preview.setFlash("schema reloaded", false)
	m.shownSeed = 0
	return m, tea.Batch(clearFlashAfter(), next)
}

func (m Model) handleSave(ds schema.Dataset) (tea.Model, tea.Cmd) {
	if m.vault == nil {
		return m.requireVault(saveSnapshotMsg{dataset: ds}, fmt.Sprintf("unlock to save %d rows", ds.Len()))
	}

	snap := vault.NewSnapshot(m.cfg.SchemaPath, m.shownSeed, ds)
	if err := m.vault.Save(snap); err != nil {
		m.preview = m.preview.setFlash("save: "+err.Error(), true)
		return m, clearFlashAfter()
	}

	m.preview = m.preview.setFlash("saved "+snap.ShortID(), false)
	return m, clearFlashAfter()
}

func (m Model) loadSnapshots() (tea.Model, tea.Cmd) {
	snaps, err := m.vault.List()
	if err != nil {
		m.snapshots = newSnapshotsModel(nil)
		m.snapshots.flash = "load: " + err.Error()
		m.active = viewSnapshots
		return m, clearFlashAfter()
	}

	m.snapshots = newSnapshotsModel(snaps)
	m.active = viewSnapshots
	return m, nil
}

func (m Model) handleDelete(id string) (tea.Model, tea.Cmd) {
	if err := m.vault.Delete(id); err != nil {
		m.snapshots.flash = "delete: " + err.Error()
		return m, clearFlashAfter()
	}

	next, _ := m.loadSnapshots()
	nm := next.(Model)
	nm.snapshots.flash = "deleted"
	return nm, clearFlashAfter()
}

// Close locks the vault if it was opened.
func (m Model) Close() {
	if m.vault != nil {
		m.vault.Close()
	}
}
