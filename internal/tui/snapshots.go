package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/babbaginator/pyDatasetGen/internal/vault"
)

// snapshotsModel lists saved datasets.
type snapshotsModel struct {
	snapshots []vault.Snapshot
	cursor    int
	flash     string
}

// openSnapshotMsg shows a saved dataset in the preview.
type openSnapshotMsg struct {
	snapshot vault.Snapshot
}

// deleteSnapshotMsg removes a saved dataset.
type deleteSnapshotMsg struct {
	id string
}

func newSnapshotsModel(snaps []vault.Snapshot) snapshotsModel {
	return snapshotsModel{snapshots: snaps}
}

func (m snapshotsModel) Update(msg tea.Msg) (snapshotsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m snapshotsModel) handleKey(msg tea.KeyMsg) (snapshotsModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewPreview} }
	}

	if len(m.snapshots) == 0 {
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.snapshots)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		snap := m.snapshots[m.cursor]
		return m, func() tea.Msg { return openSnapshotMsg{snapshot: snap} }
	}

	if msg.String() == "d" {
		id := m.snapshots[m.cursor].ID
		return m, func() tea.Msg { return deleteSnapshotMsg{id: id} }
	}

	return m, nil
}

func (m snapshotsModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	s := "\n"

	if len(m.snapshots) == 0 {
		s += "  " + zstyle.MutedText.Render("no saved datasets") + "\n\n"
	}

	for i, snap := range m.snapshots {
		line := fmt.Sprintf("%-8s  %s  %5d rows  %-24s",
			snap.ShortID(),
			snap.CreatedAt.Local().Format("2006-01-02 15:04"),
			len(snap.Rows),
			truncate(snap.Schema, 24),
		)

		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + line + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}

	s += "\n"

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
