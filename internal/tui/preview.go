package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/babbaginator/pyDatasetGen/internal/schema"
)

// widest a preview column gets before cells are cut
const maxColumnWidth = 28

// previewModel shows generated rows in a table.
type previewModel struct {
	table    table.Model
	dataset  schema.Dataset
	source   string
	flash    string
	flashErr bool
	copy     func(string) error
}

// navigateMsg switches the active view.
type navigateMsg struct {
	view viewID
}

// regenerateMsg asks for a fresh set of rows.
type regenerateMsg struct{}

// saveSnapshotMsg asks for the shown rows to be stored in the vault.
type saveSnapshotMsg struct {
	dataset schema.Dataset
}

// flashMsg clears the flash after a timeout.
type flashMsg struct{}

func newPreviewModel(ds schema.Dataset, source string) previewModel {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#000000")).
		Background(accent)

	t := table.New(
		table.WithFocused(true),
		table.WithHeight(15),
		table.WithStyles(styles),
	)

	m := previewModel{table: t, copy: copyToClipboard}
	return m.setDataset(ds, source)
}

func (m previewModel) setDataset(ds schema.Dataset, source string) previewModel {
	m.dataset = ds
	m.source = source

	// rows go first: the table renders every column of every row
	m.table.SetRows(nil)
	m.table.SetColumns(columnsFor(ds))
	m.table.SetRows(rowsFor(ds))
	m.table.SetCursor(0)
	return m
}

func (m previewModel) resize(width, height int) previewModel {
	if width > 0 {
		m.table.SetWidth(width - 4)
	}
	if height > 3 {
		m.table.SetHeight(height)
	}
	return m
}

func columnsFor(ds schema.Dataset) []table.Column {
	cols := make([]table.Column, len(ds.Columns))
	for i, name := range ds.Columns {
		w := lipgloss.Width(name)
		for _, rec := range ds.Records {
			if i < len(rec) {
				w = max(w, lipgloss.Width(rec[i].Value))
			}
		}
		cols[i] = table.Column{Title: name, Width: min(w, maxColumnWidth)}
	}
	return cols
}

func rowsFor(ds schema.Dataset) []table.Row {
	rows := make([]table.Row, len(ds.Records))
	for i, vals := range ds.Rows() {
		rows[i] = table.Row(vals)
	}
	return rows
}

func (m previewModel) Update(msg tea.Msg) (previewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m previewModel) handleKey(msg tea.KeyMsg) (previewModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.copy(strings.Join(row.Values(), "\t")); err != nil {
			return m.setFlash("copy: "+err.Error(), true), clearFlashAfter()
		}
		return m.setFlash("copied row", false), clearFlashAfter()
	}

	switch msg.String() {
	case "r":
		return m, func() tea.Msg { return regenerateMsg{} }

	case "s":
		ds := m.dataset
		return m, func() tea.Msg { return saveSnapshotMsg{dataset: ds} }

	case "l":
		return m, func() tea.Msg { return navigateMsg{view: viewSnapshots} }
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m previewModel) selected() (schema.Record, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.dataset.Records) {
		return nil, false
	}
	return m.dataset.Records[i], true
}

func (m previewModel) setFlash(msg string, isErr bool) previewModel {
	m.flash = msg
	m.flashErr = isErr
	return m
}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

func (m previewModel) View() string {
	s := "\n"

	if len(m.dataset.Columns) == 0 {
		s += "  " + zstyle.MutedText.Render("schema has no fields") + "\n"
	} else {
		s += lipgloss.NewStyle().MarginLeft(2).Render(m.table.View()) + "\n"
	}

	status := fmt.Sprintf("%d rows", m.dataset.Len())
	if m.source != "" {
		status += "  " + m.source
	}
	s += "\n  " + zstyle.MutedText.Render(status) + "\n"

	// always reserve a line for flash to prevent layout shift
	switch {
	case m.flash == "":
		s += "\n"
	case m.flashErr:
		s += "  " + zstyle.StatusErr.Render(m.flash) + "\n"
	default:
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	}

	return s
}
