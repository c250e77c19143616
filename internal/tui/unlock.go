package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
)

// shortest password accepted for a new vault
const minVaultPassword = 4

type unlockStage int

const (
	stageUnlock  unlockStage = iota // existing vault
	stageCreate                     // new vault, first entry
	stageConfirm                    // new vault, repeat
)

// unlockModel asks for the vault password before a save or a listing.
type unlockModel struct {
	input  textinput.Model
	stage  unlockStage
	reason string // what the unlock is for, shown under the title
	chosen string // first entry while creating
	fails  int
	errMsg string
}

// unlockSubmitMsg carries a password to try against the vault.
type unlockSubmitMsg struct {
	password string
}

// unlockFailedMsg reports that the vault rejected the password.
type unlockFailedMsg struct {
	err error
}

func newUnlockModel(create bool, reason string) unlockModel {
	ti := textinput.New()
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 128
	ti.Width = 40
	ti.Focus()

	stage := stageUnlock
	if create {
		stage = stageCreate
	}
	return unlockModel{input: ti, stage: stage, reason: reason}
}

func (m unlockModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m unlockModel) Update(msg tea.Msg) (unlockModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyCtrlC:
			return m, tea.Quit
		case key.Matches(msg, zstyle.KeyBack):
			return m, func() tea.Msg { return navigateMsg{view: viewPreview} }
		case key.Matches(msg, zstyle.KeyEnter):
			return m.submit()
		}

	case unlockFailedMsg:
		m.fails++
		m.errMsg = msg.err.Error()
		if m.fails > 1 {
			m.errMsg = fmt.Sprintf("%s (%d tries)", m.errMsg, m.fails)
		}
		m.input.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m unlockModel) submit() (unlockModel, tea.Cmd) {
	val := m.input.Value()
	if val == "" {
		return m, nil
	}
	m.input.Reset()
	m.errMsg = ""

	switch m.stage {
	case stageCreate:
		if utf8.RuneCountInString(val) < minVaultPassword {
			m.errMsg = fmt.Sprintf("use at least %d characters", minVaultPassword)
			return m, nil
		}
		m.chosen = val
		m.stage = stageConfirm
		return m, nil

	case stageConfirm:
		chosen := m.chosen
		m.chosen = ""
		if val != chosen {
			m.stage = stageCreate
			m.errMsg = "passwords do not match, start again"
			return m, nil
		}
	}

	return m, func() tea.Msg { return unlockSubmitMsg{password: val} }
}

func (m unlockModel) prompt() string {
	switch m.stage {
	case stageCreate:
		return "new vault password"
	case stageConfirm:
		return "repeat it"
	}
	return "vault password"
}

func (m unlockModel) View() string {
	pad := lipgloss.NewStyle().PaddingLeft(2)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(pad.Render(lipgloss.NewStyle().Foreground(accent).Bold(true).Render("datasetgen vault")))
	b.WriteString("\n")
	if m.reason != "" {
		b.WriteString(pad.Render(zstyle.MutedText.Render(m.reason)))
		b.WriteString("\n")
	}
	if m.stage != stageUnlock {
		b.WriteString(pad.Render(zstyle.MutedText.Render("no vault yet; this password encrypts every saved dataset")))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n  %s\n  %s\n", m.prompt(), m.input.View())
	if m.errMsg != "" {
		b.WriteString("\n  " + zstyle.StatusErr.Render(m.errMsg) + "\n")
	}
	b.WriteString("\n  " + zstyle.MutedText.Render("enter submit  esc back") + "\n")
	return b.String()
}
