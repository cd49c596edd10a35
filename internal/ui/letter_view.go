package ui

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) handleLetterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Copy):
		if err := clipboard.WriteAll(m.letter); err != nil {
			m.showMessage("error", "Failed to copy letter: "+err.Error(), StateLetter)
			return m, nil
		}
		if m.cases != nil && m.letterAppeal != "" {
			m.cases.MarkCopied(m.letterAppeal)
			_ = m.cases.Save()
		}
		m.showMessage("success", "Letter copied to clipboard. Paste it into the platform's appeal form.", StateLetter)
		return m, nil
	case msg.String() == "m":
		m.state = StateMenu
		return m, nil
	case keyMatches(msg, m.keys.Back), msg.String() == "q":
		// Back to wherever makes sense: the appeals list if we have
		// one loaded, the menu otherwise.
		if len(m.appeals) > 0 {
			m.state = StateAppeals
		} else {
			m.state = StateMenu
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) letterView() string {
	header := m.headerBar("GigShield · Appeal Letter", "")

	width := m.width - 8
	if width < 40 {
		width = 72
	}
	body := lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Render(m.letter)

	maxBodyLines := m.height - 8
	if maxBodyLines > 4 {
		lines := strings.Split(body, "\n")
		if len(lines) > maxBodyLines {
			lines = lines[:maxBodyLines]
			lines = append(lines, m.styles.Help.Render("  … (copy to read the full letter)"))
		}
		body = strings.Join(lines, "\n")
	}

	help := m.renderHelpLine([]helpEntry{
		{"c", "copy to clipboard"},
		{"esc", "back"},
		{"m", "menu"},
	})

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.styles.Normal.Render(body),
		"",
		"  "+help,
	)
}
