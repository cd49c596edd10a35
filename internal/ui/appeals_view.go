package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) loadAppeals() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		appeals, err := m.api.MyAppeals(ctx)
		if err != nil {
			return ErrorMsg{Error: err, Return: StateMenu}
		}
		return AppealsLoadedMsg{Appeals: appeals}
	}
}

func (m *Model) deleteAppeal(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := m.api.DeleteAppeal(ctx, id); err != nil {
			return ErrorMsg{Error: err, Return: StateAppeals}
		}
		return AppealDeletedMsg{ID: id}
	}
}

// nextStatus cycles pending → approved → denied → pending, matching the
// outcomes a worker can record for an appeal they sent.
func nextStatus(status string) string {
	switch status {
	case "pending":
		return "approved"
	case "approved":
		return "denied"
	default:
		return "pending"
	}
}

func (m *Model) updateStatus(id, status string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := m.api.UpdateAppealStatus(ctx, id, status); err != nil {
			return ErrorMsg{Error: err, Return: StateAppeals}
		}
		return StatusUpdatedMsg{ID: id, Status: status}
	}
}

func (m *Model) handleAppealsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Up):
		m.listView.MoveCursor(-1)
		return m, nil
	case keyMatches(msg, m.keys.Down):
		m.listView.MoveCursor(1)
		return m, nil
	case keyMatches(msg, m.keys.Enter):
		if a := m.listView.GetAppeal(m.listView.Cursor()); a != nil && a.GeneratedLetter != "" {
			m.letter = a.GeneratedLetter
			m.letterAppeal = a.ID
			m.state = StateLetter
		}
		return m, nil
	case keyMatches(msg, m.keys.Delete):
		if a := m.listView.GetAppeal(m.listView.Cursor()); a != nil {
			m.pendingDelete = a.ID
			m.state = StateConfirming
		}
		return m, nil
	case keyMatches(msg, m.keys.Status):
		if a := m.listView.GetAppeal(m.listView.Cursor()); a != nil {
			return m, m.updateStatus(a.ID, nextStatus(a.Status))
		}
		return m, nil
	case keyMatches(msg, m.keys.Refresh):
		m.state = StateLoadingAppeals
		return m, m.loadAppeals()
	case keyMatches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case keyMatches(msg, m.keys.Back), msg.String() == "q":
		m.state = StateMenu
		return m, nil
	}
	return m, nil
}

func (m *Model) appealsView() string {
	right := m.styles.HelpDesc.Render(fmt.Sprintf("%d/%d", m.listView.Cursor()+1, len(m.appeals)))
	if len(m.appeals) == 0 {
		right = ""
	}
	header := m.headerBar("GigShield · My Appeals", right)

	var list string
	if len(m.appeals) == 0 {
		list = m.styles.Normal.Render("  No appeals yet. Start one from the menu.")
	} else {
		list = m.listView.View()
	}

	detail := ""
	if len(m.appeals) > 0 {
		var cl caseLookup
		if m.cases != nil {
			cl = m.cases
		}
		detailContent := m.listView.DetailView(m.width, m.styles, cl)
		if detailContent != "" {
			divW := m.width - 1
			if divW < 1 {
				divW = 1
			}
			divider := m.styles.HelpSep.Render(strings.Repeat("─", divW))
			detail = divider + "\n" + detailContent
		}
	}

	var statusLine string
	if m.statusMessage != "" {
		statusLine = m.styles.Help.Render("  " + m.statusMessage)
	}

	var footer string
	if m.showHelp {
		footer = m.renderAppealsFullHelp()
	} else {
		footer = m.styles.FooterBar.Render(m.renderHelpLine([]helpEntry{
			{"j/k", "navigate"},
			{"enter", "view letter"},
			{"s", "cycle status"},
			{"d", "delete"},
			{"R", "refresh"},
			{"?", "help"},
			{"esc", "menu"},
		}))
	}

	parts := []string{header, list}
	if detail != "" {
		parts = append(parts, detail)
	}
	if statusLine != "" {
		parts = append(parts, statusLine)
	}
	parts = append(parts, footer)

	content := strings.Join(parts, "\n")

	// Pad output to exactly m.height lines so the alternate screen buffer
	// repaints cleanly and doesn't leave stale content from previous frames.
	if m.height > 0 {
		rendered := strings.Split(content, "\n")
		for len(rendered) < m.height {
			rendered = append(rendered, "")
		}
		return strings.Join(rendered[:m.height], "\n")
	}
	return content
}

func (m *Model) renderAppealsFullHelp() string {
	sections := []struct {
		title   string
		entries []helpEntry
	}{
		{"Navigation", []helpEntry{
			{"j / ↓", "move down"},
			{"k / ↑", "move up"},
		}},
		{"Appeal", []helpEntry{
			{"enter", "view generated letter"},
			{"s", "cycle status (pending/approved/denied)"},
			{"d", "delete appeal"},
		}},
		{"General", []helpEntry{
			{"R", "refresh from server"},
			{"?", "toggle this help"},
			{"esc / q", "back to menu"},
		}},
	}

	var lines []string
	for _, sec := range sections {
		lines = append(lines, m.styles.HelpKey.Render("  "+sec.title))
		for _, e := range sec.entries {
			lines = append(lines, fmt.Sprintf("    %s  %s",
				m.styles.HelpKey.Render(fmt.Sprintf("%-12s", e.key)),
				m.styles.HelpDesc.Render(e.desc),
			))
		}
	}

	return m.styles.FooterBar.Render(strings.Join(lines, "\n"))
}

func (m *Model) loadingAppealsView() string {
	content := m.styles.Border.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Title.Render("My Appeals"),
			"",
			m.styles.Normal.Render(m.spinner.View()+" Loading your appeals..."),
		),
	)
	return lipgloss.JoinVertical(lipgloss.Center, "", content)
}
