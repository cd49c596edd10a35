package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gigshield/gigshield/internal/gigshield"
)

func (m *Model) searchKnowledge(query string) tea.Cmd {
	filters := gigshield.KnowledgeFilters{}
	if m.cfg != nil {
		filters.State = m.cfg.DefaultState
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := m.api.SearchKnowledgeBase(ctx, query, filters)
		if err != nil {
			return ErrorMsg{Error: err, Return: StateKnowledge}
		}
		return KnowledgeResultsMsg{Result: result}
	}
}

func (m *Model) handleKnowledgeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if strings.TrimSpace(m.kbInput) == "" {
			return m, nil
		}
		m.statusMessage = "Searching..."
		return m, m.searchKnowledge(m.kbInput)
	case tea.KeyEsc:
		m.kbInput = ""
		m.kbResults = nil
		m.kbSearched = false
		m.state = StateMenu
		return m, nil
	case tea.KeyBackspace:
		if len(m.kbInput) > 0 {
			runes := []rune(m.kbInput)
			m.kbInput = string(runes[:len(runes)-1])
		}
		return m, nil
	case tea.KeyUp:
		if m.kbCursor > 0 {
			m.kbCursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.kbCursor < len(m.kbResults)-1 {
			m.kbCursor++
		}
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		m.kbInput += string(msg.Runes)
		if msg.Type == tea.KeySpace {
			m.kbInput += " "
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) knowledgeView() string {
	header := m.headerBar("GigShield · Knowledge Base", "")

	prompt := m.styles.Highlight.Render("  Search: ") + m.styles.Normal.Render(m.kbInput+"▌")

	var lines []string
	switch {
	case m.statusMessage == "Searching...":
		lines = append(lines, m.styles.Normal.Render("  "+m.spinner.View()+" Searching..."))
	case m.kbSearched && len(m.kbResults) == 0:
		lines = append(lines, m.styles.Help.Render("  No articles matched. Try different words."))
	default:
		maxWidth := m.width - 8
		if maxWidth < 40 {
			maxWidth = 40
		}
		for i, art := range m.kbResults {
			title := Truncate(art.Title, maxWidth)
			if i == m.kbCursor {
				lines = append(lines, m.styles.Highlight.Render("  > "+title))
				var meta []string
				if art.Category != "" {
					meta = append(meta, art.Category)
				}
				if art.Platform != "" {
					meta = append(meta, art.Platform)
				}
				if art.State != "" {
					meta = append(meta, art.State)
				}
				if len(meta) > 0 {
					lines = append(lines, m.styles.Help.Render("      "+strings.Join(meta, " · ")))
				}
				body := lipgloss.NewStyle().Width(maxWidth).Render(art.Content)
				for _, bl := range strings.Split(body, "\n") {
					lines = append(lines, m.styles.Normal.Render("      "+bl))
				}
			} else {
				lines = append(lines, m.styles.Normal.Render("    "+title))
			}
		}
	}

	help := m.renderHelpLine([]helpEntry{
		{"type", "query"},
		{"enter", "search"},
		{"↑/↓", "browse results"},
		{"esc", "menu"},
	})

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		prompt,
		"",
		strings.Join(lines, "\n"),
		"",
		"  "+help,
	)
}
