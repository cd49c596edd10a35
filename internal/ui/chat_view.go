package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gigshield/gigshield/internal/gigshield"
)

func (m *Model) sendChat(message string) tea.Cmd {
	history := append([]gigshield.ChatMessage(nil), m.chatHistory...)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		reply, err := m.api.Chat(ctx, message, history)
		if err != nil {
			return ErrorMsg{Error: err, Return: StateChat}
		}
		return ChatReplyMsg{Reply: reply}
	}
}

func (m *Model) handleChatKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		text := strings.TrimSpace(m.chatInput)
		if text == "" {
			return m, nil
		}
		// Snapshot history before the new turn so the message is not sent twice.
		cmd := m.sendChat(text)
		m.chatHistory = append(m.chatHistory, gigshield.ChatMessage{Role: "user", Content: text})
		m.chatInput = ""
		m.chatActions = nil
		m.statusMessage = "thinking"
		return m, cmd
	case tea.KeyEsc:
		m.state = StateMenu
		return m, nil
	case tea.KeyBackspace:
		if len(m.chatInput) > 0 {
			runes := []rune(m.chatInput)
			m.chatInput = string(runes[:len(runes)-1])
		}
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		m.chatInput += string(msg.Runes)
		if msg.Type == tea.KeySpace {
			m.chatInput += " "
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) chatView() string {
	header := m.headerBar("GigShield · Know Your Rights", "")

	maxWidth := m.width - 10
	if maxWidth < 40 {
		maxWidth = 60
	}

	var lines []string
	if len(m.chatHistory) == 0 {
		lines = append(lines, m.styles.Help.Render("  Ask anything about deactivations, appeals, and your rights as a gig worker."))
	}
	for _, msg := range m.chatHistory {
		body := lipgloss.NewStyle().Width(maxWidth).Render(msg.Content)
		if msg.Role == "user" {
			lines = append(lines, m.styles.Highlight.Render("  You:"))
		} else {
			lines = append(lines, m.styles.Success.Render("  GigShield:"))
		}
		for _, bl := range strings.Split(body, "\n") {
			lines = append(lines, m.styles.Normal.Render("    "+bl))
		}
		lines = append(lines, "")
	}

	if m.statusMessage == "thinking" {
		lines = append(lines, m.styles.Help.Render("  "+m.spinner.View()+" thinking..."))
	}

	if len(m.chatActions) > 0 {
		var labels []string
		for _, a := range m.chatActions {
			labels = append(labels, a.Label)
		}
		lines = append(lines, m.styles.Help.Render("  Suggested: "+strings.Join(labels, " · ")))
	}

	// Keep only the tail of the conversation on screen.
	maxLines := m.height - 8
	if maxLines > 4 && len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}

	prompt := m.styles.Highlight.Render("  > ") + m.styles.Normal.Render(m.chatInput+"▌")

	help := m.renderHelpLine([]helpEntry{
		{"enter", "send"},
		{"esc", "menu"},
	})

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		strings.Join(lines, "\n"),
		"",
		prompt,
		"",
		"  "+help,
	)
}
