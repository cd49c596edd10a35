package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gigshield/gigshield/internal/analysis"
)

func (m *Model) handleAnalyzeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if strings.TrimSpace(m.noticeInput) == "" {
			return m, nil
		}
		return m, m.startAnalysis(m.noticeInput)
	case tea.KeyEsc:
		m.noticeInput = ""
		m.state = StateMenu
		return m, nil
	case tea.KeyBackspace:
		if len(m.noticeInput) > 0 {
			runes := []rune(m.noticeInput)
			m.noticeInput = string(runes[:len(runes)-1])
		}
		return m, nil
	case tea.KeyCtrlJ:
		m.noticeInput += "\n"
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		// Pasted notices arrive as a single rune batch.
		m.noticeInput += strings.ReplaceAll(string(msg.Runes), "\r", "\n")
		if msg.Type == tea.KeySpace {
			m.noticeInput += " "
		}
		return m, nil
	}
	return m, nil
}

// startAnalysis classifies the notice locally, then asks the backend
// for deadline and missing-info detail. The local result stands on its
// own when the API call fails, with a note saying so.
func (m *Model) startAnalysis(notice string) tea.Cmd {
	deadlineDefault := 10
	if m.cfg != nil && m.cfg.DeadlineDays > 0 {
		deadlineDefault = m.cfg.DeadlineDays
	}

	return func() tea.Msg {
		now := time.Now()
		result := &analysis.AnalysisResult{
			Platform:         analysis.DetectPlatform(notice),
			Reason:           firstLine(notice),
			Category:         analysis.CategorizeReason(notice),
			DeactivationDate: now,
			DaysRemaining:    deadlineDefault,
		}

		note := ""
		remote, err := m.api.AnalyzeNotice(context.Background(), notice)
		if err != nil {
			note = fmt.Sprintf("Offline analysis only (%v)", err)
		} else {
			if remote.Platform != "" && remote.Platform != "Unknown" {
				result.Platform = remote.Platform
			}
			if remote.Reason != "" {
				result.Reason = remote.Reason
				result.Category = analysis.CategorizeReason(remote.Reason)
			}
			if remote.DeadlineDays != nil && *remote.DeadlineDays > 0 {
				result.DaysRemaining = *remote.DeadlineDays
			}
			result.MissingInfo = remote.MissingInfo
			result.RiskLevel = remote.RiskLevel
		}
		result.AppealDeadline = now.AddDate(0, 0, result.DaysRemaining)

		return AnalysisMsg{
			Result:     result,
			Assessment: analysis.Score(result),
			Note:       note,
		}
	}
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return text
}

func (m *Model) analyzingView() string {
	input := m.noticeInput
	if input == "" {
		input = m.styles.Help.Render("Paste your deactivation notice here...")
	} else {
		maxWidth := m.width - 12
		if maxWidth < 40 {
			maxWidth = 40
		}
		input = lipgloss.NewStyle().Width(maxWidth).Render(input + "▌")
	}

	content := m.styles.Card.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.styles.Title.Render("Analyze Notice"),
			"",
			input,
		),
	)

	help := m.renderHelpLine([]helpEntry{
		{"enter", "analyze"},
		{"ctrl+j", "newline"},
		{"esc", "back"},
	})

	return lipgloss.JoinVertical(lipgloss.Center, "", content, "", help)
}

func (m *Model) handleAnalysisReadyKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "w", "enter":
		m.startWizard(m.result, m.noticeInput)
		m.state = StateWizard
		return m, m.wizForm.Init()
	case "r":
		m.state = StateAnalyzing
		return m, nil
	case "esc", "q":
		m.state = StateMenu
		return m, nil
	}
	return m, nil
}

func (m *Model) analysisView() string {
	if m.result == nil || m.assessment == nil {
		return m.styles.Normal.Render("  No analysis yet")
	}

	header := m.headerBar("GigShield · Notice Analysis", "")

	var lines []string
	lines = append(lines, m.styles.Highlight.Render("  Platform: ")+m.styles.Normal.Render(m.result.Platform))
	lines = append(lines, m.styles.Highlight.Render("  Category: ")+m.styles.Normal.Render(m.result.Category))
	lines = append(lines, m.styles.Highlight.Render("  Deadline: ")+
		m.styles.Normal.Render(fmt.Sprintf("%s (%d days remaining)",
			m.result.AppealDeadline.Format("Jan 2, 2006"), m.result.DaysRemaining)))
	if m.result.RiskLevel != "" {
		lines = append(lines, m.styles.Highlight.Render("  Risk:     ")+m.styles.Normal.Render(m.result.RiskLevel))
	}

	if len(m.result.MissingInfo) > 0 {
		lines = append(lines, "", m.styles.Warning.Render("  Missing information:"))
		for _, info := range m.result.MissingInfo {
			lines = append(lines, m.styles.Normal.Render("   · "+info))
		}
	}

	scoreStyle := m.styles.Success
	if m.assessment.Likelihood == "Medium" {
		scoreStyle = m.styles.Warning
	} else if m.assessment.Likelihood == "Low" {
		scoreStyle = m.styles.Error
	}

	lines = append(lines, "",
		scoreStyle.Render(fmt.Sprintf("  Appeal strength: %d/100 — %s (typical range %s)",
			m.assessment.Score, m.assessment.Likelihood, m.assessment.ConfidenceBand)))

	lines = append(lines, "", m.styles.Highlight.Render("  Contributing factors:"))
	for _, f := range m.assessment.Factors {
		sign := "+"
		style := m.styles.Success
		if !f.Positive {
			sign = "−"
			style = m.styles.Error
		}
		impact := f.Impact
		if impact < 0 {
			impact = -impact
		}
		lines = append(lines, fmt.Sprintf("   %s  %s",
			style.Render(fmt.Sprintf("%s%-3d", sign, impact)),
			m.styles.Normal.Render(f.Text)))
	}

	lines = append(lines, "", m.styles.Help.Render("  "+analysis.Disclaimer))

	if m.analysisNote != "" {
		lines = append(lines, "", m.styles.Warning.Render("  "+m.analysisNote))
	}

	help := m.renderHelpLine([]helpEntry{
		{"w/enter", "start appeal"},
		{"r", "edit notice"},
		{"esc", "menu"},
	})

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		strings.Join(lines, "\n"),
		"",
		"  "+help,
	)
}
