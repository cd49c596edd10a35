package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) loadAnalytics() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		overview, err := m.api.AnalyticsOverview(ctx)
		if err != nil {
			return ErrorMsg{Error: err, Return: StateMenu}
		}
		return AnalyticsMsg{Overview: overview}
	}
}

func (m *Model) handleAnalyticsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.state = StateMenu
	case "R":
		return m, m.loadAnalytics()
	}
	return m, nil
}

func (m *Model) analyticsView() string {
	header := m.headerBar("GigShield · Appeal Analytics", "")
	if m.overview == nil {
		return lipgloss.JoinVertical(lipgloss.Left, header, "",
			m.styles.Normal.Render("  No analytics loaded"))
	}

	s := m.overview.Summary
	var lines []string

	lines = append(lines, m.styles.Highlight.Render("  Overall"))
	lines = append(lines, m.styles.Normal.Render(fmt.Sprintf(
		"    %d cases tracked · %d approved · %d denied · %d pending",
		s.TotalCases, s.TotalApproved, s.TotalDenied, s.TotalPending)))
	if s.TotalApproved+s.TotalDenied > 0 {
		rate := float64(s.TotalApproved) / float64(s.TotalApproved+s.TotalDenied) * 100
		lines = append(lines, m.styles.Success.Render(fmt.Sprintf(
			"    %.0f%% of decided appeals were approved", rate)))
	}
	if s.DataSource != "" {
		lines = append(lines, m.styles.Help.Render("    source: "+s.DataSource))
	}

	if len(m.overview.OutcomesByPlatform) > 0 {
		lines = append(lines, "", m.styles.Highlight.Render("  By platform"))
		platforms := make([]string, 0, len(m.overview.OutcomesByPlatform))
		for p := range m.overview.OutcomesByPlatform {
			platforms = append(platforms, p)
		}
		sort.Strings(platforms)
		for _, p := range platforms {
			o := m.overview.OutcomesByPlatform[p]
			line := fmt.Sprintf("    %-14s %3d approved  %3d denied  %3d pending",
				Truncate(p, 14), o.Approved, o.Denied, o.Pending)
			if avg, ok := m.overview.AvgResponseTimeDays[p]; ok && avg > 0 {
				line += fmt.Sprintf("  ~%.0fd response", avg)
			}
			lines = append(lines, m.styles.Normal.Render(line))
		}
	}

	if len(m.overview.ReasonDistribution) > 0 {
		lines = append(lines, "", m.styles.Highlight.Render("  Deactivation reasons"))
		reasons := make([]string, 0, len(m.overview.ReasonDistribution))
		for r := range m.overview.ReasonDistribution {
			reasons = append(reasons, r)
		}
		sort.Slice(reasons, func(i, j int) bool {
			return m.overview.ReasonDistribution[reasons[i]] > m.overview.ReasonDistribution[reasons[j]]
		})
		for _, r := range reasons {
			count := m.overview.ReasonDistribution[r]
			bar := strings.Repeat("█", clampBar(count, s.TotalCases))
			lines = append(lines, m.styles.Normal.Render(
				fmt.Sprintf("    %-20s %4d  ", Truncate(r, 20), count))+
				m.styles.Highlight.Render(bar))
		}
	}

	help := m.renderHelpLine([]helpEntry{
		{"R", "refresh"},
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

// clampBar scales a count to a bar of at most 30 cells.
func clampBar(count, total int) int {
	if total <= 0 {
		return 0
	}
	n := count * 30 / total
	if n < 1 {
		n = 1
	}
	if n > 30 {
		n = 30
	}
	return n
}
