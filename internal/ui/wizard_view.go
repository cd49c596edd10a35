package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/gigshield/gigshield/internal/analysis"
	"github.com/gigshield/gigshield/internal/evidence"
	"github.com/gigshield/gigshield/internal/gigshield"
	"github.com/gigshield/gigshield/internal/wizard"
)

var wizardPlatforms = []string{
	"DoorDash", "Uber", "Lyft", "Instacart", "Amazon Flex", "Shipt", "Grubhub", "Other",
}

var appealTones = []huh.Option[string]{
	huh.NewOption("Professional", "professional"),
	huh.NewOption("Empathetic", "empathetic"),
	huh.NewOption("Assertive", "assertive"),
}

func (m *Model) startWizard(seed *analysis.AnalysisResult, notice string) {
	m.wiz = wizard.New(m.api, m.api)
	if m.cfg != nil {
		m.wiz.Tone = m.cfg.DefaultTone
		m.wiz.UserState = m.cfg.DefaultState
	}
	if seed != nil {
		m.wiz.Seed(notice, seed)
	}
	m.buildWizardForm()
}

func (m *Model) buildWizardForm() {
	m.wizEvidenceFile = ""

	switch m.wiz.Step() {
	case wizard.StepPlatform:
		options := make([]huh.Option[string], len(wizardPlatforms))
		for i, p := range wizardPlatforms {
			options[i] = huh.NewOption(p, p)
		}
		m.wizForm = huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which platform deactivated you?").
				Options(options...).
				Value(&m.wiz.Platform),
		))

	case wizard.StepNotice:
		m.wizForm = huh.NewForm(huh.NewGroup(
			huh.NewText().
				Title("Deactivation notice").
				Description("Paste the message the platform sent you.").
				Value(&m.wiz.Notice),
			huh.NewInput().
				Title("Notice file (optional)").
				Description("Path to a saved screenshot or PDF of the notice.").
				Validate(validateOptionalFile).
				Value(&m.wiz.NoticeFile),
		).WithShowHelp(false))

	case wizard.StepDetails:
		m.wizForm = huh.NewForm(huh.NewGroup(
			huh.NewText().
				Title("Your side of the story").
				Description("What actually happened, in your own words.").
				Value(&m.wiz.UserStory),
			huh.NewInput().
				Title("Time on platform").
				Placeholder("e.g. 3 years").
				Value(&m.wiz.AccountTenure),
			huh.NewInput().
				Title("Current rating").
				Placeholder("e.g. 4.85").
				Value(&m.wiz.CurrentRating),
			huh.NewInput().
				Title("Completion rate").
				Placeholder("e.g. 96%").
				Value(&m.wiz.CompletionRate),
			huh.NewInput().
				Title("Total deliveries / trips").
				Placeholder("e.g. 4200").
				Value(&m.wiz.TotalDeliveries),
			huh.NewSelect[string]().
				Title("Letter tone").
				Options(appealTones...).
				Value(&m.wiz.Tone),
			huh.NewInput().
				Title("State (optional)").
				Placeholder("e.g. CA").
				Value(&m.wiz.UserState),
			huh.NewText().
				Title("Evidence summary (optional)").
				Description("Describe any proof you have.").
				Value(&m.wiz.Evidence),
			huh.NewInput().
				Title("Evidence file (optional)").
				Description("JPG, PNG, HEIC, WebP or PDF up to 10 MB.").
				Validate(validateOptionalFile).
				Value(&m.wizEvidenceFile),
		).WithShowHelp(false))
	}
}

func validateOptionalFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	_, _, err := evidence.ValidateFile(strings.TrimSpace(path))
	return err
}

func (m *Model) updateWizardForm(msg tea.Msg) tea.Cmd {
	form, cmd := m.wizForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.wizForm = f
	}

	if m.wizForm.State != huh.StateCompleted {
		return cmd
	}

	switch m.wiz.Step() {
	case wizard.StepPlatform, wizard.StepNotice:
		if m.wiz.Advance() {
			m.buildWizardForm()
			return m.wizForm.Init()
		}
		// Gate not satisfied; re-present the same step.
		m.buildWizardForm()
		return m.wizForm.Init()

	case wizard.StepDetails:
		if path := strings.TrimSpace(m.wizEvidenceFile); path != "" {
			if _, err := m.wiz.Staged.Add(path); err != nil {
				m.showMessage("error", err.Error(), StateWizard)
				m.buildWizardForm()
				return m.wizForm.Init()
			}
		}
		m.state = StateGenerating
		return m.startGenerate()
	}

	return cmd
}

func (m *Model) handleWizardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.wiz.Back() {
			m.buildWizardForm()
			return m, m.wizForm.Init()
		}
		m.state = StateMenu
		return m, nil
	case "ctrl+r":
		m.wiz.Reset()
		if m.cfg != nil {
			m.wiz.Tone = m.cfg.DefaultTone
			m.wiz.UserState = m.cfg.DefaultState
		}
		m.buildWizardForm()
		return m, m.wizForm.Init()
	}

	if m.wizForm == nil {
		return m, nil
	}
	return m, m.updateWizardForm(msg)
}

func (m *Model) startGenerate() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := m.wiz.Generate(ctx); err != nil {
			// Step and data survive; the wizard resumes where it was.
			return ErrorMsg{Error: err, Return: StateWizard}
		}
		return GeneratedMsg{Result: &gigshield.GenerateResult{
			AppealID:     m.wiz.AppealID,
			AppealLetter: m.wiz.Letter,
			Platform:     m.wiz.Platform,
			Status:       "generated",
		}}
	}
}

// attachStaged re-uploads staged evidence tagged with the new appeal.
func (m *Model) attachStaged() tea.Cmd {
	return func() tea.Msg {
		if m.wiz == nil {
			return EvidenceAttachedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		m.wiz.AttachStaged(ctx)
		return EvidenceAttachedMsg{Remaining: m.wiz.Staged.Len()}
	}
}

func (m *Model) wizardView() string {
	if m.wiz == nil || m.wizForm == nil {
		return ""
	}

	step := m.wiz.Step()
	crumbs := make([]string, 0, 4)
	for s := wizard.StepPlatform; s <= wizard.StepGenerated; s++ {
		label := fmt.Sprintf("%d %s", int(s), s)
		if s == step {
			crumbs = append(crumbs, m.styles.Highlight.Render(label))
		} else {
			crumbs = append(crumbs, m.styles.HelpDesc.Render(label))
		}
	}
	header := m.headerBar("GigShield · New Appeal", "")
	breadcrumb := "  " + strings.Join(crumbs, m.styles.HelpSep.Render("  →  "))

	var deadline string
	if step == wizard.StepDetails {
		days := m.wiz.DeadlineDays
		if days == 0 {
			days = 10
		}
		date := time.Now().AddDate(0, 0, days).Format("January 2, 2006")
		deadline = m.styles.Warning.Render(fmt.Sprintf("  Estimated appeal deadline: %s (%d days)", date, days))
	}

	parts := []string{header, "", breadcrumb, ""}
	if deadline != "" {
		parts = append(parts, deadline, "")
	}
	parts = append(parts, m.wizForm.View())

	help := m.renderHelpLine([]helpEntry{
		{"esc", "back"},
		{"ctrl+r", "start over"},
	})
	parts = append(parts, "", "  "+help)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) generatingView() string {
	content := m.styles.Border.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Title.Render("Generating Appeal Letter"),
			"",
			m.styles.Normal.Render(m.spinner.View()+" Drafting your appeal..."),
		),
	)
	return lipgloss.JoinVertical(lipgloss.Center, "", content)
}
