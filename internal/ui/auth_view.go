package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type authMode int

const (
	authSignIn authMode = iota
	authSignUp
	authReset
)

func (m *Model) buildAuthForm(mode authMode) {
	m.authMode = mode
	m.email = ""
	if m.cfg != nil {
		m.email = m.cfg.Email
	}
	m.password = ""
	m.name = ""

	fields := []huh.Field{
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Validate(validateEmail).
			Value(&m.email),
	}

	if mode == authSignUp {
		fields = append(fields, huh.NewInput().
			Title("Name").
			Placeholder("How should we address you?").
			Value(&m.name))
	}

	if mode != authReset {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Validate(func(s string) error {
				if len(s) < 6 {
					return fmt.Errorf("password must be at least 6 characters")
				}
				return nil
			}).
			Value(&m.password))
	}

	m.authForm = huh.NewForm(huh.NewGroup(fields...))
}

func validateEmail(s string) error {
	if !strings.Contains(s, "@") || strings.TrimSpace(s) == "" {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

func (m *Model) updateAuthForm(msg tea.Msg) tea.Cmd {
	form, cmd := m.authForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.authForm = f
	}

	if m.authForm.State == huh.StateCompleted {
		mode := m.authMode
		m.authForm = nil
		return m.submitAuth(mode)
	}
	return cmd
}

func (m *Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.authForm = nil
		m.password = ""
		m.state = StateMenu
		return m, nil
	}
	if m.authForm == nil {
		m.state = StateMenu
		return m, nil
	}
	return m, m.updateAuthForm(msg)
}

func (m *Model) submitAuth(mode authMode) tea.Cmd {
	email, password, name := m.email, m.password, m.name

	return func() tea.Msg {
		if m.authSvc == nil {
			return ErrorMsg{
				Error:  fmt.Errorf("authentication is not configured. Set firebase_api_key in config.yaml or GIGSHIELD_FIREBASE_API_KEY"),
				Return: StateMenu,
			}
		}

		ctx := context.Background()
		switch mode {
		case authSignUp:
			user, err := m.authSvc.SignUp(ctx, email, password, name)
			if err != nil {
				return ErrorMsg{Error: err, Return: StateMenu}
			}
			return SignedInMsg{User: user}
		case authReset:
			if err := m.authSvc.ResetPassword(ctx, email); err != nil {
				return ErrorMsg{Error: err, Return: StateMenu}
			}
			return ResetSentMsg{Email: email}
		default:
			user, err := m.authSvc.SignIn(ctx, email, password)
			if err != nil {
				return ErrorMsg{Error: err, Return: StateMenu}
			}
			return SignedInMsg{User: user}
		}
	}
}

func (m *Model) authView() string {
	if m.authForm == nil {
		return ""
	}

	var title string
	switch m.authMode {
	case authSignUp:
		title = "Create Account"
	case authReset:
		title = "Reset Password"
	default:
		title = "Sign In"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(title),
		"",
		m.authForm.View(),
	)

	help := m.renderHelpLine([]helpEntry{{"esc", "back"}})
	return lipgloss.JoinVertical(lipgloss.Center, "", m.styles.Card.Render(content), "", help)
}
