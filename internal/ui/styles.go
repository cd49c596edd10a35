package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the color palette for one theme
type Theme struct {
	Primary    string
	Secondary  string
	Background string
	Foreground string
	Subtle     string
	Error      string
	Success    string
	Warning    string
}

// Themes maps theme names to their palettes
var Themes = map[string]Theme{
	"default": {
		Primary:    "#7D56F4",
		Secondary:  "#04B575",
		Background: "#1A1A1A",
		Foreground: "#FAFAFA",
		Subtle:     "#737373",
		Error:      "#FF5555",
		Success:    "#04B575",
		Warning:    "#FFB86C",
	},
	"catppuccin": {
		Primary:    "#CBA6F7",
		Secondary:  "#94E2D5",
		Background: "#1E1E2E",
		Foreground: "#CDD6F4",
		Subtle:     "#6C7086",
		Error:      "#F38BA8",
		Success:    "#A6E3A1",
		Warning:    "#F9E2AF",
	},
	"dracula": {
		Primary:    "#BD93F9",
		Secondary:  "#8BE9FD",
		Background: "#282A36",
		Foreground: "#F8F8F2",
		Subtle:     "#6272A4",
		Error:      "#FF5555",
		Success:    "#50FA7B",
		Warning:    "#FFB86C",
	},
	"nord": {
		Primary:    "#88C0D0",
		Secondary:  "#81A1C1",
		Background: "#2E3440",
		Foreground: "#ECEFF4",
		Subtle:     "#4C566A",
		Error:      "#BF616A",
		Success:    "#A3BE8C",
		Warning:    "#EBCB8B",
	},
	"gruvbox": {
		Primary:    "#FABD2F",
		Secondary:  "#83A598",
		Background: "#282828",
		Foreground: "#EBDBB2",
		Subtle:     "#928374",
		Error:      "#FB4934",
		Success:    "#B8BB26",
		Warning:    "#FE8019",
	},
}

// GetThemeNames returns the theme names in a stable order
func GetThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Styles holds all the UI styles
type Styles struct {
	theme Theme

	Title     lipgloss.Style
	Normal    lipgloss.Style
	Help      lipgloss.Style
	Highlight lipgloss.Style
	Selected  lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
	HelpSep  lipgloss.Style

	Card      lipgloss.Style
	Border    lipgloss.Style
	HeaderBar lipgloss.Style
	FooterBar lipgloss.Style
}

// NewStyles builds a style set from a theme
func NewStyles(theme Theme) Styles {
	return Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Primary)),

		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Foreground)),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)).
			Italic(true),

		Highlight: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Secondary)),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.Primary)).
			Foreground(lipgloss.Color(theme.Background)),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Error)),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Success)),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Warning)),

		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Primary)),

		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)),

		HelpSep: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Primary)).
			Padding(1, 3),

		Border: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(theme.Subtle)).
			Padding(1, 2),

		HeaderBar: lipgloss.NewStyle().
			Padding(0, 1),

		FooterBar: lipgloss.NewStyle().
			Padding(0, 1),
	}
}

// DefaultStyles returns the default style set
func DefaultStyles() Styles {
	return NewStyles(Themes["default"])
}
