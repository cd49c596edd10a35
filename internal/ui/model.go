package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/gigshield/gigshield/internal/analysis"
	"github.com/gigshield/gigshield/internal/auth"
	"github.com/gigshield/gigshield/internal/config"
	"github.com/gigshield/gigshield/internal/gigshield"
	"github.com/gigshield/gigshield/internal/wizard"
)

type State int

const (
	StateMenu State = iota
	StateSignIn
	StateAnalyzing
	StateAnalysisReady
	StateWizard
	StateGenerating
	StateLetter
	StateLoadingAppeals
	StateAppeals
	StateConfirming
	StateKnowledge
	StateChat
	StateAnalytics
	StateMessage
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StateSignIn:
		return "SignIn"
	case StateAnalyzing:
		return "Analyzing"
	case StateAnalysisReady:
		return "AnalysisReady"
	case StateWizard:
		return "Wizard"
	case StateGenerating:
		return "Generating"
	case StateLetter:
		return "Letter"
	case StateLoadingAppeals:
		return "LoadingAppeals"
	case StateAppeals:
		return "Appeals"
	case StateConfirming:
		return "Confirming"
	case StateKnowledge:
		return "Knowledge"
	case StateChat:
		return "Chat"
	case StateAnalytics:
		return "Analytics"
	case StateMessage:
		return "Message"
	default:
		return "Unknown"
	}
}

type Model struct {
	state  State
	width  int
	height int
	styles Styles
	keys   KeyMap

	themeIndex int
	showHelp   bool

	cfg   *config.Config
	cases *config.CaseStore

	api     *gigshield.Client
	authSvc *auth.Service
	user    *auth.User

	spinner   spinner.Model
	apiOnline bool

	menuCursor int

	authForm *huh.Form
	authMode authMode
	email    string
	password string
	name     string

	noticeInput  string
	result       *analysis.AnalysisResult
	assessment   *analysis.Assessment
	analysisNote string

	wiz             *wizard.Controller
	wizForm         *huh.Form
	wizEvidenceFile string

	appeals       []gigshield.Appeal
	listView      ListView
	letter        string
	letterAppeal  string
	pendingDelete string

	chatInput   string
	chatHistory []gigshield.ChatMessage
	chatActions []gigshield.SuggestedAction

	kbInput    string
	kbResults  []gigshield.KnowledgeArticle
	kbCursor   int
	kbSearched bool

	overview *gigshield.AnalyticsOverview

	statusMessage string
	messageType   string
	returnState   State
}

func NewModel() *Model {
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{DefaultTone: "professional", DeadlineDays: 10}
	}

	cases, err := config.LoadCaseStore()
	if err != nil {
		cases = nil // nil-checked by callers
	}

	themeNames := GetThemeNames()
	themeName := cfg.Theme
	if _, ok := Themes[themeName]; !ok {
		themeName = "default"
	}
	themeIndex := 0
	for i, name := range themeNames {
		if name == themeName {
			themeIndex = i
			break
		}
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(Themes[themeName].Primary))

	var authSvc *auth.Service
	var tokens gigshield.TokenSource
	if svc, err := auth.NewService(cfg.FirebaseAPIKey); err == nil {
		authSvc = svc
		tokens = svc
	}

	var clientOpts []gigshield.ClientOption
	if cfg.APIURL != "" {
		clientOpts = append(clientOpts, gigshield.WithBaseURL(cfg.APIURL))
	}
	api := gigshield.NewClient(tokens, clientOpts...)

	m := &Model{
		state:      StateMenu,
		styles:     NewStyles(Themes[themeName]),
		keys:       DefaultKeyMap(),
		themeIndex: themeIndex,
		cfg:        cfg,
		cases:      cases,
		api:        api,
		authSvc:    authSvc,
		spinner:    s,
	}
	m.listView = NewListView(80, 24)
	m.listView.UpdateTableStyles(Themes[themeName])
	return m
}

func (m *Model) cycleTheme() {
	themeNames := GetThemeNames()
	m.themeIndex = (m.themeIndex + 1) % len(themeNames)
	newTheme := themeNames[m.themeIndex]
	m.styles = NewStyles(Themes[newTheme])
	m.listView.UpdateTableStyles(Themes[newTheme])
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(Themes[newTheme].Primary))

	if m.cfg != nil {
		m.cfg.Theme = newTheme
		_ = m.cfg.Save()
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.checkHealth())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.listView.SetWidthHeight(msg.Width, msg.Height)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case StateChangeMsg:
		m.state = msg.State

	case HealthMsg:
		m.apiOnline = msg.Err == nil && msg.Status != nil && msg.Status.Status == "healthy"

	case SignedInMsg:
		m.user = msg.User
		m.authForm = nil
		m.password = ""
		if m.cfg != nil && msg.User != nil && msg.User.Email != m.cfg.Email {
			m.cfg.Email = msg.User.Email
			_ = m.cfg.Save()
		}
		m.showMessage("success", fmt.Sprintf("Signed in as %s", msg.User.Email), StateMenu)

	case ResetSentMsg:
		m.authForm = nil
		m.showMessage("success", fmt.Sprintf("Password reset email sent to %s", msg.Email), StateMenu)

	case AnalysisMsg:
		m.result = msg.Result
		m.assessment = msg.Assessment
		m.analysisNote = msg.Note
		m.state = StateAnalysisReady

	case GeneratedMsg:
		m.letter = msg.Result.AppealLetter
		m.letterAppeal = msg.Result.AppealID
		m.state = StateLetter
		if m.cases != nil && msg.Result.AppealID != "" {
			m.cases.Track(msg.Result.AppealID, msg.Result.Platform, msg.Result.Status)
			_ = m.cases.Save()
		}
		return m, m.attachStaged()

	case EvidenceAttachedMsg:
		if msg.Remaining > 0 {
			m.statusMessage = fmt.Sprintf("%d evidence file(s) could not be attached", msg.Remaining)
		}

	case AppealsLoadedMsg:
		m.appeals = msg.Appeals
		m.syncCaseStore()
		m.listView.SetAppeals(m.appeals)
		m.statusMessage = fmt.Sprintf("Loaded %d appeals", len(m.appeals))
		m.state = StateAppeals

	case AppealDeletedMsg:
		if m.cases != nil {
			m.cases.Remove(msg.ID)
			_ = m.cases.Save()
		}
		m.state = StateLoadingAppeals
		return m, m.loadAppeals()

	case StatusUpdatedMsg:
		for i := range m.appeals {
			if m.appeals[i].ID == msg.ID {
				m.appeals[i].Status = msg.Status
			}
		}
		if m.cases != nil {
			m.cases.SetStatus(msg.ID, msg.Status)
			_ = m.cases.Save()
		}
		m.listView.SetAppeals(m.appeals)
		m.statusMessage = fmt.Sprintf("Status set to %s", msg.Status)
		m.state = StateAppeals

	case ChatReplyMsg:
		m.chatHistory = append(m.chatHistory, gigshield.ChatMessage{
			Role:    "assistant",
			Content: msg.Reply.Response,
		})
		m.chatActions = msg.Reply.SuggestedActions
		m.statusMessage = ""

	case KnowledgeResultsMsg:
		m.kbResults = msg.Result.Results
		m.kbCursor = 0
		m.kbSearched = true
		m.statusMessage = ""

	case AnalyticsMsg:
		m.overview = msg.Overview
		m.state = StateAnalytics

	case ErrorMsg:
		m.showMessage("error", msg.Error.Error(), msg.Return)

	default:
		// Forms animate on their own message types.
		if m.state == StateSignIn && m.authForm != nil {
			return m, m.updateAuthForm(msg)
		}
		if m.state == StateWizard && m.wizForm != nil {
			return m, m.updateWizardForm(msg)
		}
	}

	return m, nil
}

func (m *Model) showMessage(kind, text string, returnTo State) {
	m.messageType = kind
	m.statusMessage = text
	m.returnState = returnTo
	m.state = StateMessage
}

func (m *Model) View() string {
	var content string
	centered := true

	switch m.state {
	case StateMenu:
		content = m.menuView()
	case StateSignIn:
		content = m.authView()
	case StateAnalyzing:
		content = m.analyzingView()
	case StateAnalysisReady:
		content = m.analysisView()
		centered = false
	case StateWizard:
		content = m.wizardView()
		centered = false
	case StateGenerating:
		content = m.generatingView()
	case StateLetter:
		content = m.letterView()
		centered = false
	case StateLoadingAppeals:
		content = m.loadingAppealsView()
	case StateAppeals:
		content = m.appealsView()
		centered = false
	case StateConfirming:
		content = m.confirmingView()
	case StateKnowledge:
		content = m.knowledgeView()
		centered = false
	case StateChat:
		content = m.chatView()
		centered = false
	case StateAnalytics:
		content = m.analyticsView()
		centered = false
	case StateMessage:
		content = m.messageView()
	default:
		return "Unknown state"
	}

	if centered && m.width > 0 && m.height > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}

	return content
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if keyMatches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.state {
	case StateMenu:
		return m.handleMenuKeys(msg)
	case StateSignIn:
		return m.handleAuthKeys(msg)
	case StateAnalyzing:
		return m.handleAnalyzeKeys(msg)
	case StateAnalysisReady:
		return m.handleAnalysisReadyKeys(msg)
	case StateWizard:
		return m.handleWizardKeys(msg)
	case StateLetter:
		return m.handleLetterKeys(msg)
	case StateAppeals:
		return m.handleAppealsKeys(msg)
	case StateConfirming:
		return m.handleConfirmingKeys(msg)
	case StateKnowledge:
		return m.handleKnowledgeKeys(msg)
	case StateChat:
		return m.handleChatKeys(msg)
	case StateAnalytics:
		return m.handleAnalyticsKeys(msg)
	case StateMessage:
		m.state = m.returnState
		m.statusMessage = ""
		return m, nil
	}

	return m, nil
}

// Messages

type StateChangeMsg struct {
	State State
}

type ErrorMsg struct {
	Error  error
	Return State
}

type HealthMsg struct {
	Status *gigshield.HealthStatus
	Err    error
}

type SignedInMsg struct {
	User *auth.User
}

type ResetSentMsg struct {
	Email string
}

type AnalysisMsg struct {
	Result     *analysis.AnalysisResult
	Assessment *analysis.Assessment
	Note       string
}

type GeneratedMsg struct {
	Result *gigshield.GenerateResult
}

type EvidenceAttachedMsg struct {
	Remaining int
}

type AppealsLoadedMsg struct {
	Appeals []gigshield.Appeal
}

type AppealDeletedMsg struct {
	ID string
}

type StatusUpdatedMsg struct {
	ID     string
	Status string
}

type ChatReplyMsg struct {
	Reply *gigshield.ChatReply
}

type KnowledgeResultsMsg struct {
	Result *gigshield.KnowledgeSearchResult
}

type AnalyticsMsg struct {
	Overview *gigshield.AnalyticsOverview
}

func (m *Model) checkHealth() tea.Cmd {
	return func() tea.Msg {
		status, err := m.api.Health(context.Background())
		return HealthMsg{Status: status, Err: err}
	}
}

// Menu

type menuItem struct {
	label  string
	action func() (State, tea.Cmd)
}

func (m *Model) menuItems() []menuItem {
	items := []menuItem{
		{"Analyze a deactivation notice", func() (State, tea.Cmd) {
			m.noticeInput = ""
			return StateAnalyzing, nil
		}},
		{"Start an appeal", func() (State, tea.Cmd) {
			m.startWizard(nil, "")
			return StateWizard, m.wizForm.Init()
		}},
		{"My appeals", func() (State, tea.Cmd) {
			return StateLoadingAppeals, m.loadAppeals()
		}},
		{"Know your rights (chat)", func() (State, tea.Cmd) {
			return StateChat, nil
		}},
		{"Knowledge base", func() (State, tea.Cmd) {
			return StateKnowledge, nil
		}},
		{"Appeal analytics", func() (State, tea.Cmd) {
			return StateMenu, m.loadAnalytics()
		}},
	}

	if m.user == nil {
		items = append(items,
			menuItem{"Sign in", func() (State, tea.Cmd) {
				m.buildAuthForm(authSignIn)
				return StateSignIn, m.authForm.Init()
			}},
			menuItem{"Create account", func() (State, tea.Cmd) {
				m.buildAuthForm(authSignUp)
				return StateSignIn, m.authForm.Init()
			}},
			menuItem{"Forgot password", func() (State, tea.Cmd) {
				m.buildAuthForm(authReset)
				return StateSignIn, m.authForm.Init()
			}},
		)
	} else {
		items = append(items, menuItem{"Sign out", func() (State, tea.Cmd) {
			if m.authSvc != nil {
				m.authSvc.SignOut()
			}
			m.user = nil
			return StateMenu, nil
		}})
	}

	return items
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.menuItems()

	switch {
	case keyMatches(msg, m.keys.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case keyMatches(msg, m.keys.Down):
		if m.menuCursor < len(items)-1 {
			m.menuCursor++
		}
	case keyMatches(msg, m.keys.Enter):
		state, cmd := items[m.menuCursor].action()
		m.state = state
		return m, cmd
	case keyMatches(msg, m.keys.CycleTheme):
		m.cycleTheme()
	case keyMatches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case msg.String() == "q":
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) menuView() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.styles.theme.Primary)).
		Render("  GigShield")
	subtitle := m.styles.Help.Render("  Fight your gig platform deactivation")

	var status string
	if m.apiOnline {
		status = m.styles.Success.Render("  ● API connected")
	} else {
		status = m.styles.Warning.Render("  ○ API unreachable")
	}
	if m.user != nil {
		status += m.styles.Help.Render("  ·  " + m.user.Email)
	}

	items := m.menuItems()
	lines := []string{"", title, subtitle, "", status, ""}
	for i, item := range items {
		cursor := "  "
		label := m.styles.Normal.Render(item.label)
		if i == m.menuCursor {
			cursor = m.styles.Highlight.Render("> ")
			label = m.styles.Highlight.Render(item.label)
		}
		lines = append(lines, "  "+cursor+label)
	}
	lines = append(lines, "")

	card := m.styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	help := m.renderHelpLine([]helpEntry{
		{"j/k", "navigate"},
		{"enter", "select"},
		{"t", "theme"},
		{"q", "quit"},
	})

	return lipgloss.JoinVertical(lipgloss.Center, "", card, "", help)
}

func (m *Model) confirmingView() string {
	content := m.styles.Border.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Title.Render("Delete Appeal"),
			"",
			m.styles.Normal.Render("Permanently delete this appeal?"),
		),
	)

	help := m.renderHelpLine([]helpEntry{
		{"y", "confirm"},
		{"n", "cancel"},
	})

	return lipgloss.JoinVertical(lipgloss.Center, "", content, "", help)
}

func (m *Model) handleConfirmingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.pendingDelete
		m.pendingDelete = ""
		m.state = StateLoadingAppeals
		return m, m.deleteAppeal(id)
	case "n", "N", "esc":
		m.pendingDelete = ""
		m.state = StateAppeals
	}
	return m, nil
}

func (m *Model) messageView() string {
	var icon, title string
	var titleStyle lipgloss.Style

	if m.messageType == "error" {
		icon = "✗"
		title = "Error"
		titleStyle = m.styles.Error
	} else {
		icon = "✓"
		title = "Success"
		titleStyle = m.styles.Success
	}

	content := m.styles.Border.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render(icon+" "+title),
			"",
			m.styles.Normal.Render(m.statusMessage),
		),
	)

	help := m.renderHelpLine([]helpEntry{{"any key", "continue"}})
	return lipgloss.JoinVertical(lipgloss.Center, "", content, "", help)
}

// syncCaseStore reconciles fetched appeals with locally tracked cases.
func (m *Model) syncCaseStore() {
	if m.cases == nil {
		return
	}
	changed := false
	for _, a := range m.appeals {
		if _, ok := m.cases.Get(a.ID); !ok {
			m.cases.Track(a.ID, a.Platform, a.Status)
			changed = true
		} else if m.cases.SetStatus(a.ID, a.Status) {
			changed = true
		}
	}
	if changed {
		_ = m.cases.Save()
	}
}

// Help rendering

type helpEntry struct {
	key  string
	desc string
}

func (m *Model) renderHelpLine(entries []helpEntry) string {
	var parts []string
	sep := m.styles.HelpSep.Render(" · ")
	for _, e := range entries {
		parts = append(parts, m.styles.HelpKey.Render(e.key)+" "+m.styles.HelpDesc.Render(e.desc))
	}
	return strings.Join(parts, sep)
}

func (m *Model) headerBar(title, right string) string {
	left := m.styles.HelpKey.Render(title)
	gap := ""
	if m.width > 0 {
		w := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
		if w > 0 {
			gap = strings.Repeat(" ", w)
		}
	}
	return m.styles.HeaderBar.Render(left + gap + right)
}

func keyMatches(msg tea.KeyMsg, target key.Binding) bool {
	for _, k := range target.Keys() {
		if msg.String() == k {
			return true
		}
	}
	return false
}
