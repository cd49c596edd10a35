package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/gigshield/gigshield/internal/analysis"
	"github.com/gigshield/gigshield/internal/config"
	"github.com/gigshield/gigshield/internal/gigshield"
	"github.com/mattn/go-runewidth"
)

// caseLookup is the slice of the local case store the detail pane needs.
type caseLookup interface {
	Get(id string) (config.CaseEntry, bool)
}

// ListView renders the appeals table with its own scrolling logic.
type ListView struct {
	table       table.Model
	appeals     []gigshield.Appeal
	cursor      int
	width       int
	height      int
	visibleRows int // number of data rows visible (excluding header)

	headerStyle   lipgloss.Style
	cellStyle     lipgloss.Style
	selectedStyle lipgloss.Style
	columns       []table.Column
}

func listColumns(width int) []table.Column {
	// Each cell has Padding(0,1) adding 2 chars per column (6 columns = 12 extra).
	// Subtract 2 more to avoid hitting exact terminal width (causes implicit wraps).
	fixedWidth := 12 + 12 + 10 + 10 + 10 // non-reason columns
	padding := 6*2 + 2
	reasonWidth := width - fixedWidth - padding
	if reasonWidth < 20 {
		reasonWidth = 20
	}
	return []table.Column{
		{Title: "Status", Width: 12},
		{Title: "Platform", Width: 12},
		{Title: "Category", Width: 10},
		{Title: "Created", Width: 10},
		{Title: "Deadline", Width: 10},
		{Title: "Reason", Width: reasonWidth},
	}
}

func NewListView(width, height int) ListView {
	columns := listColumns(width)

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	// Reserve space for: header(2) + divider(1) + detail pane(4) + status(1) + footer(3)
	visibleRows := height - 11
	// Subtract 2 for the table header (text + border)
	visibleRows -= 2
	if visibleRows < 3 {
		visibleRows = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(visibleRows+2),
		table.WithFocused(true),
	)

	return ListView{
		table:         t,
		width:         width,
		height:        height,
		visibleRows:   visibleRows,
		headerStyle:   headerStyle,
		cellStyle:     cellStyle,
		selectedStyle: selectedStyle,
		columns:       columns,
	}
}

// UpdateTableStyles updates the styles to match the current theme
func (lv *ListView) UpdateTableStyles(theme Theme) {
	lv.headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.Subtle)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(theme.Primary))
	lv.selectedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Background)).
		Background(lipgloss.Color(theme.Primary)).
		Bold(false)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.Subtle)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(theme.Primary))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(theme.Background)).
		Background(lipgloss.Color(theme.Primary)).
		Bold(false)
	lv.table.SetStyles(s)
}

func (lv *ListView) SetAppeals(appeals []gigshield.Appeal) {
	lv.appeals = appeals
	if lv.cursor >= len(appeals) {
		lv.cursor = len(appeals) - 1
	}
	if lv.cursor < 0 {
		lv.cursor = 0
	}
	lv.updateRows()
}

func (lv *ListView) updateRows() {
	rows := make([]table.Row, len(lv.appeals))
	for i, a := range lv.appeals {
		status := runewidth.FillRight(statusText(a.Status), 12)
		platform := Truncate(a.Platform, 12)
		category := Truncate(analysis.CategorizeReason(a.DeactivationReason), 10)
		created := ""
		if !a.CreatedAt.IsZero() {
			created = a.CreatedAt.Format("2006-01-02")
		}
		deadline := ""
		if a.AppealDeadline != nil && !a.AppealDeadline.IsZero() {
			deadline = a.AppealDeadline.Format("2006-01-02")
		}
		reason := Truncate(a.DeactivationReason, lv.width-60)

		rows[i] = table.Row{status, platform, category, created, deadline, reason}
	}
	lv.table.SetRows(rows)
}

func statusText(status string) string {
	switch status {
	case "approved":
		return "🟢 Approved"
	case "denied":
		return "🔴 Denied"
	case "pending":
		return "🟡 Pending"
	case "generated":
		return "📝 Drafted"
	default:
		return "· " + status
	}
}

func Truncate(s string, maxLen int) string {
	if runewidth.StringWidth(s) > maxLen {
		return runewidth.Truncate(s, maxLen, "…")
	}
	return s
}

// detailPaneHeight is the fixed number of lines the detail pane always occupies.
const detailPaneHeight = 4

// DetailView renders a detail pane for the appeal under the cursor,
// padded to a fixed height.
func (lv *ListView) DetailView(width int, styles Styles, cases caseLookup) string {
	a := lv.GetAppeal(lv.cursor)
	if a == nil {
		return ""
	}

	maxWidth := width - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	var lines []string
	lines = append(lines, styles.Highlight.Render(Truncate(a.Platform+": "+a.DeactivationReason, maxWidth)))

	var meta []string
	if a.AccountTenure != "" {
		meta = append(meta, "tenure:"+a.AccountTenure)
	}
	if a.CurrentRating != "" {
		meta = append(meta, "rating:"+a.CurrentRating)
	}
	if a.CompletionRate != "" {
		meta = append(meta, "completion:"+a.CompletionRate)
	}
	if a.AppealTone != "" {
		meta = append(meta, "tone:"+a.AppealTone)
	}
	if len(meta) > 0 {
		lines = append(lines, styles.Normal.Render(Truncate(strings.Join(meta, " · "), maxWidth)))
	}

	if cases != nil {
		if entry, ok := cases.Get(a.ID); ok && entry.Notes != "" {
			lines = append(lines, styles.Help.Render(Truncate("notes: "+entry.Notes, maxWidth)))
		}
	}

	if a.GeneratedLetter != "" {
		preview := strings.ReplaceAll(a.GeneratedLetter, "\n", " ")
		lines = append(lines, styles.HelpDesc.Render(Truncate(preview, maxWidth)))
	}

	for len(lines) < detailPaneHeight {
		lines = append(lines, "")
	}

	return strings.Join(lines[:detailPaneHeight], "\n")
}

func (lv ListView) Cursor() int {
	return lv.cursor
}

func (lv *ListView) SetCursor(pos int) {
	if pos >= 0 && pos < len(lv.appeals) {
		lv.cursor = pos
		lv.table.SetCursor(pos)
	}
}

func (lv *ListView) MoveCursor(delta int) {
	newPos := lv.cursor + delta
	if newPos >= 0 && newPos < len(lv.appeals) {
		lv.cursor = newPos
		lv.table.SetCursor(newPos)
	}
}

func (lv ListView) GetAppeal(index int) *gigshield.Appeal {
	if index >= 0 && index < len(lv.appeals) {
		return &lv.appeals[index]
	}
	return nil
}

// renderCell renders a single cell value with the given column width.
func (lv *ListView) renderCell(value string, colWidth int) string {
	style := lipgloss.NewStyle().Width(colWidth).MaxWidth(colWidth).Inline(true)
	return lv.cellStyle.Render(style.Render(runewidth.Truncate(value, colWidth, "…")))
}

// View renders the table with our own scrolling logic, bypassing the
// bubbles table viewport which has broken YOffset calculations.
func (lv ListView) View() string {
	rows := lv.table.Rows()

	headerCells := make([]string, 0, len(lv.columns))
	for _, col := range lv.columns {
		if col.Width <= 0 {
			continue
		}
		style := lipgloss.NewStyle().Width(col.Width).MaxWidth(col.Width).Inline(true)
		cell := style.Render(runewidth.Truncate(col.Title, col.Width, "…"))
		headerCells = append(headerCells, lv.headerStyle.Render(lv.cellStyle.Render(cell)))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, headerCells...)

	visibleRows := lv.visibleRows
	if visibleRows <= 0 {
		visibleRows = 10
	}

	start := 0
	if lv.cursor >= visibleRows {
		start = lv.cursor - visibleRows + 1
	}
	end := start + visibleRows
	if end > len(rows) {
		end = len(rows)
		start = end - visibleRows
		if start < 0 {
			start = 0
		}
	}

	renderedRows := make([]string, 0, visibleRows)
	for i := start; i < end; i++ {
		cells := make([]string, 0, len(lv.columns))
		for ci, value := range rows[i] {
			if lv.columns[ci].Width <= 0 {
				continue
			}
			cells = append(cells, lv.renderCell(value, lv.columns[ci].Width))
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		if i == lv.cursor {
			row = lv.selectedStyle.Render(row)
		}
		renderedRows = append(renderedRows, row)
	}

	for len(renderedRows) < visibleRows {
		renderedRows = append(renderedRows, "")
	}

	return header + "\n" + strings.Join(renderedRows, "\n")
}

func (lv *ListView) SetWidthHeight(width, height int) {
	lv.width = width
	lv.height = height
	lv.columns = listColumns(width)

	// Reserve space for: header(2) + divider(1) + detail pane(4) + status(1) + footer(3)
	visibleRows := height - 11
	visibleRows -= 2
	if visibleRows < 3 {
		visibleRows = 3
	}
	lv.visibleRows = visibleRows

	lv.table.SetHeight(visibleRows + 2)
	lv.table.SetColumns(lv.columns)
	lv.updateRows()
}
