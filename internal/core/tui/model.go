// Package tui implements the interactive findings browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/Lin-Jiong-HDU/shellguard/internal/core/security"
	"github.com/Lin-Jiong-HDU/shellguard/internal/report"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// severityFloors is the cycle order of the severity filter.
var severityFloors = []security.Severity{
	security.SeverityNone,
	security.SeverityInfo,
	security.SeverityLow,
	security.SeverityMedium,
	security.SeverityWarning,
	security.SeverityHigh,
	security.SeverityCritical,
}

// model is the Bubble Tea model for the findings browser
type model struct {
	report     *report.Report
	visible    []security.Finding
	floor      int // index into severityFloors
	cursor     int
	showDetail bool
	keys       keyMap
	help       help.Model
	pendingG   bool // Tracks if 'g' was pressed for 'gg' command
	width      int
	height     int
}

// NewModel creates a findings browser for r
func NewModel(r *report.Report) tea.Model {
	m := model{
		report: r,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	m.applyFilter()
	return m
}

// Run opens the browser and blocks until the user quits
func Run(r *report.Report) error {
	_, err := tea.NewProgram(NewModel(r), tea.WithAltScreen()).Run()
	return err
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Handle vim-style gg to go to top
	if key.Matches(msg, m.keys.Top) {
		if m.pendingG {
			m.cursor = 0
			m.pendingG = false
		} else {
			m.pendingG = true
		}
		return m, nil
	}
	m.pendingG = false

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Bottom):
		if len(m.visible) > 0 {
			m.cursor = len(m.visible) - 1
		}
	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail
	case key.Matches(msg, m.keys.Filter):
		m.floor = (m.floor + 1) % len(severityFloors)
		m.applyFilter()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// applyFilter recomputes the visible findings and keeps the cursor in range.
func (m *model) applyFilter() {
	floor := severityFloors[m.floor]
	visible := make([]security.Finding, 0, len(m.report.Findings))
	for _, f := range m.report.Findings {
		if f.Severity.Rank() >= floor.Rank() {
			visible = append(visible, f)
		}
	}
	m.visible = visible
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

func (m model) selected() (security.Finding, bool) {
	if len(m.visible) == 0 {
		return security.Finding{}, false
	}
	return m.visible[m.cursor], true
}

// View renders the UI
func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(" shellguard: "+m.report.Script+" ") + "\n")
	floor := "all"
	if sev := severityFloors[m.floor]; sev != security.SeverityNone {
		floor = ">= " + string(sev)
	}
	b.WriteString(subtleStyle.Render(fmt.Sprintf("%d of %d findings (%s)",
		len(m.visible), len(m.report.Findings), floor)) + "\n\n")

	if len(m.visible) == 0 {
		b.WriteString(subtleStyle.Render("No findings to show") + "\n")
	}
	for i, f := range m.listWindow() {
		idx := i + m.windowStart()
		cursor := " "
		if idx == m.cursor {
			cursor = ">"
		}
		line := fmt.Sprintf("%s %s %-26s line %d", cursor, severityBadge(f.Severity), f.Kind, f.LineNumber)
		if idx == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if f, ok := m.selected(); ok && m.showDetail {
		b.WriteString("\n" + detailStyle.Render(renderDetail(f)) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

// listWindow returns the slice of visible findings that fits the screen.
func (m model) listWindow() []security.Finding {
	start := m.windowStart()
	end := min(start+m.listHeight(), len(m.visible))
	return m.visible[start:end]
}

func (m model) windowStart() int {
	h := m.listHeight()
	if m.cursor < h {
		return 0
	}
	return m.cursor - h + 1
}

func (m model) listHeight() int {
	if m.height <= 0 {
		return len(m.visible) + 1
	}
	// header, detail pane and footer
	reserved := 6
	if m.showDetail {
		reserved += 7
	}
	return max(m.height-reserved, 1)
}

func renderDetail(f security.Finding) string {
	code := f.Code
	if len(code) > 120 {
		code = code[:117] + "..."
	}
	return fmt.Sprintf("Line %d\n%s\n\n%s", f.LineNumber, code, f.Description)
}
