package tui

import (
	"fmt"

	"github.com/Lin-Jiong-HDU/shellguard/internal/core/security"
	"github.com/Lin-Jiong-HDU/shellguard/internal/report"
	"github.com/charmbracelet/lipgloss"
)

var style = report.DefaultStyleConfig()

// Styles
var (
	titleStyle    = lipgloss.NewStyle().Foreground(style.TitleColor).Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(style.SubtleColor)
	selectedStyle = lipgloss.NewStyle().Bold(true)
	detailStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(style.SubtleColor)
)

func severityBadge(sev security.Severity) string {
	label := string(sev)
	if label == "" {
		label = "-"
	}
	return lipgloss.NewStyle().
		Foreground(style.SeverityColor(sev)).
		Bold(true).
		Render(fmt.Sprintf("%-10s", "["+label+"]"))
}
