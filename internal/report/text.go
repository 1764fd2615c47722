package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Lin-Jiong-HDU/shellguard/internal/core/security"
	"github.com/charmbracelet/lipgloss"
)

// StyleConfig defines visual styles
type StyleConfig struct {
	TitleColor    lipgloss.Color
	SubtleColor   lipgloss.Color
	SuccessColor  lipgloss.Color
	CriticalColor lipgloss.Color
	HighColor     lipgloss.Color
	WarningColor  lipgloss.Color
	MediumColor   lipgloss.Color
	LowColor      lipgloss.Color
}

// DefaultStyleConfig returns the default style configuration
func DefaultStyleConfig() *StyleConfig {
	return &StyleConfig{
		TitleColor:    lipgloss.Color("10"),  // Green
		SubtleColor:   lipgloss.Color("241"), // Grey
		SuccessColor:  lipgloss.Color("10"),  // Green
		CriticalColor: lipgloss.Color("9"),   // Red
		HighColor:     lipgloss.Color("202"), // Orange
		WarningColor:  lipgloss.Color("11"),  // Yellow
		MediumColor:   lipgloss.Color("12"),  // Blue
		LowColor:      lipgloss.Color("8"),   // Dark grey
	}
}

// SeverityColor maps a severity to its display color.
func (s *StyleConfig) SeverityColor(sev security.Severity) lipgloss.Color {
	switch sev {
	case security.SeverityCritical:
		return s.CriticalColor
	case security.SeverityHigh:
		return s.HighColor
	case security.SeverityWarning:
		return s.WarningColor
	case security.SeverityMedium:
		return s.MediumColor
	case security.SeverityLow:
		return s.LowColor
	default:
		return s.SubtleColor
	}
}

func renderText(w io.Writer, r *Report, opts Options) error {
	// Bind styles to w so colors are dropped when w is not a terminal
	lr := lipgloss.NewRenderer(w)
	style := DefaultStyleConfig()
	title := lr.NewStyle().Foreground(style.TitleColor).Bold(true)
	subtle := lr.NewStyle().Foreground(style.SubtleColor)

	var b strings.Builder
	b.WriteString(title.Render("shellguard: "+r.Script) + "\n")
	b.WriteString(subtle.Render(fmt.Sprintf("%d lines scanned, %d findings", r.LineCount, len(r.Findings))) + "\n\n")

	if len(r.Findings) == 0 {
		b.WriteString(lr.NewStyle().Foreground(style.SuccessColor).Render("No issues found.") + "\n")
	}

	for _, f := range r.Findings {
		badge := lr.NewStyle().Foreground(style.SeverityColor(f.Severity)).Bold(true).
			Render(fmt.Sprintf("[%s]", severityLabel(f.Severity)))
		fmt.Fprintf(&b, "%s %s (line %d)\n", badge, f.Kind, f.LineNumber)
		fmt.Fprintf(&b, "    %s\n", subtle.Render(f.Code))
		fmt.Fprintf(&b, "    %s\n\n", f.Description)
	}

	if summary := r.Summary(); len(summary) > 0 {
		parts := make([]string, 0, len(summary))
		for _, sc := range summary {
			parts = append(parts, fmt.Sprintf("%s: %d", severityLabel(sc.Severity), sc.Count))
		}
		b.WriteString(subtle.Render("Summary: "+strings.Join(parts, ", ")) + "\n")
	}

	if r.Explanation != "" {
		b.WriteString("\n" + title.Render("AI explanation") + "\n")
		explanation := r.Explanation
		if opts.RenderMarkdown {
			explanation = renderMarkdown(explanation, opts.Width)
		}
		b.WriteString(explanation + "\n")
	} else if r.ExplainError != "" {
		b.WriteString("\n" + subtle.Render("AI explanation unavailable: "+r.ExplainError) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
