package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown for the terminal.
type MarkdownRenderer struct {
	term *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer wrapping at width columns.
func NewMarkdownRenderer(width int) (*MarkdownRenderer, error) {
	if width <= 0 {
		width = 80
	}
	term, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	return &MarkdownRenderer{term: term}, nil
}

// Render renders markdown, falling back to the input on failure.
func (r *MarkdownRenderer) Render(markdown string) string {
	out, err := r.term.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}

func renderMarkdown(markdown string, width int) string {
	r, err := NewMarkdownRenderer(width)
	if err != nil {
		return markdown
	}
	return r.Render(markdown)
}

// Markdown formats the report as a markdown document.
func Markdown(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# shellguard report: `%s`\n\n", r.Script)
	fmt.Fprintf(&b, "%d lines scanned, %d findings.\n\n", r.LineCount, len(r.Findings))

	if len(r.Findings) > 0 {
		b.WriteString("| Severity | Kind | Line | Code | Description |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, f := range r.Findings {
			fmt.Fprintf(&b, "| %s | %s | %d | `%s` | %s |\n",
				severityLabel(f.Severity), f.Kind, f.LineNumber, escapeCell(f.Code), escapeCell(f.Description))
		}
		b.WriteString("\n")
	}

	if r.Explanation != "" {
		b.WriteString("## AI explanation\n\n")
		b.WriteString(r.Explanation + "\n")
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
