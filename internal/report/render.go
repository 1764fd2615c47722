package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects a renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatSARIF    Format = "sarif"
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatSARIF, FormatMarkdown}
}

// ParseFormat resolves a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %q", s)
}

// Options tune rendering.
type Options struct {
	// RenderMarkdown styles markdown (explanations, markdown format) for the terminal.
	RenderMarkdown bool
	// Width is the word wrap width for rendered markdown.
	Width int
	// ToolVersion is reported in SARIF output.
	ToolVersion string
}

// Render writes r to w in the given format.
func Render(w io.Writer, r *Report, format Format, opts Options) error {
	switch format {
	case FormatText:
		return renderText(w, r, opts)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode json report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode yaml report: %w", err)
		}
		return enc.Close()
	case FormatSARIF:
		return renderSARIF(w, r, opts.ToolVersion)
	case FormatMarkdown:
		md := Markdown(r)
		if opts.RenderMarkdown {
			md = renderMarkdown(md, opts.Width)
		}
		_, err := io.WriteString(w, md)
		return err
	default:
		return fmt.Errorf("unsupported format: %q", format)
	}
}
