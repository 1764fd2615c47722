package core

import (
	"fmt"
	"strings"

	"github.com/Lin-Jiong-HDU/shellguard/internal/core/security"
)

const explainPreamble = "You are a Linux sysadmin AI. Analyze the following content for bugs, inefficiencies, security risks, " +
	"or structural problems. Summarize your findings clearly and concisely."

const fixPreamble = "You are a Linux system automation AI. Review the following script or configuration. " +
	"Propose safe improvements, corrections, or optimizations. Return only the improved version, " +
	"without extra explanations."

// buildExplainPrompt asks for a review of the script, seeded with the
// heuristic findings so the model can confirm or dismiss them.
func buildExplainPrompt(lines []string, findings []security.Finding) string {
	var b strings.Builder
	b.WriteString(explainPreamble)
	b.WriteString("\n\n")

	if len(findings) > 0 {
		b.WriteString("A static scan reported these potential issues:\n")
		for _, f := range findings {
			sev := string(f.Severity)
			if sev == "" {
				sev = "Unrated"
			}
			fmt.Fprintf(&b, "- [%s] %s at line %d: %s (%s)\n", sev, f.Kind, f.LineNumber, f.Code, f.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

func buildFixPrompt(lines []string) string {
	return fixPreamble + "\n\n" + strings.Join(lines, "\n")
}

// stripCodeFence removes a markdown code fence wrapped around a whole response.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	body := strings.TrimSuffix(s, "```")
	// Drop the opening fence line including any language tag
	nl := strings.IndexByte(body, '\n')
	if nl < 0 {
		return s
	}
	return strings.TrimSpace(body[nl+1:])
}
