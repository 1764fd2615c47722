// Package report holds the result of one script analysis and renders it
// for terminals, machines and code scanning dashboards.
package report

import (
	"time"

	"github.com/Lin-Jiong-HDU/shellguard/internal/core/security"
	"github.com/google/uuid"
)

// Report is the outcome of analyzing one script.
type Report struct {
	ID           string             `json:"id" yaml:"id"`
	Script       string             `json:"script" yaml:"script"`
	ScannedAt    time.Time          `json:"scanned_at" yaml:"scanned_at"`
	LineCount    int                `json:"line_count" yaml:"line_count"`
	Findings     []security.Finding `json:"findings" yaml:"findings"`
	Explanation  string             `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	ExplainError string             `json:"explain_error,omitempty" yaml:"explain_error,omitempty"`
}

// New creates a report with a fresh ID.
func New(script string, lineCount int, findings []security.Finding) *Report {
	if findings == nil {
		findings = []security.Finding{}
	}
	return &Report{
		ID:        uuid.New().String(),
		Script:    script,
		ScannedAt: time.Now(),
		LineCount: lineCount,
		Findings:  findings,
	}
}

// SeverityCount is the number of findings at one severity.
type SeverityCount struct {
	Severity security.Severity
	Count    int
}

// Summary counts findings per severity, most severe first. Severities with
// no findings are omitted.
func (r *Report) Summary() []SeverityCount {
	counts := make(map[security.Severity]int)
	for _, f := range r.Findings {
		counts[f.Severity]++
	}

	order := []security.Severity{
		security.SeverityCritical, security.SeverityHigh, security.SeverityWarning,
		security.SeverityMedium, security.SeverityLow, security.SeverityInfo, security.SeverityNone,
	}
	var out []SeverityCount
	for _, sev := range order {
		if counts[sev] > 0 {
			out = append(out, SeverityCount{Severity: sev, Count: counts[sev]})
		}
	}
	return out
}

// HasAtLeast reports whether any finding is ranked at or above sev.
func (r *Report) HasAtLeast(sev security.Severity) bool {
	for _, f := range r.Findings {
		if f.Severity.Rank() >= sev.Rank() {
			return true
		}
	}
	return false
}

func severityLabel(sev security.Severity) string {
	if sev == security.SeverityNone {
		return "Unrated"
	}
	return string(sev)
}
