package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/Lin-Jiong-HDU/shellguard/internal/core/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *Report {
	return New("./scripts/deploy.sh", 3, []security.Finding{
		{Severity: security.SeverityCritical, Kind: security.KindUnsanitizedInput, LineNumber: 1, Code: "read name", Description: "Unsanitized 'read' input detected (possible command injection)"},
		{Severity: security.SeverityInfo, Kind: security.KindUnsafeVariableExpansion, LineNumber: 2, Code: "echo $name", Description: "Unquoted variable expansion detected (potential safety risk)"},
		{Kind: security.KindTmpfileRaceRisk, LineNumber: 3, Code: "cat /tmp/a | wc -l", Description: "Unsafe temp file usage without mktemp or file locking (possible race condition)"},
	})
}

func TestNew(t *testing.T) {
	r := New("a.sh", 0, nil)
	assert.NotEmpty(t, r.ID)
	assert.NotNil(t, r.Findings)
	assert.Empty(t, r.Findings)
	assert.False(t, r.ScannedAt.IsZero())

	other := New("a.sh", 0, nil)
	assert.NotEqual(t, r.ID, other.ID)
}

func TestReport_Summary(t *testing.T) {
	summary := sampleReport().Summary()
	require.Len(t, summary, 3)
	assert.Equal(t, SeverityCount{Severity: security.SeverityCritical, Count: 1}, summary[0])
	assert.Equal(t, SeverityCount{Severity: security.SeverityInfo, Count: 1}, summary[1])
	assert.Equal(t, SeverityCount{Severity: security.SeverityNone, Count: 1}, summary[2])
}

func TestReport_HasAtLeast(t *testing.T) {
	r := sampleReport()
	assert.True(t, r.HasAtLeast(security.SeverityCritical))
	assert.True(t, r.HasAtLeast(security.SeverityHigh))

	r.Findings = r.Findings[1:]
	assert.False(t, r.HasAtLeast(security.SeverityLow))
	assert.True(t, r.HasAtLeast(security.SeverityInfo))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("html")
	assert.Error(t, err)
}

func TestRender_JSON(t *testing.T) {
	r := sampleReport()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, FormatJSON, Options{}))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, r.ID, decoded.ID)
	assert.Equal(t, r.Findings, decoded.Findings)
	assert.NotContains(t, buf.String(), "explanation")
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), FormatYAML, Options{}))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "./scripts/deploy.sh", decoded["script"])
	assert.Len(t, decoded["findings"], 3)
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), FormatText, Options{}))

	out := buf.String()
	assert.Contains(t, out, "./scripts/deploy.sh")
	assert.Contains(t, out, "3 lines scanned, 3 findings")
	assert.Contains(t, out, "[Critical] unsanitized_input (line 1)")
	assert.Contains(t, out, "[Unrated] tmpfile_race_risk (line 3)")
	assert.Contains(t, out, "Summary: Critical: 1, Info: 1, Unrated: 1")
	assert.NotContains(t, out, "\x1b[")
}

func TestRender_TextNoFindings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, New("clean.sh", 4, nil), FormatText, Options{}))
	assert.Contains(t, buf.String(), "No issues found.")
	assert.NotContains(t, buf.String(), "Summary:")
}

func TestRender_TextExplainError(t *testing.T) {
	r := sampleReport()
	r.ExplainError = "connection refused"

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, FormatText, Options{}))
	assert.Contains(t, buf.String(), "AI explanation unavailable: connection refused")
}

func TestRender_Markdown(t *testing.T) {
	r := sampleReport()
	r.Findings[2].Code = "cat /tmp/a | wc -l"
	r.Explanation = "Quote your variables."

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, FormatMarkdown, Options{}))

	out := buf.String()
	assert.Contains(t, out, "# shellguard report: `./scripts/deploy.sh`")
	assert.Contains(t, out, "| Critical | unsanitized_input | 1 | `read name` |")
	assert.Contains(t, out, `cat /tmp/a \| wc -l`)
	assert.Contains(t, out, "## AI explanation")
}

func TestRender_SARIF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), FormatSARIF, Options{ToolVersion: "1.2.3"}))

	var log sarifLog
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))
	assert.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)

	run := log.Runs[0]
	assert.Equal(t, "shellguard", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	assert.Len(t, run.Tool.Driver.Rules, 3)
	require.Len(t, run.Results, 3)

	first := run.Results[0]
	assert.Equal(t, "unsanitized_input", first.RuleID)
	assert.Equal(t, "error", first.Level)
	loc := first.Locations[0].PhysicalLocation
	assert.Equal(t, "scripts/deploy.sh", loc.ArtifactLocation.URI)
	assert.Equal(t, 1, loc.Region.StartLine)

	assert.Equal(t, "note", run.Results[1].Level)
	assert.Equal(t, "note", run.Results[2].Level)
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, sampleReport(), Format("html"), Options{}))
}
