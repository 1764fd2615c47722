package terminal

import (
	"os"
	"strings"
	"testing"

	"github.com/Lin-Jiong-HDU/shellguard/internal/core/security"
)

func dangerousCheck() *security.CheckResult {
	return &security.CheckResult{
		Allowed:      true,
		RequiresAuth: true,
		Warning:      "Dangerous command",
		Reason:       "Command is in the dangerous list",
		Findings: []security.Finding{
			{Severity: security.SeverityCritical, Kind: security.KindDangerousCommand, LineNumber: 1, Description: "Dangerous command usage detected: rm -rf"},
			{Severity: security.SeverityInfo, Kind: security.KindUnsafeVariableExpansion, LineNumber: 1, Description: "Unquoted variable expansion detected"},
		},
	}
}

func TestConfirm_YesInput(t *testing.T) {
	input := strings.NewReader("y\n")
	output := &strings.Builder{}

	cmd := security.Command{Cmd: "rm", Args: []string{"-rf", "/tmp/test"}}

	result, err := ConfirmWithIO(cmd, dangerousCheck(), input, output)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !result {
		t.Error("Expected confirmation to succeed")
	}

	outputStr := output.String()
	if !strings.Contains(outputStr, "requires your confirmation") {
		t.Error("Expected confirmation prompt in output")
	}
	if !strings.Contains(outputStr, "Command: rm -rf /tmp/test") {
		t.Error("Expected command in output")
	}
	if !strings.Contains(outputStr, "[Critical][dangerous_command]") {
		t.Error("Expected critical finding in output")
	}
	if strings.Contains(outputStr, "unsafe_variable_expansion") {
		t.Error("Expected low severity findings to be omitted")
	}
}

func TestConfirm_NoInput(t *testing.T) {
	input := strings.NewReader("n\n")
	output := &strings.Builder{}

	cmd := security.Command{Cmd: "rm", Args: []string{"-rf", "/tmp/test"}}

	result, err := ConfirmWithIO(cmd, dangerousCheck(), input, output)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result {
		t.Error("Expected confirmation to be declined")
	}
}

func TestConfirm_InvalidThenYes(t *testing.T) {
	input := strings.NewReader("maybe\nY\n")
	output := &strings.Builder{}

	result, err := ConfirmWithIO(security.Command{Cmd: "reboot"}, &security.CheckResult{}, input, output)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !result {
		t.Error("Expected confirmation after retry")
	}
	if !strings.Contains(output.String(), "Invalid choice") {
		t.Error("Expected invalid choice message")
	}
}

func TestConfirm_EOF(t *testing.T) {
	result, err := ConfirmWithIO(security.Command{Cmd: "reboot"}, &security.CheckResult{}, strings.NewReader(""), &strings.Builder{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result {
		t.Error("Expected EOF to decline")
	}
}

func TestIsInteractive_CI(t *testing.T) {
	t.Setenv("CI", "true")
	if IsInteractive() {
		t.Error("Expected non-interactive under CI")
	}
}

func TestWidth_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "width")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer f.Close()

	if IsTerminal(f) {
		t.Error("Expected regular file not to be a terminal")
	}
	if w := Width(f); w != 80 {
		t.Errorf("Expected default width 80, got %d", w)
	}
}
