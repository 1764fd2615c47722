package security

import "fmt"

// CheckResult represents the result of a command check.
type CheckResult struct {
	Allowed      bool
	RequiresAuth bool
	Warning      string
	Reason       string
	Findings     []Finding
}

// Guard coordinates the checks run before a command is executed.
type Guard struct {
	policy        *Policy
	dangerChecker *DangerousCommandChecker
	scanner       *Scanner
}

// NewGuard creates a new guard.
func NewGuard(policy *Policy) *Guard {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Guard{
		policy:        policy,
		dangerChecker: NewDangerousCommandChecker(),
		scanner:       NewScanner(),
	}
}

// CheckCommand performs the dangerous command check and scans the command
// line as a one-line script.
func (g *Guard) CheckCommand(cmd Command) *CheckResult {
	if cmd.Cmd == "" {
		return &CheckResult{Allowed: false, Reason: "empty command"}
	}

	result := &CheckResult{
		Allowed:  true,
		Findings: g.scanner.Scan([]string{cmd.String()}),
	}

	dangerous := g.dangerChecker.IsDangerous(cmd)
	if dangerous {
		result.Warning = fmt.Sprintf("Dangerous command: %s", cmd)
		result.Reason = "Command is in the dangerous list"
	}
	for _, f := range result.Findings {
		if f.Severity == SeverityCritical {
			dangerous = true
			if result.Warning == "" {
				result.Warning = fmt.Sprintf("Critical finding: %s", f.Description)
				result.Reason = string(f.Kind)
			}
			break
		}
	}

	switch g.policy.CommandLevel {
	case ConfirmAlways:
		result.RequiresAuth = true
	case ConfirmNever:
		result.RequiresAuth = false
	default:
		result.RequiresAuth = dangerous
	}

	return result
}
