package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lin-Jiong-HDU/shellguard/internal/ai"
	"github.com/Lin-Jiong-HDU/shellguard/internal/core/security"
	"github.com/Lin-Jiong-HDU/shellguard/internal/logging"
	"github.com/Lin-Jiong-HDU/shellguard/internal/report"
	"github.com/Lin-Jiong-HDU/shellguard/internal/storage"
)

var (
	// ErrNoProvider is returned by AI features when no provider is configured.
	ErrNoProvider = errors.New("no AI provider configured")
	// ErrCommandBlocked is returned when the guard refuses a command outright.
	ErrCommandBlocked = errors.New("command blocked")
	// ErrNotConfirmed is returned when a command needing confirmation was declined.
	ErrNotConfirmed = errors.New("command not confirmed")
)

// AnalyzeOptions controls optional analysis steps.
type AnalyzeOptions struct {
	// Explain asks the AI provider for a review of the script and findings.
	Explain bool
}

// ConfirmFunc asks the user to approve a command flagged by the guard.
type ConfirmFunc func(cmd security.Command, check *security.CheckResult) bool

// Engine ties the scanner, the policy, the AI provider and the executor together
type Engine struct {
	ai       ai.AIProvider
	executor *Executor
	scanner  *security.Scanner
	policy   *security.Policy
	guard    *security.Guard
}

// NewEngine creates a new engine. aiProvider may be nil when AI features
// are not used.
func NewEngine(aiProvider ai.AIProvider, executor *Executor, policy *security.Policy) *Engine {
	if policy == nil {
		policy = security.DefaultPolicy()
	}
	return &Engine{
		ai:       aiProvider,
		executor: executor,
		scanner:  security.NewScanner(),
		policy:   policy,
		guard:    security.NewGuard(policy),
	}
}

// Analyze loads the script at path, scans it and applies the policy.
func (e *Engine) Analyze(ctx context.Context, path string, opts AnalyzeOptions) (*report.Report, error) {
	lines, err := storage.LoadScript(path)
	if err != nil {
		return nil, err
	}
	return e.AnalyzeLines(ctx, path, lines, opts), nil
}

// AnalyzeLines scans already loaded lines. An explanation failure is
// recorded on the report, never returned.
func (e *Engine) AnalyzeLines(ctx context.Context, name string, lines []string, opts AnalyzeOptions) *report.Report {
	all := e.scanner.Scan(lines)
	findings := e.policy.Filter(all)
	logging.Logger.Debugw("scan complete", "script", name, "lines", len(lines),
		"findings", len(all), "reported", len(findings))

	r := report.New(name, len(lines), findings)

	if opts.Explain {
		explanation, err := e.explain(ctx, lines, findings)
		if err != nil {
			logging.Logger.Warnw("AI explanation failed", "script", name, "error", err)
			r.ExplainError = err.Error()
		} else {
			r.Explanation = explanation
		}
	}
	return r
}

func (e *Engine) explain(ctx context.Context, lines []string, findings []security.Finding) (string, error) {
	if e.ai == nil {
		return "", ErrNoProvider
	}
	resp, err := e.ai.Chat(ctx, []ai.Message{
		{Role: "user", Content: buildExplainPrompt(lines, findings)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to get explanation: %w", err)
	}
	if resp == "" {
		return "", fmt.Errorf("empty response from AI provider")
	}
	return resp, nil
}

// ProposeFix asks the AI provider for an improved version of the script.
func (e *Engine) ProposeFix(ctx context.Context, path string) (string, error) {
	if e.ai == nil {
		return "", ErrNoProvider
	}

	lines, err := storage.LoadScript(path)
	if err != nil {
		return "", err
	}

	logging.Logger.Debugw("requesting fix", "script", path, "lines", len(lines))
	resp, err := e.ai.Chat(ctx, []ai.Message{
		{Role: "user", Content: buildFixPrompt(lines)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to propose fix: %w", err)
	}

	fixed := stripCodeFence(resp)
	if fixed == "" {
		return "", fmt.Errorf("empty response from AI provider")
	}
	return fixed, nil
}

// CheckCommand runs the guard on cmd without executing it.
func (e *Engine) CheckCommand(cmd security.Command) *security.CheckResult {
	return e.guard.CheckCommand(cmd)
}

// Execute runs cmd after the guard approves it. confirm is consulted when
// the policy requires confirmation; a nil confirm declines.
func (e *Engine) Execute(ctx context.Context, cmd security.Command, confirm ConfirmFunc) (*Result, error) {
	if e.executor == nil {
		return nil, fmt.Errorf("no executor configured")
	}
	if err := e.approve(cmd, confirm); err != nil {
		return nil, err
	}

	return e.executor.Execute(ctx, cmd)
}

// ExecuteBatch approves every command before running any of them, then
// runs them in order until one fails.
func (e *Engine) ExecuteBatch(ctx context.Context, cmds []security.Command, confirm ConfirmFunc) ([]*Result, error) {
	if e.executor == nil {
		return nil, fmt.Errorf("no executor configured")
	}
	for _, cmd := range cmds {
		if err := e.approve(cmd, confirm); err != nil {
			return nil, err
		}
	}

	return e.executor.ExecuteBatch(ctx, cmds)
}

func (e *Engine) approve(cmd security.Command, confirm ConfirmFunc) error {
	check := e.guard.CheckCommand(cmd)
	if !check.Allowed {
		return fmt.Errorf("%w: %s", ErrCommandBlocked, check.Reason)
	}
	if check.RequiresAuth {
		logging.Logger.Infow("command requires confirmation", "cmd", cmd.String(), "reason", check.Reason)
		if confirm == nil || !confirm(cmd, check) {
			return fmt.Errorf("%w: %s", ErrNotConfirmed, cmd)
		}
	}
	return nil
}
