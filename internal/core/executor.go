package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/Lin-Jiong-HDU/shellguard/internal/core/security"
	"github.com/Lin-Jiong-HDU/shellguard/internal/logging"
)

// Executor runs guarded commands with a per-command timeout
type Executor struct {
	timeout time.Duration
}

// NewExecutor creates a new executor
func NewExecutor(timeout time.Duration) *Executor {
	return &Executor{
		timeout: timeout,
	}
}

// Result is the outcome of one command. ExitCode is -1 when the process
// never produced an exit status (not found, killed by timeout).
type Result struct {
	Command  security.Command
	Output   string
	ExitCode int
	Duration time.Duration
	TimedOut bool
	Error    error
}

// Failed reports whether the command did not exit cleanly.
func (r *Result) Failed() bool {
	return r.Error != nil
}

// Execute runs a command. Command failures are reported on the Result;
// the error return is for commands that cannot be attempted at all.
func (e *Executor) Execute(ctx context.Context, cmd security.Command) (*Result, error) {
	if cmd.Cmd == "" {
		return nil, fmt.Errorf("empty command")
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	logging.Logger.Debugw("executing command", "cmd", cmd.Cmd, "args", cmd.Args, "timeout", e.timeout)

	execCmd := exec.CommandContext(ctx, cmd.Cmd, cmd.Args...)
	var output bytes.Buffer
	execCmd.Stdout = &output
	execCmd.Stderr = &output

	start := time.Now()
	err := execCmd.Run()

	result := &Result{
		Command:  cmd,
		Output:   strings.TrimSpace(output.String()),
		Duration: time.Since(start),
	}
	if err == nil {
		return result, nil
	}

	result.Error = err
	result.ExitCode = -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		result.ExitCode = exitErr.ExitCode()
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.Error = fmt.Errorf("timed out after %s: %w", e.timeout, err)
	}
	logging.Logger.Debugw("command failed", "cmd", cmd.Cmd, "exit_code", result.ExitCode,
		"timed_out", result.TimedOut, "error", err)

	return result, nil
}

// ExecuteBatch runs commands in order and stops after the first failure.
// The returned slice holds a result for every command that was started.
func (e *Executor) ExecuteBatch(ctx context.Context, commands []security.Command) ([]*Result, error) {
	results := make([]*Result, 0, len(commands))

	for i, cmd := range commands {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := e.Execute(ctx, cmd)
		if err != nil {
			return results, fmt.Errorf("command %d: %w", i+1, err)
		}
		results = append(results, result)
		if result.Failed() {
			break
		}
	}

	return results, nil
}
