package main

import (
	"fmt"
	"time"

	"github.com/Lin-Jiong-HDU/shellguard/internal/core"
	"github.com/Lin-Jiong-HDU/shellguard/internal/core/security"
	"github.com/Lin-Jiong-HDU/shellguard/internal/logging"
	"github.com/Lin-Jiong-HDU/shellguard/internal/storage"
	"github.com/Lin-Jiong-HDU/shellguard/internal/terminal"
	"github.com/spf13/cobra"
)

var (
	executeYes     bool
	executeTimeout time.Duration
)

func getExecuteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execute -- CMD [ARGS...] [-- CMD [ARGS...]]...",
		Short: "Run commands after a safety check",
		Long: `Check commands with the dangerous command list and the script detectors,
ask for confirmation when the security policy requires it, then run them.

Several commands can be given separated by "--". All of them are checked
before the first one runs, and execution stops at the first failure.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExecute,
	}

	cmd.Flags().BoolVarP(&executeYes, "yes", "y", false, "confirm without prompting")
	cmd.Flags().DurationVar(&executeTimeout, "timeout", 30*time.Second, "command timeout")

	return cmd
}

func runExecute(cmd *cobra.Command, args []string) error {
	cfg := storage.GetConfig()
	engine := core.NewEngine(nil, core.NewExecutor(executeTimeout), &cfg.Security)

	commands, err := splitCommands(args)
	if err != nil {
		return err
	}

	confirm := func(c security.Command, check *security.CheckResult) bool {
		if executeYes {
			return true
		}
		if !terminal.IsInteractive() {
			logging.Logger.Warnw("confirmation required but no terminal", "cmd", c.String())
			return false
		}
		ok, err := terminal.Confirm(c, check)
		if err != nil {
			logging.Logger.Warnw("failed to read confirmation", "error", err)
			return false
		}
		return ok
	}

	results, err := engine.ExecuteBatch(cmd.Context(), commands, confirm)
	if err != nil {
		return err
	}

	for _, result := range results {
		if result.Output != "" {
			fmt.Fprintln(cmd.OutOrStdout(), result.Output)
		}
		if result.Failed() {
			return fmt.Errorf("%s failed (exit code %d): %w", result.Command, result.ExitCode, result.Error)
		}
	}
	return nil
}

// splitCommands turns "a x -- b y" into two commands. Empty segments are
// rejected so a stray separator is not silently ignored.
func splitCommands(args []string) ([]security.Command, error) {
	var commands []security.Command
	start := 0
	for i := 0; i <= len(args); i++ {
		if i < len(args) && args[i] != "--" {
			continue
		}
		if i == start {
			return nil, fmt.Errorf("empty command at position %d", len(commands)+1)
		}
		commands = append(commands, security.Command{Cmd: args[start], Args: args[start+1 : i]})
		start = i + 1
	}
	return commands, nil
}
