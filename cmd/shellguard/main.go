package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/Lin-Jiong-HDU/shellguard/internal/logging"
	"github.com/Lin-Jiong-HDU/shellguard/internal/storage"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// ErrFindingsAboveThreshold is returned by analyze --fail-on.
var ErrFindingsAboveThreshold = errors.New("findings at or above threshold")

var debug bool

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "shellguard",
		Short:         "Heuristic shell script scanner",
		Long:          "shellguard - scans shell scripts for risky patterns and optionally asks an AI model to explain or fix them",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.Init(debug); err != nil {
				return err
			}
			_, err := storage.InitConfig()
			return err
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		getAnalyzeCommand(),
		getFixCommand(),
		getExecuteCommand(),
		getStabilizeCommand(),
		getSimulateCommand(),
		getHistoryCommand(),
		getKindsCommand(),
	)
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	logging.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
