package main

import (
	"fmt"
	"os"

	"github.com/Lin-Jiong-HDU/shellguard/internal/core"
	"github.com/Lin-Jiong-HDU/shellguard/internal/storage"
	"github.com/spf13/cobra"
)

var fixOutput string

func getFixCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix SCRIPT",
		Short: "Ask the AI provider for a hardened version of a script",
		Args:  cobra.ExactArgs(1),
		RunE:  runFix,
	}

	cmd.Flags().StringVarP(&fixOutput, "output", "o", "", "write the improved script to this file")

	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	provider, err := newAIProvider(storage.GetConfig())
	if err != nil {
		return err
	}

	engine := core.NewEngine(provider, nil, nil)
	fixed, err := engine.ProposeFix(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if fixOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), fixed)
		return nil
	}

	if err := os.WriteFile(fixOutput, []byte(fixed+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", fixOutput, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Improved script written to %s\n", fixOutput)
	return nil
}
