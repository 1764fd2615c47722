package main

import (
	"encoding/json"
	"fmt"

	"github.com/Lin-Jiong-HDU/shellguard/internal/core/stability"
	"github.com/spf13/cobra"
)

var stabilizeJSON bool

func getStabilizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stabilize",
		Short: "Check disk, memory and network and suggest actions",
		Args:  cobra.NoArgs,
		RunE:  runStabilize,
	}

	cmd.Flags().BoolVar(&stabilizeJSON, "json", false, "print the result as JSON")

	return cmd
}

type stabilizeResult struct {
	State       *stability.SystemState `json:"state"`
	Issues      []string               `json:"issues"`
	Suggestions []string               `json:"suggestions"`
}

func runStabilize(cmd *cobra.Command, args []string) error {
	state, err := stability.NewCollector().Collect(cmd.Context())
	if err != nil {
		return err
	}

	issues := stability.DetectIssues(*state)
	result := stabilizeResult{
		State:       state,
		Issues:      issues,
		Suggestions: stability.SuggestActions(issues),
	}
	return printStabilize(cmd, result)
}

func printStabilize(cmd *cobra.Command, result stabilizeResult) error {
	out := cmd.OutOrStdout()

	if stabilizeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(out, "Disk usage:  %.1f%%\n", result.State.DiskUsage)
	fmt.Fprintf(out, "Memory free: %.1f%%\n", result.State.MemoryFree)
	fmt.Fprintf(out, "Network:     %s\n\n", result.State.NetworkStatus)

	if len(result.Issues) == 0 {
		fmt.Fprintln(out, stability.NoIssues)
		return nil
	}

	fmt.Fprintln(out, "Issues:")
	for _, issue := range result.Issues {
		fmt.Fprintf(out, "  - %s\n", issue)
	}

	fmt.Fprintln(out, "\nSuggested actions:")
	if len(result.Suggestions) == 0 {
		fmt.Fprintf(out, "  %s\n", stability.NoSuggestions)
	}
	for _, s := range result.Suggestions {
		fmt.Fprintf(out, "  - %s\n", s)
	}
	return nil
}
