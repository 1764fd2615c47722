package main

import (
	"fmt"
	"os"

	"github.com/Lin-Jiong-HDU/shellguard/internal/ai"
	"github.com/Lin-Jiong-HDU/shellguard/internal/core"
	"github.com/Lin-Jiong-HDU/shellguard/internal/core/security"
	"github.com/Lin-Jiong-HDU/shellguard/internal/core/tui"
	"github.com/Lin-Jiong-HDU/shellguard/internal/logging"
	"github.com/Lin-Jiong-HDU/shellguard/internal/report"
	"github.com/Lin-Jiong-HDU/shellguard/internal/storage"
	"github.com/Lin-Jiong-HDU/shellguard/internal/terminal"
	"github.com/spf13/cobra"
)

var (
	analyzeGPT         bool
	analyzeFormat      string
	analyzeMinSeverity string
	analyzeDisable     []string
	analyzeFailOn      string
	analyzeSave        bool
	analyzeInteractive bool
)

func getAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze SCRIPT",
		Short: "Scan a shell script for risky patterns",
		Long: `Scan a shell script with the heuristic detectors and print the findings.

With --gpt the script and its findings are also sent to the configured AI
provider for an explanation.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().BoolVar(&analyzeGPT, "gpt", false, "ask the AI provider to explain the findings")
	cmd.Flags().StringVarP(&analyzeFormat, "format", "f", "", "output format: text, json, yaml, sarif, markdown")
	cmd.Flags().StringVar(&analyzeMinSeverity, "min-severity", "", "hide findings below this severity")
	cmd.Flags().StringSliceVar(&analyzeDisable, "disable", nil, "finding kinds to suppress (repeatable)")
	cmd.Flags().StringVar(&analyzeFailOn, "fail-on", "", "exit non-zero when a finding reaches this severity")
	cmd.Flags().BoolVarP(&analyzeSave, "save", "s", false, "save the report to history")
	cmd.Flags().BoolVarP(&analyzeInteractive, "interactive", "i", false, "browse findings interactively")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := storage.GetConfig()

	policy, err := analyzePolicy(cmd, cfg.Security)
	if err != nil {
		return err
	}

	formatName := cfg.Report.Format
	if analyzeFormat != "" {
		formatName = analyzeFormat
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	var failOn security.Severity
	if analyzeFailOn != "" {
		if failOn, err = security.ParseSeverity(analyzeFailOn); err != nil {
			return fmt.Errorf("invalid --fail-on: %w", err)
		}
	}

	var provider ai.AIProvider
	if analyzeGPT {
		if provider, err = newAIProvider(cfg); err != nil {
			logging.Logger.Warnw("AI explanation unavailable", "error", err)
		}
	}

	engine := core.NewEngine(provider, nil, policy)
	r, err := engine.Analyze(cmd.Context(), args[0], core.AnalyzeOptions{Explain: analyzeGPT})
	if err != nil {
		return err
	}
	logging.Logger.Infow("analysis complete", "script", r.Script, "findings", len(r.Findings))

	if analyzeSave || cfg.Report.SaveHistory {
		path, err := storage.SaveReport(r)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report %s saved to %s\n", r.ID, path)
	}

	if analyzeInteractive {
		if !terminal.IsInteractive() {
			return fmt.Errorf("--interactive requires a terminal")
		}
		if err := tui.Run(r); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
	} else {
		opts := report.Options{
			RenderMarkdown: cfg.Report.RenderMarkdown && terminal.IsTerminal(os.Stdout),
			Width:          terminal.Width(os.Stdout),
			ToolVersion:    version,
		}
		if err := report.Render(cmd.OutOrStdout(), r, format, opts); err != nil {
			return err
		}
	}

	if analyzeFailOn != "" && r.HasAtLeast(failOn) {
		return fmt.Errorf("%w: %s", ErrFindingsAboveThreshold, failOn)
	}
	return nil
}

// analyzePolicy applies command line overrides on top of the configured policy.
func analyzePolicy(cmd *cobra.Command, base security.Policy) (*security.Policy, error) {
	policy := base
	policy.DisabledKinds = append([]security.Kind(nil), base.DisabledKinds...)

	if cmd.Flags().Changed("min-severity") {
		sev, err := security.ParseSeverity(analyzeMinSeverity)
		if err != nil {
			return nil, fmt.Errorf("invalid --min-severity: %w", err)
		}
		policy.MinSeverity = sev
	}

	for _, name := range analyzeDisable {
		kind := security.Kind(name)
		if !security.IsKnownKind(kind) {
			return nil, fmt.Errorf("invalid --disable: unknown kind %q", name)
		}
		policy.DisabledKinds = append(policy.DisabledKinds, kind)
	}
	return &policy, nil
}
