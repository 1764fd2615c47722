package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Lin-Jiong-HDU/shellguard/internal/report"
	"github.com/Lin-Jiong-HDU/shellguard/internal/storage"
	"github.com/Lin-Jiong-HDU/shellguard/internal/terminal"
	"github.com/spf13/cobra"
)

var (
	historyShowID string
	historyFormat string
)

func getHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or show saved reports",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}

	cmd.Flags().StringVar(&historyShowID, "show", "", "show the report with this ID")
	cmd.Flags().StringVarP(&historyFormat, "format", "f", "text", "output format for --show")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyShowID != "" {
		return runShowReport(cmd, historyShowID)
	}

	reports, err := storage.ListReports()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(reports) == 0 {
		fmt.Fprintln(out, "No saved reports")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCANNED\tFINDINGS\tSCRIPT")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.ID, r.ScannedAt.Format("2006-01-02 15:04"), len(r.Findings), r.Script)
	}
	return w.Flush()
}

func runShowReport(cmd *cobra.Command, id string) error {
	r, err := storage.LoadReport(id)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(historyFormat)
	if err != nil {
		return err
	}

	cfg := storage.GetConfig()
	return report.Render(cmd.OutOrStdout(), r, format, report.Options{
		RenderMarkdown: cfg.Report.RenderMarkdown && terminal.IsTerminal(os.Stdout),
		Width:          terminal.Width(os.Stdout),
		ToolVersion:    version,
	})
}
