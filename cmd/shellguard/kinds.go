package main

import (
	"fmt"

	"github.com/Lin-Jiong-HDU/shellguard/internal/core/security"
	"github.com/spf13/cobra"
)

func getKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the finding kinds the scanner can report",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, k := range security.Kinds() {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
		},
	}
}
