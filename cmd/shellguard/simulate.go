package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Lin-Jiong-HDU/shellguard/internal/core/simulation"
	"github.com/spf13/cobra"
)

var (
	simulateSeed     int64
	simulateScenario string
)

func getSimulateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Launch a disaster simulation for recovery practice",
		Args:  cobra.NoArgs,
		RunE:  runSimulate,
	}

	cmd.Flags().Int64Var(&simulateSeed, "seed", 0, "random seed for a reproducible scenario")
	cmd.Flags().StringVar(&simulateScenario, "scenario", "", "run a named scenario: disk_full, network_outage, service_crash")

	return cmd
}

func runSimulate(cmd *cobra.Command, args []string) error {
	var scenario simulation.Scenario
	if simulateScenario != "" {
		s, err := simulation.Lookup(simulateScenario)
		if err != nil {
			return err
		}
		scenario = s
	} else {
		seed := time.Now().UnixNano()
		if cmd.Flags().Changed("seed") {
			seed = simulateSeed
		}
		scenario = simulation.Pick(rand.New(rand.NewSource(seed)))
	}

	fmt.Fprintln(cmd.OutOrStdout(), scenario)
	return nil
}
