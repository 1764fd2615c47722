// Package simulation provides disaster scenarios for recovery practice.
package simulation

import (
	"fmt"
	"math/rand"
)

// Scenario is one simulated incident.
type Scenario struct {
	Name     string `json:"name"`
	Summary  string `json:"summary"`
	Symptoms string `json:"symptoms"`
	Recovery string `json:"recovery"`
}

func (s Scenario) String() string {
	return fmt.Sprintf("Simulation: %s\nSymptoms: %s\nRecovery Hint: %s", s.Summary, s.Symptoms, s.Recovery)
}

// Scenarios returns the scenario catalogue.
func Scenarios() []Scenario {
	return []Scenario{
		{
			Name:     "disk_full",
			Summary:  "Disk usage has reached 98%.",
			Symptoms: "System slowdowns, inability to write new files.",
			Recovery: "Identify large files, clean temporary files, move old logs off the system.",
		},
		{
			Name:     "network_outage",
			Summary:  "Network connectivity lost.",
			Symptoms: "Unable to ping external hosts or resolve DNS.",
			Recovery: "Restart networking service, check interfaces, inspect firewall rules.",
		},
		{
			Name:     "service_crash",
			Summary:  "Critical service (e.g., web server) has crashed.",
			Symptoms: "502/503 errors, service unavailable warnings.",
			Recovery: "Restart the service, check logs for crash reasons, verify config files.",
		},
	}
}

// Pick chooses a scenario using rng.
func Pick(rng *rand.Rand) Scenario {
	all := Scenarios()
	return all[rng.Intn(len(all))]
}

// Lookup finds a scenario by name.
func Lookup(name string) (Scenario, error) {
	for _, s := range Scenarios() {
		if s.Name == name {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("unknown scenario: %q", name)
}
