// Package stability inspects the host and suggests stabilization actions.
package stability

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
)

const (
	NetworkUp   = "up"
	NetworkDown = "down"

	diskUsageLimit = 90.0
	memoryFreeMin  = 10.0
)

const (
	IssueDiskUsage = "High disk usage detected. Consider cleaning up unnecessary files."
	IssueMemory    = "Low available memory. Investigate memory leaks or heavy processes."
	IssueNetwork   = "Network connectivity lost. Check cables, services, or firewall settings."

	NoIssues      = "No immediate stabilization actions required."
	NoSuggestions = "No actions to suggest."
)

// SystemState is a snapshot of the metrics stabilization looks at.
type SystemState struct {
	DiskUsage     float64 `json:"disk_usage"`  // used percent of the root filesystem
	MemoryFree    float64 `json:"memory_free"` // available percent of memory
	NetworkStatus string  `json:"network_status"`
}

// Collector reads a SystemState from the host.
type Collector struct {
	// DiskPath is the mount point whose usage is reported.
	DiskPath string
}

// NewCollector creates a collector for the root filesystem.
func NewCollector() *Collector {
	return &Collector{DiskPath: "/"}
}

// Collect gathers disk, memory and network state.
func (c *Collector) Collect(ctx context.Context) (*SystemState, error) {
	usage, err := disk.UsageWithContext(ctx, c.DiskPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read disk usage: %w", err)
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read memory: %w", err)
	}

	ifaces, err := net.InterfacesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read network interfaces: %w", err)
	}

	state := &SystemState{
		DiskUsage:     usage.UsedPercent,
		NetworkStatus: NetworkDown,
	}
	if vm.Total > 0 {
		state.MemoryFree = float64(vm.Available) / float64(vm.Total) * 100
	}
	for _, iface := range ifaces {
		if slices.Contains(iface.Flags, "up") && !slices.Contains(iface.Flags, "loopback") {
			state.NetworkStatus = NetworkUp
			break
		}
	}
	return state, nil
}

// DetectIssues lists the problems visible in state.
func DetectIssues(state SystemState) []string {
	var issues []string
	if state.DiskUsage > diskUsageLimit {
		issues = append(issues, IssueDiskUsage)
	}
	if state.MemoryFree < memoryFreeMin {
		issues = append(issues, IssueMemory)
	}
	if state.NetworkStatus == NetworkDown {
		issues = append(issues, IssueNetwork)
	}
	return issues
}

// SuggestActions proposes one action per recognized issue.
func SuggestActions(issues []string) []string {
	var suggestions []string
	for _, issue := range issues {
		switch {
		case strings.Contains(issue, "disk usage"):
			suggestions = append(suggestions, "Run cleanup scripts or move large files to external storage.")
		case strings.Contains(issue, "memory"):
			suggestions = append(suggestions, "Restart memory-intensive services or reboot the server.")
		case strings.Contains(issue, "Network"):
			suggestions = append(suggestions, "Restart network services or check router/firewall configurations.")
		}
	}
	return suggestions
}
