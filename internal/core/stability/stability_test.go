package stability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectIssues(t *testing.T) {
	tests := []struct {
		name  string
		state SystemState
		want  []string
	}{
		{"healthy", SystemState{DiskUsage: 40, MemoryFree: 60, NetworkStatus: NetworkUp}, nil},
		{"boundaries are healthy", SystemState{DiskUsage: 90, MemoryFree: 10, NetworkStatus: NetworkUp}, nil},
		{"disk", SystemState{DiskUsage: 95, MemoryFree: 60, NetworkStatus: NetworkUp}, []string{IssueDiskUsage}},
		{"everything", SystemState{DiskUsage: 99, MemoryFree: 2, NetworkStatus: NetworkDown},
			[]string{IssueDiskUsage, IssueMemory, IssueNetwork}},
		{"unknown network status is not down", SystemState{MemoryFree: 50, NetworkStatus: "unknown"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectIssues(tt.state))
		})
	}
}

func TestSuggestActions(t *testing.T) {
	suggestions := SuggestActions([]string{IssueDiskUsage, IssueMemory, IssueNetwork, "something else"})
	assert.Equal(t, []string{
		"Run cleanup scripts or move large files to external storage.",
		"Restart memory-intensive services or reboot the server.",
		"Restart network services or check router/firewall configurations.",
	}, suggestions)

	assert.Empty(t, SuggestActions(nil))
}

func TestCollector_Collect(t *testing.T) {
	state, err := NewCollector().Collect(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, state.DiskUsage, 0.0)
	assert.LessOrEqual(t, state.DiskUsage, 100.0)
	assert.GreaterOrEqual(t, state.MemoryFree, 0.0)
	assert.LessOrEqual(t, state.MemoryFree, 100.0)
	assert.Contains(t, []string{NetworkUp, NetworkDown}, state.NetworkStatus)
}

func TestCollector_BadDiskPath(t *testing.T) {
	c := &Collector{DiskPath: "/definitely/not/a/mount/point"}
	_, err := c.Collect(context.Background())
	assert.Error(t, err)
}
