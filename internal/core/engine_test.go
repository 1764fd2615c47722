package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Lin-Jiong-HDU/shellguard/internal/ai"
	"github.com/Lin-Jiong-HDU/shellguard/internal/core/security"
	"github.com/Lin-Jiong-HDU/shellguard/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAIProvider records prompts and returns a canned response.
type mockAIProvider struct {
	response string
	err      error
	prompts  []string
}

func (m *mockAIProvider) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	for _, msg := range messages {
		m.prompts = append(m.prompts, msg.Content)
	}
	return m.response, m.err
}

func (m *mockAIProvider) ChatStream(ctx context.Context, messages []ai.Message) (<-chan string, error) {
	ch := make(chan string, 1)
	ch <- m.response
	close(ch)
	return ch, m.err
}

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.sh")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const riskyScript = "#!/bin/bash\nread name\necho $name\nrm -rf /var/cache/app\n"

func TestEngine_Analyze(t *testing.T) {
	engine := NewEngine(nil, nil, nil)
	path := writeScript(t, riskyScript)

	r, err := engine.Analyze(context.Background(), path, AnalyzeOptions{})
	require.NoError(t, err)

	assert.Equal(t, path, r.Script)
	assert.Equal(t, 4, r.LineCount)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, security.Scan(storage.SplitLines(riskyScript)), r.Findings)
	assert.Empty(t, r.Explanation)
	assert.Empty(t, r.ExplainError)
}

func TestEngine_Analyze_NotFound(t *testing.T) {
	engine := NewEngine(nil, nil, nil)

	_, err := engine.Analyze(context.Background(), filepath.Join(t.TempDir(), "nope.sh"), AnalyzeOptions{})
	assert.ErrorIs(t, err, storage.ErrScriptNotFound)
}

func TestEngine_Analyze_AppliesPolicy(t *testing.T) {
	policy := security.DefaultPolicy()
	policy.MinSeverity = security.SeverityCritical
	policy.DisabledKinds = []security.Kind{security.KindDangerousCommand}
	engine := NewEngine(nil, nil, policy)

	r, err := engine.Analyze(context.Background(), writeScript(t, riskyScript), AnalyzeOptions{})
	require.NoError(t, err)

	require.Len(t, r.Findings, 1)
	assert.Equal(t, security.KindUnsanitizedInput, r.Findings[0].Kind)
}

func TestEngine_Analyze_Explain(t *testing.T) {
	mock := &mockAIProvider{response: "The script reads input without -r."}
	engine := NewEngine(mock, nil, nil)

	r, err := engine.Analyze(context.Background(), writeScript(t, riskyScript), AnalyzeOptions{Explain: true})
	require.NoError(t, err)

	assert.Equal(t, "The script reads input without -r.", r.Explanation)
	require.Len(t, mock.prompts, 1)
	assert.Contains(t, mock.prompts[0], "You are a Linux sysadmin AI.")
	assert.Contains(t, mock.prompts[0], "unsanitized_input at line 2")
	assert.Contains(t, mock.prompts[0], "rm -rf /var/cache/app")
}

func TestEngine_Analyze_ExplainFailureIsNotFatal(t *testing.T) {
	mock := &mockAIProvider{err: errors.New("API error (status 500): boom")}
	engine := NewEngine(mock, nil, nil)

	r, err := engine.Analyze(context.Background(), writeScript(t, riskyScript), AnalyzeOptions{Explain: true})
	require.NoError(t, err)

	assert.Empty(t, r.Explanation)
	assert.Contains(t, r.ExplainError, "status 500")
	assert.NotEmpty(t, r.Findings)
}

func TestEngine_Analyze_ExplainWithoutProvider(t *testing.T) {
	engine := NewEngine(nil, nil, nil)

	r, err := engine.Analyze(context.Background(), writeScript(t, riskyScript), AnalyzeOptions{Explain: true})
	require.NoError(t, err)
	assert.Equal(t, ErrNoProvider.Error(), r.ExplainError)
}

func TestEngine_ProposeFix(t *testing.T) {
	mock := &mockAIProvider{response: "```bash\n#!/bin/bash\nread -r name\n```"}
	engine := NewEngine(mock, nil, nil)

	fixed, err := engine.ProposeFix(context.Background(), writeScript(t, riskyScript))
	require.NoError(t, err)

	assert.Equal(t, "#!/bin/bash\nread -r name", fixed)
	require.Len(t, mock.prompts, 1)
	assert.True(t, strings.HasPrefix(mock.prompts[0], "You are a Linux system automation AI."))
	assert.Contains(t, mock.prompts[0], "Return only the improved version")
}

func TestEngine_ProposeFix_NoProvider(t *testing.T) {
	engine := NewEngine(nil, nil, nil)

	_, err := engine.ProposeFix(context.Background(), writeScript(t, riskyScript))
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestEngine_ProposeFix_EmptyResponse(t *testing.T) {
	engine := NewEngine(&mockAIProvider{response: "  "}, nil, nil)

	_, err := engine.ProposeFix(context.Background(), writeScript(t, riskyScript))
	assert.Error(t, err)
}

func TestEngine_Execute(t *testing.T) {
	engine := NewEngine(nil, NewExecutor(5*time.Second), nil)

	result, err := engine.Execute(context.Background(), security.Command{Cmd: "echo", Args: []string{"ok"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Output)
}

func TestEngine_Execute_Confirmation(t *testing.T) {
	engine := NewEngine(nil, NewExecutor(5*time.Second), nil)
	cmd := security.Command{Cmd: "rm", Args: []string{"-rf", filepath.Join(t.TempDir(), "gone")}}

	_, err := engine.Execute(context.Background(), cmd, nil)
	assert.ErrorIs(t, err, ErrNotConfirmed)

	var asked bool
	_, err = engine.Execute(context.Background(), cmd, func(c security.Command, check *security.CheckResult) bool {
		asked = true
		assert.True(t, check.RequiresAuth)
		return true
	})
	require.NoError(t, err)
	assert.True(t, asked)
}

func TestEngine_Execute_Blocked(t *testing.T) {
	engine := NewEngine(nil, NewExecutor(5*time.Second), nil)

	_, err := engine.Execute(context.Background(), security.Command{}, nil)
	assert.ErrorIs(t, err, ErrCommandBlocked)
}

func TestEngine_ExecuteBatch_ApprovesAllFirst(t *testing.T) {
	engine := NewEngine(nil, NewExecutor(5*time.Second), nil)
	marker := filepath.Join(t.TempDir(), "ran")
	cmds := []security.Command{
		{Cmd: "touch", Args: []string{marker}},
		{Cmd: "rm", Args: []string{"-rf", filepath.Join(t.TempDir(), "gone")}},
	}

	_, err := engine.ExecuteBatch(context.Background(), cmds, nil)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.NoFileExists(t, marker)

	results, err := engine.ExecuteBatch(context.Background(), cmds, func(security.Command, *security.CheckResult) bool {
		return true
	})
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.FileExists(t, marker)
}

func TestEngine_ExecuteBatch_Blocked(t *testing.T) {
	engine := NewEngine(nil, NewExecutor(5*time.Second), nil)

	_, err := engine.ExecuteBatch(context.Background(), []security.Command{
		{Cmd: "echo", Args: []string{"ok"}},
		{},
	}, nil)
	assert.ErrorIs(t, err, ErrCommandBlocked)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, "echo hi", stripCodeFence("```sh\necho hi\n```"))
	assert.Equal(t, "echo hi", stripCodeFence("  echo hi\n"))
	assert.Equal(t, "```", stripCodeFence("```"))
}

func TestEngine_CheckCommand(t *testing.T) {
	engine := NewEngine(nil, nil, nil)

	check := engine.CheckCommand(security.Command{Cmd: "ls", Args: []string{"-la"}})
	assert.True(t, check.Allowed)
	assert.False(t, check.RequiresAuth)

	check = engine.CheckCommand(security.Command{Cmd: "dd", Args: []string{"if=/dev/zero", "of=/dev/sda"}})
	assert.True(t, check.RequiresAuth)
	assert.NotEmpty(t, check.Warning)
}
