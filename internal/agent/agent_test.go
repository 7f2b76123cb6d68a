package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmuchai/my-code-review-agent/internal/artifact"
	"github.com/dmuchai/my-code-review-agent/internal/diff"
	"github.com/dmuchai/my-code-review-agent/internal/git"
	"github.com/dmuchai/my-code-review-agent/internal/history"
	"github.com/dmuchai/my-code-review-agent/internal/models"
)

func initTestRepo(t *testing.T, dir string) {
	t.Helper()
	cmds := [][]string{
		{"git", "-C", dir, "init", "-b", "main"},
		{"git", "-C", dir, "config", "user.email", "test@test.com"},
		{"git", "-C", dir, "config", "user.name", "Test"},
	}
	for _, args := range cmds {
		require.NoError(t, exec.Command(args[0], args[1:]...).Run())
	}
}

func commitFile(t *testing.T, dir, name, content, msg string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	require.NoError(t, exec.Command("git", "-C", dir, "add", name).Run())
	require.NoError(t, exec.Command("git", "-C", dir, "commit", "-m", msg).Run())
}

func newTestToolset() *Toolset {
	gc := git.NewClient()
	return &Toolset{
		Collector: diff.NewCollector(gc, nil),
		History:   history.NewReader(gc),
		Artifacts: artifact.NewWriter(),
	}
}

func TestToolDefs(t *testing.T) {
	tools := toolDefs()
	require.Len(t, tools, 4)

	names := make([]string, len(tools))
	for i, tool := range tools {
		require.NotNil(t, tools[i].OfTool)
		names[i] = tool.OfTool.Name
	}
	assert.Equal(t, []string{
		"get_git_diff",
		"generate_commit_message",
		"write_review",
		"get_commit_history",
	}, names)
}

func TestDispatch_GetGitDiff(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)
	commitFile(t, dir, "auth.ts", "const x = 1\n", "initial")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.ts"),
		[]byte("export function login() {}\n"), 0644))

	ts := newTestToolset()
	eff := &runEffects{}

	input, _ := json.Marshal(map[string]any{"path": dir})
	out, err := ts.dispatch(context.Background(), eff, "get_git_diff", input)
	require.NoError(t, err)

	var parsed struct {
		Changes models.ChangeSet `json:"changes"`
		Count   int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Equal(t, 1, parsed.Count)
	assert.Equal(t, "auth.ts", parsed.Changes[0].Path)
	assert.Contains(t, parsed.Changes[0].Diff, "+export function login()")
	assert.Equal(t, 1, eff.toolCalls)
}

func TestDispatch_GenerateCommitMessage(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)
	commitFile(t, dir, "auth.ts", "const x = 1\n", "initial")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.ts"),
		[]byte("export function login() {}\n"), 0644))

	ts := newTestToolset()
	eff := &runEffects{}

	t.Run("heuristic category", func(t *testing.T) {
		input, _ := json.Marshal(map[string]any{"path": dir})
		out, err := ts.dispatch(context.Background(), eff, "generate_commit_message", input)
		require.NoError(t, err)

		var msg models.CommitMessage
		require.NoError(t, json.Unmarshal([]byte(out), &msg))
		assert.Equal(t, models.CategoryFeat, msg.Category)
		assert.Contains(t, msg.Message, "feat(auth): add new functionality")
		require.NotNil(t, eff.lastMessage)
	})

	t.Run("type override", func(t *testing.T) {
		input, _ := json.Marshal(map[string]any{"path": dir, "type": "docs"})
		out, err := ts.dispatch(context.Background(), eff, "generate_commit_message", input)
		require.NoError(t, err)

		var msg models.CommitMessage
		require.NoError(t, json.Unmarshal([]byte(out), &msg))
		assert.Equal(t, models.CategoryDocs, msg.Category)
	})

	t.Run("invalid type rejected", func(t *testing.T) {
		input, _ := json.Marshal(map[string]any{"path": dir, "type": "banana"})
		_, err := ts.dispatch(context.Background(), eff, "generate_commit_message", input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown commit category")
	})
}

func TestDispatch_WriteReview(t *testing.T) {
	dir := t.TempDir()
	ts := newTestToolset()
	eff := &runEffects{}

	target := filepath.Join(dir, "reviews", "out.md")
	input, _ := json.Marshal(map[string]any{
		"file_path": target,
		"content":   "Looks good.",
		"title":     "Review",
	})
	out, err := ts.dispatch(context.Background(), eff, "write_review", input)
	require.NoError(t, err)

	var res models.WriteResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Success)
	assert.Equal(t, target, res.FilePath)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Review")
	assert.Contains(t, string(data), "Looks good.")
	require.NotNil(t, eff.lastWrite)
	assert.Equal(t, res.Size, eff.lastWrite.Size)
}

func TestDispatch_WriteReview_FailureInResult(t *testing.T) {
	dir := t.TempDir()
	ts := newTestToolset()
	eff := &runEffects{}

	// A directory at the target path makes the write fail, but dispatch
	// still succeeds: the model sees the failure payload.
	input, _ := json.Marshal(map[string]any{"file_path": dir, "content": "x"})
	out, err := ts.dispatch(context.Background(), eff, "write_review", input)
	require.NoError(t, err)

	var res models.WriteResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestDispatch_GetCommitHistory(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)
	commitFile(t, dir, "a.txt", "a\n", "first")
	commitFile(t, dir, "b.txt", "b\n", "second")

	ts := newTestToolset()
	eff := &runEffects{}

	input, _ := json.Marshal(map[string]any{"path": dir, "limit": 1})
	out, err := ts.dispatch(context.Background(), eff, "get_commit_history", input)
	require.NoError(t, err)

	var res models.HistoryResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Commits, 1)
	assert.Equal(t, "second", res.Commits[0].Message)
}

func TestDispatch_UnknownTool(t *testing.T) {
	ts := newTestToolset()
	_, err := ts.dispatch(context.Background(), &runEffects{}, "launch_missiles", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

func TestBuildSystemPrompt(t *testing.T) {
	p := BuildSystemPrompt()
	for _, tool := range []string{"get_git_diff", "generate_commit_message", "write_review", "get_commit_history"} {
		assert.Contains(t, p, fmt.Sprintf("`%s`", tool))
	}
	assert.Contains(t, p, "Never modify the repository")
}

func TestBuildKickoffPrompt(t *testing.T) {
	p := BuildKickoffPrompt("/tmp/repo", "/tmp/repo/code-reviews/review.md", 5)
	assert.Contains(t, p, "Repository path: /tmp/repo")
	assert.Contains(t, p, "Write the review to: /tmp/repo/code-reviews/review.md")
	assert.Contains(t, p, "up to 5 recent commits")
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "all good", "all good"},
		{"fenced", "```markdown\nall good\n```", "all good"},
		{"fenced no language", "```\nall good\n```", "all good"},
		{"leading whitespace", "  all good  ", "all good"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.in))
		})
	}
}
