package review

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmuchai/my-code-review-agent/internal/artifact"
	"github.com/dmuchai/my-code-review-agent/internal/diff"
	"github.com/dmuchai/my-code-review-agent/internal/git"
	"github.com/dmuchai/my-code-review-agent/internal/history"
	"github.com/dmuchai/my-code-review-agent/internal/models"
	"github.com/dmuchai/my-code-review-agent/internal/store"
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

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestRunner(st store.Store) *Runner {
	gc := git.NewClient()
	return NewRunner(
		diff.NewCollector(gc, nil),
		history.NewReader(gc),
		artifact.NewWriter(),
		gc,
		st,
	)
}

func TestRunner_Run(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)
	commitFile(t, dir, "auth.ts", "const x = 1\n", "initial")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.ts"),
		[]byte("export function login() {}\n"), 0644))

	st := newTestStore(t)
	r := newTestRunner(st)
	ctx := context.Background()

	outputPath := filepath.Join(dir, "code-reviews", "review.md")
	res, err := r.Run(ctx, dir, Options{OutputPath: outputPath})
	require.NoError(t, err)
	require.Len(t, res.Changes, 1)

	assert.Equal(t, models.CategoryFeat, res.Message.Category)
	assert.True(t, strings.HasPrefix(res.Message.Message, "feat(auth): add new functionality"))
	assert.Equal(t, "main", res.Branch)
	assert.Len(t, res.Files, 1)
	require.Len(t, res.History.Commits, 1)
	assert.Equal(t, "initial", res.History.Commits[0].Message)

	// Artifact written and recorded.
	require.True(t, res.Artifact.Success)
	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "type: code-review")
	assert.Contains(t, string(data), "## Suggested Commit Message")
	assert.Equal(t, len(data), res.Artifact.Size)

	require.NotEmpty(t, res.ReviewID)
	row, err := st.GetReview(ctx, res.ReviewID)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryFeat, row.Category)
	assert.Equal(t, outputPath, row.ArtifactPath)
	assert.Equal(t, models.ReviewSourceHeuristic, row.Source)
	assert.Empty(t, res.Warnings)
}

func TestRunner_Run_Hint(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)
	commitFile(t, dir, "auth.ts", "const x = 1\n", "initial")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.ts"),
		[]byte("export function login() {}\n"), 0644))

	r := newTestRunner(nil)
	res, err := r.Run(context.Background(), dir, Options{
		Hint:   models.CategoryDocs,
		NoSave: true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryDocs, res.Message.Category)
}

func TestRunner_Run_NoSave(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)
	commitFile(t, dir, "file.txt", "a\n", "initial")

	r := newTestRunner(nil)
	res, err := r.Run(context.Background(), dir, Options{NoSave: true})
	require.NoError(t, err)

	assert.False(t, res.Artifact.Success)
	assert.Empty(t, res.ReviewID)
	_, err = os.Stat(filepath.Join(dir, DefaultArtifactDir))
	assert.True(t, os.IsNotExist(err), "no artifact directory should be created")
}

func TestRunner_Run_NotARepo(t *testing.T) {
	r := newTestRunner(nil)
	_, err := r.Run(context.Background(), t.TempDir(), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collect changes")
}

func TestRunner_Run_ArtifactFailureIsWarning(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)
	commitFile(t, dir, "file.txt", "a\n", "initial")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("b\n"), 0644))

	// A directory at the target path makes the write fail.
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.MkdirAll(blocked, 0755))

	r := newTestRunner(nil)
	res, err := r.Run(context.Background(), dir, Options{OutputPath: blocked})
	require.NoError(t, err, "artifact failure must not abort the run")

	assert.False(t, res.Artifact.Success)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "review not saved")
}

func TestRunner_Run_DefaultOutputPath(t *testing.T) {
	dir := t.TempDir()
	initTestRepo(t, dir)
	commitFile(t, dir, "file.txt", "a\n", "initial")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("b\n"), 0644))

	r := newTestRunner(nil)
	res, err := r.Run(context.Background(), dir, Options{})
	require.NoError(t, err)
	require.True(t, res.Artifact.Success)

	assert.Equal(t, filepath.Join(dir, DefaultArtifactDir), filepath.Dir(res.Artifact.FilePath))
	assert.True(t, strings.HasPrefix(filepath.Base(res.Artifact.FilePath), "review-"))
	assert.True(t, strings.HasSuffix(res.Artifact.FilePath, ".md"))
}
