package commit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmuchai/my-code-review-agent/internal/models"
)

func TestSynthesize_SingleFile(t *testing.T) {
	changes := models.ChangeSet{
		{Path: "auth.ts", Diff: "+ export function login() {}"},
	}

	result := Synthesize(changes, models.CategoryFeat)

	assert.True(t, strings.HasPrefix(result.Message, "feat(auth): add new functionality"))
	assert.Equal(t, models.CategoryFeat, result.Category)
	assert.Equal(t, 1, result.Stats.FilesChanged)
}

func TestSynthesize_ExactLayout(t *testing.T) {
	changes := models.ChangeSet{
		{Path: "src/auth.ts", Diff: "--- a/src/auth.ts\n+++ b/src/auth.ts\n+new line\n+another\n-gone"},
		{Path: "src/db.ts", Diff: "+one more"},
	}

	result := Synthesize(changes, models.CategoryFix)

	expected := strings.Join([]string{
		"fix(files): resolve issues",
		"",
		"- 2 files changed",
		"- 3 lines added, 1 lines removed",
		"- Files: src/auth.ts, src/db.ts",
	}, "\n")
	assert.Equal(t, expected, result.Message)
	assert.Equal(t, models.DiffStats{Added: 3, Removed: 1, FilesChanged: 2}, result.Stats)
}

func TestSynthesize_EmptyChangeSet(t *testing.T) {
	result := Synthesize(models.ChangeSet{}, models.CategoryChore)

	expected := strings.Join([]string{
		"chore: update code",
		"",
		"- 0 file changed",
		"- 0 lines added, 0 lines removed",
		"- Files: ",
	}, "\n")
	assert.Equal(t, expected, result.Message)
	assert.Equal(t, models.DiffStats{FilesChanged: 0}, result.Stats)
}

func TestScope(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		expected string
	}{
		{"single file uses base name", []string{"auth.ts"}, "auth"},
		{"base name cut at first period", []string{"src/auth.test.ts"}, "auth"},
		{"nested path keeps last segment", []string{"a/b/c/db.go"}, "db"},
		{"two distinct names", []string{"a.ts", "b.ts"}, "files"},
		{"three distinct names", []string{"a.ts", "b.ts", "c.ts"}, "files"},
		{"four files is multiple", []string{"a.ts", "b.ts", "c.ts", "d.ts"}, "multiple"},
		{"same base name twice has no scope", []string{"a/index.ts", "b/index.ts"}, ""},
		{"no files has no scope", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var changes models.ChangeSet
			for _, p := range tt.paths {
				changes = append(changes, models.FileChange{Path: p})
			}
			assert.Equal(t, tt.expected, scope(changes))
		})
	}
}

func TestSynthesize_OmitsScopeParens(t *testing.T) {
	changes := models.ChangeSet{
		{Path: "a/index.ts", Diff: "+x"},
		{Path: "b/index.ts", Diff: "+y"},
	}

	result := Synthesize(changes, models.CategoryChore)
	assert.True(t, strings.HasPrefix(result.Message, "chore: update code\n"))
	assert.NotContains(t, result.Message, "()")
}

func TestStats_SkipsHeaderLines(t *testing.T) {
	changes := models.ChangeSet{
		{Path: "a.ts", Diff: strings.Join([]string{
			"diff --git a/a.ts b/a.ts",
			"--- a/a.ts",
			"+++ b/a.ts",
			"@@ -1,2 +1,2 @@",
			" context",
			"+added one",
			"-removed one",
			"+added two",
		}, "\n")},
	}

	stats := Stats(changes)
	assert.Equal(t, 2, stats.Added)
	assert.Equal(t, 1, stats.Removed)
	assert.Equal(t, 1, stats.FilesChanged)
}

func TestDescribe_Defaults(t *testing.T) {
	assert.Equal(t, "add new functionality", describe(models.CategoryFeat))
	assert.Equal(t, "resolve issues", describe(models.CategoryFix))
	assert.Equal(t, "update code", describe(models.CategoryChore))
	assert.Equal(t, "update code", describe(models.CategoryStyle))
	assert.Equal(t, "update code", describe(models.CategoryRefactor))
}
