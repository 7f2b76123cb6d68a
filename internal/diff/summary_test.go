package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmuchai/my-code-review-agent/internal/models"
)

const modifiedDiff = `diff --git a/auth.ts b/auth.ts
index 83db48f..bf269f4 100644
--- a/auth.ts
+++ b/auth.ts
@@ -1,3 +1,3 @@
 line one
-old line
+new line
 line three
`

const newFileDiff = `diff --git a/new.ts b/new.ts
new file mode 100644
index 0000000..3b18e51
--- /dev/null
+++ b/new.ts
@@ -0,0 +1,2 @@
+hello
+world
`

const deletedFileDiff = `diff --git a/gone.ts b/gone.ts
deleted file mode 100644
index 3b18e51..0000000
--- a/gone.ts
+++ /dev/null
@@ -1 +0,0 @@
-goodbye
`

func TestSummarize(t *testing.T) {
	changes := models.ChangeSet{
		{Path: "auth.ts", Diff: modifiedDiff},
		{Path: "new.ts", Diff: newFileDiff},
		{Path: "gone.ts", Diff: deletedFileDiff},
	}

	summaries := Summarize(changes)
	require.Len(t, summaries, 3)

	assert.Equal(t, FileSummary{Path: "auth.ts", Status: StatusModified, Added: 1, Removed: 1}, summaries[0])
	assert.Equal(t, FileSummary{Path: "new.ts", Status: StatusAdded, Added: 2}, summaries[1])
	assert.Equal(t, FileSummary{Path: "gone.ts", Status: StatusDeleted, Removed: 1}, summaries[2])
}

func TestSummarize_DegradesOnUnparsable(t *testing.T) {
	changes := models.ChangeSet{
		{Path: "weird.bin", Diff: "not a diff at all"},
		{Path: "empty.txt", Diff: ""},
	}

	summaries := Summarize(changes)
	require.Len(t, summaries, 2)
	for _, s := range summaries {
		assert.Equal(t, StatusModified, s.Status)
		assert.Zero(t, s.Added)
		assert.Zero(t, s.Removed)
	}
}

func TestSummarize_EmptyChangeSet(t *testing.T) {
	assert.Empty(t, Summarize(models.ChangeSet{}))
}
