package diff

import (
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/dmuchai/my-code-review-agent/internal/models"
)

// FileStatus describes what happened to a file in a diff.
type FileStatus string

const (
	StatusAdded    FileStatus = "added"
	StatusDeleted  FileStatus = "deleted"
	StatusRenamed  FileStatus = "renamed"
	StatusModified FileStatus = "modified"
	StatusBinary   FileStatus = "binary"
)

// FileSummary is per-file review detail parsed out of a unified diff.
type FileSummary struct {
	Path    string     `json:"path"`
	Status  FileStatus `json:"status"`
	Added   int        `json:"added"`
	Removed int        `json:"removed"`
}

// Summarize parses each change's diff into a per-file status and line
// counts. Unparsable or empty diffs degrade to a plain "modified" entry
// with zero counts rather than failing the summary.
func Summarize(changes models.ChangeSet) []FileSummary {
	summaries := make([]FileSummary, len(changes))
	for i, fc := range changes {
		summaries[i] = summarizeOne(fc)
	}
	return summaries
}

func summarizeOne(fc models.FileChange) FileSummary {
	s := FileSummary{Path: fc.Path, Status: StatusModified}

	files, _, err := gitdiff.Parse(strings.NewReader(fc.Diff))
	if err != nil || len(files) == 0 {
		return s
	}
	f := files[0]

	switch {
	case f.IsBinary:
		s.Status = StatusBinary
	case f.IsNew:
		s.Status = StatusAdded
	case f.IsDelete:
		s.Status = StatusDeleted
	case f.IsRename:
		s.Status = StatusRenamed
	}

	for _, frag := range f.TextFragments {
		for _, l := range frag.Lines {
			switch l.Op {
			case gitdiff.OpAdd:
				s.Added++
			case gitdiff.OpDelete:
				s.Removed++
			}
		}
	}
	return s
}
