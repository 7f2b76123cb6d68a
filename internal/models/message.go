package models

// DiffStats summarizes a ChangeSet's line-level churn. Added and Removed
// count content lines only; file-header lines with doubled markers are
// excluded. FilesChanged always equals the ChangeSet length.
type DiffStats struct {
	Added        int `json:"added"`
	Removed      int `json:"removed"`
	FilesChanged int `json:"files_changed"`
}

// CommitMessage is a synthesized conventional-commit message plus the
// category and stats it was derived from.
type CommitMessage struct {
	Message  string         `json:"message"`
	Category CommitCategory `json:"category"`
	Stats    DiffStats      `json:"stats"`
}
