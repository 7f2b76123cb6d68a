package models

import "time"

// ReviewSource says what produced the review body.
type ReviewSource string

const (
	ReviewSourceHeuristic ReviewSource = "heuristic"
	ReviewSourceAgent     ReviewSource = "agent"
)

// Review is one recorded review run: what was reviewed, the synthesized
// commit message, and where the artifact landed.
type Review struct {
	ID            string
	RepoPath      string
	Branch        string
	Category      CommitCategory
	FilesChanged  int
	LinesAdded    int
	LinesRemoved  int
	CommitMessage string
	ArtifactPath  string
	ArtifactSize  int
	Source        ReviewSource
	Model         string // LLM model for agent reviews, empty otherwise
	CreatedAt     time.Time
}
