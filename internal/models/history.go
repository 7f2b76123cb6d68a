package models

import "time"

// CommitRecord is one commit as reported by the VCS log.
type CommitRecord struct {
	Hash        string    `json:"hash"`
	Date        time.Time `json:"date"`
	Message     string    `json:"message"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
}

// ShortHash returns the abbreviated commit hash.
func (c CommitRecord) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// HistoryResult carries recent commits, newest first. History retrieval
// never aborts the enclosing flow: on failure Commits is empty and Err
// holds the reason.
type HistoryResult struct {
	Commits []CommitRecord `json:"commits"`
	Err     string         `json:"error,omitempty"`
}

// Failed reports whether history retrieval was degraded.
func (h HistoryResult) Failed() bool {
	return h.Err != ""
}
