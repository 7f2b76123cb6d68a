// Package history reads recent commits for review context. Retrieval is
// best-effort: failures degrade to an empty result carrying the reason, so
// a broken log never aborts a review.
package history

import (
	"context"

	"github.com/dmuchai/my-code-review-agent/internal/git"
	"github.com/dmuchai/my-code-review-agent/internal/models"
)

// DefaultLimit is the commit count used when the caller passes none.
const DefaultLimit = 10

// Reader fetches recent commits from a repository. Stateless.
type Reader struct {
	git git.Client
}

// NewReader returns a Reader using the given git client.
func NewReader(gc git.Client) *Reader {
	return &Reader{git: gc}
}

// History returns up to limit commits from rootDir, newest first. A limit
// of zero or less means DefaultLimit. Never returns an error: failures
// yield an empty commit list with Err set.
func (r *Reader) History(ctx context.Context, rootDir string, limit int) models.HistoryResult {
	if limit <= 0 {
		limit = DefaultLimit
	}
	commits, err := r.git.Log(ctx, rootDir, limit)
	if err != nil {
		return models.HistoryResult{Err: err.Error()}
	}
	return models.HistoryResult{Commits: commits}
}
