// Package diff collects a repository's pending changes into a ChangeSet.
package diff

import (
	"context"
	"fmt"
	"os"

	"github.com/dmuchai/my-code-review-agent/internal/git"
	"github.com/dmuchai/my-code-review-agent/internal/models"
)

// DefaultExcludes lists paths never worth reviewing: generated build output
// and the dependency lock file.
var DefaultExcludes = []string{"dist", "package-lock.json"}

// Collector gathers pending changes from a working tree. It is stateless;
// one Collector may serve concurrent collections.
type Collector struct {
	git      git.Client
	excludes map[string]struct{}
}

// NewCollector returns a Collector using the given git client. A nil
// excludes slice means DefaultExcludes; pass an empty slice to exclude
// nothing. Paths are compared by exact match.
func NewCollector(gc git.Client, excludes []string) *Collector {
	if excludes == nil {
		excludes = DefaultExcludes
	}
	ex := make(map[string]struct{}, len(excludes))
	for _, p := range excludes {
		ex[p] = struct{}{}
	}
	return &Collector{git: gc, excludes: ex}
}

// Collect returns every pending change in rootDir, one entry per file in
// git's reported order, each carrying its own unified diff. An empty set
// means a clean tree. A missing directory or absent repository is an error;
// git failures surface unchanged, no retry.
func (c *Collector) Collect(ctx context.Context, rootDir string) (models.ChangeSet, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", rootDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("inspect %s: not a directory", rootDir)
	}
	if _, err := c.git.RepoRoot(ctx, rootDir); err != nil {
		return nil, fmt.Errorf("resolve repository: %w", err)
	}

	files, err := c.git.ChangedFiles(ctx, rootDir)
	if err != nil {
		return nil, fmt.Errorf("list changed files: %w", err)
	}

	changes := models.ChangeSet{}
	for _, file := range files {
		if _, skip := c.excludes[file]; skip {
			continue
		}
		d, err := c.git.FileDiff(ctx, rootDir, file)
		if err != nil {
			return nil, fmt.Errorf("diff %s: %w", file, err)
		}
		changes = append(changes, models.FileChange{Path: file, Diff: d})
	}
	return changes, nil
}
