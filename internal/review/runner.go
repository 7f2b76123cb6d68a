// Package review runs the full pipeline over a working tree: collect pending
// changes, classify them, synthesize a commit message, render and persist the
// review document, and record the run in the ledger.
package review

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dmuchai/my-code-review-agent/internal/artifact"
	"github.com/dmuchai/my-code-review-agent/internal/commit"
	"github.com/dmuchai/my-code-review-agent/internal/diff"
	"github.com/dmuchai/my-code-review-agent/internal/git"
	"github.com/dmuchai/my-code-review-agent/internal/history"
	"github.com/dmuchai/my-code-review-agent/internal/models"
	"github.com/dmuchai/my-code-review-agent/internal/store"
)

// DefaultArtifactDir is where review documents land relative to the repo
// root when no output path is given.
const DefaultArtifactDir = "code-reviews"

// Options tunes a single review run.
type Options struct {
	Hint         models.CommitCategory // forced category, empty for auto
	OutputPath   string                // artifact path, empty for the default
	Title        string                // document title, empty for the default
	HistoryLimit int                   // recent commits to include, <=0 for default
	NoSave       bool                  // skip artifact and ledger entirely
}

// Result is everything one run produced. Collector failures abort the run;
// artifact and history failures are carried here instead so callers can
// degrade gracefully.
type Result struct {
	RepoPath string
	Branch   string
	Changes  models.ChangeSet
	Files    []diff.FileSummary
	Message  models.CommitMessage
	History  models.HistoryResult
	Artifact models.WriteResult
	ReviewID string
	Warnings []string
}

// Runner wires the pipeline components together. Stateless; one Runner may
// serve concurrent runs.
type Runner struct {
	collector *diff.Collector
	history   *history.Reader
	artifacts *artifact.Writer
	git       git.Client
	store     store.Store // nil disables the ledger
}

// NewRunner creates a review runner. The store may be nil, which turns the
// ledger off.
func NewRunner(collector *diff.Collector, hist *history.Reader, artifacts *artifact.Writer, gc git.Client, st store.Store) *Runner {
	return &Runner{
		collector: collector,
		history:   hist,
		artifacts: artifacts,
		git:       gc,
		store:     st,
	}
}

// Run executes the pipeline over rootDir.
func (r *Runner) Run(ctx context.Context, rootDir string, opts Options) (*Result, error) {
	changes, err := r.collector.Collect(ctx, rootDir)
	if err != nil {
		return nil, fmt.Errorf("collect changes: %w", err)
	}

	category := commit.Classify(changes, opts.Hint)
	msg := commit.Synthesize(changes, category)

	res := &Result{
		RepoPath: absPath(rootDir),
		Changes:  changes,
		Files:    diff.Summarize(changes),
		Message:  msg,
		History:  r.history.History(ctx, rootDir, opts.HistoryLimit),
	}

	// Branch is context, not a precondition.
	if branch, err := r.git.CurrentBranch(ctx, rootDir); err == nil {
		res.Branch = branch
	}

	if opts.NoSave {
		return res, nil
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		name := fmt.Sprintf("review-%s.md", time.Now().Format("20060102-150405"))
		outputPath = filepath.Join(rootDir, DefaultArtifactDir, name)
	}
	title := opts.Title
	if title == "" {
		title = "Code Review: " + filepath.Base(res.RepoPath)
	}

	res.Artifact = r.artifacts.Write(outputPath, RenderReport(res), title)
	if !res.Artifact.Success {
		res.Warnings = append(res.Warnings, fmt.Sprintf("review not saved: %s", res.Artifact.Error))
		return res, nil
	}

	r.record(ctx, res, models.ReviewSourceHeuristic, "")
	return res, nil
}

// record writes the ledger row. Failures become warnings: the review
// document already exists, losing the ledger entry is not fatal.
func (r *Runner) record(ctx context.Context, res *Result, source models.ReviewSource, model string) {
	if r.store == nil {
		return
	}
	rec := &models.Review{
		RepoPath:      res.RepoPath,
		Branch:        res.Branch,
		Category:      res.Message.Category,
		FilesChanged:  res.Message.Stats.FilesChanged,
		LinesAdded:    res.Message.Stats.Added,
		LinesRemoved:  res.Message.Stats.Removed,
		CommitMessage: res.Message.Message,
		ArtifactPath:  res.Artifact.FilePath,
		ArtifactSize:  res.Artifact.Size,
		Source:        source,
		Model:         model,
	}
	if err := r.store.CreateReview(ctx, rec); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("review not recorded: %v", err))
		return
	}
	res.ReviewID = rec.ID
}

func absPath(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
