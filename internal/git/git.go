package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/dmuchai/my-code-review-agent/internal/models"
)

// logFormat emits one commit per line with unit-separated fields:
// hash, strict ISO author date, subject, author name, author email.
const logFormat = "%H%x1f%aI%x1f%s%x1f%an%x1f%ae"

// Client defines the read-only git operations the review pipeline consumes.
// All methods take a repo path since a single binary reviews arbitrary repos.
type Client interface {
	RepoRoot(ctx context.Context, path string) (string, error)
	CurrentBranch(ctx context.Context, path string) (string, error)
	ChangedFiles(ctx context.Context, path string) ([]string, error)
	FileDiff(ctx context.Context, path, file string) (string, error)
	Log(ctx context.Context, path string, limit int) ([]models.CommitRecord, error)
}

// RealClient implements Client using real git commands.
type RealClient struct{}

// NewClient returns a new RealClient.
func NewClient() *RealClient {
	return &RealClient{}
}

var _ Client = (*RealClient)(nil)

func gitCmd(ctx context.Context, path string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", path}, args...)
	out, err := exec.CommandContext(ctx, "git", fullArgs...).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *RealClient) RepoRoot(ctx context.Context, path string) (string, error) {
	return gitCmd(ctx, path, "rev-parse", "--show-toplevel")
}

func (c *RealClient) CurrentBranch(ctx context.Context, path string) (string, error) {
	return gitCmd(ctx, path, "rev-parse", "--abbrev-ref", "HEAD")
}

// ChangedFiles lists files that differ between the working tree and HEAD,
// staged or not, in git's reported order.
func (c *RealClient) ChangedFiles(ctx context.Context, path string) ([]string, error) {
	out, err := gitCmd(ctx, path, "diff", "--name-only", "HEAD")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	var files []string
	for _, line := range strings.Split(out, "\n") {
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// FileDiff returns the unified diff for a single file against HEAD. The
// path filter keeps unrelated changes out of the output.
func (c *RealClient) FileDiff(ctx context.Context, path, file string) (string, error) {
	return gitCmd(ctx, path, "diff", "HEAD", "--", file)
}

// Log returns up to limit commits, newest first.
func (c *RealClient) Log(ctx context.Context, path string, limit int) ([]models.CommitRecord, error) {
	out, err := gitCmd(ctx, path, "log", fmt.Sprintf("-n%d", limit), "--format="+logFormat)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	var commits []models.CommitRecord
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\x1f")
		if len(fields) != 5 {
			return nil, fmt.Errorf("git log: malformed line %q", line)
		}
		date, err := time.Parse(time.RFC3339, fields[1])
		if err != nil {
			return nil, fmt.Errorf("git log: bad date %q: %w", fields[1], err)
		}
		commits = append(commits, models.CommitRecord{
			Hash:        fields[0],
			Date:        date,
			Message:     fields[2],
			AuthorName:  fields[3],
			AuthorEmail: fields[4],
		})
	}
	return commits, nil
}
