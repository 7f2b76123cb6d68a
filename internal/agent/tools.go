package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/dmuchai/my-code-review-agent/internal/artifact"
	"github.com/dmuchai/my-code-review-agent/internal/commit"
	"github.com/dmuchai/my-code-review-agent/internal/diff"
	"github.com/dmuchai/my-code-review-agent/internal/history"
	"github.com/dmuchai/my-code-review-agent/internal/models"
)

// Toolset exposes the review pipeline to the model. It is stateless; each
// Run tracks its own effects.
type Toolset struct {
	Collector *diff.Collector
	History   *history.Reader
	Artifacts *artifact.Writer
}

// runEffects records what the model produced during one Run, so the caller
// can report and record the outcome without re-parsing the transcript.
type runEffects struct {
	lastWrite   *models.WriteResult
	lastMessage *models.CommitMessage
	toolCalls   int
}

// toolDefs declares the tool schemas sent with every request.
func toolDefs() []anthropic.ToolUnionParam {
	toolParams := []anthropic.ToolParam{
		{
			Name:        "get_git_diff",
			Description: anthropic.String("Get the pending changes in a git working tree. Returns a JSON object with a changes array of {path, diff} pairs."),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: map[string]any{
					"path": map[string]any{
						"type":        "string",
						"description": "Repository path",
					},
				},
				Required: []string{"path"},
			},
		},
		{
			Name:        "generate_commit_message",
			Description: anthropic.String("Generate a conventional commit message for the pending changes. Returns JSON with message, category, and stats."),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: map[string]any{
					"path": map[string]any{
						"type":        "string",
						"description": "Repository path",
					},
					"type": map[string]any{
						"type":        "string",
						"description": "Optional category override: feat, fix, docs, style, refactor, test, chore",
					},
				},
				Required: []string{"path"},
			},
		},
		{
			Name:        "write_review",
			Description: anthropic.String("Write markdown review content to a file. A metadata header is added automatically. Returns JSON with success, file_path, and size."),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: map[string]any{
					"file_path": map[string]any{
						"type":        "string",
						"description": "Destination file path",
					},
					"content": map[string]any{
						"type":        "string",
						"description": "Markdown review body",
					},
					"title": map[string]any{
						"type":        "string",
						"description": "Optional document title",
					},
				},
				Required: []string{"file_path", "content"},
			},
		},
		{
			Name:        "get_commit_history",
			Description: anthropic.String("Get recent commits from a repository, newest first. Returns JSON with a commits array."),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: map[string]any{
					"path": map[string]any{
						"type":        "string",
						"description": "Repository path",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum commits to return (default 10)",
					},
				},
				Required: []string{"path"},
			},
		},
	}

	tools := make([]anthropic.ToolUnionParam, len(toolParams))
	for i := range toolParams {
		tools[i] = anthropic.ToolUnionParam{OfTool: &toolParams[i]}
	}
	return tools
}

// dispatch executes one tool call and returns its JSON result. The error
// return is reserved for unknown tools and malformed input; capability
// failures are encoded in the JSON payloads themselves.
func (ts *Toolset) dispatch(ctx context.Context, eff *runEffects, name string, input json.RawMessage) (string, error) {
	eff.toolCalls++

	switch name {
	case "get_git_diff":
		return ts.handleGetDiff(ctx, input)
	case "generate_commit_message":
		return ts.handleCommitMessage(ctx, eff, input)
	case "write_review":
		return ts.handleWriteReview(eff, input)
	case "get_commit_history":
		return ts.handleHistory(ctx, input)
	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

func (ts *Toolset) handleGetDiff(ctx context.Context, input json.RawMessage) (string, error) {
	var args struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return "", fmt.Errorf("get_git_diff input: %w", err)
	}

	changes, err := ts.Collector.Collect(ctx, args.Path)
	if err != nil {
		return "", err
	}

	out := map[string]any{
		"changes": changes,
		"count":   len(changes),
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("marshal changes: %w", err)
	}
	return string(data), nil
}

func (ts *Toolset) handleCommitMessage(ctx context.Context, eff *runEffects, input json.RawMessage) (string, error) {
	var args struct {
		Path string `json:"path"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return "", fmt.Errorf("generate_commit_message input: %w", err)
	}

	hint, err := models.ParseCategory(args.Type)
	if err != nil {
		return "", err
	}

	changes, err := ts.Collector.Collect(ctx, args.Path)
	if err != nil {
		return "", err
	}

	msg := commit.Synthesize(changes, commit.Classify(changes, hint))
	eff.lastMessage = &msg

	data, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("marshal message: %w", err)
	}
	return string(data), nil
}

func (ts *Toolset) handleWriteReview(eff *runEffects, input json.RawMessage) (string, error) {
	var args struct {
		FilePath string `json:"file_path"`
		Content  string `json:"content"`
		Title    string `json:"title"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return "", fmt.Errorf("write_review input: %w", err)
	}

	// Write failures stay in the result: the model sees them and can retry
	// with a different path.
	res := ts.Artifacts.Write(args.FilePath, args.Content, args.Title)
	eff.lastWrite = &res

	data, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("marshal write result: %w", err)
	}
	return string(data), nil
}

func (ts *Toolset) handleHistory(ctx context.Context, input json.RawMessage) (string, error) {
	var args struct {
		Path  string `json:"path"`
		Limit int    `json:"limit"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return "", fmt.Errorf("get_commit_history input: %w", err)
	}

	res := ts.History.History(ctx, args.Path, args.Limit)
	data, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("marshal history: %w", err)
	}
	return string(data), nil
}
