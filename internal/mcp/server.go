// Package mcp exposes the review pipeline as MCP tools over stdio, so
// external agent hosts can drive reviews without shelling out to the CLI.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dmuchai/my-code-review-agent/internal/artifact"
	"github.com/dmuchai/my-code-review-agent/internal/commit"
	"github.com/dmuchai/my-code-review-agent/internal/diff"
	"github.com/dmuchai/my-code-review-agent/internal/history"
	"github.com/dmuchai/my-code-review-agent/internal/models"
	"github.com/dmuchai/my-code-review-agent/internal/store"
)

// Server wraps the review pipeline and exposes it as MCP tools.
type Server struct {
	collector *diff.Collector
	history   *history.Reader
	artifacts *artifact.Writer
	store     store.Store // nil disables review_list_reviews
}

// NewServer creates the MCP server wrapper. The store may be nil when no
// ledger is configured.
func NewServer(collector *diff.Collector, hist *history.Reader, artifacts *artifact.Writer, st store.Store) *Server {
	return &Server{
		collector: collector,
		history:   hist,
		artifacts: artifacts,
		store:     st,
	}
}

// MCPServer returns a configured mcp-go server with all tools registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer("reviewagent", "1.0.0", server.WithToolCapabilities(true))

	srv.AddTool(s.getDiffTool())
	srv.AddTool(s.generateCommitMessageTool())
	srv.AddTool(s.writeReviewTool())
	srv.AddTool(s.getHistoryTool())
	srv.AddTool(s.listReviewsTool())

	return srv
}

// ServeStdio starts the stdio transport, blocking until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := s.MCPServer()
	stdioServer := server.NewStdioServer(srv)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// ---------------------------------------------------------------------------
// Tool definitions and handlers
// ---------------------------------------------------------------------------

// review_get_diff
func (s *Server) getDiffTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("review_get_diff",
		mcp.WithDescription("Get the pending changes in a git working tree. Returns a JSON object with a changes array of {path, diff} pairs and a count."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Repository path")),
	)
	return tool, s.handleGetDiff
}

func (s *Server) handleGetDiff(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	changes, err := s.collector.Collect(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to collect changes: %v", err)), nil
	}

	result := map[string]any{
		"changes": changes,
		"count":   len(changes),
	}
	data, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal changes: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// review_generate_commit_message
func (s *Server) generateCommitMessageTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("review_generate_commit_message",
		mcp.WithDescription("Generate a conventional commit message for the pending changes in a repository. Returns JSON with message, category, and stats."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Repository path")),
		mcp.WithString("type", mcp.Description("Category override: feat, fix, docs, style, refactor, test, chore")),
	)
	return tool, s.handleGenerateCommitMessage
}

func (s *Server) handleGenerateCommitMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	hint, err := models.ParseCategory(request.GetString("type", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	changes, err := s.collector.Collect(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to collect changes: %v", err)), nil
	}

	msg := commit.Synthesize(changes, commit.Classify(changes, hint))

	data, err := json.Marshal(msg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal message: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// review_write_review
func (s *Server) writeReviewTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("review_write_review",
		mcp.WithDescription("Write markdown review content to a file. A metadata header is added automatically. Returns JSON with success, file_path, and size (or an error field on failure)."),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Destination file path")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Markdown review body")),
		mcp.WithString("title", mcp.Description("Optional document title")),
	)
	return tool, s.handleWriteReview
}

func (s *Server) handleWriteReview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath, err := request.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: file_path"), nil
	}
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: content"), nil
	}
	title := request.GetString("title", "")

	// The write result carries its own failure state; the tool call itself
	// succeeds either way so the caller sees the structured payload.
	res := s.artifacts.Write(filePath, content, title)

	data, err := json.Marshal(res)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal write result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// review_get_history
func (s *Server) getHistoryTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("review_get_history",
		mcp.WithDescription("Get recent commits from a repository, newest first. Returns JSON with a commits array; on failure the commits array is empty and an error field is set."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Repository path")),
		mcp.WithNumber("limit", mcp.Description("Maximum commits to return (default 10)")),
	)
	return tool, s.handleGetHistory
}

func (s *Server) handleGetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}
	limit := request.GetInt("limit", 0)

	res := s.history.History(ctx, path, limit)

	data, err := json.Marshal(res)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal history: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// review_list_reviews
func (s *Server) listReviewsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("review_list_reviews",
		mcp.WithDescription("List recorded review runs, newest first. Returns a JSON array of reviews with id, repo_path, category, stats, artifact path, and source."),
		mcp.WithString("repo_path", mcp.Description("Filter by repository path")),
		mcp.WithNumber("limit", mcp.Description("Maximum reviews to return (default 20)")),
	)
	return tool, s.handleListReviews
}

func (s *Server) handleListReviews(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.store == nil {
		return mcp.NewToolResultError("review ledger is not configured"), nil
	}

	filter := store.ReviewListFilter{
		RepoPath: request.GetString("repo_path", ""),
		Limit:    request.GetInt("limit", 20),
	}

	reviews, err := s.store.ListReviews(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list reviews: %v", err)), nil
	}

	type reviewOut struct {
		ID            string `json:"id"`
		RepoPath      string `json:"repo_path"`
		Branch        string `json:"branch"`
		Category      string `json:"category"`
		FilesChanged  int    `json:"files_changed"`
		LinesAdded    int    `json:"lines_added"`
		LinesRemoved  int    `json:"lines_removed"`
		CommitMessage string `json:"commit_message"`
		ArtifactPath  string `json:"artifact_path"`
		Source        string `json:"source"`
		CreatedAt     string `json:"created_at"`
	}

	out := make([]reviewOut, len(reviews))
	for i, r := range reviews {
		out[i] = reviewOut{
			ID:            r.ID,
			RepoPath:      r.RepoPath,
			Branch:        r.Branch,
			Category:      string(r.Category),
			FilesChanged:  r.FilesChanged,
			LinesAdded:    r.LinesAdded,
			LinesRemoved:  r.LinesRemoved,
			CommitMessage: r.CommitMessage,
			ArtifactPath:  r.ArtifactPath,
			Source:        string(r.Source),
			CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal reviews: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
