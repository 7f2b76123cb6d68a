package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dmuchai/my-code-review-agent/internal/artifact"
	"github.com/dmuchai/my-code-review-agent/internal/history"
	"github.com/dmuchai/my-code-review-agent/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP stdio server for agent-host integration",
	Long: `Start an MCP (Model Context Protocol) server on stdio.

This lets agent hosts drive the review pipeline natively. Configure with:

  {
    "mcpServers": {
      "reviewagent": { "command": "reviewagent", "args": ["mcp"] }
    }
  }

Available tools: review_get_diff, review_generate_commit_message,
review_write_review, review_get_history, review_list_reviews`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The ledger is optional for MCP: only review_list_reviews needs it.
		st, err := getStore()
		if err != nil {
			ui.Warning("Review ledger unavailable: %v", err)
			st = nil
		}

		gc := newGitClient()
		srv := mcp.NewServer(newCollector(), history.NewReader(gc), artifact.NewWriter(), st)

		ui.VerboseLog("Starting MCP stdio server")
		return srv.ServeStdio(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
