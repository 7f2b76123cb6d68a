package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dmuchai/my-code-review-agent/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [path]",
	Short: "Show recent commits",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return historyRun(cmd, repoArg(args))
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 0, "Maximum commits to show (default from config)")
	rootCmd.AddCommand(historyCmd)
}

func historyRun(cmd *cobra.Command, path string) error {
	limit := historyLimit
	if limit <= 0 {
		limit = viper.GetInt("history.limit")
	}

	res := history.NewReader(newGitClient()).History(cmd.Context(), path, limit)
	if res.Failed() {
		// History is supplementary everywhere else, but it is the whole
		// point of this command.
		return fmt.Errorf("read history: %s", res.Err)
	}

	if len(res.Commits) == 0 {
		ui.Info("No commits")
		return nil
	}

	table := ui.Table([]string{"HASH", "DATE", "AUTHOR", "MESSAGE"})
	for _, c := range res.Commits {
		_ = table.Append([]string{
			c.ShortHash(),
			c.Date.Format("2006-01-02 15:04"),
			c.AuthorName,
			c.Message,
		})
	}
	_ = table.Render()

	return nil
}
