package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmuchai/my-code-review-agent/internal/commit"
	"github.com/dmuchai/my-code-review-agent/internal/diff"
	"github.com/dmuchai/my-code-review-agent/internal/output"
)

var diffCmd = &cobra.Command{
	Use:   "diff [path]",
	Short: "Show pending changes with per-file status and line counts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return diffRun(cmd, repoArg(args))
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func diffRun(cmd *cobra.Command, path string) error {
	changes, err := newCollector().Collect(cmd.Context(), path)
	if err != nil {
		return err
	}

	if changes.Empty() {
		ui.Info("No pending changes")
		return nil
	}

	summaries := diff.Summarize(changes)

	table := ui.Table([]string{"FILE", "STATUS", "+", "-"})
	totalAdded, totalRemoved := 0, 0
	for _, s := range summaries {
		totalAdded += s.Added
		totalRemoved += s.Removed
		_ = table.Append([]string{
			s.Path,
			output.StatusColor(string(s.Status)),
			strconv.Itoa(s.Added),
			strconv.Itoa(s.Removed),
		})
	}
	_ = table.Append([]string{"", "", output.Green(strconv.Itoa(totalAdded)), output.Red(strconv.Itoa(totalRemoved))})
	_ = table.Render()

	msg := commit.Synthesize(changes, commit.Classify(changes, ""))
	header, _, _ := strings.Cut(msg.Message, "\n")
	fmt.Fprintln(ui.Out)
	ui.Info("Suggested: %s", header)

	return nil
}
