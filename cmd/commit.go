package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmuchai/my-code-review-agent/internal/commit"
	"github.com/dmuchai/my-code-review-agent/internal/models"
)

var commitType string

var commitCmd = &cobra.Command{
	Use:   "commit [path]",
	Short: "Print a conventional commit message for the pending changes",
	Long: `Synthesize a conventional commit message from the pending changes
and print it to stdout, suitable for piping:

  reviewagent commit | git commit -F -

Nothing is committed or staged; this only reads the diff.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return commitRun(cmd, repoArg(args))
	},
}

func init() {
	commitCmd.Flags().StringVarP(&commitType, "type", "t", "", "Commit category override (feat, fix, docs, style, refactor, test, chore)")
	rootCmd.AddCommand(commitCmd)
}

func commitRun(cmd *cobra.Command, path string) error {
	hint, err := models.ParseCategory(commitType)
	if err != nil {
		return err
	}

	changes, err := newCollector().Collect(cmd.Context(), path)
	if err != nil {
		return err
	}

	msg := commit.Synthesize(changes, commit.Classify(changes, hint))

	// Bare message only: stdout is the contract, decorations go to stderr.
	fmt.Fprintln(ui.Out, msg.Message)
	return nil
}
