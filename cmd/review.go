package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dmuchai/my-code-review-agent/internal/agent"
	"github.com/dmuchai/my-code-review-agent/internal/artifact"
	"github.com/dmuchai/my-code-review-agent/internal/history"
	"github.com/dmuchai/my-code-review-agent/internal/models"
	"github.com/dmuchai/my-code-review-agent/internal/output"
	"github.com/dmuchai/my-code-review-agent/internal/review"
	"github.com/dmuchai/my-code-review-agent/internal/store"
)

var (
	reviewType    string
	reviewOutput  string
	reviewTitle   string
	reviewHistory int
	reviewNoSave  bool
	reviewAgent   bool
)

var reviewCmd = &cobra.Command{
	Use:   "review [path]",
	Short: "Review pending changes and save a review document",
	Long: `Review the pending changes in a git working tree.

Collects every changed file's diff, classifies the change set into a
conventional-commit category, synthesizes a commit message, and writes a
timestamped markdown review document. With --agent and a configured
Anthropic API key, the review body is written by an LLM driving the same
tools; without it, the deterministic pipeline renders the document.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reviewRun(cmd, repoArg(args))
	},
}

func init() {
	reviewCmd.Flags().StringVarP(&reviewType, "type", "t", "", "Commit category override (feat, fix, docs, style, refactor, test, chore)")
	reviewCmd.Flags().StringVarP(&reviewOutput, "output", "o", "", "Review document path (default <repo>/<artifact.dir>/review-<timestamp>.md)")
	reviewCmd.Flags().StringVar(&reviewTitle, "title", "", "Review document title")
	reviewCmd.Flags().IntVar(&reviewHistory, "history", 0, "Recent commits to include (default from config)")
	reviewCmd.Flags().BoolVar(&reviewNoSave, "no-save", false, "Print the review without writing a document or ledger row")
	reviewCmd.Flags().BoolVar(&reviewAgent, "agent", false, "Let an LLM write the review (requires an Anthropic API key)")
	rootCmd.AddCommand(reviewCmd)
}

func reviewRun(cmd *cobra.Command, path string) error {
	hint, err := models.ParseCategory(reviewType)
	if err != nil {
		return err
	}

	historyLimit := reviewHistory
	if historyLimit <= 0 {
		historyLimit = viper.GetInt("history.limit")
	}

	outputPath := reviewOutput
	if outputPath == "" {
		name := fmt.Sprintf("review-%s.md", time.Now().Format("20060102-150405"))
		outputPath = filepath.Join(path, viper.GetString("artifact.dir"), name)
	}

	// The ledger is best-effort: an unopenable database degrades the run,
	// it does not abort it.
	var st store.Store
	if !reviewNoSave {
		if st, err = getStore(); err != nil {
			ui.Warning("Review ledger unavailable: %v", err)
			st = nil
		}
	}

	if reviewAgent {
		return reviewAgentRun(cmd, path, outputPath, historyLimit, st)
	}

	gc := newGitClient()
	runner := review.NewRunner(newCollector(), history.NewReader(gc), artifact.NewWriter(), gc, st)

	res, err := runner.Run(cmd.Context(), path, review.Options{
		Hint:         hint,
		OutputPath:   outputPath,
		Title:        reviewTitle,
		HistoryLimit: historyLimit,
		NoSave:       reviewNoSave,
	})
	if err != nil {
		return err
	}

	printReviewResult(res)
	return nil
}

func printReviewResult(res *review.Result) {
	if res.Changes.Empty() {
		ui.Info("No pending changes in %s", res.RepoPath)
	} else {
		ui.Info("Reviewed %d file(s) on %s (%s)",
			len(res.Changes), res.Branch, output.CategoryColor(string(res.Message.Category)))
	}
	ui.VerboseLog("Repository: %s", res.RepoPath)

	fmt.Fprintln(ui.Out)
	fmt.Fprintln(ui.Out, res.Message.Message)
	fmt.Fprintln(ui.Out)

	if res.Artifact.Success {
		ui.Success("Review saved: %s (%d bytes)", res.Artifact.FilePath, res.Artifact.Size)
	}
	if res.ReviewID != "" {
		ui.VerboseLog("Ledger entry: %s", res.ReviewID)
	}
	for _, w := range res.Warnings {
		ui.Warning("%s", w)
	}
}

func reviewAgentRun(cmd *cobra.Command, path, outputPath string, historyLimit int, st store.Store) error {
	a := newAgent()
	if a == nil {
		return fmt.Errorf("no Anthropic API key configured (set anthropic.api_key or ANTHROPIC_API_KEY)")
	}

	ui.Info("Running agent review of %s", path)
	res, err := a.Run(cmd.Context(), path, outputPath, historyLimit)
	if err != nil {
		return err
	}

	if res.Summary != "" {
		fmt.Fprintln(ui.Out)
		fmt.Fprintln(ui.Out, res.Summary)
		fmt.Fprintln(ui.Out)
	}
	ui.VerboseLog("Agent made %d tool call(s)", res.Turns)

	if res.Artifact == nil {
		ui.Warning("Agent finished without writing a review document")
		return nil
	}
	if !res.Artifact.Success {
		ui.Warning("Review not saved: %s", res.Artifact.Error)
		return nil
	}
	ui.Success("Review saved: %s (%d bytes)", res.Artifact.FilePath, res.Artifact.Size)

	recordAgentReview(cmd, path, res, st)
	return nil
}

// recordAgentReview stores the ledger row for an agent run. Best-effort:
// the review document already exists on disk.
func recordAgentReview(cmd *cobra.Command, path string, res *agent.RunResult, st store.Store) {
	if st == nil {
		return
	}

	repoPath := path
	if abs, err := filepath.Abs(path); err == nil {
		repoPath = abs
	}

	rec := &models.Review{
		RepoPath:     repoPath,
		ArtifactPath: res.Artifact.FilePath,
		ArtifactSize: res.Artifact.Size,
		Source:       models.ReviewSourceAgent,
		Model:        res.Model,
		Category:     models.CategoryChore,
	}
	if branch, err := newGitClient().CurrentBranch(cmd.Context(), path); err == nil {
		rec.Branch = branch
	}
	if res.Message != nil {
		rec.Category = res.Message.Category
		rec.FilesChanged = res.Message.Stats.FilesChanged
		rec.LinesAdded = res.Message.Stats.Added
		rec.LinesRemoved = res.Message.Stats.Removed
		rec.CommitMessage = res.Message.Message
	}

	if err := st.CreateReview(cmd.Context(), rec); err != nil {
		ui.Warning("Review not recorded: %v", err)
		return
	}
	ui.VerboseLog("Ledger entry: %s", rec.ID)
}

// newAgent creates the LLM agent from config/env, or returns nil if no API
// key is configured.
func newAgent() *agent.Agent {
	apiKey := viper.GetString("anthropic.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil
	}

	gc := newGitClient()
	tools := &agent.Toolset{
		Collector: newCollector(),
		History:   history.NewReader(gc),
		Artifacts: artifact.NewWriter(),
	}
	return agent.New(apiKey, viper.GetString("anthropic.model"), tools)
}
