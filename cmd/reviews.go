package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmuchai/my-code-review-agent/internal/output"
	"github.com/dmuchai/my-code-review-agent/internal/store"
)

var (
	reviewsLimit int
	reviewsRepo  string
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "List recorded review runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return reviewsRun(cmd)
	},
}

func init() {
	reviewsCmd.Flags().IntVarP(&reviewsLimit, "limit", "l", 20, "Maximum reviews to show")
	reviewsCmd.Flags().StringVar(&reviewsRepo, "repo", "", "Filter by repository path")
	rootCmd.AddCommand(reviewsCmd)
}

func reviewsRun(cmd *cobra.Command) error {
	s, err := getStore()
	if err != nil {
		return err
	}

	reviews, err := s.ListReviews(cmd.Context(), store.ReviewListFilter{
		RepoPath: reviewsRepo,
		Limit:    reviewsLimit,
	})
	if err != nil {
		return err
	}

	if len(reviews) == 0 {
		ui.Info("No reviews recorded yet")
		return nil
	}

	table := ui.Table([]string{"ID", "DATE", "REPO", "CATEGORY", "FILES", "+/-", "SOURCE"})
	for _, r := range reviews {
		_ = table.Append([]string{
			shortID(r.ID),
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.RepoPath,
			output.CategoryColor(string(r.Category)),
			fmt.Sprintf("%d", r.FilesChanged),
			fmt.Sprintf("+%d/-%d", r.LinesAdded, r.LinesRemoved),
			string(r.Source),
		})
	}
	_ = table.Render()

	return nil
}

// shortID returns a display prefix of a ULID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
