package review

import (
	"fmt"
	"strings"
)

// RenderReport builds the markdown body of the review document: change
// summary, per-file detail, the suggested commit message, and recent
// history when available. The artifact writer supplies the front matter
// and title; this is body only.
func RenderReport(res *Result) string {
	var b strings.Builder

	b.WriteString("## Summary\n\n")
	if res.Branch != "" {
		fmt.Fprintf(&b, "- Branch: `%s`\n", res.Branch)
	}
	fmt.Fprintf(&b, "- Category: `%s`\n", res.Message.Category)
	fileWord := "file"
	if res.Message.Stats.FilesChanged > 1 {
		fileWord = "files"
	}
	fmt.Fprintf(&b, "- %d %s changed, %d lines added, %d lines removed\n",
		res.Message.Stats.FilesChanged, fileWord,
		res.Message.Stats.Added, res.Message.Stats.Removed)
	b.WriteString("\n")

	if len(res.Files) > 0 {
		b.WriteString("## Changed Files\n\n")
		b.WriteString("| File | Status | + | - |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, f := range res.Files {
			fmt.Fprintf(&b, "| %s | %s | %d | %d |\n", f.Path, f.Status, f.Added, f.Removed)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("No pending changes.\n\n")
	}

	b.WriteString("## Suggested Commit Message\n\n")
	b.WriteString("```\n")
	b.WriteString(res.Message.Message)
	b.WriteString("\n```\n")

	if len(res.History.Commits) > 0 {
		b.WriteString("\n## Recent Commits\n\n")
		for _, c := range res.History.Commits {
			fmt.Fprintf(&b, "- `%s` %s (%s, %s)\n",
				c.ShortHash(), c.Message, c.AuthorName, c.Date.Format("2006-01-02"))
		}
	} else if res.History.Failed() {
		fmt.Fprintf(&b, "\n## Recent Commits\n\nHistory unavailable: %s\n", res.History.Err)
	}

	return b.String()
}
