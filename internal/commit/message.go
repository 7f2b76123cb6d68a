package commit

import (
	"fmt"
	"path"
	"strings"

	"github.com/dmuchai/my-code-review-agent/internal/models"
)

// descriptions maps categories to their fixed summary phrase. Anything
// absent falls back to defaultDescription.
var descriptions = map[models.CommitCategory]string{
	models.CategoryFeat: "add new functionality",
	models.CategoryFix:  "resolve issues",
	models.CategoryDocs: "update documentation",
	models.CategoryTest: "update tests",
}

const defaultDescription = "update code"

// Synthesize builds a conventional-commit message for the changes. It never
// fails: an empty ChangeSet yields a well-formed zero-stats message.
func Synthesize(changes models.ChangeSet, category models.CommitCategory) models.CommitMessage {
	stats := Stats(changes)

	header := string(category)
	if s := scope(changes); s != "" {
		header += "(" + s + ")"
	}
	header += ": " + describe(category)

	fileWord := "file"
	if stats.FilesChanged > 1 {
		fileWord = "files"
	}

	lines := []string{
		header,
		"",
		fmt.Sprintf("- %d %s changed", stats.FilesChanged, fileWord),
		fmt.Sprintf("- %d lines added, %d lines removed", stats.Added, stats.Removed),
		fmt.Sprintf("- Files: %s", strings.Join(changes.Paths(), ", ")),
	}

	return models.CommitMessage{
		Message:  strings.Join(lines, "\n"),
		Category: category,
		Stats:    stats,
	}
}

// Stats counts added and removed content lines across all diffs. File
// header lines carry doubled markers (+++/---) and are skipped.
func Stats(changes models.ChangeSet) models.DiffStats {
	stats := models.DiffStats{FilesChanged: len(changes)}
	for _, fc := range changes {
		for _, line := range strings.Split(fc.Diff, "\n") {
			switch {
			case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "++"):
				stats.Added++
			case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "--"):
				stats.Removed++
			}
		}
	}
	return stats
}

// scope names the parenthetical segment: the single file's base name cut at
// its first period, "multiple" past three files, "files" for a small mixed
// set, empty otherwise (segment omitted).
func scope(changes models.ChangeSet) string {
	switch {
	case len(changes) == 1:
		name, _, _ := strings.Cut(path.Base(changes[0].Path), ".")
		return name
	case len(changes) > 3:
		return "multiple"
	}

	names := make(map[string]struct{}, len(changes))
	for _, fc := range changes {
		names[path.Base(fc.Path)] = struct{}{}
	}
	if len(names) > 1 {
		return "files"
	}
	return ""
}

func describe(category models.CommitCategory) string {
	if d, ok := descriptions[category]; ok {
		return d
	}
	return defaultDescription
}
