// Package commit derives conventional-commit categories and messages from a
// ChangeSet. Everything here is pure: lexical scans only, no I/O, identical
// output for identical input.
package commit

import (
	"strings"

	"github.com/dmuchai/my-code-review-agent/internal/models"
)

// Keyword lists scanned in classification order. Matches are plain
// case-sensitive substrings; fixKeywords deliberately match inside larger
// words ("prefix", "errors"), which keeps results stable across runs.
var (
	featKeywords = []string{"function", "class", "export"}
	fixKeywords  = []string{"fix", "bug", "error"}
	docTags      = []string{"@param", "@return"}
	testMarkers  = []string{"test", "spec"}
)

// Classify assigns a commit category. A valid hint wins unconditionally;
// otherwise the first matching predicate decides: feature declarations,
// then fix language, then documentation, then test paths, then chore.
func Classify(changes models.ChangeSet, hint models.CommitCategory) models.CommitCategory {
	if hint.Valid() {
		return hint
	}
	switch {
	case hasFeatureDecl(changes):
		return models.CategoryFeat
	case hasFixLanguage(changes):
		return models.CategoryFix
	case hasDocChanges(changes):
		return models.CategoryDocs
	case hasTestPaths(changes):
		return models.CategoryTest
	}
	return models.CategoryChore
}

// hasFeatureDecl reports whether any diff adds a line mentioning a
// declaration keyword.
func hasFeatureDecl(changes models.ChangeSet) bool {
	for _, fc := range changes {
		for _, line := range strings.Split(fc.Diff, "\n") {
			if !strings.HasPrefix(line, "+") {
				continue
			}
			for _, kw := range featKeywords {
				if strings.Contains(line, kw) {
					return true
				}
			}
		}
	}
	return false
}

func hasFixLanguage(changes models.ChangeSet) bool {
	for _, fc := range changes {
		for _, kw := range fixKeywords {
			if strings.Contains(fc.Diff, kw) {
				return true
			}
		}
	}
	return false
}

func hasDocChanges(changes models.ChangeSet) bool {
	for _, fc := range changes {
		if strings.Contains(fc.Path, "README") || strings.HasSuffix(fc.Path, ".md") {
			return true
		}
		for _, tag := range docTags {
			if strings.Contains(fc.Diff, tag) {
				return true
			}
		}
	}
	return false
}

func hasTestPaths(changes models.ChangeSet) bool {
	for _, fc := range changes {
		for _, m := range testMarkers {
			if strings.Contains(fc.Path, m) {
				return true
			}
		}
	}
	return false
}
