package models

import "fmt"

// CommitCategory is a conventional-commit change category.
type CommitCategory string

const (
	CategoryFeat     CommitCategory = "feat"
	CategoryFix      CommitCategory = "fix"
	CategoryDocs     CommitCategory = "docs"
	CategoryStyle    CommitCategory = "style"
	CategoryRefactor CommitCategory = "refactor"
	CategoryTest     CommitCategory = "test"
	CategoryChore    CommitCategory = "chore"
)

// Categories lists every valid commit category.
func Categories() []CommitCategory {
	return []CommitCategory{
		CategoryFeat,
		CategoryFix,
		CategoryDocs,
		CategoryStyle,
		CategoryRefactor,
		CategoryTest,
		CategoryChore,
	}
}

// Valid reports whether c is one of the known categories.
func (c CommitCategory) Valid() bool {
	switch c {
	case CategoryFeat, CategoryFix, CategoryDocs, CategoryStyle,
		CategoryRefactor, CategoryTest, CategoryChore:
		return true
	}
	return false
}

// ParseCategory converts a user-supplied string into a CommitCategory.
// The empty string is allowed and means "no hint".
func ParseCategory(s string) (CommitCategory, error) {
	if s == "" {
		return "", nil
	}
	c := CommitCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown commit category %q (valid: feat, fix, docs, style, refactor, test, chore)", s)
	}
	return c, nil
}
