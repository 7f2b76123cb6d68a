package models

// FileChange is one changed file's pending diff against the comparison base.
type FileChange struct {
	Path string `json:"path"`
	Diff string `json:"diff"`
}

// ChangeSet is an ordered collection of pending changes. Order follows the
// VCS report and each path appears at most once.
type ChangeSet []FileChange

// Paths returns the changed file paths in collection order.
func (cs ChangeSet) Paths() []string {
	paths := make([]string, len(cs))
	for i, fc := range cs {
		paths[i] = fc.Path
	}
	return paths
}

// Empty reports whether the working tree had no pending changes.
func (cs ChangeSet) Empty() bool {
	return len(cs) == 0
}
