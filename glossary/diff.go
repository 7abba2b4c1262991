package glossary

import "sort"

// DiffResult represents the difference between two glossary states.
type DiffResult struct {
	// Added contains terms present only in the new state.
	Added []string

	// Removed contains terms present only in the old state.
	Removed []string

	// Changed contains terms whose entry differs between the states.
	Changed []ChangedTerm

	// Unchanged counts terms with identical entries.
	Unchanged int

	OldVersion string
	NewVersion string
}

// ChangedTerm is a term whose entry changed.
type ChangedTerm struct {
	Term string
	Old  Entry
	New  Entry
}

// DiffStats contains summary statistics for a diff.
type DiffStats struct {
	Added     int
	Removed   int
	Changed   int
	Unchanged int
}

// Stats returns summary statistics for the diff.
func (d *DiffResult) Stats() DiffStats {
	return DiffStats{
		Added:     len(d.Added),
		Removed:   len(d.Removed),
		Changed:   len(d.Changed),
		Unchanged: d.Unchanged,
	}
}

// HasChanges returns true if any term was added, removed or changed.
func (d *DiffResult) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Changed) > 0
}

// Diff compares two glossary states. Term lists are sorted so the output is
// stable.
func Diff(oldState, newState State) *DiffResult {
	result := &DiffResult{
		OldVersion: oldState.Version,
		NewVersion: newState.Version,
	}

	for term, oldEntry := range oldState.Terms {
		newEntry, ok := newState.Terms[term]
		switch {
		case !ok:
			result.Removed = append(result.Removed, term)
		case newEntry != oldEntry:
			result.Changed = append(result.Changed, ChangedTerm{Term: term, Old: oldEntry, New: newEntry})
		default:
			result.Unchanged++
		}
	}

	for term := range newState.Terms {
		if _, ok := oldState.Terms[term]; !ok {
			result.Added = append(result.Added, term)
		}
	}

	sort.Strings(result.Added)
	sort.Strings(result.Removed)
	sort.Slice(result.Changed, func(i, j int) bool {
		return result.Changed[i].Term < result.Changed[j].Term
	})

	return result
}
