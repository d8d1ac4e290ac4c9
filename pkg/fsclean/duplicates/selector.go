package duplicates

import (
	"path/filepath"
	"strings"
)

// stemLen returns the length of the filename without its extension.
func stemLen(path string) int {
	base := filepath.Base(path)
	return len(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Select picks the survivor of a duplicate group and returns the rest in
// group order as the removal list.
//
// The survivor is the member with the shortest filename stem. Ties are
// broken by the most recent modification time, then by lexicographically
// smallest path, so selection is deterministic even for fully identical
// ties.
func Select(group []Candidate) (survivor Candidate, removals []Candidate) {
	best := 0
	for i := 1; i < len(group); i++ {
		if better(group[i], group[best]) {
			best = i
		}
	}

	survivor = group[best]
	removals = make([]Candidate, 0, len(group)-1)
	for i, c := range group {
		if i != best {
			removals = append(removals, c)
		}
	}
	return survivor, removals
}

// better reports whether a should be preferred over b as the survivor.
func better(a, b Candidate) bool {
	la, lb := stemLen(a.Path), stemLen(b.Path)
	if la != lb {
		return la < lb
	}
	if a.Mtime != b.Mtime {
		return a.Mtime > b.Mtime
	}
	return a.Path < b.Path
}
