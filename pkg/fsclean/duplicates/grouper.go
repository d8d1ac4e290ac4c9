package duplicates

import "github.com/jamesainslie/fsclean/pkg/fsclean/fingerprint"

// Candidate is a file under duplicate consideration. Size and Mtime are
// captured at collection time; Mtime feeds survivor tie-breaking.
type Candidate struct {
	Path  string
	Size  int64
	Mtime int64 // UnixNano
}

// Grouper accumulates fingerprint-to-path associations across a whole
// tree traversal. Insertion order is preserved both within a group and
// across groups (first-seen digest order) so ledgers come out in a
// deterministic, walk-derived order.
type Grouper struct {
	groups map[fingerprint.Digest][]Candidate
	order  []fingerprint.Digest
}

// NewGrouper returns an empty grouper.
func NewGrouper() *Grouper {
	return &Grouper{groups: make(map[fingerprint.Digest][]Candidate)}
}

// Add records that the candidate produced the given digest.
func (g *Grouper) Add(digest fingerprint.Digest, c Candidate) {
	if _, seen := g.groups[digest]; !seen {
		g.order = append(g.order, digest)
	}
	g.groups[digest] = append(g.groups[digest], c)
}

// Groups returns every duplicate set (two or more candidates sharing a
// digest) in first-seen order.
func (g *Grouper) Groups() [][]Candidate {
	var out [][]Candidate
	for _, digest := range g.order {
		if members := g.groups[digest]; len(members) >= 2 {
			out = append(out, members)
		}
	}
	return out
}
