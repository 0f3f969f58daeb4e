package authority

// Candidate is one external identity assembled from an authority cluster.
// Fields are populated incrementally as evidence is found; any of them
// may stay empty.
type Candidate struct {
	SortName      string
	DisplayName   string
	FamilyName    string
	WikipediaName string
	AuthorityID   string
}

// Usable reports whether the candidate carries enough identity to be
// worth ranking. Clusters that yield neither a display name nor an
// authority id are discarded.
func (c Candidate) Usable() bool {
	return c.DisplayName != "" || c.AuthorityID != ""
}

// Triple is the unit the ranker orders and selects: a candidate, the
// evidence gathered for it, and the work titles its cluster attributes
// to it.
type Triple struct {
	Candidate Candidate
	Evidence  Evidence
	Titles    []string
}
