package authority

// Signal is an optional 0-100 match score. The zero value means the
// signal was never computed, which scoring treats differently from a
// computed score of zero.
type Signal struct {
	Score float64
	Set   bool
}

func signalOf(score float64) Signal {
	return Signal{Score: score, Set: true}
}

// Below reports whether the signal was computed and fell under threshold.
func (s Signal) Below(threshold float64) bool {
	return s.Set && s.Score < threshold
}

// Evidence is the fixed record of named match signals gathered for one
// candidate. Each signal records the last ratio computed for it, even
// when that ratio was too weak to short-circuit extraction; the ranker
// inspects weak signals when deciding whether to trust popularity.
type Evidence struct {
	SortName        Signal
	DisplayName     Signal
	Unimarc         Signal
	GuessedSortName Signal
	AlternateName   Signal
	Title           Signal

	// LibraryPopularity is the candidate's 1-based rank within the
	// search results (lower is more popular). Zero means unranked.
	LibraryPopularity int

	// Total is the cumulative weighted score computed by Weigh. It is
	// unbounded and only meaningful relative to other candidates scored
	// in the same ranking pass.
	Total float64
}

// Empty reports whether no named signal was ever computed.
func (e *Evidence) Empty() bool {
	return !e.SortName.Set &&
		!e.DisplayName.Set &&
		!e.Unimarc.Set &&
		!e.GuessedSortName.Set &&
		!e.AlternateName.Set &&
		!e.Title.Set
}
