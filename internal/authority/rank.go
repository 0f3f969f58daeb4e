package authority

import (
	"sort"
)

// Rank orders candidate triples best-first. Candidates are first
// re-sorted by ascending library popularity (the order the search
// results arrived in); then every candidate is weighed and the list is
// re-sorted descending by total. Both sorts are stable, so equal totals
// keep their relative input order.
//
// Before weighing, the most popular candidate's evidence is inspected:
// if its sort-name or guessed-sort-name ratio is present but weak, or
// neither signal is present at all, the popularity penalty is ignored
// for the whole pass. A popularity ordering whose own top pick is a bad
// name match should not drag down the candidates beneath it.
func Rank(candidates []*Triple, knownTitles []string, strict bool) []*Triple {
	if len(candidates) == 0 {
		return candidates
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Evidence.LibraryPopularity < candidates[j].Evidence.LibraryPopularity
	})

	top := &candidates[0].Evidence
	ignorePopularity := top.SortName.Below(PopularityTrustThreshold) ||
		top.GuessedSortName.Below(PopularityTrustThreshold) ||
		(!top.SortName.Set && !top.GuessedSortName.Set)

	for _, candidate := range candidates {
		Weigh(candidate, knownTitles, strict, ignorePopularity)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Evidence.Total > candidates[j].Evidence.Total
	})

	return candidates
}

// SelectBest ranks the candidates and returns the winner, or nil when
// the best total falls under AcceptThreshold. A nil result means "no
// confident match", never an error.
func SelectBest(candidates []*Triple, knownTitles []string, strict bool) *Triple {
	ranked := Rank(candidates, knownTitles, strict)
	if len(ranked) == 0 {
		return nil
	}
	best := ranked[0]
	if best.Evidence.Total < AcceptThreshold {
		return nil
	}
	return best
}
