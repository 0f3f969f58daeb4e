package authority

import (
	"authorlink/internal/textutil"
)

// Business-rule thresholds. These are acceptance criteria, not error
// conditions; a candidate falling under one is simply "not a match".
const (
	// SureMatchThreshold is the fuzzy ratio above which a single name
	// signal confirms a cluster outright. Fuzzy matching rarely returns
	// a clean 100, so anything over 90 counts as certain.
	SureMatchThreshold = 90.0

	// AcceptThreshold is the minimum weighted total a ranked candidate
	// needs before it is applied to a contributor.
	AcceptThreshold = 70.0

	// PopularityTrustThreshold guards the remote popularity ordering:
	// when the most popular candidate's own name evidence scores under
	// this, popularity is ignored for the whole ranking pass.
	PopularityTrustThreshold = 50.0

	// TitleFuzzyThreshold is the minimum fuzzy ratio for a title
	// comparison to contribute evidence. Ratios at or below it
	// contribute nothing; there is deliberately no partial credit.
	TitleFuzzyThreshold = 80.0

	// UnimarcContainmentScore is the fixed confidence assigned when all
	// parts of a structured sub-record appear inside the known name.
	UnimarcContainmentScore = 90.0
)

// Signal weights. Absolute values do not matter, only their relation to
// each other: a sort-name match counts far more than a unimarc tag
// match, and an exact title match outweighs both.
const (
	weightSortName        = 2.0
	weightDisplayName     = 0.5
	weightUnimarc         = 0.3
	weightGuessedSortName = 0.5
	weightAlternateName   = 0.2
	weightTitleExact      = 0.8
	weightTitleFuzzy      = 0.6

	// Each unit of popularity rank costs 10 points, so less popular
	// candidates start deep in the hole.
	popularityPenalty = 10.0

	// Small bonus for candidates that carry recognizable identity data.
	dataQualityBonus = 0.2

	// Exact unfluffed title matches score a flat value: 100 when strict
	// guarantees the cluster was already name-confirmed, 90 otherwise.
	exactTitleScoreStrict = 100.0
	exactTitleScore       = 90.0
)

// Weigh computes the cumulative weighted total for one candidate triple
// and stores it in the evidence record. In strict mode a sort-name ratio
// under SureMatchThreshold vetoes the candidate entirely, whatever the
// other signals say. ignorePopularity drops the popularity penalty for
// this pass.
func Weigh(triple *Triple, knownTitles []string, strict, ignorePopularity bool) float64 {
	ev := &triple.Evidence
	ev.Total = 0

	// Without a single name signal we cannot even tell whether this is
	// the right cluster; strict mode refuses to guess.
	if strict && ev.Empty() {
		return 0
	}

	if ev.LibraryPopularity > 0 && !ignorePopularity {
		ev.Total += -popularityPenalty * float64(ev.LibraryPopularity)
	}

	if ev.SortName.Set {
		if strict && ev.SortName.Score < SureMatchThreshold {
			ev.Total = 0
			return 0
		}
		ev.Total += weightSortName * ev.SortName.Score
	}
	if ev.DisplayName.Set {
		ev.Total += weightDisplayName * ev.DisplayName.Score
	}
	if ev.Unimarc.Set {
		ev.Total += weightUnimarc * ev.Unimarc.Score
	}
	if ev.GuessedSortName.Set {
		ev.Total += weightGuessedSortName * ev.GuessedSortName.Score
	}
	if ev.AlternateName.Set {
		ev.Total += weightAlternateName * ev.AlternateName.Score
	}

	if triple.Candidate.DisplayName != "" {
		ev.Total += dataQualityBonus
	}
	if triple.Candidate.AuthorityID != "" {
		ev.Total += dataQualityBonus
	}

	weighTitles(triple, knownTitles, strict)

	return ev.Total
}

// weighTitles adds title evidence to the total. In strict mode the first
// exact unfluffed match contributes and ends all title comparison. In
// non-strict mode each known title may contribute once: an exact
// unfluffed match, or failing that the first fuzzy ratio over
// TitleFuzzyThreshold against any of the candidate's titles.
func weighTitles(triple *Triple, knownTitles []string, strict bool) {
	ev := &triple.Evidence
	for _, known := range knownTitles {
		if strict {
			for _, candidateTitle := range triple.Titles {
				if textutil.NamesMatch(textutil.UnfluffTitle(candidateTitle), textutil.UnfluffTitle(known)) {
					ev.Title = signalOf(exactTitleScoreStrict)
					ev.Total += weightTitleExact * exactTitleScoreStrict
					return
				}
			}
			continue
		}
		for _, candidateTitle := range triple.Titles {
			// Accept "Pride and Prejudice (Unabridged)" as equivalent to
			// "Pride and Prejudice", but keep "Pride and Prejudice and
			// Zombies" away from Jane Austen.
			if textutil.NamesMatch(textutil.UnfluffTitle(candidateTitle), textutil.UnfluffTitle(known)) {
				ev.Title = signalOf(exactTitleScore)
				ev.Total += weightTitleExact * exactTitleScore
				break
			}
			ratio := float64(textutil.TitleMatchRatio(known, candidateTitle))
			ev.Title = signalOf(ratio)
			if ratio > TitleFuzzyThreshold {
				ev.Total += weightTitleFuzzy * ratio
				break
			}
		}
	}
}
