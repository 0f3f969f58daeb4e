package authority

import (
	"log/slog"
	"strings"

	"authorlink/internal/logging"
	"authorlink/internal/textutil"
)

// MatchOutcome identifies which ordered match attempt, if any, confirmed
// the cluster during evidence scanning. The scan stops at the first
// confident signal; later attempts are never evaluated for that cluster.
type MatchOutcome int

const (
	MatchNone MatchOutcome = iota
	MatchSortName
	MatchDisplayName
	MatchUnimarc
	MatchGuessedSortName
	MatchAlternateName
)

func (o MatchOutcome) String() string {
	switch o {
	case MatchSortName:
		return "sort_name"
	case MatchDisplayName:
		return "display_name"
	case MatchUnimarc:
		return "unimarc"
	case MatchGuessedSortName:
		return "guessed_sort_name"
	case MatchAlternateName:
		return "alternate_name"
	default:
		return "none"
	}
}

// Extractor pulls one candidate identity plus match evidence out of a
// single authority cluster.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor constructs an extractor. A nil logger is replaced with a
// no-op logger.
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logging.NewComponentLogger(logger, "authority")}
}

// Extract builds a candidate triple from one cluster. knownSortName and
// knownDisplayName describe the contributor being searched for; either
// or both may be empty. Identical inputs always produce an identical
// triple.
//
// Evidence scanning short-circuits on the first confident signal, but
// candidate enrichment (authority id, wikipedia name, fallback sort
// name, family-name tie-break, titles) always runs, so a confirmed
// cluster still yields a fully-populated candidate.
func (e *Extractor) Extract(cluster *Cluster, knownSortName, knownDisplayName string) Triple {
	var triple Triple
	if cluster == nil {
		return triple
	}
	cand := &triple.Candidate
	outcome := e.scanEvidence(cluster, knownSortName, knownDisplayName, cand, &triple.Evidence)

	cand.AuthorityID = cluster.AuthorityID()

	// Tally how often each filing-order name appears so the most common
	// one can serve as a fallback sort name.
	sortNameTally := newCounter()
	for _, name := range cluster.SortNames() {
		sortNameTally.add(textutil.StripDanglingCommas(name))
	}

	if cand.WikipediaName == "" {
		cand.WikipediaName = cluster.WikipediaName()
	}
	if cand.WikipediaName != "" && cand.DisplayName == "" {
		cand.DisplayName = textutil.WikipediaNameToDisplayName(cand.WikipediaName)
	}
	workingDisplayName := knownDisplayName
	if cand.DisplayName != "" {
		workingDisplayName = cand.DisplayName
	}

	knownName := knownSortName
	if knownName == "" {
		knownName = workingDisplayName
	}

	// A structured sub-record is only considered if some part of it
	// shows up in the name we were given. Otherwise it likely belongs
	// to an unrelated identity co-located in the same cluster.
	var nameparts []NameParts
	for _, record := range cluster.UnimarcRecords() {
		if resemblesKnownName(record, knownName) {
			nameparts = append(nameparts, record)
			if record.SortName != "" {
				sortNameTally.add(textutil.StripDanglingCommas(record.SortName))
			}
		} else {
			e.logger.Debug("excluded name sub-record for lack of resemblance",
				logging.String("given", record.Given),
				logging.String("family", record.Family),
				logging.String("extra", record.Extra),
				logging.String("known_name", knownName))
		}
	}

	if cand.SortName == "" {
		if common, count := sortNameTally.mostCommon(); count > 0 {
			cand.SortName = common
		}
	}

	if cand.DisplayName != "" {
		parts := strings.Split(cand.DisplayName, " ")
		if len(parts) == 2 {
			// Pretty clearly given name + family name. Anything more
			// complicated is not worth guessing at.
			nameparts = append(nameparts, NameParts{Given: parts[0], Family: parts[1]})
		}
	}

	best := bestChoice(nameparts)
	if best.Family != "" {
		cand.FamilyName = best.Family
	}
	if cand.DisplayName == "" {
		cand.DisplayName = textutil.CombineNameparts(best.Given, best.Family, best.Extra)
	}
	if cand.DisplayName == "" {
		cand.DisplayName = workingDisplayName
	}

	triple.Titles = cluster.Titles()

	e.logger.Debug("extracted candidate",
		logging.String("outcome", outcome.String()),
		logging.String("sort_name", cand.SortName),
		logging.String("display_name", cand.DisplayName),
		logging.String("authority_id", cand.AuthorityID),
		logging.Int("titles", len(triple.Titles)))

	return triple
}

// scanEvidence walks the ordered match attempts, recording the last
// ratio computed for each signal and returning at the first confident
// hit. Weak ratios stay recorded: the ranker reads them later when
// deciding whether to trust the remote popularity ordering.
func (e *Extractor) scanEvidence(cluster *Cluster, knownSortName, knownDisplayName string, cand *Candidate, ev *Evidence) MatchOutcome {
	// Attempt 1: the known sort name against the cluster's sort names.
	if knownSortName != "" {
		for _, potential := range cluster.SortNames() {
			ratio := float64(textutil.MatchRatio(potential, knownSortName))
			ev.SortName = signalOf(ratio)
			if ratio > SureMatchThreshold {
				cand.SortName = potential
				return MatchSortName
			}
		}
	}

	// Attempt 2: the known display name against a name derived from the
	// cluster's Wikipedia page.
	if knownDisplayName != "" {
		if wikipediaName := cluster.WikipediaName(); wikipediaName != "" {
			cand.WikipediaName = wikipediaName
			displayName := textutil.WikipediaNameToDisplayName(wikipediaName)
			ratio := float64(textutil.MatchRatio(displayName, knownDisplayName))
			ev.DisplayName = signalOf(ratio)
			if ratio > SureMatchThreshold {
				cand.DisplayName = displayName
				return MatchDisplayName
			}
		}
	}

	// Attempt 3: structured sub-records, filtered for resemblance to the
	// known names.
	knownName := knownSortName
	if knownName == "" {
		knownName = knownDisplayName
	}
	for _, record := range cluster.UnimarcRecords() {
		if !resemblesKnownName(record, knownName) {
			continue
		}
		if knownSortName != "" {
			ratio := float64(textutil.MatchRatio(record.SortName, knownSortName))
			ev.Unimarc = signalOf(ratio)
			if ratio > SureMatchThreshold {
				cand.FamilyName = record.SortName
				return MatchUnimarc
			}
		}
		for _, name := range []string{knownSortName, knownDisplayName} {
			if name == "" {
				continue
			}
			if record.Given != "" && strings.Contains(name, record.Given) &&
				record.Family != "" && strings.Contains(name, record.Family) &&
				(record.Extra == "" || strings.Contains(name, record.Extra)) {
				ev.Unimarc = signalOf(UnimarcContainmentScore)
				cand.FamilyName = record.Family
				return MatchUnimarc
			}
		}
	}

	// Attempt 4: guess a sort name from the display name and re-scan.
	if knownDisplayName != "" && knownSortName == "" {
		guessed := textutil.DisplayNameToSortName(knownDisplayName)
		for _, potential := range cluster.SortNames() {
			ratio := float64(textutil.MatchRatio(potential, guessed))
			ev.GuessedSortName = signalOf(ratio)
			if ratio > SureMatchThreshold {
				cand.SortName = potential
				return MatchGuessedSortName
			}
		}
	}

	// Attempt 5: pseudonyms and other alternate name forms.
	if knownSortName != "" {
		for _, potential := range cluster.AlternateNames() {
			ratio := float64(textutil.MatchRatio(potential, knownSortName))
			ev.AlternateName = signalOf(ratio)
			if ratio > SureMatchThreshold {
				cand.FamilyName = potential
				return MatchAlternateName
			}
		}
	}

	return MatchNone
}

// resemblesKnownName reports whether some non-empty part of the record
// appears inside the known name. With no known name at all, every
// record is kept.
func resemblesKnownName(record NameParts, knownName string) bool {
	if knownName == "" {
		return true
	}
	for _, part := range []string{record.Given, record.Family, record.Extra} {
		if part != "" && strings.Contains(knownName, part) {
			return true
		}
	}
	return false
}
