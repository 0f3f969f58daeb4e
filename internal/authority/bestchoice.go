package authority

// counter tallies strings while remembering first-seen order so ties
// resolve deterministically in favor of the earliest value.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(value string) {
	if _, seen := c.counts[value]; !seen {
		c.order = append(c.order, value)
	}
	c.counts[value]++
}

func (c *counter) count(value string) int {
	return c.counts[value]
}

// mostCommon returns the value with the highest tally, earliest-seen
// winning ties, and its count. Empty counter returns ("", 0).
func (c *counter) mostCommon() (string, int) {
	best := ""
	bestCount := 0
	for _, value := range c.order {
		if c.counts[value] > bestCount {
			best = value
			bestCount = c.counts[value]
		}
	}
	return best, bestCount
}

type familyGiven struct {
	family string
	given  string
}

// bestChoice picks the most plausible (given, family, extra) triple from
// a list of possibilities. A single possibility is used as-is. With
// several, the most frequent family name wins; then the most frequent
// given name seen with that family; then the most frequent extra
// qualifier for the pair, unless the absence of a qualifier is at least
// as common, in which case the qualifier is dropped.
func bestChoice(possibilities []NameParts) NameParts {
	if len(possibilities) == 0 {
		return NameParts{}
	}
	if len(possibilities) == 1 {
		return possibilities[0]
	}

	familyNames := newCounter()
	givenForFamily := make(map[string]*counter)
	extraForPair := make(map[familyGiven]*counter)
	for _, p := range possibilities {
		if p.Family == "" {
			continue
		}
		familyNames.add(p.Family)
		if p.Given == "" {
			continue
		}
		if givenForFamily[p.Family] == nil {
			givenForFamily[p.Family] = newCounter()
		}
		givenForFamily[p.Family].add(p.Given)
		pair := familyGiven{family: p.Family, given: p.Given}
		if extraForPair[pair] == nil {
			extraForPair[pair] = newCounter()
		}
		extraForPair[pair].add(p.Extra)
	}

	family, count := familyNames.mostCommon()
	if count == 0 {
		// None of these are useful.
		return NameParts{}
	}

	choice := NameParts{Family: family}
	givens := givenForFamily[family]
	if givens == nil {
		return choice
	}
	given, _ := givens.mostCommon()
	choice.Given = given

	extras := extraForPair[familyGiven{family: family, given: given}]
	if extras == nil {
		return choice
	}
	extra, extraCount := extras.mostCommon()
	if extra != "" && extras.count("") >= extraCount {
		// No qualifier is at least as well attested; leave it off.
		extra = ""
	}
	choice.Extra = extra
	return choice
}
