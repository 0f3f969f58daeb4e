package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldDiacritics strips combining marks so "détente" folds to "detente".
// On transform failure the input is returned unchanged.
func FoldDiacritics(s string) string {
	folded, _, err := transform.String(diacriticFolder, s)
	if err != nil {
		return s
	}
	return folded
}

// NormalizeName lowercases a name, folds diacritics, and reduces
// punctuation to spaces so fuzzy comparison sees only name tokens.
func NormalizeName(name string) string {
	return squashToTokens(FoldDiacritics(name))
}

// NamesMatch reports whether two strings are identical ignoring case and
// periods. Used for exact unfluffed-title comparison.
func NamesMatch(a, b string) bool {
	return strings.EqualFold(strings.ReplaceAll(a, ".", ""), strings.ReplaceAll(b, ".", ""))
}

// StripDanglingCommas removes leading and trailing commas left behind by
// bibliographic subfield values, then trims whitespace.
func StripDanglingCommas(namepart string) string {
	namepart = strings.TrimSpace(namepart)
	namepart = strings.TrimSuffix(namepart, ",")
	namepart = strings.TrimPrefix(namepart, ",")
	return strings.TrimSpace(namepart)
}

// CombineNameparts turns a (given, family, extra) triple into a display
// name. Pseudonym qualifiers ("pseud.", "pseudonym") are dropped.
func CombineNameparts(given, family, extra string) string {
	if given == "" && family == "" {
		return ""
	}
	var displayName string
	switch {
	case family != "" && given == "":
		displayName = family
	case given != "" && family == "":
		displayName = given
	default:
		displayName = given + " " + family
	}
	if extra != "" && !strings.HasPrefix(extra, "pseud") {
		if family != "" && given != "" {
			displayName += ", " + extra
		} else {
			displayName += " " + extra
		}
	}
	return displayName
}

// DisplayNameToSortName guesses a filing-order name from a display name:
// "Jane Q. Doe" becomes "Doe, Jane Q.". Names already containing a comma
// are assumed to be sort names and returned trimmed.
func DisplayNameToSortName(displayName string) string {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return ""
	}
	if strings.Contains(displayName, ",") {
		return displayName
	}
	parts := strings.Fields(displayName)
	if len(parts) < 2 {
		return displayName
	}
	last := parts[len(parts)-1]
	rest := strings.Join(parts[:len(parts)-1], " ")
	return last + ", " + rest
}

// WikipediaNameToDisplayName converts "Bob_Jones_(Author)" to "Bob Jones".
func WikipediaNameToDisplayName(wikipediaName string) string {
	displayName := strings.ReplaceAll(wikipediaName, "_", " ")
	if idx := strings.LastIndex(displayName, " ("); idx >= 0 {
		displayName = displayName[:idx]
	}
	return displayName
}

var corporateMarkers = map[string]bool{
	"inc":          true,
	"incorporated": true,
	"co":           true,
	"company":      true,
	"corp":         true,
	"corporation":  true,
	"llc":          true,
	"ltd":          true,
	"limited":      true,
	"press":        true,
	"publishers":   true,
	"publishing":   true,
	"university":   true,
	"college":      true,
	"institute":    true,
	"society":      true,
	"association":  true,
	"associates":   true,
	"foundation":   true,
	"brothers":     true,
	"group":        true,
	"library":      true,
	"museum":       true,
	"church":       true,
	"committee":    true,
	"council":      true,
	"department":   true,
	"agency":       true,
	"bureau":       true,
	"studio":       true,
	"studios":      true,
	"editions":     true,
}

// IsCorporateName reports whether a name string looks like an
// organization rather than a person, steering authority search scope.
func IsCorporateName(name string) bool {
	normalized := NormalizeName(name)
	if normalized == "" {
		return false
	}
	if strings.Contains(name, "&") {
		return true
	}
	for _, token := range strings.Fields(normalized) {
		if corporateMarkers[token] {
			return true
		}
	}
	return false
}

// squashToTokens lowercases and replaces every non-alphanumeric rune with
// a space, collapsing runs of whitespace.
func squashToTokens(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
