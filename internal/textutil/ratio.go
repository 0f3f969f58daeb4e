package textutil

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// MatchRatio returns a 0-100 similarity score between two contributor
// names. Both names are normalized (diacritics folded, punctuation
// stripped, lowercased) before comparison, and token order is ignored so
// "Doe, Jane" and "Jane Doe" compare as equals.
func MatchRatio(a, b string) int {
	na := NormalizeName(a)
	nb := NormalizeName(b)
	if na == "" || nb == "" {
		return 0
	}
	return fuzzy.TokenSortRatio(na, nb)
}

// TitleMatchRatio returns a 0-100 similarity score between two work
// titles after normalization. Token order is preserved: title words are
// positional in a way name parts are not.
func TitleMatchRatio(a, b string) int {
	na := NormalizeTitle(a)
	nb := NormalizeTitle(b)
	if na == "" || nb == "" {
		return 0
	}
	return fuzzy.Ratio(na, nb)
}
