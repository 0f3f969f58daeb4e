package textutil

import (
	"regexp"
	"strings"
)

// Matches a trailing parenthetical or bracketed qualifier such as
// "(Unabridged)" or "[sound recording]".
var trailingQualifier = regexp.MustCompile(`\s*[(\[][^)\]]*[)\]]\s*$`)

// Edition and packaging noise that sometimes trails a title without any
// separator punctuation.
var editionMarkers = []string{
	"unabridged",
	"abridged",
	"large print",
	"book club edition",
	"special edition",
	"annotated",
	"illustrated",
	"a novel",
}

// UnfluffTitle normalizes a work title for exact-match comparison by
// removing subtitle and edition noise: anything after a colon or
// semicolon, trailing parenthetical or bracketed qualifiers, "edited
// by..." credits, and bare edition markers. "Pride and Prejudice
// (Unabridged)" unfluffs to "Pride and Prejudice"; "Pride and Prejudice
// and Zombies" survives intact.
func UnfluffTitle(title string) string {
	unfluffed := strings.TrimSpace(title)
	if idx := strings.IndexAny(unfluffed, ":;"); idx >= 0 {
		unfluffed = unfluffed[:idx]
	}
	for {
		stripped := trailingQualifier.ReplaceAllString(unfluffed, "")
		if stripped == unfluffed {
			break
		}
		unfluffed = stripped
	}
	if idx := strings.Index(strings.ToLower(unfluffed), "edited by"); idx >= 0 {
		unfluffed = unfluffed[:idx]
	}
	lower := strings.ToLower(unfluffed)
	for _, marker := range editionMarkers {
		if strings.HasSuffix(lower, marker) {
			unfluffed = strings.TrimSpace(unfluffed[:len(unfluffed)-len(marker)])
			lower = strings.ToLower(unfluffed)
		}
	}
	return strings.TrimRight(strings.TrimSpace(unfluffed), " .,-")
}

// NormalizeTitle lowercases a title, folds diacritics, and reduces
// punctuation to spaces for fuzzy comparison.
func NormalizeTitle(title string) string {
	return squashToTokens(FoldDiacritics(title))
}
