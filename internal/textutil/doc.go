// Package textutil provides the string normalization and fuzzy comparison
// primitives the authority matching engine consumes: diacritic folding,
// contributor name ratios, sort-name guessing, corporate-name detection,
// and title "unfluffing" for exact-match comparison.
package textutil
