// Package viaf talks to a VIAF-style name authority service and
// resolves local contributors against it.
//
// Client wraps the service's two read endpoints: direct record lookup
// by authority identifier, and paged SRU search by name. Search results
// arrive ordered by library holdings count, which the ranking layer
// treats as a popularity signal.
//
// Resolver orchestrates full contributor resolution: it looks up or
// searches for the contributor, applies the accepted candidate's names
// and identifier to the database record, and merges records that turn
// out to share one authority identity.
package viaf
