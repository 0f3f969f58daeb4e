// Package contributors manages the local contributor database backed by
// SQLite.
//
// A contributor is a person or organization credited on a book. The
// store keeps their name forms, their external authority identifier
// once resolved, and their contributions, which supply the known titles
// used as matching evidence during resolution.
//
// Merging never deletes rows. When resolution discovers that two
// contributor records share one authority identity, the duplicate's
// contributions are reassigned and the duplicate is marked superseded,
// so stale references keep resolving to a live record.
package contributors
