// Package fetchcache provides a local cache of fetched authority
// documents keyed by URL.
//
// Authority records change rarely, so re-resolving a contributor should
// not hammer the remote service. Each fetched body is stored under the
// cache directory as a content file named by the URL's SHA-256 digest,
// with a JSON index mapping URLs to fetch timestamps. Entries older
// than the configured maximum age are re-fetched transparently.
//
// A cache constructed with an empty directory is a pass-through: every
// Get goes to the network and nothing is stored.
package fetchcache
