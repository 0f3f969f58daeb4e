// Package authority implements the record-linkage engine that matches a
// locally-known contributor against clusters returned by a VIAF-style
// name-authority service.
//
// The pipeline: ParseClusters turns a (possibly malformed) authority
// document into Cluster values; Extractor.Extract pulls one candidate
// identity plus match evidence out of each cluster, short-circuiting on
// the first confident name signal; Weigh converts the evidence into a
// cumulative score; Rank and SelectBest order candidates and enforce the
// acceptance threshold.
//
// Missing or malformed authority data never produces an error here.
// Every extraction step degrades to empty values and the pipeline
// continues with reduced evidence; an unparsable document simply yields
// zero candidates.
package authority
