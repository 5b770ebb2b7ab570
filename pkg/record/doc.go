// Package record defines the taxonomic record consumed by the label pipeline.
//
// A [Record] is owned by the caller: the pipeline only reads it. Every
// taxonomic attribute is optional; an empty (or whitespace-only) string means
// "not present". The identifier is mandatory and becomes the payload of the
// machine-readable code on the label.
//
// # Filtering
//
// [Filter] selects records by genus, tag, or seed flag before a build:
//
//	f := record.Filter{Genus: "lithops", Seeds: record.SeedsOnly}
//	recs = f.Apply(recs)
//
// # Identifiers
//
// [NewIdentifier] draws fresh six-digit identifiers that do not collide with
// an existing set, the format used by the specimen catalogue.
package record
