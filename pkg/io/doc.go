// Package io reads and writes specimen records.
//
// # Formats
//
// Three formats are supported, selected by file extension:
//
// JSON (.json): an array of records, or an object with a "records" array.
//
//	[
//	  {"identifier": "000123", "number": "KG 12", "genus": "Lithops",
//	   "species": "lesliei", "variety": "albinica", "tags": ["windowsill"]}
//	]
//
// TOML (.toml): one [[record]] table per record.
//
//	[[record]]
//	identifier = "000123"
//	genus = "Lithops"
//	species = "lesliei"
//	seed = true
//
// CSV (.csv): a header row naming the columns, in any order:
//
//	identifier,number,genus,species,subspecies,variety,cultivar,affinity,ex,tags,seed
//
// Only "identifier" is required. Tags are separated by semicolons; seed
// accepts the values understood by strconv.ParseBool and defaults to false.
//
// # Round trip
//
// Records written with [WriteJSON], [WriteTOML] or [WriteCSV] read back to
// equal values.
package io
