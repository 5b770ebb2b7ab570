// Package label turns taxonomic records into label content.
//
// # Normalization
//
// [Normalizer] applies field-specific casing to a [record.Record] and derives
// up to three display lines:
//
//   - Line 1: genus, species, and subspecies ("L. karasmontana  ssp. bella")
//   - Line 2: variety and cultivar ("v. lateritia cv. Ruby")
//   - Line 3: affinity and attribution ("aff. Optica ex. Haage")
//
// Absent attributes are left out of their line and empty lines are dropped.
// A record without any taxonomy gets the single placeholder line "empty", so
// a label never has zero visible lines.
//
// # Subspecies gate
//
// Outside the abbreviated triple form the subspecies clause is gated by a
// named parameter. [GateSpecies] tests presence of the species (the catalogue's
// historical behaviour, which prints a bare "ssp." marker when the subspecies
// is missing); [GateSubspecies] tests the subspecies itself.
//
// # Assembly
//
// [Assemble] attaches a rasterized code to normalized content and fixes its
// physical side length, producing the immutable [Content] consumed by the
// sheet placer.
package label
