package record

import "strings"

// Record is one catalogued specimen.
type Record struct {
	Identifier  string   `json:"identifier" toml:"identifier" bson:"uid"`
	FieldNumber string   `json:"number,omitempty" toml:"number" bson:"number,omitempty"`
	Genus       string   `json:"genus,omitempty" toml:"genus" bson:"genus,omitempty"`
	Species     string   `json:"species,omitempty" toml:"species" bson:"species,omitempty"`
	Subspecies  string   `json:"subspecies,omitempty" toml:"subspecies" bson:"subspecies,omitempty"`
	Variety     string   `json:"variety,omitempty" toml:"variety" bson:"variety,omitempty"`
	Cultivar    string   `json:"cultivar,omitempty" toml:"cultivar" bson:"cultivar,omitempty"`
	Affinity    string   `json:"affinity,omitempty" toml:"affinity" bson:"affinity,omitempty"`
	Attribution string   `json:"ex,omitempty" toml:"ex" bson:"ex,omitempty"`
	Tags        []string `json:"tags,omitempty" toml:"tags" bson:"tags,omitempty"`
	Seed        bool     `json:"seed,omitempty" toml:"seed" bson:"is_seed,omitempty"`
}

// Present reports whether an attribute value counts as present.
func Present(v string) bool {
	return strings.TrimSpace(v) != ""
}

// HasTaxonomy reports whether at least one taxonomic attribute is present.
// The field number is not taxonomic and is ignored.
func (r Record) HasTaxonomy() bool {
	for _, v := range []string{r.Genus, r.Species, r.Subspecies, r.Variety, r.Cultivar, r.Affinity, r.Attribution} {
		if Present(v) {
			return true
		}
	}
	return false
}

// HasTag reports whether the record carries tag (case-insensitive).
func (r Record) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(strings.TrimSpace(t), strings.TrimSpace(tag)) {
			return true
		}
	}
	return false
}
