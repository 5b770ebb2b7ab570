package record

import "strings"

// SeedMode selects records by their seed flag.
type SeedMode int

const (
	SeedsAny  SeedMode = iota // no filtering on the seed flag
	SeedsOnly                 // only seed lots
	PlantsOnly                // only grown plants
)

// Filter narrows a record sequence. Zero-valued fields match everything.
type Filter struct {
	Genus string
	Tag   string
	Seeds SeedMode
}

// IsZero reports whether the filter matches every record.
func (f Filter) IsZero() bool {
	return !Present(f.Genus) && !Present(f.Tag) && f.Seeds == SeedsAny
}

// Match reports whether r passes every configured criterion.
func (f Filter) Match(r Record) bool {
	if Present(f.Genus) && !strings.EqualFold(strings.TrimSpace(r.Genus), strings.TrimSpace(f.Genus)) {
		return false
	}
	if Present(f.Tag) && !r.HasTag(f.Tag) {
		return false
	}
	switch f.Seeds {
	case SeedsOnly:
		return r.Seed
	case PlantsOnly:
		return !r.Seed
	}
	return true
}

// Apply returns the records that match, preserving input order.
func (f Filter) Apply(recs []Record) []Record {
	if f.IsZero() {
		return recs
	}
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
