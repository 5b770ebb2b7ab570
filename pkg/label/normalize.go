package label

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/record"
)

// EmptyLine replaces the text of a label whose record has no taxonomy.
const EmptyLine = "empty"

// MaxLines is the largest number of text lines on a label.
const MaxLines = 3

// Gate selects the condition for the subspecies clause of line 1.
type Gate int

const (
	// GateSpecies appends "ssp. <subspecies>" whenever the species is present.
	GateSpecies Gate = iota
	// GateSubspecies appends it only when the subspecies is present.
	GateSubspecies
)

// String returns the configuration name of the gate.
func (g Gate) String() string {
	if g == GateSubspecies {
		return "subspecies"
	}
	return "species"
}

// ParseGate parses a gate name as written in configuration files.
func ParseGate(s string) (Gate, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "species":
		return GateSpecies, nil
	case "subspecies":
		return GateSubspecies, nil
	}
	return GateSpecies, errors.New(errors.ErrCodeInvalidConfig, "invalid subspecies gate: %q (must be 'species' or 'subspecies')", s)
}

// Names holds normalized taxonomic attributes. An empty string means the
// attribute is not present.
type Names struct {
	Genus       string // abbreviated, e.g. "L."
	Species     string
	Subspecies  string
	Variety     string
	Cultivar    string
	Affinity    string
	Attribution string
}

// NormalizeNames applies the per-field casing rules to r.
func NormalizeNames(r record.Record) Names {
	// Casers keep state and are created per call.
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)
	return Names{
		Genus:       abbreviateGenus(r.Genus),
		Species:     apply(lower, r.Species),
		Subspecies:  apply(lower, r.Subspecies),
		Variety:     apply(lower, r.Variety),
		Cultivar:    apply(title, r.Cultivar),
		Affinity:    apply(title, r.Affinity),
		Attribution: apply(title, r.Attribution),
	}
}

// NormalizeFieldNumber upper-cases a field collection number.
func NormalizeFieldNumber(s string) string {
	return apply(cases.Upper(language.Und), s)
}

func apply(c cases.Caser, s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return c.String(s)
}

// abbreviateGenus keeps the capitalized first letter followed by a period.
func abbreviateGenus(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(string(r)) + "."
}

// Warning is a non-fatal finding about a record. The record is still placed.
type Warning struct {
	Identifier string
	Message    string
}

func (w Warning) String() string {
	return fmt.Sprintf("record %s: %s", w.Identifier, w.Message)
}

// Normalizer derives label content from records.
type Normalizer struct {
	Gate Gate
}

// Normalize produces content for r without its code raster.
// The identifier must be usable as a code payload; otherwise an
// ENCODING_ERROR is returned and the record should be skipped.
func (n Normalizer) Normalize(r record.Record) (Content, []Warning, error) {
	payload := strings.TrimSpace(r.Identifier)
	if err := errors.ValidatePayload(payload); err != nil {
		return Content{}, nil, err
	}

	names := NormalizeNames(r)
	lines := n.Lines(names)

	var warnings []Warning
	if !r.HasTaxonomy() {
		warnings = append(warnings, Warning{Identifier: payload, Message: "no taxonomic attributes, using placeholder line"})
	}
	if n.Gate == GateSpecies && names.Species != "" && names.Subspecies == "" {
		warnings = append(warnings, Warning{Identifier: payload, Message: "subspecies marker printed without a subspecies"})
	}

	return Content{
		Payload:     payload,
		FieldNumber: NormalizeFieldNumber(r.FieldNumber),
		Lines:       lines,
	}, warnings, nil
}

// Lines assembles the display lines for already-normalized names.
// The result has between one and MaxLines entries.
func (n Normalizer) Lines(names Names) []string {
	lines := make([]string, 0, MaxLines)
	for _, l := range []string{n.line1(names), line2(names), line3(names)} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		lines = append(lines, EmptyLine)
	}
	return lines
}

func (n Normalizer) line1(v Names) string {
	if v.Genus != "" && v.Species != "" && v.Subspecies != "" {
		return fmt.Sprintf("%s %s  ssp. %s", v.Genus, v.Species, v.Subspecies)
	}

	var parts []string
	if v.Genus != "" {
		parts = append(parts, v.Genus)
	}
	if v.Species != "" {
		parts = append(parts, v.Species)
	}
	gated := v.Subspecies != ""
	if n.Gate == GateSpecies {
		gated = v.Species != ""
	}
	if gated {
		parts = append(parts, strings.TrimSpace("ssp. "+v.Subspecies))
	}
	return strings.Join(parts, " ")
}

func line2(v Names) string {
	return joinPrefixed("v. ", v.Variety, "cv. ", v.Cultivar)
}

func line3(v Names) string {
	return joinPrefixed("aff. ", v.Affinity, "ex. ", v.Attribution)
}

// joinPrefixed joins prefix/value pairs, skipping pairs with an empty value.
func joinPrefixed(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			parts = append(parts, pairs[i]+pairs[i+1])
		}
	}
	return strings.Join(parts, " ")
}
