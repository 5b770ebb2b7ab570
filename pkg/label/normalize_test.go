package label

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/record"
)

func TestNormalizeNames(t *testing.T) {
	got := NormalizeNames(record.Record{
		Genus:       " lithops ",
		Species:     "KarasMontana",
		Subspecies:  "Bella",
		Variety:     "LATERITIA",
		Cultivar:    "ruby RED",
		Affinity:    "optica",
		Attribution: "kakteen haage",
	})
	want := Names{
		Genus:       "L.",
		Species:     "karasmontana",
		Subspecies:  "bella",
		Variety:     "lateritia",
		Cultivar:    "Ruby Red",
		Affinity:    "Optica",
		Attribution: "Kakteen Haage",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NormalizeNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeFieldNumber(t *testing.T) {
	tests := map[string]string{
		"sb 123": "SB 123",
		"  c77 ": "C77",
		"":       "",
		"   ":    "",
	}
	for in, want := range tests {
		if got := NormalizeFieldNumber(in); got != want {
			t.Errorf("NormalizeFieldNumber(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		gate Gate
		rec  record.Record
		want []string
	}{
		{
			name: "abbreviated triple",
			rec:  record.Record{Genus: "Lithops", Species: "karasmontana", Subspecies: "bella"},
			want: []string{"L. karasmontana  ssp. bella"},
		},
		{
			name: "abbreviated triple with subspecies gate",
			gate: GateSubspecies,
			rec:  record.Record{Genus: "Lithops", Species: "karasmontana", Subspecies: "bella"},
			want: []string{"L. karasmontana  ssp. bella"},
		},
		{
			name: "genus only",
			rec:  record.Record{Genus: "conophytum"},
			want: []string{"C."},
		},
		{
			name: "species gate prints bare marker",
			rec:  record.Record{Genus: "Lithops", Species: "lesliei"},
			want: []string{"L. lesliei ssp."},
		},
		{
			name: "subspecies gate omits marker",
			gate: GateSubspecies,
			rec:  record.Record{Genus: "Lithops", Species: "lesliei"},
			want: []string{"L. lesliei"},
		},
		{
			name: "species gate drops orphan subspecies",
			rec:  record.Record{Genus: "Lithops", Subspecies: "bella"},
			want: []string{"L."},
		},
		{
			name: "subspecies gate keeps orphan subspecies",
			gate: GateSubspecies,
			rec:  record.Record{Genus: "Lithops", Subspecies: "bella"},
			want: []string{"L. ssp. bella"},
		},
		{
			name: "line 1 omitted without genus species subspecies",
			rec:  record.Record{Variety: "Rubra", Cultivar: "ruby"},
			want: []string{"v. rubra cv. Ruby"},
		},
		{
			name: "all three lines",
			rec: record.Record{
				Genus: "Lithops", Species: "aucampiae", Subspecies: "euniceae",
				Variety: "fluminalis", Affinity: "bromfieldii", Attribution: "mesa garden",
			},
			want: []string{
				"L. aucampiae  ssp. euniceae",
				"v. fluminalis",
				"aff. Bromfieldii ex. Mesa Garden",
			},
		},
		{
			name: "attribution only",
			rec:  record.Record{Attribution: "koehres"},
			want: []string{"ex. Koehres"},
		},
		{
			name: "no taxonomy",
			rec:  record.Record{FieldNumber: "SB 1"},
			want: []string{EmptyLine},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Normalizer{Gate: tt.gate}
			got := n.Lines(NormalizeNames(tt.rec))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
			}
			if len(got) > MaxLines {
				t.Errorf("Lines() returned %d lines, max %d", len(got), MaxLines)
			}
		})
	}
}

func TestLinesNeverEmpty(t *testing.T) {
	for _, gate := range []Gate{GateSpecies, GateSubspecies} {
		got := Normalizer{Gate: gate}.Lines(Names{})
		if diff := cmp.Diff([]string{EmptyLine}, got); diff != "" {
			t.Errorf("gate %v: Lines(empty) mismatch (-want +got):\n%s", gate, diff)
		}
	}
}

func TestNormalize(t *testing.T) {
	n := Normalizer{}
	c, warnings, err := n.Normalize(record.Record{
		Identifier:  " 798670 ",
		FieldNumber: "sb 455",
		Genus:       "Lithops",
		Species:     "olivacea",
		Subspecies:  "nebrownii",
	})
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Normalize() warnings = %v, want none", warnings)
	}
	want := Content{
		Payload:     "798670",
		FieldNumber: "SB 455",
		Lines:       []string{"L. olivacea  ssp. nebrownii"},
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeWarnsWithoutTaxonomy(t *testing.T) {
	c, warnings, err := Normalizer{}.Normalize(record.Record{Identifier: "123456"})
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Identifier != "123456" {
		t.Fatalf("Normalize() warnings = %v, want one for 123456", warnings)
	}
	if diff := cmp.Diff([]string{EmptyLine}, c.Lines); diff != "" {
		t.Errorf("Lines mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeRejectsBadIdentifier(t *testing.T) {
	for _, id := range []string{"", "   ", "Grün-1", "12\n3"} {
		_, _, err := Normalizer{}.Normalize(record.Record{Identifier: id, Genus: "Lithops"})
		if !errors.Is(err, errors.ErrCodeEncoding) {
			t.Errorf("Normalize(%q) error = %v, want ENCODING_ERROR", id, err)
		}
	}
}

func TestParseGate(t *testing.T) {
	tests := []struct {
		in      string
		want    Gate
		wantErr bool
	}{
		{"", GateSpecies, false},
		{"species", GateSpecies, false},
		{"Subspecies", GateSubspecies, false},
		{"genus", GateSpecies, true},
	}
	for _, tt := range tests {
		got, err := ParseGate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseGate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseGate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
