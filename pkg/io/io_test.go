package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/record"
)

var sample = []record.Record{
	{Identifier: "000123", FieldNumber: "KG 12", Genus: "Lithops", Species: "lesliei", Variety: "albinica", Tags: []string{"windowsill", "repot"}},
	{Identifier: "000124", Genus: "Conophytum", Species: "bilobum", Subspecies: "gracilistylum", Attribution: "mesa garden", Seed: true},
	{Identifier: "000125"},
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatTOML, FormatCSV} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(sample, &buf, format); err != nil {
				t.Fatalf("Write() error: %v", err)
			}
			got, err := Read(&buf, format)
			if err != nil {
				t.Fatalf("Read() error: %v", err)
			}
			if diff := cmp.Diff(sample, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadJSONObject(t *testing.T) {
	got, err := ReadJSON(strings.NewReader(`{"records": [{"identifier": "1", "ex": "Smith", "number": "a1"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	want := []record.Record{{Identifier: "1", Attribution: "Smith", FieldNumber: "a1"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSV(t *testing.T) {
	in := "ex, Identifier ,genus,seed,tags\n" +
		"Smith,000001,lithops,yes,a; b\n" +
		",000002,,,\n"
	// "yes" is not a ParseBool value.
	if _, err := ReadCSV(strings.NewReader(in)); !errors.Is(err, errors.ErrCodeInvalidRecord) {
		t.Errorf("ReadCSV() = %v, want %s", err, errors.ErrCodeInvalidRecord)
	}

	in = strings.Replace(in, "yes", "1", 1)
	got, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := []record.Record{
		{Identifier: "000001", Genus: "lithops", Attribution: "Smith", Seed: true, Tags: []string{"a", "b"}},
		{Identifier: "000002"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		in     string
	}{
		{"bad json", FormatJSON, `[{"identifier": }]`},
		{"bad toml", FormatTOML, `[[record]` + "\n"},
		{"unknown toml key", FormatTOML, "[[record]]\nidentifier = \"1\"\ncolour = \"red\"\n"},
		{"unknown csv column", FormatCSV, "identifier,colour\n1,red\n"},
		{"csv without identifier", FormatCSV, "genus\nlithops\n"},
		{"unknown format", Format("xml"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in), tt.format)
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("Read() = %v, want %s", err, errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestReadRecordsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plants.toml")
	if err := ExportRecords(path, sample); err != nil {
		t.Fatalf("ExportRecords() error: %v", err)
	}
	got, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords() error: %v", err)
	}
	if len(got) != len(sample) {
		t.Errorf("got %d records, want %d", len(got), len(sample))
	}

	if _, err := ReadRecords(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: %v, want %s", err, errors.ErrCodeFileNotFound)
	}
	if err := os.WriteFile(filepath.Join(dir, "plants.xml"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadRecords(filepath.Join(dir, "plants.xml")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("xml file: %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}
