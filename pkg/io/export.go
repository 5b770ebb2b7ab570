package io

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/record"
)

// WriteJSON encodes records as an indented JSON array.
func WriteJSON(recs []record.Record, w io.Writer) error {
	if recs == nil {
		recs = []record.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}

// WriteTOML encodes records as [[record]] tables.
func WriteTOML(recs []record.Record, w io.Writer) error {
	return toml.NewEncoder(w).Encode(tomlFile{Record: recs})
}

// WriteCSV encodes records with the canonical header.
func WriteCSV(recs []record.Record, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVColumns); err != nil {
		return err
	}
	for _, r := range recs {
		seed := ""
		if r.Seed {
			seed = strconv.FormatBool(true)
		}
		row := []string{
			r.Identifier, r.FieldNumber, r.Genus, r.Species, r.Subspecies,
			r.Variety, r.Cultivar, r.Affinity, r.Attribution,
			strings.Join(r.Tags, ";"), seed,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Write encodes records in the given format.
func Write(recs []record.Record, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(recs, w)
	case FormatTOML:
		return WriteTOML(recs, w)
	case FormatCSV:
		return WriteCSV(recs, w)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported record format %q", format)
}

// ExportRecords writes records to path in the format implied by its
// extension.
func ExportRecords(path string, recs []record.Record) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := Write(recs, f, format); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return f.Close()
}
