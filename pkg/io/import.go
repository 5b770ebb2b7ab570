package io

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/record"
)

// Format names a record file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatCSV  Format = "csv"
)

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown record file type %q (want .json, .toml or .csv)", filepath.Ext(path))
}

// CSVColumns is the canonical CSV header.
var CSVColumns = []string{"identifier", "number", "genus", "species", "subspecies", "variety", "cultivar", "affinity", "ex", "tags", "seed"}

// ReadRecords reads the record file at path.
func ReadRecords(path string) ([]record.Record, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "record file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	recs, err := Read(f, format)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return recs, nil
}

// Read decodes records in the given format from r. It does not close r.
func Read(r io.Reader, format Format) ([]record.Record, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatCSV:
		return ReadCSV(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported record format %q", format)
}

// ReadJSON decodes a JSON array of records, or an object holding one under
// "records".
func ReadJSON(r io.Reader) ([]record.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)

	var recs []record.Record
	if len(data) > 0 && data[0] == '{' {
		var doc struct {
			Records []record.Record `json:"records"`
		}
		err = json.Unmarshal(data, &doc)
		recs = doc.Records
	} else {
		err = json.Unmarshal(data, &recs)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return recs, nil
}

type tomlFile struct {
	Record []record.Record `toml:"record"`
}

// ReadTOML decodes [[record]] tables.
func ReadTOML(r io.Reader) ([]record.Record, error) {
	var doc tomlFile
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown toml key %q", undecoded[0].String())
	}
	return doc.Record, nil
}

// ReadCSV decodes records from CSV with a header row.
func ReadCSV(r io.Reader) ([]record.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read csv header")
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if !isCSVColumn(name) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown csv column %q", h)
		}
		cols[name] = i
	}
	if _, ok := cols["identifier"]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "csv header has no identifier column")
	}

	var recs []record.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read csv")
		}
		get := func(name string) string {
			if i, ok := cols[name]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		rec := record.Record{
			Identifier:  get("identifier"),
			FieldNumber: get("number"),
			Genus:       get("genus"),
			Species:     get("species"),
			Subspecies:  get("subspecies"),
			Variety:     get("variety"),
			Cultivar:    get("cultivar"),
			Affinity:    get("affinity"),
			Attribution: get("ex"),
			Tags:        splitTags(get("tags")),
		}
		if s := get("seed"); s != "" {
			rec.Seed, err = strconv.ParseBool(s)
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidRecord, "line %d: invalid seed value %q", line, s)
			}
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func isCSVColumn(name string) bool {
	for _, c := range CSVColumns {
		if c == name {
			return true
		}
	}
	return false
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ";") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
