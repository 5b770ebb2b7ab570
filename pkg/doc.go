// Package pkg provides the libraries behind the labelsheet CLI.
//
// # Overview
//
// Labelsheet turns specimen records (plants and seed lots) into printable
// label sheets. Every label carries a DataMatrix code of the record
// identifier, a rotated caption and up to three lines of taxonomic text.
// Labels are tiled in two columns onto multi-page sheets.
//
// # Architecture
//
// The data flow through labelsheet:
//
//	records (JSON / TOML / CSV / MongoDB)
//	         ↓
//	    [record] filter
//	         ↓
//	    [label] normalize text   [code] encode + rasterize (cached)
//	         ↓                          ↓
//	    [sheet] place labels, advance the cursor, seal the document
//	         ↓
//	    [render/sink] PDF / PNG / JSON
//
// [pipeline] runs these steps: a parallel map over the records followed by a
// sequential reduce that keeps the input order.
//
// # Packages
//
//   - [record]: Specimen records, filters, identifier generation
//   - [label]: Taxonomic text normalization and label content
//   - [code]: DataMatrix/QR encoding and raster resampling
//   - [sheet]: Page geometry, layout cursor, placer and document
//   - [render/sink]: Output formats (PDF, PNG, JSON)
//   - [pipeline]: Build and render orchestration with caching
//   - [cache]: File, redis and null caches with key derivation
//   - [catalog]: MongoDB record source
//   - [io]: Record import and export
//   - [fonts]: Embedded label font
//   - [errors]: Coded errors shared by every package
//   - [observability]: Hooks for pipeline, cache and catalog events
//   - [buildinfo]: Version information set at build time
//
// # Quick Start
//
//	recs, _ := io.ReadRecords("plants.csv")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, _ := runner.Execute(ctx, recs, pipeline.DefaultOptions())
//	os.WriteFile("labels.pdf", res.Artifacts[0].Data, 0o644)
package pkg
