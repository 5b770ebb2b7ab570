package pipeline

import (
	"context"
	"encoding/json"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/labelsheet/pkg/cache"
	"github.com/matzehuels/labelsheet/pkg/code"
	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/label"
	"github.com/matzehuels/labelsheet/pkg/observability"
	"github.com/matzehuels/labelsheet/pkg/record"
	"github.com/matzehuels/labelsheet/pkg/sheet"
)

var discardLogger = log.NewWithOptions(io.Discard, log.Options{})

// documentNamespace scopes document IDs (UUID v5).
var documentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/labelsheet/document"))

// Runner executes builds with raster caching.
//
// The Runner holds no build state; one Runner may serve concurrent builds
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects cache.DefaultKeyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute builds the document and renders every requested format.
func (r *Runner) Execute(ctx context.Context, records []record.Record, opts Options) (*Result, error) {
	res, err := r.Build(ctx, records, opts)
	if err != nil {
		return nil, err
	}
	artifacts, err := r.Render(ctx, res, opts)
	if err != nil {
		return nil, err
	}
	res.Artifacts = artifacts
	return res, nil
}

// prepared is the outcome of the map step for one record.
type prepared struct {
	content  label.Content
	warnings []label.Warning
	hit      bool
	err      error
}

// Build lays out records and returns the sealed document.
// Per-record failures are collected in Result.Skipped; a layout overflow or
// invalid options abort the build.
func (r *Runner) Build(ctx context.Context, records []record.Record, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	gate, err := opts.Sheet.Gate()
	if err != nil {
		return nil, err
	}
	rast, err := code.NewRasterizer(opts.Code)
	if err != nil {
		return nil, err
	}
	asm, err := sheet.NewAssembler(opts.Sheet)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	total := len(records)
	records = opts.Filter.Apply(records)
	observability.Pipeline().OnBuildStart(ctx, len(records))
	logger.Info("building labels", "records", len(records), "filtered", total-len(records), "workers", opts.Workers)

	prep := r.prepareAll(ctx, records, rast, label.Normalizer{Gate: gate}, opts)

	res := &Result{Stats: Stats{Records: total, Filtered: total - len(records)}}
	for i, p := range prep {
		res.Warnings = append(res.Warnings, p.warnings...)
		for _, w := range p.warnings {
			logger.Debug("normalization warning", "id", w.Identifier, "warning", w.Message)
		}
		if p.hit {
			res.Stats.CacheHits++
		}
		if p.err != nil {
			s := Skipped{
				Identifier: records[i].Identifier,
				Index:      i,
				Code:       errors.GetCode(p.err),
				Reason:     errors.UserMessage(p.err),
			}
			res.Skipped = append(res.Skipped, s)
			observability.Pipeline().OnLabelSkipped(ctx, s.Identifier, string(s.Code))
			logger.Warn("skipped record", "id", s.Identifier, "index", i, "reason", s.Reason)
			continue
		}

		l, t, err := asm.Add(p.content)
		if err != nil {
			r.buildFailed(ctx, res, start, err, logger)
			return nil, err
		}
		if t != sheet.Stay {
			logger.Debug("layout moved", "to", t, "page", l.Page, "column", l.Column)
		}
	}

	res.Document = asm.Finish()
	res.DocumentID = DocumentID(res.Document)
	res.Stats.Placed = res.Document.Len()
	res.Stats.Skipped = len(res.Skipped)
	res.Stats.Pages = res.Document.NumPages()
	res.Stats.BuildTime = time.Since(start)

	observability.Pipeline().OnBuildComplete(ctx, res.hookStats(), res.Stats.BuildTime, nil)
	logger.Info("built labels",
		"labels", res.Stats.Placed,
		"pages", res.Stats.Pages,
		"skipped", res.Stats.Skipped,
		"cached", res.Stats.CacheHits,
		"duration", res.Stats.BuildTime)
	return res, nil
}

// prepareAll runs the map step. The result has one entry per record, in
// record order.
func (r *Runner) prepareAll(ctx context.Context, records []record.Record, rast *code.Rasterizer, norm label.Normalizer, opts Options) []prepared {
	out := make([]prepared, len(records))
	g := new(errgroup.Group)
	g.SetLimit(opts.Workers)
	for i, rec := range records {
		g.Go(func() error {
			out[i] = r.prepare(ctx, rec, rast, norm, opts)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (r *Runner) prepare(ctx context.Context, rec record.Record, rast *code.Rasterizer, norm label.Normalizer, opts Options) prepared {
	content, warnings, err := norm.Normalize(rec)
	if err != nil {
		return prepared{err: err}
	}
	raster, hit, err := r.raster(ctx, rast, content.Payload, opts.Refresh, opts.Logger)
	if err != nil {
		return prepared{warnings: warnings, err: err}
	}
	content, err = label.Assemble(content, raster, opts.Sheet.PixelsPerUnit)
	if err != nil {
		return prepared{warnings: warnings, err: err}
	}
	return prepared{content: content, warnings: warnings, hit: hit}
}

// Raster returns the code raster for payload, from the cache when present.
// Cache failures are logged and treated as misses.
func (r *Runner) Raster(ctx context.Context, rast *code.Rasterizer, payload string, refresh bool) (*image.Gray, bool, error) {
	return r.raster(ctx, rast, payload, refresh, r.logger())
}

func (r *Runner) raster(ctx context.Context, rast *code.Rasterizer, payload string, refresh bool, logger *log.Logger) (*image.Gray, bool, error) {
	key := r.Keyer.RasterKey(payload, cache.RasterKeyOpts{Code: rast.Options().Key()})

	if !refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			logger.Debug("raster cache read failed", "id", payload, "error", err)
		case hit:
			if img, err := code.DecodePNG(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "raster")
				return img, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "raster")
	}

	img, err := rast.Rasterize(payload)
	if err != nil {
		return nil, false, err
	}
	if data, err := code.EncodePNG(img); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLRaster); err != nil {
			logger.Debug("raster cache write failed", "id", payload, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "raster", len(data))
		}
	}
	return img, false, nil
}

// DocumentID derives a UUID v5 from the layout geometry, so identical
// builds share an ID.
func DocumentID(doc *sheet.Document) string {
	data, err := json.Marshal(struct {
		Config sheet.Config
		Pages  []sheet.Page
	}{doc.Config(), doc.Pages()})
	if err != nil {
		return uuid.Nil.String()
	}
	return uuid.NewSHA1(documentNamespace, data).String()
}

func (r *Runner) buildFailed(ctx context.Context, res *Result, start time.Time, err error, logger *log.Logger) {
	observability.Pipeline().OnBuildComplete(ctx, res.hookStats(), time.Since(start), err)
	logger.Error("build aborted", "error", err)
}

func (res *Result) hookStats() observability.BuildStats {
	return observability.BuildStats{
		Records:  res.Stats.Records,
		Placed:   res.Stats.Placed,
		Skipped:  len(res.Skipped),
		Pages:    res.Stats.Pages,
		CacheHit: res.Stats.CacheHits,
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.logger()
	}
}

// logger returns the runner's logger, discarding output when none is set.
func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return discardLogger
	}
	return r.Logger
}
