package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/labelsheet/pkg/buildinfo"
	"github.com/matzehuels/labelsheet/pkg/cache"
	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/observability"
	"github.com/matzehuels/labelsheet/pkg/render/sink"
)

// Render produces the artifacts of every format in opts.Formats, using
// cached artifacts of an identical document when available.
func (r *Runner) Render(ctx context.Context, res *Result, opts Options) ([]Artifact, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if res == nil || res.Document == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to render")
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	var out []Artifact
	for _, format := range opts.Formats {
		pages, err := r.renderCached(ctx, res, format, opts)
		if err != nil {
			err = errors.Wrap(errors.GetCode(err), err, "render %s", format)
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, err
		}
		for i, data := range pages {
			a := Artifact{Format: format, Data: data}
			if format == FormatPNG {
				a.Page = i + 1
			}
			out = append(out, a)
		}
	}

	res.Stats.RenderTime = time.Since(start)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, res.Stats.RenderTime, nil)
	opts.Logger.Info("rendered outputs", "formats", opts.Formats, "files", len(out), "duration", res.Stats.RenderTime)
	return out, nil
}

func (r *Runner) renderCached(ctx context.Context, res *Result, format string, opts Options) ([][]byte, error) {
	// Skipped records appear in the JSON export but not in the layout.
	docHash := cache.Hash([]byte(res.DocumentID + "|" + opts.Code.Key() + "|" + opts.Title + "|" + buildinfo.Version))
	if format == FormatJSON {
		skipped, _ := json.Marshal(res.Skipped)
		docHash = cache.Hash([]byte(docHash + "|" + string(skipped)))
	}
	key := r.Keyer.ArtifactKey(docHash, cache.ArtifactKeyOpts{Format: format, PNGScale: opts.PNGScale})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var pages [][]byte
			if json.Unmarshal(data, &pages) == nil && len(pages) > 0 {
				observability.Cache().OnCacheHit(ctx, "artifact")
				return pages, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	pages, err := renderFormat(res, format, opts)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(pages); err == nil {
		if r.Cache.Set(ctx, key, data, cache.TTLArtifact) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return pages, nil
}

func renderFormat(res *Result, format string, opts Options) ([][]byte, error) {
	doc := res.Document
	switch format {
	case FormatPDF:
		data, err := sink.RenderPDF(doc, sink.WithPDFTitle(opts.Title), sink.WithPDFCreator(buildinfo.Creator()))
		return [][]byte{data}, err
	case FormatPNG:
		return sink.RenderPNG(doc, sink.WithScale(opts.PNGScale), sink.WithPNGWorkers(opts.Workers))
	case FormatJSON:
		data, err := sink.RenderJSON(doc, sink.WithJSONDocumentID(res.DocumentID), sink.WithJSONSkipped(res.sinkSkipped()))
		return [][]byte{data}, err
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
}
