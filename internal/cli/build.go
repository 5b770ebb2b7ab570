package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labelsheet/pkg/catalog"
	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/io"
	"github.com/matzehuels/labelsheet/pkg/pipeline"
	"github.com/matzehuels/labelsheet/pkg/record"
)

// buildParams holds the command-line flags of the build command that are
// not part of the configuration file.
type buildParams struct {
	configPath  string
	output      string // base path of the written artifacts
	interactive bool   // pick records in a terminal list before building
	noCache     bool
	refresh     bool // re-rasterize even when cached

	genus  string
	tag    string
	seeds  bool
	plants bool

	// overlays on the configuration file, applied when the flag is set
	formats  string
	workers  int
	pngScale float64
	title    string
	borders  bool
	redis    string
	catalog  string
	owner    string
}

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var p buildParams

	cmd := &cobra.Command{
		Use:   "build [records]",
		Short: "Lay out records as printable label sheets",
		Long: `Lay out specimen records as printable label sheets.

Records are read from a JSON, TOML or CSV file, or from a MongoDB catalog
when no file is given and a catalog URI is configured. Records that cannot be
encoded are skipped and listed after the build; the remaining labels close up
without gaps.

Rendered code rasters are cached locally (or in redis with --redis) so
rebuilding a sheet only encodes new identifiers.`,
		Example: `  labelsheet build plants.csv
  labelsheet build plants.toml --genus Aloe --seeds -f pdf,png -o out/aloe
  labelsheet build --catalog mongodb://localhost:27017 --owner alice -i`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(p.configPath)
			if err != nil {
				return err
			}
			p.overlay(cmd, &cfg)

			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runBuild(cmd.Context(), input, cfg, p)
		},
	}

	cmd.Flags().StringVarP(&p.configPath, "config", "c", "", "configuration file (TOML)")
	cmd.Flags().StringVarP(&p.output, "output", "o", "", "output base path (default \"labels\" or the input name)")
	cmd.Flags().StringVarP(&p.formats, "format", "f", "", "output format(s): pdf (default), png, json (comma-separated)")
	cmd.Flags().BoolVarP(&p.interactive, "interactive", "i", false, "select records interactively")
	cmd.Flags().BoolVar(&p.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&p.refresh, "refresh", false, "re-encode codes even when cached")

	cmd.Flags().StringVar(&p.genus, "genus", "", "only records of this genus (case-insensitive)")
	cmd.Flags().StringVar(&p.tag, "tag", "", "only records carrying this tag")
	cmd.Flags().BoolVar(&p.seeds, "seeds", false, "only seed lots")
	cmd.Flags().BoolVar(&p.plants, "plants", false, "only grown plants")
	cmd.MarkFlagsMutuallyExclusive("seeds", "plants")

	cmd.Flags().IntVarP(&p.workers, "workers", "w", 0, "parallel encoders (default GOMAXPROCS)")
	cmd.Flags().Float64Var(&p.pngScale, "png-scale", 0, "PNG preview pixels per millimetre")
	cmd.Flags().StringVar(&p.title, "title", "", "PDF document title")
	cmd.Flags().BoolVar(&p.borders, "borders", false, "draw caption borders (layout debugging)")
	cmd.Flags().StringVar(&p.redis, "redis", "", "redis URL for a shared cache")
	cmd.Flags().StringVar(&p.catalog, "catalog", "", "MongoDB URI to read records from")
	cmd.Flags().StringVar(&p.owner, "owner", "", "catalog owner whose records are read")

	return cmd
}

// overlay applies the flags the user set on top of the configuration file.
func (p buildParams) overlay(cmd *cobra.Command, cfg *fileConfig) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Formats = pipeline.ParseFormats(p.formats)
	}
	if flags.Changed("workers") {
		cfg.Workers = p.workers
	}
	if flags.Changed("png-scale") {
		cfg.PNGScale = p.pngScale
	}
	if flags.Changed("title") {
		cfg.Title = p.title
	}
	if flags.Changed("borders") {
		cfg.Sheet.ShowBorders = p.borders
	}
	if flags.Changed("redis") {
		cfg.Redis = p.redis
	}
	if flags.Changed("catalog") {
		cfg.Catalog.URI = p.catalog
	}
	if flags.Changed("owner") {
		cfg.Catalog.Owner = p.owner
	}
}

// filter builds the record filter from the selection flags.
func (p buildParams) filter() record.Filter {
	f := record.Filter{Genus: p.genus, Tag: p.tag}
	switch {
	case p.seeds:
		f.Seeds = record.SeedsOnly
	case p.plants:
		f.Seeds = record.PlantsOnly
	}
	return f
}

// runBuild loads the records, builds the sheet and writes every artifact.
func (c *CLI) runBuild(ctx context.Context, input string, cfg fileConfig, p buildParams) error {
	logger := loggerFromContext(ctx)

	opts := cfg.options()
	opts.Filter = p.filter()
	opts.Refresh = p.refresh
	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	recs, err := c.loadRecords(ctx, input, cfg.Catalog, opts.Filter)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		printWarning("No records to print")
		return nil
	}
	printInfo("Loaded %s records", StyleNumber.Render(fmt.Sprint(len(recs))))

	if p.interactive {
		recs, err = pickRecords(opts.Filter.Apply(recs))
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			printDetail("No selection made")
			return nil
		}
	}

	runner, err := c.newRunner(ctx, cacheOpts{disabled: p.noCache, redisURL: cfg.Redis})
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Building %d labels...", len(recs)))
	spinner.Start()

	res, err := runner.Execute(ctx, recs, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	prog := newProgress(logger)
	paths, err := writeArtifacts(res.Artifacts, basePath(p.output, input))
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d files", len(paths)))

	printBuildSummary(res, paths)
	return nil
}

// loadRecords reads records from input, or from the catalog when input is
// empty. The catalog applies the filter server-side.
func (c *CLI) loadRecords(ctx context.Context, input string, opts catalog.Options, f record.Filter) ([]record.Record, error) {
	if input != "" {
		recs, err := io.ReadRecords(input)
		if err != nil {
			return nil, fmt.Errorf("load records %s: %w", input, err)
		}
		return recs, nil
	}
	if opts.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no records: pass a records file or configure a catalog URI")
	}

	spinner := newSpinnerWithContext(ctx, "Querying catalog...")
	spinner.Start()
	cat, err := catalog.Open(ctx, opts)
	if err != nil {
		spinner.StopWithError("Catalog unavailable")
		return nil, err
	}
	defer cat.Close(context.WithoutCancel(ctx))

	recs, err := cat.Records(ctx, f)
	if err != nil {
		spinner.StopWithError("Catalog query failed")
		return nil, err
	}
	spinner.StopWithSuccess("Catalog query complete")
	return recs, nil
}

// basePath derives the artifact base path. Without --output it is the input
// name without extension, or "labels". A known format extension on output is
// stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return defaultOutput
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(strings.ToLower(ext), ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each artifact next to base and returns the paths in
// artifact order.
func writeArtifacts(artifacts []pipeline.Artifact, base string) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := a.Filename(base)
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
