package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labelsheet/pkg/catalog"
	"github.com/matzehuels/labelsheet/pkg/errors"
	recordio "github.com/matzehuels/labelsheet/pkg/io"
	"github.com/matzehuels/labelsheet/pkg/record"
)

// idsCommand creates the ids command.
func (c *CLI) idsCommand() *cobra.Command {
	var (
		count      int
		existing   []string
		catalogURI string
		seed       uint64
	)

	cmd := &cobra.Command{
		Use:   "ids",
		Short: "Generate unused record identifiers",
		Long: `Generate fresh six-digit record identifiers.

Identifiers already used by the records in --existing files (or in the
catalog given by --catalog) are never returned. One identifier is printed
per line.`,
		Example: `  labelsheet ids -n 20 --existing plants.csv
  labelsheet ids -n 5 --catalog mongodb://localhost:27017`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "count must be positive, got %d", count)
			}
			used, err := c.usedIdentifiers(cmd.Context(), existing, catalogURI)
			if err != nil {
				return err
			}
			var rng *rand.Rand
			if cmd.Flags().Changed("seed") {
				rng = rand.New(rand.NewPCG(seed, seed))
			} else {
				rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
			}
			return writeIdentifiers(cmd.OutOrStdout(), rng, used, count)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of identifiers")
	cmd.Flags().StringSliceVarP(&existing, "existing", "e", nil, "record files whose identifiers are taken")
	cmd.Flags().StringVar(&catalogURI, "catalog", "", "MongoDB URI whose identifiers are taken")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for reproducible output")

	return cmd
}

// usedIdentifiers collects the identifiers of every record file and the
// catalog.
func (c *CLI) usedIdentifiers(ctx context.Context, files []string, catalogURI string) (map[string]struct{}, error) {
	logger := loggerFromContext(ctx)
	used := map[string]struct{}{}
	for _, f := range files {
		recs, err := recordio.ReadRecords(f)
		if err != nil {
			return nil, fmt.Errorf("load records %s: %w", f, err)
		}
		for id := range record.IdentifierSet(recs) {
			used[id] = struct{}{}
		}
		logger.Debug("loaded identifiers", "file", f, "records", len(recs))
	}
	if catalogURI == "" {
		return used, nil
	}

	cat, err := catalog.Open(ctx, catalog.Options{URI: catalogURI})
	if err != nil {
		return nil, err
	}
	defer cat.Close(context.WithoutCancel(ctx))
	ids, err := cat.Identifiers(ctx)
	if err != nil {
		return nil, err
	}
	for id := range ids {
		used[id] = struct{}{}
	}
	logger.Debug("loaded identifiers", "catalog", catalogURI, "records", len(ids))
	return used, nil
}

// writeIdentifiers writes n fresh identifiers to w, one per line.
func writeIdentifiers(w io.Writer, rng *rand.Rand, used map[string]struct{}, n int) error {
	for range n {
		id, err := record.NewIdentifier(rng, used)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, id); err != nil {
			return err
		}
	}
	return nil
}
