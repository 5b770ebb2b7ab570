package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/labelsheet/pkg/catalog"
	"github.com/matzehuels/labelsheet/pkg/code"
	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/pipeline"
	"github.com/matzehuels/labelsheet/pkg/sheet"
)

// fileConfig is the layout of a labelsheet TOML configuration file.
//
//	workers = 4
//	formats = ["pdf", "png"]
//
//	[sheet]
//	label_length = 80
//
//	[code]
//	symbology = "datamatrix"
//
//	[catalog]
//	uri = "mongodb://localhost:27017"
type fileConfig struct {
	Workers  int      `toml:"workers"`
	Formats  []string `toml:"formats"`
	PNGScale float64  `toml:"png_scale"`
	Title    string   `toml:"title"`
	Redis    string   `toml:"redis,omitempty"`

	Sheet   sheet.Config    `toml:"sheet"`
	Code    code.Options    `toml:"code"`
	Catalog catalog.Options `toml:"catalog"`
}

// defaultFileConfig returns the configuration used when no file is given.
func defaultFileConfig() fileConfig {
	o := pipeline.DefaultOptions()
	return fileConfig{
		Formats:  o.Formats,
		PNGScale: o.PNGScale,
		Sheet:    o.Sheet,
		Code:     o.Code,
		Catalog: catalog.Options{
			Database:   catalog.DefaultDatabase,
			Collection: catalog.DefaultCollection,
		},
	}
}

// loadConfig reads path over the defaults. An empty path returns the
// defaults. Unknown keys are rejected so typos do not silently fall back.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys in %s: %s", path, strings.Join(names, ", "))
	}
	return cfg, nil
}

// options converts the file configuration into build options.
func (f fileConfig) options() pipeline.Options {
	return pipeline.Options{
		Sheet:    f.Sheet,
		Code:     f.Code,
		Workers:  f.Workers,
		Formats:  f.Formats,
		PNGScale: f.PNGScale,
		Title:    f.Title,
	}
}

// writeConfig encodes f as TOML.
func writeConfig(w io.Writer, f fileConfig) error {
	return toml.NewEncoder(w).Encode(f)
}

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as TOML.

Without --config the built-in defaults are printed, which makes a good
starting point for a custom configuration file:

  labelsheet config > labels.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(path)
			if err != nil {
				return err
			}
			opts := cfg.options()
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return writeConfig(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "configuration file (TOML)")

	return cmd
}
