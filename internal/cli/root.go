package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/labelsheet/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
// Every subcommand receives the CLI logger through its context.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Labelsheet prints specimen labels with DataMatrix codes",
		Long: `Labelsheet turns specimen records into printable label sheets.

Each label carries a DataMatrix code of the record identifier, a rotated
caption with the identifier and field number, and up to three lines of
taxonomic text. Labels are tiled in two columns onto A4 pages.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.idsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
