package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsolve/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
// The CLI logger is attached to each command's context before it runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "gridsolve positions subplots on non-orthogonal grids",
		Long: `gridsolve computes figure-fraction rectangles for subplot arrangements.

Plain grids are positioned by direct arithmetic. Arrangements where a subplot
straddles the boundaries of others are solved as a linear constraint system,
which lets floating subplots center between their neighbours.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.classifyCommand())
	root.AddCommand(c.linesCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.insetCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.completionCommand())

	return root
}
