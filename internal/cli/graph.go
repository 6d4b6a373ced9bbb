package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsolve/pkg/grid"
	"github.com/matzehuels/gridsolve/pkg/render/adjacency"
)

// graphCommand creates the graph command for drawing subplot adjacency.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		req    requestFlags
		opts   adjacency.Options
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "graph [request.toml]",
		Short: "Draw which subplots touch each other",
		Long: `Draw which subplots touch each other.

Each subplot becomes a node. Stacked subplots are joined by vertical edges and
side-by-side subplots by horizontal ones; dashed edges mark subplots that
share only part of a boundary. With --centering, dotted arrows point from each
floating subplot to the neighbours it centers on.

The graph is written as Graphviz DOT, or rendered to SVG with -f svg.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := req.load(args)
			if err != nil {
				return err
			}
			return runGraph(cmd.OutOrStdout(), r.Array, opts, format, output)
		},
	}

	req.register(cmd)
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show spans and side exposure in node labels")
	cmd.Flags().BoolVar(&opts.Centering, "centering", false, "draw centering targets of floating subplots")
	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot, svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func runGraph(w io.Writer, a grid.Array, opts adjacency.Options, format, output string) error {
	geo, err := grid.Analyze(a)
	if err != nil {
		return err
	}
	dot := adjacency.ToDOT(geo, opts)

	var data []byte
	switch format {
	case formatDOT:
		data = []byte(dot)
	case formatSVG:
		if data, err = adjacency.RenderSVG(dot); err != nil {
			return fmt.Errorf("render graph: %w", err)
		}
	default:
		return fmt.Errorf("unknown graph format %q: want dot or svg", format)
	}

	if err := writeOutput(w, output, data); err != nil {
		return err
	}
	if toFile(output) {
		printSuccess("Adjacency graph written")
		printFile(output)
	}
	return nil
}
