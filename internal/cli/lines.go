package cli

import (
	"bytes"
	"io"

	"github.com/spf13/cobra"

	gio "github.com/matzehuels/gridsolve/pkg/io"
	"github.com/matzehuels/gridsolve/pkg/layout"
)

// linesCommand creates the lines command for printing grid boundaries.
func (c *CLI) linesCommand() *cobra.Command {
	var (
		req    requestFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "lines [request.toml]",
		Short: "Print the column and row boundaries of the grid",
		Long: `Print the column and row boundaries of the grid in figure fraction.

Columns run left to right and rows top to bottom. The boundaries are those of
the plain grid, before any floating subplot is moved off them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := req.load(args)
			if err != nil {
				return err
			}
			return runLines(cmd.OutOrStdout(), r, output)
		},
	}

	req.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func runLines(w io.Writer, req *gio.Request, output string) error {
	l, err := layout.GridLines(req.Array, req.Params)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := gio.WriteLines(l, &buf); err != nil {
		return err
	}
	if err := writeOutput(w, output, buf.Bytes()); err != nil {
		return err
	}
	if toFile(output) {
		printSuccess("Grid lines written")
		printFile(output)
	}
	return nil
}
