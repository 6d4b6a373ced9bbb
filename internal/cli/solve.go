package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	gio "github.com/matzehuels/gridsolve/pkg/io"
	"github.com/matzehuels/gridsolve/pkg/layout"
)

// solveCommand creates the solve command for computing subplot positions.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		req     requestFlags
		eng     engineFlags
		output  string
		asTable bool
	)

	cmd := &cobra.Command{
		Use:   "solve [request.toml]",
		Short: "Compute subplot rectangles for an arrangement",
		Long: `Compute subplot rectangles for an arrangement.

The request is read from a TOML or JSON file, or given inline with --array.
Positions are written as JSON in figure fraction (left, bottom, width, height)
ordered by subplot id. With --table they are printed as a table instead.

Non-orthogonal arrangements are solved as a constraint system. When solving
fails the grid layout is used and a warning is logged.`,
		Example: `  gridsolve solve --array "1 1 2 2; 0 3 3 0"
  gridsolve solve examples/centered.toml -o positions.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := req.load(args)
			if err != nil {
				return err
			}
			return c.runSolve(cmd.Context(), cmd.OutOrStdout(), r, eng, output, asTable)
		},
	}

	req.register(cmd)
	eng.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVarP(&asTable, "table", "t", false, "print a table instead of JSON")

	return cmd
}

// runSolve computes the layout and writes it to output.
func (c *CLI) runSolve(ctx context.Context, w io.Writer, req *gio.Request, eng engineFlags, output string, asTable bool) error {
	logger := loggerFromContext(ctx)
	rep := &report{}
	e, err := c.newEngine(eng, layout.WithHooks(rep))
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	pos, err := e.Compute(req.Array, req.Params)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done(fmt.Sprintf("Positioned %d subplots", len(pos)))

	if asTable {
		fmt.Fprintln(w, positionsTable(pos, 0).Render())
		fmt.Fprintln(w, summaryLine(rep))
		return nil
	}

	var buf bytes.Buffer
	if err := gio.WritePositions(pos, &buf); err != nil {
		return err
	}
	if err := writeOutput(w, output, buf.Bytes()); err != nil {
		return err
	}
	if toFile(output) {
		printSuccess("Layout complete")
		printFile(output)
		fmt.Println(summaryLine(rep))
		if rep.fallback != nil {
			printWarning("solver fell back to grid layout: %v", rep.fallback)
		}
		printNextStep("Preview", appName+" preview -o layout "+requestHint(req))
	}
	return nil
}

// requestHint renders an --array flag reproducing req's arrangement.
func requestHint(req *gio.Request) string {
	var b bytes.Buffer
	for r, row := range req.Array {
		if r > 0 {
			b.WriteString("; ")
		}
		for i, v := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprint(&b, v)
		}
	}
	return fmt.Sprintf("--array %q", b.String())
}
