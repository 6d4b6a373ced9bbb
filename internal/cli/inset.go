package cli

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	gio "github.com/matzehuels/gridsolve/pkg/io"
	"github.com/matzehuels/gridsolve/pkg/layout"
)

// insetCommand creates the inset command for placing an inset colorbar.
func (c *CLI) insetCommand() *cobra.Command {
	var (
		in     layout.InsetRequest
		output string
	)

	cmd := &cobra.Command{
		Use:   "inset [request.toml]",
		Short: "Place an inset colorbar and its frame inside host axes",
		Long: `Place an inset colorbar and its frame inside host axes.

The colorbar is described by flags, or by the [inset] table of a request
file. All sizes are fractions of the host axes. The result holds the frame
and colorbar rectangles as JSON.`,
		Example: `  gridsolve inset --loc "upper left" --length 0.4 --width 0.05
  gridsolve inset --vertical --tickloc left --label-space 0.08`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := in
			if len(args) > 0 {
				r, err := gio.ImportRequest(args[0])
				if err != nil {
					return err
				}
				if r.Inset == nil {
					return fmt.Errorf("%s: no [inset] table", args[0])
				}
				req = *r.Inset
			}
			return c.runInset(cmd.OutOrStdout(), req, output)
		},
	}

	cmd.Flags().StringVar(&in.Loc, "loc", layout.LowerRight, "frame corner: upper right, upper left, lower left, lower right")
	cmd.Flags().BoolVar(&in.Vertical, "vertical", false, "draw a vertical colorbar")
	cmd.Flags().Float64Var(&in.Length, "length", 0.4, "colorbar length")
	cmd.Flags().Float64Var(&in.Width, "width", 0.05, "colorbar thickness")
	cmd.Flags().Float64Var(&in.PadX, "padx", 0.02, "horizontal frame padding")
	cmd.Flags().Float64Var(&in.PadY, "pady", 0.02, "vertical frame padding")
	cmd.Flags().Float64Var(&in.LabelSpace, "label-space", 0.07, "room for tick labels inside the frame")
	cmd.Flags().StringVar(&in.TickLoc, "tickloc", "", "tick side: bottom or top, left or right when vertical")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.ValidArgsFunction = completeRequestFiles
	return cmd
}

func (c *CLI) runInset(w io.Writer, req layout.InsetRequest, output string) error {
	e := layout.NewEngine(layout.WithLogger(c.Logger))
	in, err := e.SolveInset(req)
	if err != nil {
		return err
	}
	c.Logger.Debug("placed inset", "frame", in.Frame, "inset", in.Inset)

	var buf bytes.Buffer
	if err := gio.WriteInset(in, &buf); err != nil {
		return err
	}
	if err := writeOutput(w, output, buf.Bytes()); err != nil {
		return err
	}
	if toFile(output) {
		printSuccess("Inset placed")
		printFile(output)
	}
	return nil
}
