package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	gio "github.com/matzehuels/gridsolve/pkg/io"
	"github.com/matzehuels/gridsolve/pkg/layout"
	"github.com/matzehuels/gridsolve/pkg/render"
	"github.com/matzehuels/gridsolve/pkg/render/preview"
)

// Output formats.
const (
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"
	formatDOT = "dot"
)

// previewCommand creates the preview command for drawing computed layouts.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		req       requestFlags
		eng       engineFlags
		output    string
		formats   string
		showLines bool
		noLabels  bool
		scale     float64
	)

	cmd := &cobra.Command{
		Use:   "preview [request.toml]",
		Short: "Render the computed subplot rectangles",
		Long: `Render the computed subplot rectangles to SVG, PDF or PNG.

The figure is drawn at its physical size with one colored rectangle per
subplot. With --lines the plain grid's column and row boundaries are drawn
underneath, which shows how floating subplots moved off them.

PDF and PNG output require rsvg-convert on the PATH.`,
		Example: `  gridsolve preview --array "1 1 2 2; 0 3 3 0" --lines
  gridsolve preview examples/centered.toml -f svg,png -o centered`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := req.load(args)
			if err != nil {
				return err
			}
			fs := parseFormats(formats)
			if err := validateFormats(fs); err != nil {
				return err
			}
			base := output
			if base == "" {
				base = defaultBase(args)
			}
			var svgOpts []preview.SVGOption
			if noLabels {
				svgOpts = append(svgOpts, preview.WithoutLabels())
			}
			return c.runPreview(cmd.Context(), r, eng, base, fs, showLines, scale, svgOpts...)
		},
	}

	req.register(cmd)
	eng.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path without extension (default: <input> or layout)")
	cmd.Flags().StringVarP(&formats, "format", "f", formatSVG, "comma-separated formats: svg, pdf, png")
	cmd.Flags().BoolVar(&showLines, "lines", false, "draw the grid lines underneath")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "omit subplot ids")
	cmd.Flags().Float64Var(&scale, "scale", 2, "PNG scale factor")
	return cmd
}

func (c *CLI) runPreview(ctx context.Context, req *gio.Request, eng engineFlags, base string, formats []string, showLines bool, scale float64, svgOpts ...preview.SVGOption) error {
	logger := loggerFromContext(ctx)
	rep := &report{}
	e, err := c.newEngine(eng, layout.WithHooks(rep))
	if err != nil {
		return err
	}
	pos, err := e.Compute(req.Array, req.Params)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	opts := append([]preview.SVGOption{preview.WithFigure(req.Params.FigWidth, req.Params.FigHeight)}, svgOpts...)
	if showLines {
		l, err := layout.GridLines(req.Array, req.Params)
		if err != nil {
			return err
		}
		opts = append(opts, preview.WithLines(l))
	}
	svg := preview.RenderSVG(pos, opts...)
	logger.Debug("rendered preview", "subplots", len(pos), "bytes", len(svg))

	var written []string
	for _, f := range formats {
		data, err := convert(ctx, svg, f, scale)
		if err != nil {
			return err
		}
		path := base + "." + f
		if err := writeOutput(nil, path, data); err != nil {
			return err
		}
		written = append(written, path)
	}

	printSuccess("Preview complete")
	for _, path := range written {
		printFile(path)
	}
	fmt.Println(summaryLine(rep))
	return nil
}

// convert turns the SVG preview into format.
func convert(ctx context.Context, svg []byte, format string, scale float64) ([]byte, error) {
	if format == formatSVG {
		return svg, nil
	}
	if !render.Available() {
		return nil, fmt.Errorf("%s output requires rsvg-convert", format)
	}

	sp := newSpinner(ctx, fmt.Sprintf("Converting to %s...", strings.ToUpper(format)))
	sp.Start()
	defer sp.Stop()

	var (
		data []byte
		err  error
	)
	if format == formatPDF {
		data, err = render.ToPDF(svg)
	} else {
		data, err = render.ToPNG(svg, scale)
	}
	if err != nil {
		sp.Fail(fmt.Sprintf("%s conversion failed", strings.ToUpper(format)))
		return nil, fmt.Errorf("convert to %s: %w", format, err)
	}
	return data, nil
}

func validateFormats(formats []string) error {
	for _, f := range formats {
		switch f {
		case formatSVG, formatPDF, formatPNG:
		default:
			return fmt.Errorf("unknown preview format %q: want svg, pdf or png", f)
		}
	}
	return nil
}

// defaultBase derives the output path from the request file, or "layout" for
// inline arrangements.
func defaultBase(args []string) string {
	if len(args) == 0 {
		return "layout"
	}
	return strings.TrimSuffix(args[0], filepath.Ext(args[0]))
}
