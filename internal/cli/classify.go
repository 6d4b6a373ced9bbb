package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsolve/pkg/grid"
)

// classifyCommand creates the classify command for inspecting an arrangement.
func (c *CLI) classifyCommand() *cobra.Command {
	var req requestFlags

	cmd := &cobra.Command{
		Use:   "classify [request.toml]",
		Short: "Show how an arrangement is classified and what surrounds each subplot",
		Long: `Show how an arrangement is classified and what surrounds each subplot.

For every subplot the table lists its row and column span, what lies beyond
each side (occupied, empty or border) and whether it floats along an axis.
Floating subplots are free to move off the grid lines when solved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := req.load(args)
			if err != nil {
				return err
			}
			return runClassify(cmd.OutOrStdout(), r.Array)
		},
	}

	req.register(cmd)
	return cmd
}

func runClassify(w io.Writer, a grid.Array) error {
	geo, err := grid.Analyze(a)
	if err != nil {
		return err
	}

	kind := "non-orthogonal (constraint solve)"
	if grid.IsOrthogonal(a) {
		kind = "orthogonal (grid arithmetic)"
	}
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("%dx%d arrangement", geo.Rows, geo.Cols)))
	fmt.Fprintln(w, StyleDim.Render(a.String()))
	fmt.Fprintln(w, StyleValue.Render(kind))
	fmt.Fprintln(w, geometryTable(geo).Render())
	return nil
}

// geometryTable lays out one subplot per row.
func geometryTable(geo *grid.Geometry) *table.Table {
	rows := make([][]string, len(geo.IDs))
	for i, id := range geo.IDs {
		s := geo.Spans[id]
		row := []string{fmt.Sprint(id), fmtRange(s.Rows), fmtRange(s.Cols)}
		for _, side := range grid.Sides {
			row = append(row, fmtExposure(geo, id, side))
		}
		row = append(row, fmtFloating(geo, id))
		rows[i] = row
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Subplot", "Rows", "Cols", "Left", "Right", "Top", "Bottom", "Floats").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 7 && row >= 0 && row < len(rows) && rows[row][7] != "-" {
				return base.Inherit(styleCursor)
			}
			return base.Foreground(colorGray)
		})
}

func fmtRange(r grid.Range) string {
	if r.Start == r.End {
		return fmt.Sprint(r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// fmtExposure appends the reach to empty sides, e.g. "empty(1)".
func fmtExposure(geo *grid.Geometry, id int, side grid.Side) string {
	e := geo.Exposure[id][side]
	if e == grid.Empty {
		return fmt.Sprintf("%s(%d)", e, geo.Reach[id][side])
	}
	return e.String()
}

func fmtFloating(geo *grid.Geometry, id int) string {
	var axes []string
	for _, ax := range []grid.Axis{grid.X, grid.Y} {
		if geo.IsFloating(id, ax) {
			axes = append(axes, ax.String())
		}
	}
	if len(axes) == 0 {
		return "-"
	}
	return strings.Join(axes, ",")
}
