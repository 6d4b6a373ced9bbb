package layout_test

import (
	"fmt"

	"github.com/matzehuels/gridsolve/pkg/grid"
	"github.com/matzehuels/gridsolve/pkg/layout"
)

func ExampleCompute_grid() {
	// Two subplots side by side on a borderless 10x5 inch figure
	p := layout.Params{FigWidth: 10, FigHeight: 5, WSpace: []float64{0}}
	pos, err := layout.Compute(grid.Array{{1, 2}}, p)
	if err != nil {
		panic(err)
	}
	for _, id := range pos.IDs() {
		r := pos[id]
		fmt.Printf("%d: left=%.2f width=%.2f height=%.2f\n", id, r.Left, r.Width, r.Height)
	}
	// Output:
	// 1: left=0.00 width=0.50 height=1.00
	// 2: left=0.50 width=0.50 height=1.00
}

func ExampleCompute_centered() {
	// Subplot 3 sits below 1 and 2 and centers itself between them
	a := grid.Array{
		{1, 1, 2, 2},
		{0, 3, 3, 0},
	}
	p := layout.Params{FigWidth: 10, FigHeight: 5, WSpace: []float64{0}, HSpace: []float64{0}}

	fmt.Println("orthogonal:", grid.IsOrthogonal(a))
	pos, err := layout.Compute(a, p)
	if err != nil {
		panic(err)
	}
	fmt.Printf("3: left=%.2f width=%.2f\n", pos[3].Left, pos[3].Width)
	// Output:
	// orthogonal: false
	// 3: left=0.25 width=0.50
}

func ExampleSolveInset() {
	in, err := layout.SolveInset(layout.InsetRequest{
		Loc:        layout.UpperRight,
		Length:     0.4,
		Width:      0.05,
		PadX:       0.02,
		PadY:       0.02,
		LabelSpace: 0.05,
	})
	if err != nil {
		panic(err)
	}
	fmt.Printf("frame: %.2f %.2f %.2f %.2f\n", in.Frame.Left, in.Frame.Bottom, in.Frame.Width, in.Frame.Height)
	fmt.Printf("inset: %.2f %.2f %.2f %.2f\n", in.Inset.Left, in.Inset.Bottom, in.Inset.Width, in.Inset.Height)
	// Output:
	// frame: 0.56 0.86 0.44 0.14
	// inset: 0.58 0.93 0.40 0.05
}
