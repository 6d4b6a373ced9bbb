package adjacency

import (
	"strings"
	"testing"

	"github.com/matzehuels/gridsolve/pkg/grid"
)

func analyze(t *testing.T, a grid.Array) *grid.Geometry {
	t.Helper()
	geo, err := grid.Analyze(a)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return geo
}

func TestToDOT(t *testing.T) {
	geo := analyze(t, grid.Array{{1, 1, 2, 2}, {0, 3, 3, 0}})
	dot := ToDOT(geo, Options{})

	for _, want := range []string{
		"digraph G {",
		`1 [label="1"];`,
		`3 [label="3"];`,
		"1 -> 2 [dir=none, constraint=false, color=steelblue];",
		"1 -> 3 [dir=none, style=dashed];",
		"2 -> 3 [dir=none, style=dashed];",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "dotted") {
		t.Error("centering edges drawn without Options.Centering")
	}
}

func TestToDOTCentering(t *testing.T) {
	geo := analyze(t, grid.Array{{1, 1, 2, 2}, {0, 3, 3, 0}})
	dot := ToDOT(geo, Options{Centering: true})

	for _, want := range []string{"3 -> 1 [style=dotted", "3 -> 2 [style=dotted"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	geo := analyze(t, grid.Array{{1, 1, 2, 2}, {0, 3, 3, 0}})
	dot := ToDOT(geo, Options{Detailed: true})

	if !strings.Contains(dot, `3 [label="3\nrows: 1-1\ncols: 1-2\nleft: empty x1\nright: empty x1"];`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox = %s, want %s", out, want)
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox without viewBox = %s, want unchanged", got)
	}
}
