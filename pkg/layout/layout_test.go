package layout

import (
	"bytes"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridsolve/pkg/cache"
	"github.com/matzehuels/gridsolve/pkg/constraint"
	"github.com/matzehuels/gridsolve/pkg/errors"
	"github.com/matzehuels/gridsolve/pkg/grid"
)

const tol = 1e-9

func approx(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func rectApprox(a, b Rect, eps float64) bool {
	return approx(a.Left, b.Left, eps) && approx(a.Bottom, b.Bottom, eps) &&
		approx(a.Width, b.Width, eps) && approx(a.Height, b.Height, eps)
}

type countingHooks struct {
	mu         sync.Mutex
	classified []bool
	strategies []string
	fallbacks  int
}

func (h *countingHooks) OnClassify(orthogonal bool, _ int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.classified = append(h.classified, orthogonal)
}

func (h *countingHooks) OnSolveComplete(strategy string, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.strategies = append(h.strategies, strategy)
}

func (h *countingHooks) OnFallback(error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fallbacks++
}

var (
	twoByTwo  = grid.Array{{1, 2}, {3, 4}}
	centered  = grid.Array{{1, 1, 2, 2}, {0, 3, 3, 0}}
	staggered = grid.Array{{1, 1, 1}, {2, 0, 3}}
)

func TestComputeGridPositions(t *testing.T) {
	pos, err := Compute(twoByTwo, DefaultParams())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	want := Positions{
		1: {Left: 0.0125, Bottom: 0.5125, Width: 0.4775, Height: 0.471875},
		2: {Left: 0.51, Bottom: 0.5125, Width: 0.4775, Height: 0.471875},
		3: {Left: 0.0125, Bottom: 0.015625, Width: 0.4775, Height: 0.471875},
		4: {Left: 0.51, Bottom: 0.015625, Width: 0.4775, Height: 0.471875},
	}
	if len(pos) != len(want) {
		t.Fatalf("len(pos) = %d, want %d", len(pos), len(want))
	}
	for id, w := range want {
		if got := pos[id]; !rectApprox(got, w, tol) {
			t.Errorf("pos[%d] = %v, want %v", id, got, w)
		}
	}
}

func TestSolveMatchesFallbackOnOrthogonal(t *testing.T) {
	panels := DefaultParams()
	panels.WRatios = []float64{1, 0.5, 2}
	panels.WPanels = []bool{false, true, false}
	panels.HSpace = []float64{0.4}

	ratios := DefaultParams()
	ratios.WRatios = []float64{1, 2, 3}
	ratios.HRatios = []float64{2, 1}
	ratios.WSpace = []float64{0.1, 0.3}

	tests := []struct {
		name string
		a    grid.Array
		p    Params
	}{
		{"2x2", twoByTwo, DefaultParams()},
		{"spanning", grid.Array{{1, 1, 2}, {3, 4, 2}}, ratios},
		{"panel column", grid.Array{{1, 2, 3}, {4, 4, 4}}, panels},
		{"single", grid.Array{{1}}, DefaultParams()},
		{"uniform", grid.Uniform(3, 4), DefaultParams()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !grid.IsOrthogonal(tt.a) {
				t.Fatalf("IsOrthogonal(%v) = false, want true", tt.a)
			}
			hooks := &countingHooks{}
			solved, err := NewEngine(ForceStrategy(SolveStrategy{}), WithHooks(hooks)).Compute(tt.a, tt.p)
			if err != nil {
				t.Fatalf("solve path: %v", err)
			}
			if hooks.fallbacks != 0 {
				t.Fatalf("solve path fell back %d times", hooks.fallbacks)
			}
			plain, err := NewEngine(ForceStrategy(FallbackStrategy{})).Compute(tt.a, tt.p)
			if err != nil {
				t.Fatalf("fallback path: %v", err)
			}
			for _, id := range plain.IDs() {
				if !rectApprox(solved[id], plain[id], tol) {
					t.Errorf("subplot %d: solve %v, fallback %v", id, solved[id], plain[id])
				}
			}
		})
	}
}

func TestContainmentAndNonOverlap(t *testing.T) {
	arrays := []grid.Array{
		twoByTwo,
		centered,
		staggered,
		{{1, 1, 0}, {0, 2, 2}},
		{{0, 1, 0}, {2, 2, 2}},
		{{1, 2, 2, 3}, {0, 4, 4, 0}, {5, 5, 6, 6}},
	}
	for _, a := range arrays {
		pos, err := Compute(a, DefaultParams())
		if err != nil {
			t.Fatalf("Compute(%v): %v", a, err)
		}
		ids := pos.IDs()
		for i, id := range ids {
			r := pos[id]
			if !r.Within(tol) {
				t.Errorf("%v: subplot %d = %v outside the figure", a, id, r)
			}
			if r.Width <= 0 || r.Height <= 0 {
				t.Errorf("%v: subplot %d = %v has no area", a, id, r)
			}
			for _, other := range ids[i+1:] {
				if r.Overlaps(pos[other], tol) {
					t.Errorf("%v: subplots %d %v and %d %v overlap", a, id, r, other, pos[other])
				}
			}
		}
	}
}

func TestContinuity(t *testing.T) {
	p := DefaultParams()
	p.WSpace = []float64{0.5}
	for _, strategy := range []Strategy{SolveStrategy{}, FallbackStrategy{}} {
		pos, err := NewEngine(ForceStrategy(strategy)).Compute(grid.Array{{1, 2}}, p)
		if err != nil {
			t.Fatalf("%s: %v", strategy.Name(), err)
		}
		if gap := pos[2].Left - pos[1].Right(); !approx(gap, 0.05, tol) {
			t.Errorf("%s: gap = %v, want 0.05", strategy.Name(), gap)
		}
		if !approx(pos[1].Bottom, pos[2].Bottom, tol) || !approx(pos[1].Top(), pos[2].Top(), tol) {
			t.Errorf("%s: rows differ: %v %v", strategy.Name(), pos[1], pos[2])
		}
	}
}

func TestRatioLaw(t *testing.T) {
	p := DefaultParams()
	p.WRatios = []float64{1, 2}
	for _, strategy := range []Strategy{SolveStrategy{}, FallbackStrategy{}} {
		pos, err := NewEngine(ForceStrategy(strategy)).Compute(grid.Array{{1, 2}}, p)
		if err != nil {
			t.Fatalf("%s: %v", strategy.Name(), err)
		}
		if ratio := pos[2].Width / pos[1].Width; !approx(ratio, 2, tol) {
			t.Errorf("%s: width ratio = %v, want 2", strategy.Name(), ratio)
		}
	}
}

func TestIdempotent(t *testing.T) {
	p := DefaultParams()
	p.WRatios = []float64{1, 3, 1, 2}
	first, err := Compute(centered, p)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	second, err := Compute(centered, p)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	for id, r := range first {
		if second[id] != r {
			t.Errorf("subplot %d: %v then %v", id, r, second[id])
		}
	}
}

func TestCentering(t *testing.T) {
	p := DefaultParams()
	p.WRatios = []float64{1, 1, 2, 1}

	hooks := &countingHooks{}
	pos, err := NewEngine(WithHooks(hooks)).Compute(centered, p)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(hooks.strategies) != 1 || hooks.strategies[0] != "solve" {
		t.Fatalf("strategies = %v, want [solve]", hooks.strategies)
	}
	if hooks.fallbacks != 0 {
		t.Fatalf("fell back %d times", hooks.fallbacks)
	}

	center := func(r Rect) float64 { return r.Left + r.Width/2 }
	mean := (center(pos[1]) + center(pos[2])) / 2
	if got := center(pos[3]); !approx(got, mean, 1e-6) {
		t.Errorf("center of 3 = %v, want %v", got, mean)
	}

	plain, err := Fallback(centered, p)
	if err != nil {
		t.Fatalf("Fallback: %v", err)
	}
	if !approx(pos[3].Width, plain[3].Width, 1e-6) {
		t.Errorf("width of 3 = %v, want span width %v", pos[3].Width, plain[3].Width)
	}
	if approx(center(pos[3]), center(plain[3]), 1e-3) {
		t.Errorf("subplot 3 stayed on its grid columns at %v", pos[3])
	}
	for _, id := range []int{1, 2} {
		if !rectApprox(pos[id], plain[id], tol) {
			t.Errorf("subplot %d = %v, want grid position %v", id, pos[id], plain[id])
		}
	}
}

func TestBalancedWithoutNeighbours(t *testing.T) {
	p := DefaultParams()
	p.WRatios = []float64{2, 1, 1}
	pos, err := NewEngine(ForceStrategy(SolveStrategy{})).Compute(grid.Array{{0, 1, 0}, {2, 2, 2}}, p)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	left := pos[1].Left - pos[2].Left
	right := pos[2].Right() - pos[1].Right()
	if !approx(left, right, 1e-6) {
		t.Errorf("free space left %v, right %v, want equal", left, right)
	}
}

func TestPinnedNonOrthogonalMatchesGrid(t *testing.T) {
	if grid.IsOrthogonal(staggered) {
		t.Fatal("staggered layout should be non-orthogonal")
	}
	solved, err := Compute(staggered, DefaultParams())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	plain, err := Fallback(staggered, DefaultParams())
	if err != nil {
		t.Fatalf("Fallback: %v", err)
	}
	for id, r := range plain {
		if !rectApprox(solved[id], r, tol) {
			t.Errorf("subplot %d: solve %v, grid %v", id, solved[id], r)
		}
	}
}

func TestUnavailableSolverDegrades(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{})
	hooks := &countingHooks{}
	e := NewEngine(WithSolver(constraint.Unavailable{}), WithLogger(logger), WithHooks(hooks))

	want, err := Fallback(centered, DefaultParams())
	if err != nil {
		t.Fatalf("Fallback: %v", err)
	}
	for range 3 {
		pos, err := e.Compute(centered, DefaultParams())
		if err != nil {
			t.Fatalf("Compute: %v", err)
		}
		for id, r := range want {
			if pos[id] != r {
				t.Errorf("subplot %d = %v, want %v", id, pos[id], r)
			}
		}
	}
	if n := strings.Count(buf.String(), "constraint solver unavailable"); n != 1 {
		t.Errorf("warning logged %d times, want 1:\n%s", n, buf.String())
	}
	if hooks.fallbacks != 1 {
		t.Errorf("fallbacks = %d, want 1", hooks.fallbacks)
	}
}

func TestForcedSolveFallsBackOnFailure(t *testing.T) {
	var buf bytes.Buffer
	e := NewEngine(
		ForceStrategy(SolveStrategy{}),
		WithSolver(constraint.Unavailable{Reason: "no backend"}),
		WithLogger(log.NewWithOptions(&buf, log.Options{})),
	)
	pos, err := e.Compute(twoByTwo, DefaultParams())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(pos) != 4 {
		t.Errorf("len(pos) = %d, want 4", len(pos))
	}
	if !strings.Contains(buf.String(), "falling back to grid layout") {
		t.Errorf("missing fallback warning:\n%s", buf.String())
	}
}

func TestInfeasiblePanelsFallBack(t *testing.T) {
	p := DefaultParams()
	p.WPanels = []bool{true, true}
	p.WRatios = []float64{1, 1}
	a := grid.Array{{1, 2}}

	geo, err := grid.Analyze(a)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if _, err := (Builder{}).Build(geo, p); !errors.IsInfeasible(err) {
		t.Fatalf("Build error = %v, want LAYOUT_INFEASIBLE", err)
	}

	hooks := &countingHooks{}
	pos, err := NewEngine(ForceStrategy(SolveStrategy{}), WithHooks(hooks)).Compute(a, p)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if hooks.fallbacks != 1 {
		t.Errorf("fallbacks = %d, want 1", hooks.fallbacks)
	}
	if !approx(pos[1].Width, 0.1, tol) {
		t.Errorf("panel width = %v, want 0.1", pos[1].Width)
	}
}

// widePanels sets two 5 inch panel columns beside one ratio column, more
// than a 10 inch figure has room for once margins and gaps are taken.
func widePanels(p Params) Params {
	p.WPanels = []bool{false, true, true}
	p.WRatios = []float64{1, 5, 5}
	return p
}

func TestMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		a    grid.Array
		p    func(Params) Params
	}{
		{"empty array", grid.Array{}, nil},
		{"empty rows", grid.Array{{}}, nil},
		{"ragged", grid.Array{{1, 2}, {3}}, nil},
		{"negative id", grid.Array{{1, -2}}, nil},
		{"non-rectangular", grid.Array{{1, 2, 1}}, nil},
		{"short wratios", grid.Array{{1, 2, 3}}, func(p Params) Params { p.WRatios = []float64{1, 2}; return p }},
		{"zero ratio", grid.Array{{1, 2}}, func(p Params) Params { p.WRatios = []float64{1, 0}; return p }},
		{"short hpanels", grid.Array{{1}, {2}}, func(p Params) Params { p.HPanels = []bool{true}; return p }},
		{"zero width", twoByTwo, func(p Params) Params { p.FigWidth = 0; return p }},
		{"infinite height", twoByTwo, func(p Params) Params { p.FigHeight = math.Inf(1); return p }},
		{"negative margin", twoByTwo, func(p Params) Params { p.Top = -1; return p }},
		{"negative spacing", twoByTwo, func(p Params) Params { p.WSpace = []float64{-0.1}; return p }},
		{"spacing length", grid.Array{{1, 2, 3}}, func(p Params) Params { p.WSpace = []float64{1, 1, 1}; return p }},
		{"margins exceed figure", twoByTwo, func(p Params) Params { p.Left, p.Right = 6, 5; return p }},
		{"panels fill width", grid.Array{{1, 2, 3}}, widePanels},
		{"panels fill width floating", grid.Array{{1, 2, 3}, {0, 4, 0}}, widePanels},
		{"only panels overflow", grid.Array{{1, 2}}, func(p Params) Params {
			p.WPanels, p.WRatios = []bool{true, true}, []float64{6, 6}
			return p
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			if tt.p != nil {
				p = tt.p(p)
			}
			if _, err := Compute(tt.a, p); !errors.IsConfiguration(err) {
				t.Errorf("Compute error = %v, want INVALID_CONFIG", err)
			}
			if _, err := Fallback(tt.a, p); !errors.IsConfiguration(err) {
				t.Errorf("Fallback error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestCacheHit(t *testing.T) {
	c := cache.NewMemoryCache(0)
	hooks := &countingHooks{}
	e := NewEngine(WithCache(c), WithHooks(hooks))

	first, err := e.Compute(centered, DefaultParams())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	second, err := e.Compute(centered, DefaultParams())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(hooks.strategies) != 1 {
		t.Errorf("strategies run = %v, want one", hooks.strategies)
	}
	for id, r := range first {
		if second[id] != r {
			t.Errorf("cached subplot %d = %v, want %v", id, second[id], r)
		}
	}

	p := DefaultParams()
	p.FigWidth = 12
	if _, err := e.Compute(centered, p); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(hooks.strategies) != 2 {
		t.Errorf("changed params should miss the cache, strategies = %v", hooks.strategies)
	}
	if c.Len() != 2 {
		t.Errorf("cache entries = %d, want 2", c.Len())
	}
}

func TestConcurrentCompute(t *testing.T) {
	e := NewEngine(WithCache(cache.NewMemoryCache(0)))
	want, err := e.Compute(centered, DefaultParams())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pos, err := e.Compute(centered, DefaultParams())
			if err != nil {
				t.Errorf("Compute: %v", err)
				return
			}
			for id, r := range want {
				if pos[id] != r {
					t.Errorf("subplot %d = %v, want %v", id, pos[id], r)
				}
			}
		}()
	}
	wg.Wait()
}

func TestGridLines(t *testing.T) {
	l, err := GridLines(twoByTwo, DefaultParams())
	if err != nil {
		t.Fatalf("GridLines: %v", err)
	}
	check := func(name string, got, want []float64) {
		t.Helper()
		if len(got) != len(want) {
			t.Fatalf("%s = %v, want %v", name, got, want)
		}
		for i := range want {
			if !approx(got[i], want[i], tol) {
				t.Errorf("%s[%d] = %v, want %v", name, i, got[i], want[i])
			}
		}
	}
	check("Lefts", l.Lefts, []float64{0.0125, 0.51})
	check("Rights", l.Rights, []float64{0.49, 0.9875})
	check("Tops", l.Tops, []float64{0.984375, 0.4875})
	check("Bottoms", l.Bottoms, []float64{0.5125, 0.015625})
}

func TestSpanCompaction(t *testing.T) {
	p := DefaultParams()
	p.WRatios = []float64{1, 0.5, 1}
	p.WPanels = []bool{false, true, false}
	a := grid.Array{{1, 1, 1}}

	for _, strategy := range []Strategy{SolveStrategy{}, FallbackStrategy{}} {
		pos, err := NewEngine(ForceStrategy(strategy)).Compute(a, p)
		if err != nil {
			t.Fatalf("%s: %v", strategy.Name(), err)
		}
		want := Rect{Left: 0.0575, Bottom: 0.015625, Width: 0.885, Height: 0.96875}
		if !rectApprox(pos[1], want, tol) {
			t.Errorf("%s: pos[1] = %v, want %v", strategy.Name(), pos[1], want)
		}
	}
}

func TestArithmeticTracks(t *testing.T) {
	ap := DefaultParams().axis(grid.X, 3)
	ap.ratios = []float64{1, 2, 1}
	tr := arithmeticTracks(ap)

	sizes := []float64{2.3375, 4.675, 2.3375}
	for i, want := range sizes {
		if got := tr.ends[i] - tr.starts[i]; !approx(got, want, tol) {
			t.Errorf("track %d size = %v, want %v", i, got, want)
		}
	}
	if !approx(tr.ends[2], 9.875, tol) {
		t.Errorf("last end = %v, want 9.875", tr.ends[2])
	}
	if got := tr.baseGap(); !approx(got, DefaultSpacing, tol) {
		t.Errorf("baseGap() = %v, want %v", got, DefaultSpacing)
	}
}

func TestBuilderConstraintTiers(t *testing.T) {
	geo, err := grid.Analyze(centered)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	m, err := (Builder{}).Build(geo, DefaultParams())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// 4 columns, 2 rows, 3 subplots with 4 edges each
	if got, want := len(m.Variables()), 2*4+2*2+3*4; got != want {
		t.Errorf("variables = %d, want %d", got, want)
	}
	tiers := []struct {
		st   constraint.Strength
		want int
	}{
		{constraint.Strong, 1},
		{constraint.Medium, 1},
		{constraint.Weak, 1},
	}
	for _, tt := range tiers {
		if got := m.Count(tt.st); got != tt.want {
			t.Errorf("Count(%v) = %d, want %d", tt.st, got, tt.want)
		}
	}
	if !m.floating[3][grid.X] || m.floating[3][grid.Y] {
		t.Errorf("floating[3] = %v, want [true false]", m.floating[3])
	}
}

func TestBuilderMinExtent(t *testing.T) {
	if got := (Builder{}).minExtent(); got != DefaultMinExtent {
		t.Errorf("minExtent() = %v, want %v", got, DefaultMinExtent)
	}
	if got := (Builder{MinExtent: 0.5}).minExtent(); got != 0.5 {
		t.Errorf("minExtent() = %v, want 0.5", got)
	}
}
