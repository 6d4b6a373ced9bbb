package layout

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridsolve/pkg/cache"
	"github.com/matzehuels/gridsolve/pkg/constraint"
	"github.com/matzehuels/gridsolve/pkg/errors"
	"github.com/matzehuels/gridsolve/pkg/grid"
	"github.com/matzehuels/gridsolve/pkg/observability"
)

// Engine computes subplot positions. It classifies each arrangement, solves
// non-orthogonal ones with the constraint solver and falls back to grid
// arithmetic whenever solving is not possible. An Engine is safe for
// concurrent use.
type Engine struct {
	solver  constraint.Solver
	builder Builder
	cache   cache.Cache
	logger  *log.Logger
	hooks   observability.LayoutHooks
	force   Strategy

	probe    sync.Once
	probeErr error
}

// Option configures an Engine.
type Option func(*Engine)

// WithSolver sets the constraint solver. The default is a SimplexSolver.
func WithSolver(s constraint.Solver) Option {
	return func(e *Engine) {
		if s != nil {
			e.solver = s
		}
	}
}

// WithCache memoizes positions in c.
func WithCache(c cache.Cache) Option {
	return func(e *Engine) {
		if c != nil {
			e.cache = c
		}
	}
}

// WithLogger sets the logger receiving fallback warnings and debug output.
// By default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithHooks sets the layout hooks. By default the globally registered
// observability.Layout hooks receive events.
func WithHooks(h observability.LayoutHooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// ForceStrategy makes every call use s regardless of classification. A
// failing forced strategy still falls back to grid arithmetic.
func ForceStrategy(s Strategy) Option {
	return func(e *Engine) { e.force = s }
}

// WithMinExtent sets the smallest track and subplot size in inches.
func WithMinExtent(inches float64) Option {
	return func(e *Engine) { e.builder.MinExtent = inches }
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		solver: constraint.NewSimplexSolver(),
		cache:  cache.NewNullCache(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute positions every subplot of a in a figure described by p using a
// fresh Engine with default options.
func Compute(a grid.Array, p Params) (Positions, error) {
	return NewEngine().Compute(a, p)
}

// Compute positions every subplot of a. Only configuration errors are
// returned; solver failures are logged and answered by the grid fallback.
func (e *Engine) Compute(a grid.Array, p Params) (Positions, error) {
	if err := p.Validate(a); err != nil {
		return nil, err
	}
	geo, err := grid.Analyze(a)
	if err != nil {
		return nil, err
	}

	forced := ""
	if e.force != nil {
		forced = e.force.Name()
	}
	key := cache.Key("layout", a, p, forced, e.builder.MinExtent)
	if data, ok := e.cache.Get(key); ok {
		var pos Positions
		if err := json.Unmarshal(data, &pos); err == nil {
			observability.Cache().OnCacheHit("layout")
			e.logger.Debug("layout cache hit", "subplots", len(pos))
			return pos, nil
		}
		e.cache.Delete(key)
	}
	observability.Cache().OnCacheMiss("layout")

	orthogonal := grid.IsOrthogonal(a)
	e.layoutHooks().OnClassify(orthogonal, len(geo.IDs))

	strategy := e.choose(orthogonal)
	e.logger.Debug("computing layout", "strategy", strategy.Name(), "orthogonal", orthogonal,
		"rows", geo.Rows, "cols", geo.Cols)

	start := time.Now()
	pos, err := strategy.Position(geo, p)
	e.layoutHooks().OnSolveComplete(strategy.Name(), time.Since(start), err)
	if err != nil {
		if errors.IsConfiguration(err) {
			return nil, err
		}
		e.logger.Warn("falling back to grid layout", "reason", err)
		e.layoutHooks().OnFallback(err)
		pos = fallback(geo, p)
	}

	if data, err := json.Marshal(pos); err == nil {
		e.cache.Set(key, data)
		observability.Cache().OnCacheSet("layout", len(data))
	}
	return pos, nil
}

// choose picks the strategy for one call. The solver is only probed the first
// time a non-orthogonal arrangement needs it.
func (e *Engine) choose(orthogonal bool) Strategy {
	if s, ok := e.force.(SolveStrategy); ok && s.Adapter.Solver == nil {
		s.Adapter.Solver = e.solver
		return s
	}
	if e.force != nil {
		return e.force
	}
	if orthogonal {
		return FallbackStrategy{}
	}
	if err := e.available(); err != nil {
		return FallbackStrategy{}
	}
	return SolveStrategy{Builder: e.builder, Adapter: Adapter{Solver: e.solver}}
}

// available probes the solver once. An unavailable solver is reported a
// single time and every later call uses the fallback.
func (e *Engine) available() error {
	e.probe.Do(func() {
		e.probeErr = e.solver.Available()
		if e.probeErr != nil {
			e.logger.Warn("constraint solver unavailable, using grid layout", "reason", e.probeErr)
			e.layoutHooks().OnFallback(e.probeErr)
		}
	})
	return e.probeErr
}

func (e *Engine) layoutHooks() observability.LayoutHooks {
	if e.hooks != nil {
		return e.hooks
	}
	return observability.Layout()
}
