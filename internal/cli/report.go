package cli

import (
	"fmt"
	"time"
)

// report records what the engine did during one Compute call. It is passed
// to the engine as its layout hooks.
type report struct {
	orthogonal bool
	subplots   int
	strategy   string
	elapsed    time.Duration
	fallback   error
}

func (r *report) OnClassify(orthogonal bool, subplots int) {
	r.orthogonal, r.subplots = orthogonal, subplots
}

func (r *report) OnSolveComplete(strategy string, elapsed time.Duration, err error) {
	r.strategy, r.elapsed = strategy, elapsed
}

func (r *report) OnFallback(err error) { r.fallback = err }

func (r *report) reset() { *r = report{} }

// cached reports whether the last call was answered from the cache, in which
// case no strategy ran.
func (r *report) cached() bool { return r.strategy == "" && r.fallback == nil }

func (r *report) parts() []string {
	if r.cached() {
		return []string{"cached"}
	}
	kind := "non-orthogonal"
	if r.orthogonal {
		kind = "orthogonal"
	}
	parts := []string{fmt.Sprintf("%d subplots", r.subplots), kind}
	switch {
	case r.fallback != nil && r.strategy == strategySolve:
		parts = append(parts, "solve failed", strategyFallback)
	case r.fallback != nil:
		parts = append(parts, strategyFallback)
	default:
		parts = append(parts, r.strategy)
	}
	return append(parts, r.elapsed.Round(time.Microsecond).String())
}
