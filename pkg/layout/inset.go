package layout

import (
	"github.com/matzehuels/gridsolve/pkg/constraint"
	"github.com/matzehuels/gridsolve/pkg/errors"
)

// Inset locations inside the host axes.
const (
	UpperRight = "upper right"
	UpperLeft  = "upper left"
	LowerLeft  = "lower left"
	LowerRight = "lower right"
)

// InsetRequest describes an inset colorbar and its background frame. Sizes
// are fractions of the host axes.
type InsetRequest struct {
	Loc string `json:"loc" toml:"loc"` // one of the inset locations; anything else means LowerRight

	Vertical bool `json:"vertical" toml:"vertical"`
	// Length runs along the colorbar, Width across it.
	Length float64 `json:"length" toml:"length"`
	Width  float64 `json:"width" toml:"width"`

	PadX float64 `json:"padx" toml:"padx"`
	PadY float64 `json:"pady" toml:"pady"`

	// LabelSpace is reserved inside the frame for tick and axis labels, on
	// the side named by TickLoc: bottom or top for horizontal colorbars,
	// left or right for vertical ones.
	LabelSpace float64 `json:"label_space" toml:"label_space"`
	TickLoc    string  `json:"tickloc" toml:"tickloc"`
}

// Inset is a solved inset: the colorbar rectangle and the frame behind it.
type Inset struct {
	Frame Rect `json:"frame"`
	Inset Rect `json:"inset"`
}

func (r InsetRequest) validate() error {
	if err := errors.ValidatePositive("inset length", r.Length); err != nil {
		return err
	}
	if err := errors.ValidatePositive("inset width", r.Width); err != nil {
		return err
	}
	for _, v := range []struct {
		name string
		v    float64
	}{{"inset padx", r.PadX}, {"inset pady", r.PadY}, {"inset label space", r.LabelSpace}} {
		if err := errors.ValidateNonNegative(v.name, v.v); err != nil {
			return err
		}
	}
	frame, _, _ := r.geometry()
	if frame[0] > 1 || frame[1] > 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"inset frame %gx%g does not fit inside its axes", frame[0], frame[1])
	}
	return nil
}

func (r InsetRequest) loc() string {
	switch r.Loc {
	case UpperRight, UpperLeft, LowerLeft:
		return r.Loc
	}
	return LowerRight
}

// geometry returns the frame size, the inset size and the inset offset
// within the frame.
func (r InsetRequest) geometry() (frame, inset, offset [2]float64) {
	offset = [2]float64{r.PadX, r.PadY}
	if r.Vertical {
		frame = [2]float64{2*r.PadX + r.Width + r.LabelSpace, 2*r.PadY + r.Length}
		inset = [2]float64{r.Width, r.Length}
		if r.TickLoc == "left" {
			offset[0] += r.LabelSpace
		}
	} else {
		frame = [2]float64{2*r.PadX + r.Length, 2*r.PadY + r.Width + r.LabelSpace}
		inset = [2]float64{r.Length, r.Width}
		if r.TickLoc == "" || r.TickLoc == "bottom" {
			offset[1] += r.LabelSpace
		}
	}
	return frame, inset, offset
}

// SolveInset places an inset colorbar with a default Engine.
func SolveInset(req InsetRequest) (Inset, error) {
	return NewEngine().SolveInset(req)
}

// SolveInset places the frame in the requested corner of the host axes and
// the colorbar inside it. Solver failures fall back to direct arithmetic.
func (e *Engine) SolveInset(req InsetRequest) (Inset, error) {
	if err := req.validate(); err != nil {
		return Inset{}, err
	}
	if err := e.available(); err == nil {
		in, err := e.solveInset(req)
		if err == nil {
			return in, nil
		}
		e.logger.Warn("falling back to inset arithmetic", "loc", req.loc(), "reason", err)
		e.layoutHooks().OnFallback(err)
	}
	return insetFallback(req), nil
}

func (e *Engine) solveInset(req InsetRequest) (Inset, error) {
	frame, inset, offset := req.geometry()

	sys := constraint.NewSystem()
	fx, fy := sys.NewVariable("frame.x"), sys.NewVariable("frame.y")
	cx, cy := sys.NewVariable("inset.x"), sys.NewVariable("inset.y")
	one, zero := constraint.Const(1), constraint.Const(0)

	sys.Add(
		constraint.Eq(cx.Expr(), fx.Expr().Add(offset[0]), constraint.Required).Labeled("inset x inside frame"),
		constraint.Eq(cy.Expr(), fy.Expr().Add(offset[1]), constraint.Required).Labeled("inset y inside frame"),
		constraint.Ge(fx.Expr(), zero, constraint.Required).Labeled("frame left in axes"),
		constraint.Ge(fy.Expr(), zero, constraint.Required).Labeled("frame bottom in axes"),
		constraint.Le(fx.Expr().Add(frame[0]), one, constraint.Required).Labeled("frame right in axes"),
		constraint.Le(fy.Expr().Add(frame[1]), one, constraint.Required).Labeled("frame top in axes"),
	)
	switch req.loc() {
	case UpperRight:
		sys.Add(constraint.Eq(fx.Expr().Add(frame[0]), one, constraint.Required),
			constraint.Eq(fy.Expr().Add(frame[1]), one, constraint.Required))
	case UpperLeft:
		sys.Add(constraint.Eq(fx.Expr(), zero, constraint.Required),
			constraint.Eq(fy.Expr().Add(frame[1]), one, constraint.Required))
	case LowerLeft:
		sys.Add(constraint.Eq(fx.Expr(), zero, constraint.Required),
			constraint.Eq(fy.Expr(), zero, constraint.Required))
	default:
		sys.Add(constraint.Eq(fx.Expr().Add(frame[0]), one, constraint.Required),
			constraint.Eq(fy.Expr(), zero, constraint.Required))
	}

	sol, err := e.solver.Solve(sys)
	if err != nil {
		return Inset{}, err
	}
	return Inset{
		Frame: Rect{Left: sol.Value(fx), Bottom: sol.Value(fy), Width: frame[0], Height: frame[1]},
		Inset: Rect{Left: sol.Value(cx), Bottom: sol.Value(cy), Width: inset[0], Height: inset[1]},
	}, nil
}

// insetFallback pins the frame to its corner. The frame of a validated
// request always fits inside the axes.
func insetFallback(req InsetRequest) Inset {
	frame, inset, offset := req.geometry()
	var x, y float64
	switch req.loc() {
	case UpperRight:
		x, y = 1-frame[0], 1-frame[1]
	case UpperLeft:
		y = 1 - frame[1]
	case LowerRight:
		x = 1 - frame[0]
	}
	return Inset{
		Frame: Rect{Left: x, Bottom: y, Width: frame[0], Height: frame[1]},
		Inset: Rect{Left: x + offset[0], Bottom: y + offset[1], Width: inset[0], Height: inset[1]},
	}
}
