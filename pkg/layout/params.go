package layout

import (
	"math"

	"github.com/matzehuels/gridsolve/pkg/errors"
	"github.com/matzehuels/gridsolve/pkg/grid"
)

// Defaults used by [DefaultParams] and by normalization of unset fields.
const (
	DefaultFigWidth  = 10.0  // inches
	DefaultFigHeight = 8.0   // inches
	DefaultMargin    = 0.125 // inches
	DefaultSpacing   = 0.2   // inches
)

// Params describes the physical figure a layout is computed for.
// All lengths are in inches.
type Params struct {
	FigWidth  float64 `json:"fig_width" toml:"fig_width"`
	FigHeight float64 `json:"fig_height" toml:"fig_height"`

	// WSpace and HSpace hold the gaps between adjacent columns and rows:
	// either one value per gap, a single value applied to every gap, or
	// nothing for DefaultSpacing.
	WSpace []float64 `json:"wspace,omitempty" toml:"wspace,omitempty"`
	HSpace []float64 `json:"hspace,omitempty" toml:"hspace,omitempty"`

	Left   float64 `json:"left" toml:"left"`
	Right  float64 `json:"right" toml:"right"`
	Top    float64 `json:"top" toml:"top"`
	Bottom float64 `json:"bottom" toml:"bottom"`

	// WRatios and HRatios are relative track sizes; nil means uniform. For a
	// panel track the ratio is its fixed size in inches instead.
	WRatios []float64 `json:"wratios,omitempty" toml:"wratios,omitempty"`
	HRatios []float64 `json:"hratios,omitempty" toml:"hratios,omitempty"`
	WPanels []bool    `json:"wpanels,omitempty" toml:"wpanels,omitempty"`
	HPanels []bool    `json:"hpanels,omitempty" toml:"hpanels,omitempty"`
}

// DefaultParams returns a 10x8 inch figure with 0.125 inch margins and the
// default spacing.
func DefaultParams() Params {
	return Params{
		FigWidth:  DefaultFigWidth,
		FigHeight: DefaultFigHeight,
		Left:      DefaultMargin,
		Right:     DefaultMargin,
		Top:       DefaultMargin,
		Bottom:    DefaultMargin,
	}
}

// Validate checks p against the arrangement a. Every failure carries the
// INVALID_CONFIG code.
func (p Params) Validate(a grid.Array) error {
	if _, err := grid.New(a); err != nil {
		return err
	}
	for _, dim := range []struct {
		name string
		v    float64
	}{{"figure width", p.FigWidth}, {"figure height", p.FigHeight}} {
		if math.IsInf(dim.v, 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be finite", dim.name)
		}
		if err := errors.ValidatePositive(dim.name, dim.v); err != nil {
			return err
		}
	}
	for _, m := range []struct {
		name string
		v    float64
	}{{"left margin", p.Left}, {"right margin", p.Right}, {"top margin", p.Top}, {"bottom margin", p.Bottom}} {
		if err := errors.ValidateNonNegative(m.name, m.v); err != nil {
			return err
		}
	}

	for _, ax := range []grid.Axis{grid.X, grid.Y} {
		tracks := a.Cols()
		if ax == grid.Y {
			tracks = a.Rows()
		}
		spec := p.raw(ax)
		if err := errors.ValidateGaps(spec.names[0], spec.gaps, tracks); err != nil {
			return err
		}
		if err := errors.ValidateLength(spec.names[1], len(spec.ratios), tracks); err != nil {
			return err
		}
		for i, r := range spec.ratios {
			if !(r > 0) || math.IsInf(r, 0) {
				return errors.New(errors.ErrCodeInvalidConfig, "%s[%d] must be positive, got %g", spec.names[1], i, r)
			}
		}
		if err := errors.ValidateLength(spec.names[2], len(spec.panels), tracks); err != nil {
			return err
		}

		ap := p.axis(ax, tracks)
		if ap.available() <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig,
				"margins and spacing along %s leave no room in a %g inch figure", ax, ap.extent)
		}
		if err := ap.validatePanels(ax); err != nil {
			return err
		}
	}
	return nil
}

// rawAxis is the unnormalized view of one axis of Params.
type rawAxis struct {
	names  [3]string
	gaps   []float64
	ratios []float64
	panels []bool
}

func (p Params) raw(ax grid.Axis) rawAxis {
	if ax == grid.X {
		return rawAxis{[3]string{"wspace", "wratios", "wpanels"}, p.WSpace, p.WRatios, p.WPanels}
	}
	return rawAxis{[3]string{"hspace", "hratios", "hpanels"}, p.HSpace, p.HRatios, p.HPanels}
}

// axisParams is one axis of Params after normalization. Coordinates along an
// axis run from its start edge: left for X, top for Y.
type axisParams struct {
	extent      float64
	startMargin float64
	endMargin   float64
	gaps        []float64 // len(tracks)-1
	ratios      []float64 // len(tracks)
	panels      []bool    // len(tracks)
}

// axis normalizes p along ax for the given number of tracks: spacing is
// broadcast, ratios default to uniform and panels to none.
func (p Params) axis(ax grid.Axis, tracks int) axisParams {
	spec := p.raw(ax)
	ap := axisParams{
		gaps:   make([]float64, max(tracks-1, 0)),
		ratios: make([]float64, tracks),
		panels: make([]bool, tracks),
	}
	if ax == grid.X {
		ap.extent, ap.startMargin, ap.endMargin = p.FigWidth, p.Left, p.Right
	} else {
		ap.extent, ap.startMargin, ap.endMargin = p.FigHeight, p.Top, p.Bottom
	}

	for i := range ap.gaps {
		switch len(spec.gaps) {
		case 0:
			ap.gaps[i] = DefaultSpacing
		case 1:
			ap.gaps[i] = spec.gaps[0]
		default:
			ap.gaps[i] = spec.gaps[i]
		}
	}
	for i := range ap.ratios {
		ap.ratios[i] = 1
		if len(spec.ratios) == tracks {
			ap.ratios[i] = spec.ratios[i]
		}
		if len(spec.panels) == tracks {
			ap.panels[i] = spec.panels[i]
		}
	}
	return ap
}

// available is the space left for tracks once margins and gaps are taken.
func (ap axisParams) available() float64 {
	free := ap.extent - ap.startMargin - ap.endMargin
	for _, g := range ap.gaps {
		free -= g
	}
	return free
}

// validatePanels rejects panel tracks that overflow the space left by margins
// and gaps. With ratio tracks present the panels must leave some of it free.
func (ap axisParams) validatePanels(ax grid.Axis) error {
	available := ap.available()
	panelSize, ratioTracks := ap.fixed()
	if ratioTracks > 0 && panelSize >= available {
		return errors.New(errors.ErrCodeInvalidConfig,
			"panel tracks along %s take %g in, leaving nothing of %g in for %d ratio tracks",
			ax, panelSize, available, ratioTracks)
	}
	if ratioTracks == 0 && panelSize-available > panelTolerance*(1+available) {
		return errors.New(errors.ErrCodeInvalidConfig,
			"panel tracks along %s take %g in but only %g in are available", ax, panelSize, available)
	}
	return nil
}

// panelTolerance is the relative slack allowed when panels exactly fill an axis.
const panelTolerance = 1e-9

// fixed returns the total size of panel tracks and the number of ratio tracks.
func (ap axisParams) fixed() (panelSize float64, ratioTracks int) {
	for i, panel := range ap.panels {
		if panel {
			panelSize += ap.ratios[i]
		} else {
			ratioTracks++
		}
	}
	return panelSize, ratioTracks
}
