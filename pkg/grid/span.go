package grid

// Axis selects the horizontal (columns) or vertical (rows) direction.
type Axis int

const (
	X Axis = iota // columns, measured from the left edge
	Y             // rows, measured from the top edge
)

func (ax Axis) String() string {
	if ax == X {
		return "x"
	}
	return "y"
}

// Other returns the perpendicular axis.
func (ax Axis) Other() Axis { return 1 - ax }

// Side names one edge of a span.
type Side int

const (
	Left Side = iota
	Right
	Top
	Bottom
)

// Sides lists every side in a fixed order.
var Sides = []Side{Left, Right, Top, Bottom}

func (s Side) String() string {
	return [...]string{"left", "right", "top", "bottom"}[s]
}

// Axis returns the axis along which the side moves: X for left/right.
func (s Side) Axis() Axis {
	if s == Left || s == Right {
		return X
	}
	return Y
}

// IsStart reports whether the side is the low-coordinate edge along its axis
// (left for X, top for Y).
func (s Side) IsStart() bool { return s == Left || s == Top }

// Opposite returns the facing side.
func (s Side) Opposite() Side {
	return [...]Side{Right, Left, Bottom, Top}[s]
}

// SidesOf returns the start and end sides along ax.
func SidesOf(ax Axis) (start, end Side) {
	if ax == X {
		return Left, Right
	}
	return Top, Bottom
}

// Range is an inclusive index range of grid tracks.
type Range struct {
	Start, End int
}

// Len returns the number of tracks in the range.
func (r Range) Len() int { return r.End - r.Start + 1 }

// Contains reports whether track i lies inside the range.
func (r Range) Contains(i int) bool { return i >= r.Start && i <= r.End }

// Overlaps reports whether the two ranges share at least one track.
func (r Range) Overlaps(o Range) bool { return r.Start <= o.End && o.Start <= r.End }

func (r Range) extend(i int) Range {
	return Range{min(r.Start, i), max(r.End, i)}
}

// Span is the rectangular block of cells a subplot occupies.
type Span struct {
	Rows, Cols Range
}

// Along returns the track range on ax.
func (s Span) Along(ax Axis) Range {
	if ax == X {
		return s.Cols
	}
	return s.Rows
}

// Cells returns the number of cells covered by the span.
func (s Span) Cells() int { return s.Rows.Len() * s.Cols.Len() }
