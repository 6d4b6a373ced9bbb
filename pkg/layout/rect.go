package layout

import (
	"fmt"
	"maps"
	"slices"
)

// Rect is a subplot rectangle in figure fraction: (0, 0) is the bottom-left
// corner of the figure and (1, 1) the top-right.
type Rect struct {
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Bottom + r.Height }

// Overlaps reports whether the interiors of r and o intersect by more than tol.
func (r Rect) Overlaps(o Rect, tol float64) bool {
	return r.Left < o.Right()-tol && o.Left < r.Right()-tol &&
		r.Bottom < o.Top()-tol && o.Bottom < r.Top()-tol
}

// Within reports whether r lies inside the unit square, allowing tol.
func (r Rect) Within(tol float64) bool {
	return r.Left >= -tol && r.Bottom >= -tol && r.Right() <= 1+tol && r.Top() <= 1+tol
}

func (r Rect) String() string {
	return fmt.Sprintf("[%.4f %.4f %.4f %.4f]", r.Left, r.Bottom, r.Width, r.Height)
}

// Positions maps subplot ids to their rectangles.
type Positions map[int]Rect

// IDs returns the subplot ids in ascending order.
func (p Positions) IDs() []int {
	return slices.Sorted(maps.Keys(p))
}
