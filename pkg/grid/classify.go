package grid

import (
	"math"
	"slices"
)

// IsOrthogonal reports whether the arrangement is a plain grid partition that
// direct gridspec arithmetic can position.
//
// An arrangement is non-orthogonal when an empty cell sits inside the occupied
// area (its row and its column both hold subplots), or when some subplot does
// not map onto a full rectangle of the refined grid formed by every subplot's
// boundaries. Empty arrays and arrays without subplots are orthogonal.
func IsOrthogonal(a Array) bool {
	if a.Empty() {
		return true
	}
	bounds := a.Bounds()
	if len(bounds) == 0 {
		return true
	}

	if hasInteriorGap(a) {
		return false
	}

	rowLines := boundaryLines(bounds, Y)
	colLines := boundaryLines(bounds, X)
	if len(rowLines) < 2 || len(colLines) < 2 {
		return true
	}

	for id := range bounds {
		rows := make(map[int]bool)
		cols := make(map[int]bool)
		for r, row := range a {
			for c, v := range row {
				if v != id {
					continue
				}
				rows[refinedIndex(rowLines, r)] = true
				cols[refinedIndex(colLines, c)] = true
			}
		}
		if !contiguous(rows) || !contiguous(cols) {
			return false
		}
	}
	return true
}

// hasInteriorGap reports whether some zero cell lies in a row and a column
// that both contain subplots.
func hasInteriorGap(a Array) bool {
	rowHas := make([]bool, a.Rows())
	colHas := make([]bool, a.Cols())
	for r, row := range a {
		for c, v := range row {
			if v != 0 {
				rowHas[r] = true
				colHas[c] = true
			}
		}
	}
	for r, row := range a {
		for c, v := range row {
			if v == 0 && rowHas[r] && colHas[c] {
				return true
			}
		}
	}
	return false
}

// boundaryLines collects the sorted, distinct grid lines (track indices and
// one-past-end indices) at which some subplot starts or ends along ax.
func boundaryLines(bounds map[int]Span, ax Axis) []int {
	var lines []int
	for _, s := range bounds {
		rg := s.Along(ax)
		lines = append(lines, rg.Start, rg.End+1)
	}
	slices.Sort(lines)
	return slices.Compact(lines)
}

// refinedIndex maps a track onto the refined interval [lines[i], lines[i+1]).
// Tracks outside every interval map to -1.
func refinedIndex(lines []int, track int) int {
	for i := 0; i+1 < len(lines); i++ {
		if lines[i] <= track && track < lines[i+1] {
			return i
		}
	}
	return -1
}

// contiguous reports whether the set holds an unbroken run of indices.
func contiguous(set map[int]bool) bool {
	if len(set) == 0 {
		return true
	}
	lo, hi := math.MaxInt, math.MinInt
	for i := range set {
		lo = min(lo, i)
		hi = max(hi, i)
	}
	return hi-lo+1 == len(set)
}
