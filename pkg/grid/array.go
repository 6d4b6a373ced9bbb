package grid

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/gridsolve/pkg/errors"
)

// Array is a subplot arrangement indexed as Array[row][col]. Row 0 is the top
// row of the figure.
type Array [][]int

// New validates rows and returns a defensive copy as an Array.
// It fails with a configuration error if rows is empty, ragged, or holds
// negative identifiers.
func New(rows [][]int) (Array, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "arrangement array is empty")
	}
	cols := len(rows[0])
	a := make(Array, len(rows))
	for r, row := range rows {
		if len(row) != cols {
			return nil, errors.New(errors.ErrCodeInvalidConfig,
				"arrangement array is ragged: row %d has %d columns, want %d", r, len(row), cols)
		}
		for c, v := range row {
			if v < 0 {
				return nil, errors.New(errors.ErrCodeInvalidConfig,
					"negative subplot id %d at row %d, col %d", v, r, c)
			}
		}
		a[r] = slices.Clone(row)
	}
	return a, nil
}

// Uniform returns an nrows x ncols arrangement numbered 1..n in row-major
// order, the default for a plain subplot grid.
func Uniform(nrows, ncols int) Array {
	a := make(Array, nrows)
	n := 1
	for r := range a {
		a[r] = make([]int, ncols)
		for c := range a[r] {
			a[r][c] = n
			n++
		}
	}
	return a
}

// Rows returns the number of grid rows.
func (a Array) Rows() int { return len(a) }

// Cols returns the number of grid columns.
func (a Array) Cols() int {
	if len(a) == 0 {
		return 0
	}
	return len(a[0])
}

// Empty reports whether the array has no cells.
func (a Array) Empty() bool { return a.Rows() == 0 || a.Cols() == 0 }

// IDs returns the distinct positive identifiers in ascending order.
func (a Array) IDs() []int {
	seen := make(map[int]bool)
	var ids []int
	for _, row := range a {
		for _, v := range row {
			if v > 0 && !seen[v] {
				seen[v] = true
				ids = append(ids, v)
			}
		}
	}
	slices.Sort(ids)
	return ids
}

// Bounds returns the bounding-box span of every identifier.
func (a Array) Bounds() map[int]Span {
	spans := make(map[int]Span)
	for r, row := range a {
		for c, v := range row {
			if v <= 0 {
				continue
			}
			s, ok := spans[v]
			if !ok {
				spans[v] = Span{Rows: Range{r, r}, Cols: Range{c, c}}
				continue
			}
			s.Rows = s.Rows.extend(r)
			s.Cols = s.Cols.extend(c)
			spans[v] = s
		}
	}
	return spans
}

// String renders the array one row per line, e.g. "1 1 2 2\n0 3 3 0".
func (a Array) String() string {
	lines := make([]string, len(a))
	for r, row := range a {
		cells := make([]string, len(row))
		for c, v := range row {
			cells[c] = fmt.Sprint(v)
		}
		lines[r] = strings.Join(cells, " ")
	}
	return strings.Join(lines, "\n")
}
