// Package atlas lays out frames and volume slices on a texture atlas and
// composes them into a single canvas.
package atlas

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidGrid = errors.New("invalid grid")

// GridLayout returns a near-square grid with room for count cells:
// cols = ceil(sqrt(count)), rows = ceil(count/cols).
func GridLayout(count int) (cols, rows int) {
	if count <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(count))))
	rows = (count + cols - 1) / cols
	return cols, rows
}

// Layout places cells of CellW x CellH row-major on a Cols x Rows grid.
// A Layout is computed once and never mutated.
type Layout struct {
	Cols  int
	Rows  int
	CellW int
	CellH int
	Rects []image.Rectangle
}

// NewLayout fills every cell of a cols x rows grid.
func NewLayout(cols, rows, cellW, cellH int) Layout {
	return newLayout(cols, rows, cellW, cellH, cols*rows)
}

// LayoutFor sizes the grid with GridLayout and places count cells. Trailing
// cells of the last row stay empty.
func LayoutFor(count, cellW, cellH int) Layout {
	cols, rows := GridLayout(count)
	return newLayout(cols, rows, cellW, cellH, count)
}

func newLayout(cols, rows, cellW, cellH, count int) Layout {
	l := Layout{Cols: cols, Rows: rows, CellW: cellW, CellH: cellH}
	if count < 0 {
		count = 0
	}
	l.Rects = make([]image.Rectangle, count)
	for i := range l.Rects {
		col, row := i%max(1, cols), i/max(1, cols)
		l.Rects[i] = image.Rect(col*cellW, row*cellH, (col+1)*cellW, (row+1)*cellH)
	}
	return l
}

// Canvas is the atlas bounds, CellW*Cols by CellH*Rows.
func (l Layout) Canvas() image.Rectangle {
	return image.Rect(0, 0, l.CellW*l.Cols, l.CellH*l.Rows)
}

// Len is the number of placed cells.
func (l Layout) Len() int { return len(l.Rects) }

// Rect returns the rectangle of cell i.
func (l Layout) Rect(i int) image.Rectangle { return l.Rects[i] }

// Validate checks that every rect lies inside the canvas and that no two
// rects overlap.
func (l Layout) Validate() error {
	return validateRects(l.Canvas(), l.Rects)
}

func validateRects(canvas image.Rectangle, rects []image.Rectangle) error {
	for i, r := range rects {
		if r.Empty() {
			return fmt.Errorf("rect %d is empty", i)
		}
		if !r.In(canvas) {
			return fmt.Errorf("rect %d %v outside canvas %v", i, r, canvas)
		}
		for j := i + 1; j < len(rects); j++ {
			if r.Overlaps(rects[j]) {
				return fmt.Errorf("rect %d %v overlaps rect %d %v", i, r, j, rects[j])
			}
		}
	}
	return nil
}

// ParseGrid parses "COLSxROWS", e.g. "8x8".
func ParseGrid(s string) (cols, rows int, err error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q (want COLSxROWS)", ErrInvalidGrid, s)
	}
	cols, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalidGrid, s, err)
	}
	rows, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalidGrid, s, err)
	}
	if cols <= 0 || rows <= 0 {
		return 0, 0, fmt.Errorf("%w: %q (cols and rows must be positive)", ErrInvalidGrid, s)
	}
	return cols, rows, nil
}
