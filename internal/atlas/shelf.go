package atlas

import (
	"errors"
	"fmt"
	"image"
	"sort"
)

var ErrTooWide = errors.New("item wider than atlas")

// Packing is the result of ShelfPack. Rects[i] holds item i of the input.
type Packing struct {
	Width  int
	Height int
	Rects  []image.Rectangle
}

// Canvas returns the packed bounds.
func (p Packing) Canvas() image.Rectangle { return image.Rect(0, 0, p.Width, p.Height) }

// Validate checks bounds and overlap like Layout.Validate.
func (p Packing) Validate() error { return validateRects(p.Canvas(), p.Rects) }

// ShelfPack places items left to right on horizontal shelves no wider than
// maxWidth. Items are visited tallest first; a shelf is as tall as its first
// item. Width is the widest shelf actually used.
func ShelfPack(sizes []image.Point, maxWidth int) (Packing, error) {
	order := make([]int, len(sizes))
	for i, s := range sizes {
		if s.X <= 0 || s.Y <= 0 {
			return Packing{}, fmt.Errorf("item %d has empty size %v", i, s)
		}
		if s.X > maxWidth {
			return Packing{}, fmt.Errorf("%w: item %d is %d px, limit %d", ErrTooWide, i, s.X, maxWidth)
		}
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sizes[order[a]].Y > sizes[order[b]].Y
	})

	p := Packing{Rects: make([]image.Rectangle, len(sizes))}
	var x, shelfY, shelfH int
	for _, i := range order {
		s := sizes[i]
		if x+s.X > maxWidth {
			shelfY += shelfH
			x, shelfH = 0, 0
		}
		if shelfH == 0 {
			shelfH = s.Y
		}
		p.Rects[i] = image.Rect(x, shelfY, x+s.X, shelfY+s.Y)
		x += s.X
		p.Width = max(p.Width, x)
	}
	p.Height = shelfY + shelfH
	return p, nil
}
