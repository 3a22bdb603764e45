package layout

import (
	"math"

	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/tree"
)

// layoutScroll centers the most-recent child (the anchor) with a 10% peek
// on either side and lays the remaining children out contiguously to
// either side, reusing each child's previously assigned width where one
// exists (spec.md §4.2 Scroll). A weight <= 1px is treated as "never laid
// out" and defaults to focusedWidthRatio*W: tree.Bind seeds a new child
// with the average of its siblings' weights, which is 1 for a first child
// or beside siblings still at the sentinel, and no real width is ever that
// small.
func layoutScroll(c *tree.TilingContainer, rect geometry.Rect, ctx *Context) {
	n := len(c.Children)
	if n == 0 {
		return
	}
	if n == 1 {
		Layout(c.Children[0], rect, ctx)
		c.SetWeight(geometry.AxisH, 0, float64(rect.Width))
		return
	}

	f := ctx.Config.NiriFocusedWidthRatio
	W := float64(rect.Width)

	anchor := c.MostRecentIndex
	if anchor < 0 || anchor >= n {
		anchor = 0
	}

	widths := make([]int, n)
	for i := 0; i < n; i++ {
		if w := c.GetWeight(geometry.AxisH, i); w > 1 {
			widths[i] = int(w)
		} else {
			widths[i] = int(f * W)
		}
	}

	positions := make([]int, n)
	positions[anchor] = rect.X + int(math.Round((1-f)/2*W))
	for i := anchor + 1; i < n; i++ {
		positions[i] = positions[i-1] + widths[i-1]
	}
	for i := anchor - 1; i >= 0; i-- {
		positions[i] = positions[i+1] - widths[i]
	}

	for i, child := range c.Children {
		childRect := rect
		childRect.X = positions[i]
		childRect.Width = widths[i]
		Layout(child, childRect, ctx)
		c.SetWeight(geometry.AxisH, i, float64(widths[i]))
	}
}
