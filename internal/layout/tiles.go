package layout

import (
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/tree"
)

// layoutTiles distributes rect proportionally to each child's weight on
// the container's orientation axis, with inner-gap seams between children
// and the full perpendicular extent (spec.md §4.2 Tiles).
func layoutTiles(c *tree.TilingContainer, rect geometry.Rect, ctx *Context) {
	axis := c.Orientation
	n := len(c.Children)
	gap := ctx.innerGap(axis)

	available := rect.Extent(axis) - gap*(n-1)
	if available < 0 {
		available = 0
	}

	weights := reconcileWeights(c.Weights(axis), available)
	widths := distributeProportional(weights, available)

	pos := rectStart(rect, axis)
	for i, child := range c.Children {
		childRect := placeAlong(rect, axis, pos, widths[i])
		c.SetWeight(axis, i, float64(widths[i]))
		Layout(child, childRect, ctx)
		pos += widths[i] + gap
	}
}

func rectStart(r geometry.Rect, axis geometry.Axis) int {
	if axis == geometry.AxisH {
		return r.X
	}
	return r.Y
}

// placeAlong returns r with its axis-extent replaced by size, starting at
// pos along axis, and the perpendicular extent unchanged.
func placeAlong(r geometry.Rect, axis geometry.Axis, pos, size int) geometry.Rect {
	out := r
	if axis == geometry.AxisH {
		out.X = pos
		out.Width = size
	} else {
		out.Y = pos
		out.Height = size
	}
	return out
}
