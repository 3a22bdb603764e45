package layout

import (
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/tree"
)

// layoutAccordion gives every child the full rect minus a peel computed
// from its position relative to the most-recent child (spec.md §4.2
// Accordion): the first/last children peel only their interior edge, the
// immediate neighbours of the most-recent child get a double peel on the
// side facing it, and all other interior children get a single peel on
// both sides.
func layoutAccordion(c *tree.TilingContainer, rect geometry.Rect, ctx *Context) {
	axis := c.Orientation
	padding := ctx.Config.AccordionPadding
	n := len(c.Children)
	mostRecent := c.MostRecentIndex

	for i, child := range c.Children {
		peelNear, peelFar := 0, 0
		if n > 1 {
			if i > 0 {
				peelNear = 1
				if mostRecent == i-1 {
					peelNear = 2
				}
			}
			if i < n-1 {
				peelFar = 1
				if mostRecent == i+1 {
					peelFar = 2
				}
			}
		}

		childRect := insetAlong(rect, axis, peelNear*padding, peelFar*padding)
		Layout(child, childRect, ctx)
	}
}

// insetAlong insets r by near/far pixels on the two edges along axis,
// leaving the perpendicular extent untouched.
func insetAlong(r geometry.Rect, axis geometry.Axis, near, far int) geometry.Rect {
	if axis == geometry.AxisH {
		return r.Inset(0, 0, near, far)
	}
	return r.Inset(near, far, 0, 0)
}
