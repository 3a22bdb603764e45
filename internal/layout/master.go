package layout

import (
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/tree"
)

// layoutMaster splits rect between the first child (master) and the
// remaining children (stack, arranged vertically), per spec.md §4.2
// Master. A single child takes the full rect.
func layoutMaster(c *tree.TilingContainer, rect geometry.Rect, ctx *Context) {
	n := len(c.Children)
	if n == 0 {
		return
	}
	if n == 1 {
		Layout(c.Children[0], rect, ctx)
		return
	}

	cache := ensureMasterCache(c, ctx)
	gap := ctx.innerGap(geometry.AxisH)
	available := rect.Width - gap
	if available < 0 {
		available = 0
	}

	masterWidth := int(cache.Percent * float64(available))
	stackWidth := available - masterWidth

	var masterRect, stackRect geometry.Rect
	if c.MasterSide == tree.MasterLeft {
		masterRect = geometry.Rect{X: rect.X, Y: rect.Y, Width: masterWidth, Height: rect.Height}
		stackRect = geometry.Rect{X: rect.X + masterWidth + gap, Y: rect.Y, Width: stackWidth, Height: rect.Height}
	} else {
		stackRect = geometry.Rect{X: rect.X, Y: rect.Y, Width: stackWidth, Height: rect.Height}
		masterRect = geometry.Rect{X: rect.X + stackWidth + gap, Y: rect.Y, Width: masterWidth, Height: rect.Height}
	}

	Layout(c.Children[0], masterRect, ctx)
	layoutStack(c.Children[1:], stackRect, ctx)
}

func layoutStack(stack []tree.Node, rect geometry.Rect, ctx *Context) {
	n := len(stack)
	gap := ctx.innerGap(geometry.AxisV)
	available := rect.Height - gap*(n-1)
	if available < 0 {
		available = 0
	}

	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1
	}
	heights := distributeProportional(weights, available)

	y := rect.Y
	for i, child := range stack {
		childRect := rect
		childRect.Y = y
		childRect.Height = heights[i]
		Layout(child, childRect, ctx)
		y += heights[i] + gap
	}
}
