package command

import (
	"github.com/1broseidon/termtile/internal/dwindle"
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/master"
	"github.com/1broseidon/termtile/internal/tree"
)

// applyBalanceSizes implements `balance-sizes` against the focused
// window's immediate container (spec.md §4.4.5, §6). Its dispatch mirrors
// resize.Discrete's layout switch but resets rather than perturbs.
func applyBalanceSizes(session Session) Outcome {
	if session.Focused == nil {
		return fail("no-window-focused")
	}
	parent := session.Focused.Parent()
	if parent == nil {
		return fail("non-tiling")
	}

	switch parent.Layout {
	case tree.LayoutDwindle:
		if cache, isCache := parent.Cache.(*dwindle.Cache); isCache {
			cache.Balance(session.Config)
		}
	case tree.LayoutMaster:
		if cache, isCache := parent.Cache.(*master.Cache); isCache {
			cache.Balance(session.Config)
		}
	case tree.LayoutTiles:
		resetUniformWeights(parent, parent.Orientation)
	case tree.LayoutScroll:
		// Weight <= 1 is layout's "never laid out" sentinel (internal/layout
		// scroll.go); the next refresh pass recomputes every child's width
		// from niriFocusedWidthRatio fresh, satisfying SPEC_FULL.md's
		// "immediately observable" balance-sizes requirement for Scroll.
		resetUniformWeights(parent, geometry.AxisH)
	case tree.LayoutAccordion:
		// No adjustable weight model; nothing to reset.
	}
	return ok()
}

func resetUniformWeights(c *tree.TilingContainer, axis geometry.Axis) {
	for i := range c.Weights(axis) {
		c.SetWeight(axis, i, 1.0)
	}
}
