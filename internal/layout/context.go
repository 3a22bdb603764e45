// Package layout implements the C3 per-layout algorithms (spec.md §4.2):
// Tiles, Accordion, Dwindle (dispatch into internal/dwindle), Scroll and
// Master. Every algorithm receives a rect and a *Context* and recurses
// into children via Layout.
package layout

import (
	"github.com/1broseidon/termtile/internal/config"
	"github.com/1broseidon/termtile/internal/dwindle"
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/master"
	"github.com/1broseidon/termtile/internal/tree"
)

// Pusher receives a leaf window's final rect for one layout pass.
type Pusher func(*tree.Window, geometry.Rect)

// Context carries everything a layout algorithm needs besides the rect
// it is laying into.
type Context struct {
	Config      *config.Config
	Manipulated *tree.Window // the single pointer-manipulated window, if any
	Push        Pusher
}

func (ctx *Context) innerGap(axis geometry.Axis) int {
	if axis == geometry.AxisH {
		return ctx.Config.Gaps.Inner.Horizontal
	}
	return ctx.Config.Gaps.Inner.Vertical
}

// Layout recursively lays n into rect, dispatching containers by their
// Layout field and pushing window leaves through ctx.Push — except the
// currently manipulated window, whose rect is owned by the live pointer
// drag (spec.md §4.4.2).
func Layout(n tree.Node, rect geometry.Rect, ctx *Context) {
	if n.IsWindow() {
		if n.Window != ctx.Manipulated {
			ctx.Push(n.Window, rect)
		}
		return
	}

	c := n.Container
	if len(c.Children) == 0 {
		return
	}
	c.LastRect = rect

	switch c.Layout {
	case tree.LayoutTiles:
		layoutTiles(c, rect, ctx)
	case tree.LayoutAccordion:
		layoutAccordion(c, rect, ctx)
	case tree.LayoutDwindle:
		layoutDwindleContainer(c, rect, ctx)
	case tree.LayoutScroll:
		layoutScroll(c, rect, ctx)
	case tree.LayoutMaster:
		layoutMaster(c, rect, ctx)
	}
}

// ensureDwindleCache returns c.Cache as *dwindle.Cache, rebuilding it if
// the window-id set has drifted and no window in it is manipulated
// (spec.md §4.4.1, invariant 6/7).
func ensureDwindleCache(c *tree.TilingContainer, rect geometry.Rect, ctx *Context) *dwindle.Cache {
	leaves := tree.Leaves(tree.ContainerNode(c))
	current := tree.WindowIDSet(tree.ContainerNode(c))

	cache, _ := c.Cache.(*dwindle.Cache)
	anyManipulated := false
	for _, w := range leaves {
		if w == ctx.Manipulated {
			anyManipulated = true
			break
		}
	}

	if (cache == nil || cache.NeedsRebuild(current)) && !anyManipulated {
		if len(leaves) == 0 {
			return nil
		}
		cache = dwindle.Rebuild(leaves, rect, ctx.Config)
		c.Cache = cache
	}
	return cache
}

func layoutDwindleContainer(c *tree.TilingContainer, rect geometry.Rect, ctx *Context) {
	if len(c.Children) == 1 {
		Layout(c.Children[0], rect, ctx)
		return
	}

	cache := ensureDwindleCache(c, rect, ctx)
	if cache == nil {
		return
	}
	cache.LayoutPass(rect, ctx.Config, ctx.Manipulated, ctx.Push)
}

// ensureMasterCache returns c.Cache as *master.Cache, creating it lazily
// on first layout (spec.md §3 Lifecycles).
func ensureMasterCache(c *tree.TilingContainer, ctx *Context) *master.Cache {
	cache, ok := c.Cache.(*master.Cache)
	if !ok {
		cache = master.New(c.MasterSide, ctx.Config)
		c.Cache = cache
	}
	return cache
}
