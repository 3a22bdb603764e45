// Package navigation implements the C7 spatial-focus providers (spec.md
// §4.5): tree-based navigation for Tiles/Master and geometric navigation
// for Dwindle, selected per the focused container's layout.
package navigation

import (
	"context"

	"github.com/1broseidon/termtile/internal/config"
	"github.com/1broseidon/termtile/internal/dwindle"
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/platform"
	"github.com/1broseidon/termtile/internal/tree"
)

// Navigate returns the next window to focus when moving dir from current,
// or ok=false ("no neighbour"). It dispatches to the tree-based or
// geometric provider based on current's containing layout (spec.md §4.5).
func Navigate(ctx context.Context, backend platform.Backend, cfg *config.Config, current *tree.Window, dir geometry.Direction) (*tree.Window, bool) {
	parent := current.Parent()
	if parent == nil {
		return nil, false
	}

	switch parent.Layout {
	case tree.LayoutDwindle:
		return navigateGeometric(ctx, backend, cfg, parent, current, dir)
	case tree.LayoutAccordion:
		return nil, false
	default:
		return navigateTree(current, dir)
	}
}

// navigateTree walks up to the nearest ancestor with a sibling in dir,
// then enters that sibling from the opposite face: snap to the leftmost
// leaf when entering from the right, etc (spec.md §4.5 Tree-based).
func navigateTree(current *tree.Window, dir geometry.Direction) (*tree.Window, bool) {
	parent, idx, ok := tree.ClosestParent(tree.WindowNode(current), dir, nil)
	if !ok {
		return nil, false
	}

	var target tree.Node
	if dir.Positive() {
		target = parent.Children[idx+1]
	} else {
		target = parent.Children[idx-1]
	}

	return snapToEdgeLeaf(target, dir), true
}

// snapToEdgeLeaf descends into target following the entering face: e.g.
// entering from the right (dir == Right) snaps to the leftmost leaf.
func snapToEdgeLeaf(n tree.Node, dir geometry.Direction) *tree.Window {
	for n.IsContainer() {
		c := n.Container
		if len(c.Children) == 0 {
			return nil
		}
		if dir.Positive() {
			n = c.Children[0]
		} else {
			n = c.Children[len(c.Children)-1]
		}
	}
	return n.Window
}

// navigateGeometric implements the Dwindle box-overlap candidate search
// (spec.md §4.5 Geometric).
func navigateGeometric(ctx context.Context, backend platform.Backend, cfg *config.Config, parent *tree.TilingContainer, current *tree.Window, dir geometry.Direction) (*tree.Window, bool) {
	cache, ok := parent.Cache.(*dwindle.Cache)
	if !ok {
		return nil, false
	}

	syncGeometryFromBackend(ctx, backend, cache)

	sourceLeaf := cache.Find(current)
	if sourceLeaf == nil {
		return nil, false
	}

	gap := innerGap(cfg, dir.Axis())
	source := sourceLeaf.Box
	var best *dwindle.Node
	bestOverlap := 0

	forEachLeaf(cache, func(n *dwindle.Node) {
		if n.Window == current {
			return
		}
		if !edgeTouches(source, n.Box, dir, gap) {
			return
		}
		overlap := perpendicularOverlap(source, n.Box, dir)
		minExtent := minInt(perpendicularExtent(source, dir), perpendicularExtent(n.Box, dir))
		if overlap < int(0.1*float64(minExtent)) {
			return
		}
		if overlap > bestOverlap {
			bestOverlap = overlap
			best = n
		}
	})

	if best == nil {
		return nil, false
	}
	return best.Window, true
}

// syncGeometryFromBackend refreshes every leaf's box from the backend
// (spec.md §4.5 "syncGeometryFromMacOS"), tolerating windows moved
// outside the layout system. Backend errors are absorbed (spec.md §7
// kind 3): a leaf whose rect can't be fetched keeps its last known box.
func syncGeometryFromBackend(ctx context.Context, backend platform.Backend, cache *dwindle.Cache) {
	if backend == nil {
		return
	}
	forEachLeaf(cache, func(n *dwindle.Node) {
		rect, err := backend.GetRect(ctx, platform.WindowID(n.Window.ID))
		if err != nil {
			return
		}
		n.Box = rect
	})
}

func forEachLeaf(cache *dwindle.Cache, fn func(*dwindle.Node)) {
	if cache == nil || cache.Root == nil {
		return
	}
	var walk func(*dwindle.Node)
	walk = func(n *dwindle.Node) {
		if n.IsLeaf() {
			fn(n)
			return
		}
		walk(n.Children[0])
		walk(n.Children[1])
	}
	walk(cache.Root)
}

// edgeTouches reports whether candidate's face opposite dir is within
// gap+5px of source's face toward dir (spec.md §4.5 Edge-touch).
func edgeTouches(source, candidate geometry.Rect, dir geometry.Direction, gap int) bool {
	const slack = 5
	threshold := gap + slack

	switch dir {
	case geometry.DirRight:
		return geometry.AbsInt(candidate.X-source.Right()) < threshold
	case geometry.DirLeft:
		return geometry.AbsInt(source.X-candidate.Right()) < threshold
	case geometry.DirDown:
		return geometry.AbsInt(candidate.Y-source.Bottom()) < threshold
	default: // DirUp
		return geometry.AbsInt(source.Y-candidate.Bottom()) < threshold
	}
}

// perpendicularOverlap returns the overlap length of source and candidate
// projected onto dir's perpendicular axis.
func perpendicularOverlap(source, candidate geometry.Rect, dir geometry.Direction) int {
	perp := dir.Axis().Opposite()
	if perp == geometry.AxisH {
		return geometry.OverlapLength(source.X, source.Width, candidate.X, candidate.Width)
	}
	return geometry.OverlapLength(source.Y, source.Height, candidate.Y, candidate.Height)
}

func perpendicularExtent(r geometry.Rect, dir geometry.Direction) int {
	return r.Extent(dir.Axis().Opposite())
}

func innerGap(cfg *config.Config, axis geometry.Axis) int {
	if axis == geometry.AxisH {
		return cfg.Gaps.Inner.Horizontal
	}
	return cfg.Gaps.Inner.Vertical
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
