package dwindle

import (
	"github.com/1broseidon/termtile/internal/geometry"
)

// ResizeMode selects the keyboard resize algorithm (spec.md §4.4.3).
type ResizeMode int

const (
	// ResizeStandard adjusts only the single nearest controlling split.
	ResizeStandard ResizeMode = iota
	// ResizeSmart additionally compensates the inner split so that
	// resizing a deeply nested window doesn't distort unrelated siblings.
	ResizeSmart
)

// ResizeParams describes one discrete or pointer-driven resize request
// against a single leaf window.
type ResizeParams struct {
	Delta       geometry.Vector
	ShouldGrow  bool
	Edges       geometry.Edges
	Sensitivity float64
	Mode        ResizeMode
}

// findControllingSplit walks from leaf up through its ancestors looking
// for the nearest one whose split axis matches axis and whose child-side
// (at the point the walk passes through it) equals wantFirst.
func findControllingSplit(leaf *Node, axis geometry.Axis, wantFirst bool) *Node {
	cur := leaf
	for cur.Parent != nil {
		p := cur.Parent
		isFirst := p.Children[0] == cur
		if p.Axis() == axis && isFirst == wantFirst {
			return p
		}
		cur = p
	}
	return nil
}

// edgeConstrained reports whether leaf's box sits within 10px of root's box
// on both edges along axis, meaning it cannot grow further in either
// direction (spec.md §4.4.3 edge-constraint detection).
func edgeConstrained(leaf, root *Node, axis geometry.Axis) bool {
	const threshold = 10
	lb := boxOrSnapshot(leaf)
	rb := boxOrSnapshot(root)

	if axis == geometry.AxisH {
		nearLeft := geometry.AbsInt(lb.X-rb.X) <= threshold
		nearRight := geometry.AbsInt(lb.Right()-rb.Right()) <= threshold
		return nearLeft && nearRight
	}
	nearTop := geometry.AbsInt(lb.Y-rb.Y) <= threshold
	nearBottom := geometry.AbsInt(lb.Bottom()-rb.Bottom()) <= threshold
	return nearTop && nearBottom
}

func applyRatioDelta(split *Node, axis geometry.Axis, wantFirst bool, pixels int, shouldGrow bool, sensitivity float64) {
	orientationSign := -1.0
	if wantFirst {
		orientationSign = 1.0
	}
	growthSign := -1.0
	if shouldGrow {
		growthSign = 1.0
	}

	containerSize := sizeAlong(split, axis)
	if containerSize <= 0 {
		return
	}

	delta := orientationSign * growthSign * (float64(geometry.AbsInt(pixels)) * sensitivity) / float64(containerSize)
	split.SplitRatio = geometry.ClampFloat(split.SplitRatio+delta, 0.1, 1.9)
}

// Apply implements spec.md §4.4.3 in full: per non-null axis in
// params.Edges, it detects workspace-edge constraints, locates the outer
// (and, in smart mode, inner) controlling split relative to leaf, and
// applies the ratio delta to each.
func (c *Cache) Apply(leaf *Node, params ResizeParams) {
	if c == nil || c.Root == nil || leaf == nil {
		return
	}

	dx, dy := params.Delta.X, params.Delta.Y
	if params.Edges.Horizontal == geometry.EdgeNull {
		dx = 0
	}
	if params.Edges.Vertical == geometry.EdgeNull {
		dy = 0
	}
	if edgeConstrained(leaf, c.Root, geometry.AxisH) {
		dx = 0
	}
	if edgeConstrained(leaf, c.Root, geometry.AxisV) {
		dy = 0
	}
	if dx == 0 && dy == 0 {
		return
	}

	if dx != 0 {
		c.applyAxis(leaf, geometry.AxisH, params.Edges.Horizontal == geometry.EdgePositive, dx, params)
	}
	if dy != 0 {
		c.applyAxis(leaf, geometry.AxisV, params.Edges.Vertical == geometry.EdgePositive, dy, params)
	}
}

func (c *Cache) applyAxis(leaf *Node, axis geometry.Axis, edgePositive bool, pixels int, params ResizeParams) {
	outer := findControllingSplit(leaf, axis, edgePositive)
	if outer == nil {
		return
	}
	applyRatioDelta(outer, axis, edgePositive, pixels, params.ShouldGrow, params.Sensitivity)

	if params.Mode != ResizeSmart {
		return
	}
	inner := findControllingSplit(leaf, axis, !edgePositive)
	if inner == nil {
		return
	}
	applyRatioDelta(inner, axis, !edgePositive, pixels, params.ShouldGrow, params.Sensitivity)
}

// LeafForWindow returns the cache's leaf node for a given predicate match,
// used by the resize driver to resolve a tree.Window into its Node.
func (c *Cache) LeafForWindow(match func(*Node) bool) *Node {
	if c == nil || c.Root == nil {
		return nil
	}
	return findMatch(c.Root, match)
}

func findMatch(n *Node, match func(*Node) bool) *Node {
	if n.IsLeaf() {
		if match(n) {
			return n
		}
		return nil
	}
	if found := findMatch(n.Children[0], match); found != nil {
		return found
	}
	return findMatch(n.Children[1], match)
}
