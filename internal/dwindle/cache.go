// Package dwindle implements the persistent binary-tree split cache behind
// the Dwindle layout (spec.md §4.4, component C4) — the hardest subsystem
// in the engine: rebuild-on-membership-change, seam-aware layout, smart and
// standard keyboard resize with nested-split compensation, pointer-driven
// resize with a feedback-loop guard, and balance/reset.
package dwindle

import (
	"github.com/1broseidon/termtile/internal/config"
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/tree"
)

// Node is one binary split (internal) or one window (leaf) in the cache.
type Node struct {
	Parent   *Node
	Children [2]*Node // nil on a leaf
	Window   *tree.Window

	SplitRatio      float64
	SplitVertically bool // true: children sit side by side (vertical dividing line, axis H)

	Box         geometry.Rect
	BoxSnapshot *geometry.Rect
}

// IsLeaf reports whether n is a window leaf.
func (n *Node) IsLeaf() bool { return n.Window != nil }

// Axis returns the axis along which n's two children are split.
func (n *Node) Axis() geometry.Axis {
	if n.SplitVertically {
		return geometry.AxisH
	}
	return geometry.AxisV
}

func (n *Node) isFirstChild() bool {
	return n.Parent != nil && n.Parent.Children[0] == n
}

// Cache is the side-table attached to a container with Layout == Dwindle
// (spec.md invariant 6).
type Cache struct {
	Root      *Node
	WindowIDs map[tree.WindowID]struct{}
}

// CacheKind implements tree.LayoutCache.
func (c *Cache) CacheKind() tree.LayoutKind { return tree.LayoutDwindle }

var _ tree.LayoutCache = (*Cache)(nil)

// NeedsRebuild reports whether the cache's recorded window-id set differs
// from the container's current set (spec.md §4.4.1). Rebuild must still be
// refused by the caller while any window in the container is manipulated
// (spec.md §3 Lifecycles / §9).
func (c *Cache) NeedsRebuild(current map[tree.WindowID]struct{}) bool {
	if c == nil || c.Root == nil {
		return true
	}
	if len(c.WindowIDs) != len(current) {
		return true
	}
	for id := range current {
		if _, ok := c.WindowIDs[id]; !ok {
			return true
		}
	}
	return false
}

// Rebuild constructs a fresh binary tree over leaves, recursively halving
// the window list and deriving split orientation from aspect ratio
// (spec.md §4.4.1).
func Rebuild(leaves []*tree.Window, rect geometry.Rect, cfg *config.Config) *Cache {
	ids := make(map[tree.WindowID]struct{}, len(leaves))
	for _, w := range leaves {
		ids[w.ID] = struct{}{}
	}
	root := build(leaves, rect, cfg, nil)
	return &Cache{Root: root, WindowIDs: ids}
}

func build(leaves []*tree.Window, rect geometry.Rect, cfg *config.Config, parent *Node) *Node {
	if len(leaves) == 1 {
		return &Node{Parent: parent, Window: leaves[0], Box: rect}
	}

	mid := len(leaves) / 2
	aspect := float64(rect.Width) / float64(rect.Height) / cfg.SplitWidthMultiplier
	splitVertically := aspect >= 1.0

	node := &Node{
		Parent:          parent,
		SplitRatio:      cfg.DwindleDefaultSplitRatio,
		SplitVertically: splitVertically,
		Box:             rect,
	}

	gap := innerGap(node.Axis(), cfg)
	rectA, rectB := geometry.SplitAlong(rect, node.Axis(), node.SplitRatio, gap)

	node.Children[0] = build(leaves[:mid], rectA, cfg, node)
	node.Children[1] = build(leaves[mid:], rectB, cfg, node)
	return node
}

func innerGap(axis geometry.Axis, cfg *config.Config) int {
	if axis == geometry.AxisH {
		return cfg.Gaps.Inner.Horizontal
	}
	return cfg.Gaps.Inner.Vertical
}

// Find returns the leaf node wrapping w, or nil.
func (c *Cache) Find(w *tree.Window) *Node {
	if c == nil || c.Root == nil {
		return nil
	}
	return findIn(c.Root, w)
}

func findIn(n *Node, w *tree.Window) *Node {
	if n.IsLeaf() {
		if n.Window == w {
			return n
		}
		return nil
	}
	if found := findIn(n.Children[0], w); found != nil {
		return found
	}
	return findIn(n.Children[1], w)
}

// LayoutPass recursively assigns boxes and pushes leaf rects via push,
// implementing the box/boxSnapshot state machine of spec.md §4.4.2.
// manipulated is the workspace's currently pointer-manipulated window, if
// any; its leaf is skipped (its rect is owned by the live drag).
func (c *Cache) LayoutPass(rect geometry.Rect, cfg *config.Config, manipulated *tree.Window, push func(*tree.Window, geometry.Rect)) {
	if c == nil || c.Root == nil {
		return
	}
	layoutNode(c.Root, rect, cfg, manipulated, push)
}

func layoutNode(n *Node, rect geometry.Rect, cfg *config.Config, manipulated *tree.Window, push func(*tree.Window, geometry.Rect)) {
	applyBoxState(n, rect, manipulated != nil)

	if n.IsLeaf() {
		if n.Window != manipulated {
			push(n.Window, n.Box)
		}
		return
	}

	gap := innerGap(n.Axis(), cfg)
	rectA, rectB := geometry.SplitAlong(n.Box, n.Axis(), n.SplitRatio, gap)
	layoutNode(n.Children[0], rectA, cfg, manipulated, push)
	layoutNode(n.Children[1], rectB, cfg, manipulated, push)
}

// applyBoxState implements the three-way box/boxSnapshot rule (spec.md §4.4.2).
func applyBoxState(n *Node, rect geometry.Rect, anyManipulated bool) {
	switch {
	case !anyManipulated:
		n.Box = rect
		n.BoxSnapshot = nil
	case n.BoxSnapshot == nil:
		snap := n.Box
		n.BoxSnapshot = &snap
		n.Box = rect
	default:
		n.Box = rect
	}
}

// Balance resets every internal node's ratio to the configured default
// (spec.md §4.4.5).
func (c *Cache) Balance(cfg *config.Config) {
	if c == nil || c.Root == nil {
		return
	}
	balance(c.Root, cfg.DwindleDefaultSplitRatio)
}

func balance(n *Node, ratio float64) {
	if n.IsLeaf() {
		return
	}
	n.SplitRatio = ratio
	balance(n.Children[0], ratio)
	balance(n.Children[1], ratio)
}

// ClearSnapshots recursively clears every node's boxSnapshot, called once
// a pointer-drag session ends (spec.md §4.4.4).
func (c *Cache) ClearSnapshots() {
	if c == nil || c.Root == nil {
		return
	}
	clearSnapshots(c.Root)
}

func clearSnapshots(n *Node) {
	n.BoxSnapshot = nil
	if !n.IsLeaf() {
		clearSnapshots(n.Children[0])
		clearSnapshots(n.Children[1])
	}
}

func boxOrSnapshot(n *Node) geometry.Rect {
	if n.BoxSnapshot != nil {
		return *n.BoxSnapshot
	}
	return n.Box
}

// sizeAlong returns the node's box (or snapshot) extent along axis —
// this is the "containerSize" of spec.md §4.4.3's ratio-application formula.
func sizeAlong(n *Node, axis geometry.Axis) int {
	return boxOrSnapshot(n).Extent(axis)
}
