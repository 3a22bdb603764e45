// Package tree implements the declarative workspace tree (spec.md C2):
// Workspace -> TilingContainer -> {TilingContainer, Window} leaves, with
// per-child adaptive weights and unbind/bind operations used by structural
// edits, resize and navigation.
package tree

import (
	"fmt"

	"github.com/1broseidon/termtile/internal/geometry"
)

// WindowID is a platform-neutral window identifier (mirrors platform.WindowID).
type WindowID uint32

// LayoutKind is one of the five supported tiling layouts.
type LayoutKind int

const (
	LayoutTiles LayoutKind = iota
	LayoutAccordion
	LayoutDwindle
	LayoutScroll
	LayoutMaster
)

func (k LayoutKind) String() string {
	switch k {
	case LayoutTiles:
		return "tiles"
	case LayoutAccordion:
		return "accordion"
	case LayoutDwindle:
		return "dwindle"
	case LayoutScroll:
		return "scroll"
	case LayoutMaster:
		return "master"
	default:
		return "unknown"
	}
}

// MasterSide selects which side of a Master container holds the master area.
type MasterSide int

const (
	MasterLeft MasterSide = iota
	MasterRight
)

// LayoutCache is the discriminated-union side-table attached to a
// container (spec.md §9 design notes: "store a discriminated-union
// LayoutState inside the container rather than a generic typed key/value
// map; invariant 6 then holds by construction"). Concrete implementations
// live in internal/dwindle and internal/master; this package only holds the
// opaque reference so that tearing a cache down is just nilling the field.
type LayoutCache interface {
	// CacheKind identifies which layout owns this cache. SetLayout does not
	// consult it: it drops the cache on any layout change.
	CacheKind() LayoutKind
}

// Window is a leaf node carrying a stable window id and the geometry the
// backend most recently reported/was asked to apply.
type Window struct {
	ID    WindowID
	App   string
	Title string

	// FloatingSize is the size to restore when toggling float->tile->float.
	FloatingSize geometry.Rect
	Fullscreen   bool

	// PhysicalRect is the last rect we asked the backend to apply.
	PhysicalRect geometry.Rect
	// VirtualRect is the last gapless logical rect computed by a layout pass.
	VirtualRect geometry.Rect

	// Manipulated marks this window as the single window currently under
	// pointer-driven resize (spec.md invariant 7).
	Manipulated bool

	parent *TilingContainer
	index  int
}

// Parent returns the window's owning container, or nil if unbound.
func (w *Window) Parent() *TilingContainer { return w.parent }

// Index returns the window's index within its parent's children, or -1 if unbound.
func (w *Window) Index() int { return w.index }

// Node is either a container or a window; exactly one of the two fields is non-nil.
type Node struct {
	Container *TilingContainer
	Window    *Window
}

// IsWindow reports whether this node is a window leaf.
func (n Node) IsWindow() bool { return n.Window != nil }

// IsContainer reports whether this node is a container.
func (n Node) IsContainer() bool { return n.Container != nil }

// WindowNode wraps a window as a Node.
func WindowNode(w *Window) Node { return Node{Window: w} }

// ContainerNode wraps a container as a Node.
func ContainerNode(c *TilingContainer) Node { return Node{Container: c} }

func (n Node) parentPtr() *TilingContainer {
	if n.Window != nil {
		return n.Window.parent
	}
	return n.Container.parent
}

func (n Node) index() int {
	if n.Window != nil {
		return n.Window.index
	}
	return n.Container.index
}

func (n Node) setParent(c *TilingContainer, idx int) {
	if n.Window != nil {
		n.Window.parent = c
		n.Window.index = idx
		return
	}
	n.Container.parent = c
	n.Container.index = idx
	if c != nil {
		n.Container.workspace = c.workspace
	}
}

// TilingContainer is a non-leaf node: an ordered list of children, an
// orientation, a layout, and per-axis adaptive weights (spec.md §3).
type TilingContainer struct {
	Children    []Node
	Orientation geometry.Axis
	Layout      LayoutKind

	// MasterSide is only meaningful when Layout == LayoutMaster.
	MasterSide MasterSide

	// WeightsH/WeightsV are adaptive weights, parallel to Children, one
	// per axis (spec.md §4.1: "weight" is per-orientation).
	WeightsH []float64
	WeightsV []float64

	// MostRecentIndex tracks the most-recently-focused child, used by
	// Accordion (peel computation) and Scroll (anchor selection).
	MostRecentIndex int

	// Cache is the dwindle/master side-table; nil for Tiles/Accordion/Scroll.
	Cache LayoutCache

	// LastRect is the rect the most recent layout pass laid this container
	// into, set by internal/layout.Layout before it dispatches to the
	// container's algorithm.
	LastRect geometry.Rect

	parent *TilingContainer
	index  int
	// workspace is set on a Workspace's root container and copied to each
	// container bound beneath it.
	workspace *Workspace
}

// NewContainer creates an empty, unbound container with the given orientation and layout.
func NewContainer(orientation geometry.Axis, layout LayoutKind) *TilingContainer {
	if layout == LayoutScroll {
		orientation = geometry.AxisH // invariant 4
	}
	return &TilingContainer{
		Orientation: orientation,
		Layout:      layout,
		index:       -1,
	}
}

// Parent returns the container's owning container, or nil if it is a
// workspace root or unbound.
func (c *TilingContainer) Parent() *TilingContainer { return c.parent }

// Index returns the container's index within its parent's children, or -1
// if it is a root or unbound.
func (c *TilingContainer) Index() int { return c.index }

// IsRoot reports whether this container's parent is a Workspace (spec.md §3: "root-ness").
func (c *TilingContainer) IsRoot() bool { return c.parent == nil && c.workspace != nil }

// Workspace returns the owning workspace, walking up to the root if needed.
func (c *TilingContainer) Workspace() *Workspace {
	n := c
	for n.parent != nil {
		n = n.parent
	}
	return n.workspace
}

// Weights returns the adaptive-weight slice for the given axis.
func (c *TilingContainer) Weights(axis geometry.Axis) []float64 {
	if axis == geometry.AxisH {
		return c.WeightsH
	}
	return c.WeightsV
}

// GetWeight returns the adaptive weight of the child at index i on axis.
func (c *TilingContainer) GetWeight(axis geometry.Axis, i int) float64 {
	w := c.Weights(axis)
	if i < 0 || i >= len(w) {
		return 1
	}
	return w[i]
}

// SetWeight sets the adaptive weight of the child at index i on axis.
func (c *TilingContainer) SetWeight(axis geometry.Axis, i int, value float64) {
	w := c.Weights(axis)
	if i < 0 || i >= len(w) {
		return
	}
	w[i] = value
}

// WeightSum returns the sum of adaptive weights along axis.
func (c *TilingContainer) WeightSum(axis geometry.Axis) float64 {
	sum := 0.0
	for _, v := range c.Weights(axis) {
		sum += v
	}
	return sum
}

func averageWeight(w []float64) float64 {
	if len(w) == 0 {
		return 1
	}
	sum := 0.0
	for _, v := range w {
		sum += v
	}
	return sum / float64(len(w))
}

// BindingToken is returned by Unbind, sufficient to restore or swap a node
// (spec.md §4.1: "Unbind returns a binding token (parent, index, pre-unbind
// weight) sufficient to restore or swap").
type BindingToken struct {
	Parent  *TilingContainer
	Index   int
	WeightH float64
	WeightV float64
}

// Unbind detaches the child at index i, clearing its back-reference, and
// returns the detached node plus a token describing where it came from.
func (c *TilingContainer) Unbind(i int) (Node, BindingToken, error) {
	if i < 0 || i >= len(c.Children) {
		return Node{}, BindingToken{}, fmt.Errorf("tree: unbind index %d out of range [0,%d)", i, len(c.Children))
	}

	n := c.Children[i]
	token := BindingToken{
		Parent:  c,
		Index:   i,
		WeightH: c.GetWeight(geometry.AxisH, i),
		WeightV: c.GetWeight(geometry.AxisV, i),
	}

	n.setParent(nil, -1)

	c.Children = append(c.Children[:i:i], c.Children[i+1:]...)
	c.WeightsH = append(c.WeightsH[:i:i], c.WeightsH[i+1:]...)
	c.WeightsV = append(c.WeightsV[:i:i], c.WeightsV[i+1:]...)
	c.reindex()
	if c.MostRecentIndex >= len(c.Children) {
		c.MostRecentIndex = len(c.Children) - 1
	}

	return n, token, nil
}

// Weight is a pair of per-axis adaptive weights, used to restore a
// BindingToken's weights verbatim on Bind.
type Weight struct {
	H float64
	V float64
}

// Bind inserts n as a child of c at index i. If weight is given it is used
// verbatim (e.g. to restore a BindingToken); otherwise the new child
// receives the average weight of its siblings (spec.md §4.1).
func (c *TilingContainer) Bind(n Node, i int, weight ...Weight) error {
	if i < 0 || i > len(c.Children) {
		return fmt.Errorf("tree: bind index %d out of range [0,%d]", i, len(c.Children))
	}
	if p := n.parentPtr(); p != nil {
		return fmt.Errorf("tree: bind target already has a parent; unbind first")
	}

	var wH, wV float64
	if len(weight) > 0 {
		wH = weight[0].H
		wV = weight[0].V
	} else {
		wH = averageWeight(c.WeightsH)
		wV = averageWeight(c.WeightsV)
	}

	c.Children = append(c.Children, Node{})
	copy(c.Children[i+1:], c.Children[i:])
	c.Children[i] = n

	c.WeightsH = append(c.WeightsH, 0)
	copy(c.WeightsH[i+1:], c.WeightsH[i:])
	c.WeightsH[i] = wH

	c.WeightsV = append(c.WeightsV, 0)
	copy(c.WeightsV[i+1:], c.WeightsV[i:])
	c.WeightsV[i] = wV

	n.setParent(c, i)
	c.reindexFrom(i + 1)
	return nil
}

// Append binds n as the last child (window-insertion policy: new windows
// are tail-inserted, never index 0 — see SPEC_FULL.md).
func (c *TilingContainer) Append(n Node) error {
	return c.Bind(n, len(c.Children))
}

func (c *TilingContainer) reindex() { c.reindexFrom(0) }

func (c *TilingContainer) reindexFrom(start int) {
	for i := start; i < len(c.Children); i++ {
		c.Children[i].setParent(c, i)
	}
}

// Swap exchanges the bindings of two children in place: a ends up where b
// was (keeping b's old index and weights) and vice versa (spec.md §4.6
// promote-master uses this directly).
func Swap(a, b Node) error {
	pa, ia := a.parentPtr(), a.index()
	pb, ib := b.parentPtr(), b.index()
	if pa == nil || pb == nil {
		return fmt.Errorf("tree: swap requires both nodes to be bound")
	}

	wA := Weight{H: pa.GetWeight(geometry.AxisH, ia), V: pa.GetWeight(geometry.AxisV, ia)}
	wB := Weight{H: pb.GetWeight(geometry.AxisH, ib), V: pb.GetWeight(geometry.AxisV, ib)}

	pa.Children[ia] = b
	pb.Children[ib] = a
	b.setParent(pa, ia)
	a.setParent(pb, ib)

	pa.SetWeight(geometry.AxisH, ia, wB.H)
	pa.SetWeight(geometry.AxisV, ia, wB.V)
	pb.SetWeight(geometry.AxisH, ib, wA.H)
	pb.SetWeight(geometry.AxisV, ib, wA.V)
	return nil
}

// ClosestParent walks up from n until it finds a container whose
// orientation matches dir's axis and in which n's ancestor subtree has a
// sibling in dir (spec.md §4.1). withLayout, if non-nil, additionally
// requires the found container's Layout to match.
func ClosestParent(n Node, dir geometry.Direction, withLayout *LayoutKind) (*TilingContainer, int, bool) {
	axis := dir.Axis()
	positive := dir.Positive()

	parent := n.parentPtr()
	idx := n.index()
	for parent != nil {
		if parent.Orientation == axis && (withLayout == nil || parent.Layout == *withLayout) {
			if positive && idx < len(parent.Children)-1 {
				return parent, idx, true
			}
			if !positive && idx > 0 {
				return parent, idx, true
			}
		}
		idx = parent.index
		parent = parent.parent
	}
	return nil, -1, false
}

// Leaves returns every window reachable under n, in left-to-right order.
func Leaves(n Node) []*Window {
	if n.Window != nil {
		return []*Window{n.Window}
	}
	if n.Container == nil {
		return nil
	}
	var out []*Window
	for _, child := range n.Container.Children {
		out = append(out, Leaves(child)...)
	}
	return out
}

// WindowIDSet returns the set of window ids reachable under n.
func WindowIDSet(n Node) map[WindowID]struct{} {
	leaves := Leaves(n)
	set := make(map[WindowID]struct{}, len(leaves))
	for _, w := range leaves {
		set[w.ID] = struct{}{}
	}
	return set
}

// SetLayout changes a container's layout, tearing down its cache if moving
// away from dwindle/master (spec.md §3 Lifecycles).
func (c *TilingContainer) SetLayout(k LayoutKind) {
	if c.Layout != k {
		c.Cache = nil
	}
	c.Layout = k
	if k == LayoutScroll {
		c.Orientation = geometry.AxisH
	}
}
