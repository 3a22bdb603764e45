// Package resize implements the C6 resize driver (spec.md §4.3, §4.4.3,
// §4.4.4): dispatching a discrete resize request by the target's
// containing layout, and debouncing/diffing continuous pointer-driven
// resize notifications into the same per-layout Apply calls.
package resize

import (
	"fmt"

	"github.com/1broseidon/termtile/internal/config"
	"github.com/1broseidon/termtile/internal/dwindle"
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/master"
	"github.com/1broseidon/termtile/internal/tree"
)

// Dimension is one of the four discrete-resize dimensions (spec.md §4.3).
type Dimension int

const (
	DimensionWidth Dimension = iota
	DimensionHeight
	DimensionSmart
	DimensionSmartOpposite
)

// Amount is one of set/add/subtract v (spec.md §4.3).
type AmountKind int

const (
	AmountSet AmountKind = iota
	AmountAdd
	AmountSubtract
)

type Amount struct {
	Kind  AmountKind
	Value int
}

// ErrFloatingNotSupported and ErrMasterHeightUnsupported are the two
// structural-precondition errors discrete resize can produce (spec.md §6/§7).
var (
	ErrFloatingNotSupported    = fmt.Errorf("resize: floating windows are not supported")
	ErrMasterHeightUnsupported = fmt.Errorf("resize: height is not a valid dimension for master layout")
)

// Discrete applies a discrete resize command to target's containing
// container, dispatching by its layout (spec.md §4.3).
func Discrete(target *tree.Window, dim Dimension, amount Amount, cfg *config.Config) error {
	parent := target.Parent()
	if parent == nil {
		return ErrFloatingNotSupported
	}

	switch parent.Layout {
	case tree.LayoutDwindle:
		return discreteDwindle(parent, target, dim, amount, cfg)
	case tree.LayoutMaster:
		return discreteMaster(parent, dim, amount, cfg)
	default:
		return discreteWeighted(parent, target, dim, amount)
	}
}

func shouldGrow(a Amount) bool {
	switch a.Kind {
	case AmountSubtract:
		return false
	default:
		return a.Value >= 0 || a.Kind == AmountAdd
	}
}

func pixelsOf(a Amount) int {
	return geometry.AbsInt(a.Value)
}

// discreteDwindle maps dimension to a 2-vector delta and forwards to the
// cache's Apply (spec.md §4.3 Dwindle, §4.4.3).
func discreteDwindle(parent *tree.TilingContainer, target *tree.Window, dim Dimension, amount Amount, cfg *config.Config) error {
	cache, ok := parent.Cache.(*dwindle.Cache)
	if !ok || cache == nil {
		return fmt.Errorf("resize: dwindle container has no cache yet")
	}
	leaf := cache.Find(target)
	if leaf == nil {
		return fmt.Errorf("resize: window not found in dwindle cache")
	}

	grow := shouldGrow(amount)
	pixels := pixelsOf(amount)

	var delta geometry.Vector
	var edges geometry.Edges
	switch dim {
	case DimensionWidth:
		delta = geometry.Vector{X: pixels}
		edges.Horizontal = geometry.EdgeFromPositive(true)
	case DimensionHeight:
		delta = geometry.Vector{Y: pixels}
		edges.Vertical = geometry.EdgeFromPositive(true)
	case DimensionSmart:
		delta = geometry.Vector{X: pixels, Y: pixels}
		edges = geometry.Edges{Horizontal: geometry.EdgeFromPositive(true), Vertical: geometry.EdgeFromPositive(true)}
	case DimensionSmartOpposite:
		delta = geometry.Vector{X: pixels, Y: -pixels}
		edges = geometry.Edges{Horizontal: geometry.EdgeFromPositive(true), Vertical: geometry.EdgeFromPositive(false)}
	}

	cache.Apply(leaf, dwindle.ResizeParams{
		Delta:       delta,
		ShouldGrow:  grow,
		Edges:       edges,
		Sensitivity: cfg.MouseSensitivity,
		Mode:        dwindle.ResizeSmart,
	})
	return nil
}

// discreteMaster rejects height, converts width/smart into a percent delta
// (spec.md §4.3 Master). Wa is the container's own laid-out width minus the
// inner gap, not the whole monitor's usable width, so gapped or nested
// master containers get the correct percent delta.
func discreteMaster(parent *tree.TilingContainer, dim Dimension, amount Amount, cfg *config.Config) error {
	if dim == DimensionHeight {
		return ErrMasterHeightUnsupported
	}
	cache, ok := parent.Cache.(*master.Cache)
	if !ok || cache == nil {
		return fmt.Errorf("resize: master container has no cache yet")
	}

	wa := parent.LastRect.Width - cfg.Gaps.Inner.Horizontal
	if wa <= 0 {
		wa = parent.Workspace().Monitor.Usable.Width
	}
	cache.Resize(pixelsOf(amount), shouldGrow(amount), wa)
	return nil
}

// discreteWeighted implements Tiles/Accordion/Scroll dispatch (spec.md
// §4.3 Tiles/Scroll): it walks to the oriented ancestor and adjusts that
// child's weight. Only a Tiles ancestor redistributes the change across
// the siblings; for any other layout the siblings' weights are untouched.
func discreteWeighted(parent *tree.TilingContainer, target *tree.Window, dim Dimension, amount Amount) error {
	axis := axisFor(dim, parent.Orientation)

	node, idx, ancestor, ok := orientedAncestor(tree.WindowNode(target), axis)
	if !ok {
		return fmt.Errorf("resize: no ancestor container oriented along the requested axis")
	}
	_ = node

	current := ancestor.GetWeight(axis, idx)
	delta := deltaFor(amount, current)

	ancestor.SetWeight(axis, idx, current+delta)

	if ancestor.Layout == tree.LayoutTiles {
		redistributeDeficit(ancestor, axis, idx, -delta)
	}
	return nil
}

func axisFor(dim Dimension, containerOrientation geometry.Axis) geometry.Axis {
	switch dim {
	case DimensionWidth:
		return geometry.AxisH
	case DimensionHeight:
		return geometry.AxisV
	case DimensionSmart:
		return containerOrientation
	default: // DimensionSmartOpposite
		return containerOrientation.Opposite()
	}
}

func deltaFor(a Amount, current float64) float64 {
	switch a.Kind {
	case AmountSet:
		return float64(a.Value) - current
	case AmountAdd:
		return float64(a.Value)
	default: // AmountSubtract
		return -float64(a.Value)
	}
}

// orientedAncestor walks up from n to the nearest ancestor whose
// orientation equals axis, returning that ancestor and the index of the
// child subtree descending from n within it.
func orientedAncestor(n tree.Node, axis geometry.Axis) (tree.Node, int, *tree.TilingContainer, bool) {
	var parent *tree.TilingContainer
	var idx int
	if n.IsWindow() {
		parent = n.Window.Parent()
		idx = n.Window.Index()
	} else {
		parent = n.Container.Parent()
		idx = n.Container.Index()
	}

	cur := n
	for parent != nil {
		if parent.Orientation == axis {
			return cur, idx, parent, true
		}
		cur = tree.ContainerNode(parent)
		idx = parent.Index()
		parent = parent.Parent()
	}
	return tree.Node{}, -1, nil, false
}

// redistributeDeficit spreads deficit equally across ancestor's other
// children on axis, keeping the weight sum invariant (spec.md §4.3: "split
// -Δ equally among the oriented node's siblings", invariant 5).
func redistributeDeficit(ancestor *tree.TilingContainer, axis geometry.Axis, excludeIdx int, deficit float64) {
	n := len(ancestor.Children) - 1
	if n <= 0 {
		return
	}
	share := deficit / float64(n)
	for i := range ancestor.Children {
		if i == excludeIdx {
			continue
		}
		ancestor.SetWeight(axis, i, ancestor.GetWeight(axis, i)+share)
	}
}

// MinSampleIntervalMillis is the pointer-resize debounce ceiling (≈60 Hz,
// spec.md §4.4.4).
const MinSampleIntervalMillis = 16
