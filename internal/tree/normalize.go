package tree

import "github.com/1broseidon/termtile/internal/geometry"

// NormalizeOptions controls the two optional normalization passes
// (spec.md §3 invariants 2 and 3, config keys
// enableNormalizationFlattenContainers and
// enableNormalizationOppositeOrientationForNestedContainers).
type NormalizeOptions struct {
	FlattenSingleChild       bool
	AlternateNestedOrientation bool
}

// Normalize walks the subtree rooted at c and applies the enabled passes.
// It must be called after every structural edit (bind/unbind) that can
// leave a single-child non-root container or two orientation-matched
// nested containers in the tree.
func Normalize(c *TilingContainer, opts NormalizeOptions) {
	if c == nil {
		return
	}
	// Post-order: children first, so flattening bubbles up correctly.
	// Snapshot before recursing since a child's own normalization can
	// reshape c.Children (flattenInto mutates the parent it promotes into).
	children := append([]Node(nil), c.Children...)
	for _, child := range children {
		if child.Container != nil {
			Normalize(child.Container, opts)
		}
	}

	if opts.FlattenSingleChild && !c.IsRoot() && len(c.Children) == 1 {
		flattenInto(c)
		return
	}

	if opts.AlternateNestedOrientation {
		alternateOrientation(c)
	}
}

// flattenInto replaces a single-child non-root container with its child,
// directly in the parent's slot, preserving the parent's weight for that
// slot (spec.md invariant 2).
func flattenInto(c *TilingContainer) {
	parent := c.parent
	idx := c.index
	if parent == nil || len(c.Children) != 1 {
		return
	}
	only := c.Children[0]

	weight := Weight{
		H: parent.GetWeight(geometry.AxisH, idx),
		V: parent.GetWeight(geometry.AxisV, idx),
	}

	if _, _, err := c.Unbind(0); err != nil {
		return
	}
	if _, _, err := parent.Unbind(idx); err != nil {
		return
	}
	_ = parent.Bind(only, idx, weight)
}

// alternateOrientation flips c's orientation when it matches its parent's
// orientation, so nested same-orientation containers alternate H/V/H/V
// (spec.md invariant 3). Only containers with >= 2 children are eligible;
// a single-child container's orientation is moot until it either grows or
// gets flattened.
func alternateOrientation(c *TilingContainer) {
	if c.parent == nil || len(c.Children) < 2 {
		return
	}
	if c.Orientation == c.parent.Orientation && c.Layout != LayoutScroll {
		c.Orientation = c.Orientation.Opposite()
	}
}
