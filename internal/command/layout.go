package command

import (
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/tree"
)

// layoutSpec describes what one `layout` token changes: a layout kind, an
// orientation, a master side, or a tiling/floating membership toggle. Only
// the non-nil fields are applied (spec.md §6 layout argument list).
type layoutSpec struct {
	kind        *tree.LayoutKind
	orientation *geometry.Axis
	masterSide  *tree.MasterSide
	toggle      string // "tiling" or "floating", or ""
}

func kindPtr(k tree.LayoutKind) *tree.LayoutKind { return &k }
func axisPtr(a geometry.Axis) *geometry.Axis     { return &a }
func sidePtr(s tree.MasterSide) *tree.MasterSide { return &s }

var layoutTokens = map[string]layoutSpec{
	"tiles":        {kind: kindPtr(tree.LayoutTiles)},
	"accordion":    {kind: kindPtr(tree.LayoutAccordion)},
	"dwindle":      {kind: kindPtr(tree.LayoutDwindle)},
	"scroll":       {kind: kindPtr(tree.LayoutScroll)},
	"master":       {kind: kindPtr(tree.LayoutMaster)},
	"master-left":  {kind: kindPtr(tree.LayoutMaster), masterSide: sidePtr(tree.MasterLeft)},
	"master-right": {kind: kindPtr(tree.LayoutMaster), masterSide: sidePtr(tree.MasterRight)},
	"h-tiles":      {kind: kindPtr(tree.LayoutTiles), orientation: axisPtr(geometry.AxisH)},
	"v-tiles":      {kind: kindPtr(tree.LayoutTiles), orientation: axisPtr(geometry.AxisV)},
	"h-accordion":  {kind: kindPtr(tree.LayoutAccordion), orientation: axisPtr(geometry.AxisH)},
	"v-accordion":  {kind: kindPtr(tree.LayoutAccordion), orientation: axisPtr(geometry.AxisV)},
	"horizontal":   {orientation: axisPtr(geometry.AxisH)},
	"vertical":     {orientation: axisPtr(geometry.AxisV)},
	"tiling":       {toggle: "tiling"},
	"floating":     {toggle: "floating"},
}

// applyLayout implements `layout <token>` (spec.md §6).
func applyLayout(session Session, args []string) Outcome {
	if session.Focused == nil {
		return fail("no-window-focused")
	}
	if len(args) != 1 {
		return fail("layout requires exactly one argument")
	}
	spec, known := layoutTokens[args[0]]
	if !known {
		return fail("unknown layout token: " + args[0])
	}

	if spec.toggle != "" {
		return applyFloatToggle(session, spec.toggle)
	}

	parent := session.Focused.Parent()
	if parent == nil {
		return fail("non-tiling")
	}

	if spec.kind != nil {
		parent.SetLayout(*spec.kind)
		if *spec.kind == tree.LayoutMaster {
			side := tree.MasterLeft
			if spec.masterSide != nil {
				side = *spec.masterSide
			}
			parent.MasterSide = side
		}
	}
	if spec.orientation != nil && parent.Layout != tree.LayoutScroll {
		parent.Orientation = *spec.orientation
	}
	return ok()
}

// applyFloatToggle moves the focused window between the tiling tree and
// the workspace's floating bucket (spec.md §1 Non-goals: "keep current
// rect, translate proportionally across monitors" is the entire floating
// algorithm — no layout is computed for floating windows).
func applyFloatToggle(session Session, want string) Outcome {
	w := session.Focused
	ws := session.Workspace
	isFloating := w.Parent() == nil && containsWindow(ws.Floating, w)

	switch want {
	case "floating":
		if isFloating {
			return ok()
		}
		parent := w.Parent()
		if parent == nil {
			return fail("non-tiling")
		}
		idx := w.Index()
		w.FloatingSize = w.PhysicalRect
		if _, _, err := parent.Unbind(idx); err != nil {
			return failErr(err)
		}
		ws.Floating = append(ws.Floating, w)
		return ok()
	default: // "tiling"
		if !isFloating {
			return ok()
		}
		ws.Floating = removeWindow(ws.Floating, w)
		_ = ws.Root.Append(tree.WindowNode(w))
		return ok()
	}
}

func containsWindow(list []*tree.Window, w *tree.Window) bool {
	for _, v := range list {
		if v == w {
			return true
		}
	}
	return false
}

func removeWindow(list []*tree.Window, w *tree.Window) []*tree.Window {
	out := list[:0:0]
	for _, v := range list {
		if v != w {
			out = append(out, v)
		}
	}
	return out
}
