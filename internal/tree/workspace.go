package tree

import "github.com/1broseidon/termtile/internal/geometry"

// Monitor is a physical display rectangle with outer-gap insets already
// reflected in Usable (spec.md §6 MonitorProvider: workspace rect =
// visibleFrame inset by outer gaps).
type Monitor struct {
	ID     int
	Name   string
	Frame  geometry.Rect
	Usable geometry.Rect
}

// Workspace owns a root tiling container plus the auxiliary window buckets
// (spec.md §3).
type Workspace struct {
	ID      int
	Monitor Monitor
	Root    *TilingContainer

	Floating   []*Window
	Minimized  []*Window
	Fullscreen []*Window
	Popups     []*Window
	Hidden     []*Window

	// Manipulated is the single window currently under pointer-driven
	// resize, or nil (spec.md invariant 7).
	Manipulated *Window
}

// NewWorkspace creates a workspace with an empty root container of the
// given default layout/orientation.
func NewWorkspace(id int, monitor Monitor, defaultLayout LayoutKind, defaultOrientation geometry.Axis) *Workspace {
	root := NewContainer(defaultOrientation, defaultLayout)
	root.index = -1
	ws := &Workspace{ID: id, Monitor: monitor, Root: root}
	root.workspace = ws
	return ws
}

// FindWindow searches the tiling tree for a window with the given id.
func (w *Workspace) FindWindow(id WindowID) (*Window, bool) {
	for _, leaf := range Leaves(ContainerNode(w.Root)) {
		if leaf.ID == id {
			return leaf, true
		}
	}
	return nil, false
}

// RemoveWindow unbinds and discards the leaf for id and returns its former
// parent. It does not normalize; an emptied or single-child parent stays
// in the tree.
func (w *Workspace) RemoveWindow(id WindowID) (*TilingContainer, bool) {
	win, ok := w.FindWindow(id)
	if !ok {
		return nil, false
	}
	parent := win.parent
	if parent == nil {
		return nil, false
	}
	idx := win.index
	if _, _, err := parent.Unbind(idx); err != nil {
		return nil, false
	}
	return parent, true
}
