package resize

import (
	"context"
	"sync"
	"time"

	"github.com/1broseidon/termtile/internal/config"
	"github.com/1broseidon/termtile/internal/dwindle"
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/tree"
)

// edgeMovement names the fixed priority order spec.md §4.4.4 iterates:
// left, down, up, right — the first whose magnitude exceeds 1px wins.
type edgeMovement struct {
	name  string
	value int
	axis  geometry.Axis
	// edge reports which geometry.Edge this movement corresponds to
	// once selected (spec.md §4.4.4: "left-moving edge -> edges{horizontal: negative}").
	edge geometry.Edge
}

// Driver debounces backend-reported pointer resize events (spec.md §4.4.4)
// and forwards the accepted ones to the owning container's cache. It is the
// pointer-driven half of C6; Discrete (resize.go) is the command-path half.
type Driver struct {
	cfg *config.Config

	mu         sync.Mutex
	lastSample map[tree.WindowID]time.Time
	lastRect   map[tree.WindowID]geometry.Rect
	cancel     map[tree.WindowID]context.CancelFunc
}

// NewDriver builds a pointer-resize driver bound to cfg (read for
// mouseSensitivity on every accepted event).
func NewDriver(cfg *config.Config) *Driver {
	return &Driver{
		cfg:        cfg,
		lastSample: make(map[tree.WindowID]time.Time),
		lastRect:   make(map[tree.WindowID]geometry.Rect),
		cancel:     make(map[tree.WindowID]context.CancelFunc),
	}
}

// Seed records rect as the window's last-applied-layout rect without
// treating it as a resize event, e.g. right after a refresh pass pushes a
// fresh layout.
func (d *Driver) Seed(w *tree.Window, rect geometry.Rect) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastRect[w.ID] = rect
}

// HandleEvent processes one backend-reported geometry change for w,
// dropping it if it arrives within MinSampleIntervalMillis of the previous
// accepted sample (spec.md §4.4.4). now is threaded in by the caller rather
// than read from time.Now() here so event-loop code can substitute a
// recorded timestamp in tests.
func (d *Driver) HandleEvent(ctx context.Context, ws *tree.Workspace, w *tree.Window, cur geometry.Rect, now time.Time) bool {
	d.mu.Lock()
	last, hasLast := d.lastSample[w.ID]
	prevRect, hasPrevRect := d.lastRect[w.ID]
	if hasLast && now.Sub(last) < MinSampleIntervalMillis*time.Millisecond {
		d.mu.Unlock()
		return false
	}
	d.lastSample[w.ID] = now

	if cancel, ok := d.cancel[w.ID]; ok {
		cancel()
	}
	taskCtx, cancel := context.WithCancel(ctx)
	d.cancel[w.ID] = cancel
	d.mu.Unlock()

	if !hasPrevRect {
		d.Seed(w, cur)
		return true
	}

	movement, ok := selectEdgeMovement(prevRect, cur)
	if !ok {
		d.Seed(w, cur)
		return true
	}

	w.Manipulated = true
	ws.Manipulated = w

	d.applyEdgeMovement(taskCtx, w, movement)
	d.Seed(w, cur)
	return true
}

// selectEdgeMovement diffs prev against cur in the fixed left/down/up/right
// order and returns the first edge whose movement exceeds 1px (spec.md
// §4.4.4). The caller is responsible for treating backend-reported clipping
// the same as a genuine drag — the spec leaves this ambiguous (§9 open
// question); we take the first-above-1px edge as authoritative regardless
// of cause.
func selectEdgeMovement(prev, cur geometry.Rect) (edgeMovement, bool) {
	candidates := []edgeMovement{
		{name: "left", value: prev.X - cur.X, axis: geometry.AxisH, edge: geometry.EdgeNegative},
		{name: "down", value: cur.Bottom() - prev.Bottom(), axis: geometry.AxisV, edge: geometry.EdgePositive},
		{name: "up", value: prev.Y - cur.Y, axis: geometry.AxisV, edge: geometry.EdgeNegative},
		{name: "right", value: cur.Right() - prev.Right(), axis: geometry.AxisH, edge: geometry.EdgePositive},
	}
	for _, m := range candidates {
		if geometry.AbsInt(m.value) > 1 {
			return m, true
		}
	}
	return edgeMovement{}, false
}

// applyEdgeMovement forwards the selected movement to w's containing
// dwindle cache as a one-axis resize (pointer-driven resize is only
// meaningful for Dwindle per spec.md §4.4.4's DwindleNode-centric wording;
// Tiles/Master pointer seams are not modeled by this core).
func (d *Driver) applyEdgeMovement(_ context.Context, w *tree.Window, m edgeMovement) {
	parent := w.Parent()
	if parent == nil || parent.Layout != tree.LayoutDwindle {
		return
	}
	cache, ok := parent.Cache.(*dwindle.Cache)
	if !ok || cache == nil {
		return
	}
	leaf := cache.Find(w)
	if leaf == nil {
		return
	}

	var delta geometry.Vector
	var edges geometry.Edges
	pixels := geometry.AbsInt(m.value)
	if m.axis == geometry.AxisH {
		delta.X = pixels
		edges.Horizontal = m.edge
	} else {
		delta.Y = pixels
		edges.Vertical = m.edge
	}

	cache.Apply(leaf, dwindle.ResizeParams{
		Delta:       delta,
		ShouldGrow:  m.value > 0,
		Edges:       edges,
		Sensitivity: d.cfg.MouseSensitivity,
		Mode:        dwindle.ResizeSmart,
	})
}

// EndDrag implements the drag-end sequence of spec.md §4.4.4: await any
// in-flight task (the cancel here is cooperative — callers that track a
// running goroutine should join it before calling EndDrag), clear the
// manipulated flag, reset the debounce timer, and clear every box
// snapshot in the affected cache so the next refresh pass lays out clean.
func (d *Driver) EndDrag(ws *tree.Workspace, w *tree.Window) {
	d.mu.Lock()
	if cancel, ok := d.cancel[w.ID]; ok {
		cancel()
		delete(d.cancel, w.ID)
	}
	delete(d.lastSample, w.ID)
	d.mu.Unlock()

	w.Manipulated = false
	if ws.Manipulated == w {
		ws.Manipulated = nil
	}

	if parent := w.Parent(); parent != nil {
		if cache, ok := parent.Cache.(*dwindle.Cache); ok {
			cache.ClearSnapshots()
		}
	}
}
