package resize

import (
	"context"
	"testing"
	"time"

	"github.com/1broseidon/termtile/internal/config"
	"github.com/1broseidon/termtile/internal/dwindle"
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/master"
	"github.com/1broseidon/termtile/internal/tree"
)

func newWindow(id tree.WindowID) *tree.Window { return &tree.Window{ID: id} }

func TestDiscreteDwindle_GrowsOuterSplitRatio(t *testing.T) {
	cfg := config.Default()
	root := tree.NewContainer(geometry.AxisH, tree.LayoutDwindle)
	a, b := newWindow(1), newWindow(2)
	_ = root.Append(tree.WindowNode(a))
	_ = root.Append(tree.WindowNode(b))

	cache := dwindle.Rebuild([]*tree.Window{a, b}, geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 600}, cfg)
	root.Cache = cache

	if err := Discrete(a, DimensionWidth, Amount{Kind: AmountAdd, Value: 50}, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	leaf := cache.Find(a)
	outer := leaf.Parent
	if outer.SplitRatio <= 1.0 {
		t.Fatalf("expected split ratio to grow above 1.0, got %v", outer.SplitRatio)
	}
}

func TestDiscreteMaster_RejectsHeight(t *testing.T) {
	cfg := config.Default()
	ws := tree.NewWorkspace(0, tree.Monitor{Usable: geometry.Rect{Width: 1000, Height: 600}}, tree.LayoutMaster, geometry.AxisH)
	root := ws.Root
	root.Cache = master.New(tree.MasterLeft, cfg)
	a := newWindow(1)
	_ = root.Append(tree.WindowNode(a))

	err := Discrete(a, DimensionHeight, Amount{Kind: AmountAdd, Value: 20}, cfg)
	if err != ErrMasterHeightUnsupported {
		t.Fatalf("expected ErrMasterHeightUnsupported, got %v", err)
	}
}

func TestDiscreteMaster_WidthAddGrowsPercent(t *testing.T) {
	cfg := config.Default()
	ws := tree.NewWorkspace(0, tree.Monitor{Usable: geometry.Rect{Width: 1000, Height: 600}}, tree.LayoutMaster, geometry.AxisH)
	root := ws.Root
	cache := master.New(tree.MasterLeft, cfg)
	root.Cache = cache
	a := newWindow(1)
	_ = root.Append(tree.WindowNode(a))

	if err := Discrete(a, DimensionWidth, Amount{Kind: AmountAdd, Value: 100}, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.Percent <= 0.5 {
		t.Fatalf("expected percent to grow above 0.5, got %v", cache.Percent)
	}
}

func TestDiscreteMaster_UsesContainerLastRectNotMonitorWidth(t *testing.T) {
	cfg := config.Default()
	ws := tree.NewWorkspace(0, tree.Monitor{Usable: geometry.Rect{Width: 1000, Height: 600}}, tree.LayoutMaster, geometry.AxisH)
	root := ws.Root
	cache := master.New(tree.MasterLeft, cfg)
	root.Cache = cache
	a := newWindow(1)
	_ = root.Append(tree.WindowNode(a))

	// A nested/gapped master container laid out narrower than the monitor:
	// the percent delta should scale against its own width, not 1000.
	root.LastRect = geometry.Rect{Width: 500, Height: 600}

	if err := Discrete(a, DimensionWidth, Amount{Kind: AmountAdd, Value: 100}, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantWa := 500 - cfg.Gaps.Inner.Horizontal
	wantDelta := 100.0 / float64(wantWa)
	wantPercent := cfg.MasterDefaultPercent + wantDelta
	if diff := cache.Percent - wantPercent; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected percent %v derived from container width %d, got %v", wantPercent, wantWa, cache.Percent)
	}
}

func TestDiscreteTiles_RedistributesDeficitAmongSiblings(t *testing.T) {
	cfg := config.Default()
	root := tree.NewContainer(geometry.AxisH, tree.LayoutTiles)
	a, b, c := newWindow(1), newWindow(2), newWindow(3)
	_ = root.Append(tree.WindowNode(a))
	_ = root.Append(tree.WindowNode(b))
	_ = root.Append(tree.WindowNode(c))

	before := root.WeightSum(geometry.AxisH)

	if err := Discrete(a, DimensionWidth, Amount{Kind: AmountAdd, Value: 10}, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after := root.WeightSum(geometry.AxisH)
	if geometry.AbsInt(int(before-after)) > 0 {
		t.Fatalf("expected weight sum invariant preserved, before=%v after=%v", before, after)
	}
	if root.GetWeight(geometry.AxisH, 0) <= 1.0 {
		t.Fatalf("expected target's own weight to grow, got %v", root.GetWeight(geometry.AxisH, 0))
	}
}

func TestDiscreteScroll_DoesNotRedistribute(t *testing.T) {
	cfg := config.Default()
	root := tree.NewContainer(geometry.AxisH, tree.LayoutScroll)
	a, b := newWindow(1), newWindow(2)
	_ = root.Append(tree.WindowNode(a))
	_ = root.Append(tree.WindowNode(b))
	root.SetWeight(geometry.AxisH, 0, 800)
	root.SetWeight(geometry.AxisH, 1, 800)

	if err := Discrete(a, DimensionWidth, Amount{Kind: AmountAdd, Value: 100}, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if root.GetWeight(geometry.AxisH, 1) != 800 {
		t.Fatalf("expected scroll sibling untouched, got %v", root.GetWeight(geometry.AxisH, 1))
	}
	if root.GetWeight(geometry.AxisH, 0) != 900 {
		t.Fatalf("expected target width to be absolute, got %v", root.GetWeight(geometry.AxisH, 0))
	}
}

func TestDriver_DebouncesRapidEvents(t *testing.T) {
	cfg := config.Default()
	ws := tree.NewWorkspace(0, tree.Monitor{Usable: geometry.Rect{Width: 1000, Height: 600}}, tree.LayoutDwindle, geometry.AxisH)
	root := ws.Root
	a, b := newWindow(1), newWindow(2)
	_ = root.Append(tree.WindowNode(a))
	_ = root.Append(tree.WindowNode(b))
	root.Cache = dwindle.Rebuild([]*tree.Window{a, b}, geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 600}, cfg)

	d := NewDriver(cfg)
	base := time.Unix(0, 0)
	d.Seed(a, geometry.Rect{X: 0, Y: 0, Width: 495, Height: 600})

	ok1 := d.HandleEvent(context.Background(), ws, a, geometry.Rect{X: 0, Y: 0, Width: 520, Height: 600}, base)
	if !ok1 {
		t.Fatalf("expected first event to be accepted")
	}
	ok2 := d.HandleEvent(context.Background(), ws, a, geometry.Rect{X: 0, Y: 0, Width: 540, Height: 600}, base.Add(5*time.Millisecond))
	if ok2 {
		t.Fatalf("expected event within 16ms to be debounced")
	}
	ok3 := d.HandleEvent(context.Background(), ws, a, geometry.Rect{X: 0, Y: 0, Width: 540, Height: 600}, base.Add(20*time.Millisecond))
	if !ok3 {
		t.Fatalf("expected event after 16ms to be accepted")
	}
}

func TestSelectEdgeMovement_PicksFirstInFixedOrder(t *testing.T) {
	prev := geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300}
	cur := geometry.Rect{X: 80, Y: 100, Width: 400, Height: 320}

	m, ok := selectEdgeMovement(prev, cur)
	if !ok || m.name != "left" {
		t.Fatalf("expected left to win fixed-order priority, got %+v ok=%v", m, ok)
	}
}

func TestDriver_EndDragClearsManipulatedAndSnapshots(t *testing.T) {
	cfg := config.Default()
	ws := tree.NewWorkspace(0, tree.Monitor{Usable: geometry.Rect{Width: 1000, Height: 600}}, tree.LayoutDwindle, geometry.AxisH)
	root := ws.Root
	a, b := newWindow(1), newWindow(2)
	_ = root.Append(tree.WindowNode(a))
	_ = root.Append(tree.WindowNode(b))
	cache := dwindle.Rebuild([]*tree.Window{a, b}, geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 600}, cfg)
	root.Cache = cache

	a.Manipulated = true
	ws.Manipulated = a
	leaf := cache.Find(a)
	snap := leaf.Box
	leaf.BoxSnapshot = &snap

	d := NewDriver(cfg)
	d.EndDrag(ws, a)

	if a.Manipulated || ws.Manipulated != nil {
		t.Fatalf("expected manipulated flags cleared")
	}
	if leaf.BoxSnapshot != nil {
		t.Fatalf("expected box snapshot cleared")
	}
}
