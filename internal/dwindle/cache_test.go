package dwindle

import (
	"testing"

	"github.com/1broseidon/termtile/internal/config"
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/tree"
)

func newWindow(id tree.WindowID) *tree.Window { return &tree.Window{ID: id} }

func TestRebuild_TwoWindowsSplitVerticallyOnWideRect(t *testing.T) {
	cfg := config.Default()
	cfg.Gaps.Inner.Horizontal = 10

	a, b := newWindow(1), newWindow(2)
	cache := Rebuild([]*tree.Window{a, b}, geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 600}, cfg)

	if cache.Root.IsLeaf() {
		t.Fatalf("expected internal root for two windows")
	}
	if !cache.Root.SplitVertically {
		t.Fatalf("expected splitVertically=true for a 1000x600 rect (aspect >= 1)")
	}

	var gotA, gotB geometry.Rect
	cache.LayoutPass(geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 600}, cfg, nil, func(w *tree.Window, r geometry.Rect) {
		switch w {
		case a:
			gotA = r
		case b:
			gotB = r
		}
	})

	if gotA.Width != 495 || gotB.Width != 495 {
		t.Fatalf("expected widths 495/495, got %d/%d", gotA.Width, gotB.Width)
	}
	if gotA.X != 0 || gotB.X != 505 {
		t.Fatalf("expected x positions 0/505, got %d/%d", gotA.X, gotB.X)
	}
}

func TestNeedsRebuild_DetectsMembershipChange(t *testing.T) {
	cfg := config.Default()
	a, b := newWindow(1), newWindow(2)
	cache := Rebuild([]*tree.Window{a, b}, geometry.Rect{Width: 800, Height: 600}, cfg)

	if cache.NeedsRebuild(map[tree.WindowID]struct{}{1: {}, 2: {}}) {
		t.Fatalf("expected no rebuild needed when membership unchanged")
	}
	if !cache.NeedsRebuild(map[tree.WindowID]struct{}{1: {}, 2: {}, 3: {}}) {
		t.Fatalf("expected rebuild needed when membership grows")
	}
	if !cache.NeedsRebuild(map[tree.WindowID]struct{}{1: {}}) {
		t.Fatalf("expected rebuild needed when membership shrinks")
	}
}

func TestResize_SmartModeGrowsOuterSplitRatio(t *testing.T) {
	cfg := config.Default()
	a, b := newWindow(1), newWindow(2)
	cache := Rebuild([]*tree.Window{a, b}, geometry.Rect{Width: 1000, Height: 600}, cfg)
	cache.Root.SplitRatio = 1.0
	cache.Root.Box = geometry.Rect{Width: 1000, Height: 600}

	leaf := cache.Find(a)
	if leaf == nil {
		t.Fatalf("expected to find leaf for window a")
	}

	cache.Apply(leaf, ResizeParams{
		Delta:       geometry.Vector{X: 50},
		ShouldGrow:  true,
		Edges:       geometry.Edges{Horizontal: geometry.EdgePositive},
		Sensitivity: 1.0,
		Mode:        ResizeSmart,
	})

	if cache.Root.SplitRatio != 1.05 {
		t.Fatalf("expected splitRatio 1.05 after +50px grow at sensitivity 1.0, got %v", cache.Root.SplitRatio)
	}
}

func TestResize_EdgeConstraintZeroesDelta(t *testing.T) {
	cfg := config.Default()
	a, b := newWindow(1), newWindow(2)
	cache := Rebuild([]*tree.Window{a, b}, geometry.Rect{Width: 1000, Height: 600}, cfg)
	leaf := cache.Find(a)
	leaf.Box = geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 600}
	cache.Root.Box = geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 600}

	before := cache.Root.SplitRatio
	cache.Apply(leaf, ResizeParams{
		Delta:       geometry.Vector{Y: 30},
		ShouldGrow:  true,
		Edges:       geometry.Edges{Vertical: geometry.EdgePositive},
		Sensitivity: 1.0,
		Mode:        ResizeStandard,
	})

	if cache.Root.SplitRatio != before {
		t.Fatalf("expected ratio unchanged when leaf fills both vertical edges, got %v", cache.Root.SplitRatio)
	}
}

func TestBalance_ResetsAllRatiosToDefault(t *testing.T) {
	cfg := config.Default()
	a, b, c := newWindow(1), newWindow(2), newWindow(3)
	cache := Rebuild([]*tree.Window{a, b, c}, geometry.Rect{Width: 1200, Height: 800}, cfg)
	cache.Root.SplitRatio = 1.7
	cache.Root.Children[1].SplitRatio = 0.3

	cache.Balance(cfg)

	if cache.Root.SplitRatio != cfg.DwindleDefaultSplitRatio {
		t.Fatalf("expected root ratio reset to default")
	}
	if !cache.Root.Children[1].IsLeaf() && cache.Root.Children[1].SplitRatio != cfg.DwindleDefaultSplitRatio {
		t.Fatalf("expected nested split ratio reset to default")
	}
}
