package command

import (
	"context"
	"testing"

	"github.com/1broseidon/termtile/internal/config"
	"github.com/1broseidon/termtile/internal/dwindle"
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/master"
	"github.com/1broseidon/termtile/internal/tree"
)

func newWindow(id tree.WindowID) *tree.Window { return &tree.Window{ID: id} }

func newMasterSession(cfg *config.Config) (Session, *tree.Window, *tree.Window, *tree.Window) {
	ws := tree.NewWorkspace(0, tree.Monitor{Usable: geometry.Rect{Width: 1000, Height: 600}}, tree.LayoutMaster, geometry.AxisH)
	ws.Root.MasterSide = tree.MasterLeft
	ws.Root.Cache = master.New(tree.MasterLeft, cfg)
	a, b, c := newWindow(1), newWindow(2), newWindow(3)
	_ = ws.Root.Append(tree.WindowNode(a))
	_ = ws.Root.Append(tree.WindowNode(b))
	_ = ws.Root.Append(tree.WindowNode(c))
	return Session{Workspace: ws, Focused: a, Config: cfg}, a, b, c
}

func TestApplyCommand_LayoutNoWindowFocused(t *testing.T) {
	cfg := config.Default()
	ws := tree.NewWorkspace(0, tree.Monitor{}, tree.LayoutTiles, geometry.AxisH)
	session := Session{Workspace: ws, Config: cfg}

	_, outcome := ApplyCommand(context.Background(), session, "layout dwindle")
	if outcome.OK || outcome.Message != "no-window-focused" {
		t.Fatalf("expected no-window-focused, got %+v", outcome)
	}
}

func TestApplyCommand_LayoutChangesContainerLayout(t *testing.T) {
	cfg := config.Default()
	ws := tree.NewWorkspace(0, tree.Monitor{}, tree.LayoutTiles, geometry.AxisH)
	a := newWindow(1)
	_ = ws.Root.Append(tree.WindowNode(a))
	session := Session{Workspace: ws, Focused: a, Config: cfg}

	_, outcome := ApplyCommand(context.Background(), session, "layout dwindle")
	if !outcome.OK {
		t.Fatalf("expected success, got %+v", outcome)
	}
	if ws.Root.Layout != tree.LayoutDwindle {
		t.Fatalf("expected layout dwindle, got %v", ws.Root.Layout)
	}
}

func TestApplyCommand_LayoutMasterSideToken(t *testing.T) {
	cfg := config.Default()
	ws := tree.NewWorkspace(0, tree.Monitor{}, tree.LayoutTiles, geometry.AxisH)
	a := newWindow(1)
	_ = ws.Root.Append(tree.WindowNode(a))
	session := Session{Workspace: ws, Focused: a, Config: cfg}

	_, outcome := ApplyCommand(context.Background(), session, "layout master-right")
	if !outcome.OK {
		t.Fatalf("expected success, got %+v", outcome)
	}
	if ws.Root.Layout != tree.LayoutMaster || ws.Root.MasterSide != tree.MasterRight {
		t.Fatalf("expected master-right, got layout=%v side=%v", ws.Root.Layout, ws.Root.MasterSide)
	}
}

func TestApplyCommand_LayoutFloatToggleRoundTrip(t *testing.T) {
	cfg := config.Default()
	ws := tree.NewWorkspace(0, tree.Monitor{}, tree.LayoutTiles, geometry.AxisH)
	a, b := newWindow(1), newWindow(2)
	_ = ws.Root.Append(tree.WindowNode(a))
	_ = ws.Root.Append(tree.WindowNode(b))
	session := Session{Workspace: ws, Focused: a, Config: cfg}

	session, outcome := ApplyCommand(context.Background(), session, "layout floating")
	if !outcome.OK {
		t.Fatalf("expected success floating, got %+v", outcome)
	}
	if a.Parent() != nil || !containsWindow(ws.Floating, a) {
		t.Fatalf("expected a moved to floating bucket")
	}

	session, outcome = ApplyCommand(context.Background(), session, "layout tiling")
	if !outcome.OK {
		t.Fatalf("expected success tiling, got %+v", outcome)
	}
	if a.Parent() == nil || containsWindow(ws.Floating, a) {
		t.Fatalf("expected a moved back into the tiling tree")
	}
}

func TestApplyCommand_ResizeMasterHeightRejected(t *testing.T) {
	cfg := config.Default()
	session, _, _, _ := newMasterSession(cfg)

	_, outcome := ApplyCommand(context.Background(), session, "resize height +20")
	if outcome.OK || outcome.Message != "master-height-unsupported" {
		t.Fatalf("expected master-height-unsupported, got %+v", outcome)
	}
}

func TestApplyCommand_ResizeFloatingRejected(t *testing.T) {
	cfg := config.Default()
	ws := tree.NewWorkspace(0, tree.Monitor{}, tree.LayoutTiles, geometry.AxisH)
	a := newWindow(1)
	ws.Floating = append(ws.Floating, a)
	session := Session{Workspace: ws, Focused: a, Config: cfg}

	_, outcome := ApplyCommand(context.Background(), session, "resize width +20")
	if outcome.OK || outcome.Message != "floating-not-supported" {
		t.Fatalf("expected floating-not-supported, got %+v", outcome)
	}
}

func TestApplyCommand_ResizeBareAmountSetsAbsoluteWeight(t *testing.T) {
	cfg := config.Default()
	ws := tree.NewWorkspace(0, tree.Monitor{}, tree.LayoutTiles, geometry.AxisH)
	a, b := newWindow(1), newWindow(2)
	_ = ws.Root.Append(tree.WindowNode(a))
	_ = ws.Root.Append(tree.WindowNode(b))
	ws.Root.SetWeight(geometry.AxisH, 0, 1.0)
	ws.Root.SetWeight(geometry.AxisH, 1, 1.0)
	session := Session{Workspace: ws, Focused: a, Config: cfg}

	_, outcome := ApplyCommand(context.Background(), session, "resize width 800")
	if !outcome.OK {
		t.Fatalf("expected success, got %+v", outcome)
	}
	if got := ws.Root.GetWeight(geometry.AxisH, 0); got != 800.0 {
		t.Fatalf("expected weight set to 800, got %v", got)
	}
}

func TestApplyCommand_ResizeDwindleWidth(t *testing.T) {
	cfg := config.Default()
	ws := tree.NewWorkspace(0, tree.Monitor{}, tree.LayoutDwindle, geometry.AxisH)
	a, b := newWindow(1), newWindow(2)
	_ = ws.Root.Append(tree.WindowNode(a))
	_ = ws.Root.Append(tree.WindowNode(b))
	cache := dwindle.Rebuild([]*tree.Window{a, b}, geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 600}, cfg)
	ws.Root.Cache = cache
	session := Session{Workspace: ws, Focused: a, Config: cfg}

	_, outcome := ApplyCommand(context.Background(), session, "resize width +50")
	if !outcome.OK {
		t.Fatalf("expected success, got %+v", outcome)
	}
	if cache.Find(a).Parent.SplitRatio <= 1.0 {
		t.Fatalf("expected split ratio to grow")
	}
}

func TestApplyCommand_BalanceSizesResetsTilesWeights(t *testing.T) {
	cfg := config.Default()
	ws := tree.NewWorkspace(0, tree.Monitor{}, tree.LayoutTiles, geometry.AxisH)
	a, b := newWindow(1), newWindow(2)
	_ = ws.Root.Append(tree.WindowNode(a))
	_ = ws.Root.Append(tree.WindowNode(b))
	ws.Root.SetWeight(geometry.AxisH, 0, 700)
	ws.Root.SetWeight(geometry.AxisH, 1, 300)
	session := Session{Workspace: ws, Focused: a, Config: cfg}

	_, outcome := ApplyCommand(context.Background(), session, "balance-sizes")
	if !outcome.OK {
		t.Fatalf("expected success, got %+v", outcome)
	}
	if ws.Root.GetWeight(geometry.AxisH, 0) != 1.0 || ws.Root.GetWeight(geometry.AxisH, 1) != 1.0 {
		t.Fatalf("expected uniform weights, got %v %v", ws.Root.GetWeight(geometry.AxisH, 0), ws.Root.GetWeight(geometry.AxisH, 1))
	}
}

func TestApplyCommand_BalanceSizesResetsDwindleRatios(t *testing.T) {
	cfg := config.Default()
	ws := tree.NewWorkspace(0, tree.Monitor{}, tree.LayoutDwindle, geometry.AxisH)
	a, b := newWindow(1), newWindow(2)
	_ = ws.Root.Append(tree.WindowNode(a))
	_ = ws.Root.Append(tree.WindowNode(b))
	cache := dwindle.Rebuild([]*tree.Window{a, b}, geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 600}, cfg)
	ws.Root.Cache = cache
	cache.Root.SplitRatio = 1.5
	session := Session{Workspace: ws, Focused: a, Config: cfg}

	_, outcome := ApplyCommand(context.Background(), session, "balance-sizes")
	if !outcome.OK {
		t.Fatalf("expected success, got %+v", outcome)
	}
	if cache.Root.SplitRatio != cfg.DwindleDefaultSplitRatio {
		t.Fatalf("expected split ratio reset to default, got %v", cache.Root.SplitRatio)
	}
}

func TestApplyCommand_PromoteMasterSwapsWithIndexZero(t *testing.T) {
	cfg := config.Default()
	session, a, b, _ := newMasterSession(cfg)
	session.Focused = b

	session, outcome := ApplyCommand(context.Background(), session, "promote-master")
	if !outcome.OK {
		t.Fatalf("expected success, got %+v", outcome)
	}
	if b.Index() != 0 || a.Index() != 1 {
		t.Fatalf("expected b at index 0 and a at index 1, got b=%d a=%d", b.Index(), a.Index())
	}
}

func TestApplyCommand_PromoteMasterAlreadyMaster(t *testing.T) {
	cfg := config.Default()
	session, _, _, _ := newMasterSession(cfg)

	_, outcome := ApplyCommand(context.Background(), session, "promote-master")
	if outcome.OK || outcome.Message != "already-master" {
		t.Fatalf("expected already-master, got %+v", outcome)
	}
}

func TestApplyCommand_PromoteMasterNotMasterLayout(t *testing.T) {
	cfg := config.Default()
	ws := tree.NewWorkspace(0, tree.Monitor{}, tree.LayoutTiles, geometry.AxisH)
	a, b := newWindow(1), newWindow(2)
	_ = ws.Root.Append(tree.WindowNode(a))
	_ = ws.Root.Append(tree.WindowNode(b))
	session := Session{Workspace: ws, Focused: b, Config: cfg}

	_, outcome := ApplyCommand(context.Background(), session, "promote-master")
	if outcome.OK || outcome.Message != "not-master-layout" {
		t.Fatalf("expected not-master-layout, got %+v", outcome)
	}
}

func TestApplyCommand_FocusMovesFocusedWindow(t *testing.T) {
	cfg := config.Default()
	ws := tree.NewWorkspace(0, tree.Monitor{}, tree.LayoutTiles, geometry.AxisH)
	a, b := newWindow(1), newWindow(2)
	_ = ws.Root.Append(tree.WindowNode(a))
	_ = ws.Root.Append(tree.WindowNode(b))
	session := Session{Workspace: ws, Focused: a, Config: cfg}

	session, outcome := ApplyCommand(context.Background(), session, "focus right")
	if !outcome.OK {
		t.Fatalf("expected success, got %+v", outcome)
	}
	if session.Focused != b {
		t.Fatalf("expected focus to move to b, got %v", session.Focused)
	}
}

func TestApplyCommand_FocusBoundaryIsSilentNoOp(t *testing.T) {
	cfg := config.Default()
	ws := tree.NewWorkspace(0, tree.Monitor{}, tree.LayoutTiles, geometry.AxisH)
	a, b := newWindow(1), newWindow(2)
	_ = ws.Root.Append(tree.WindowNode(a))
	_ = ws.Root.Append(tree.WindowNode(b))
	session := Session{Workspace: ws, Focused: a, Config: cfg}

	session, outcome := ApplyCommand(context.Background(), session, "focus left")
	if !outcome.OK || outcome.Message != "" {
		t.Fatalf("expected silent ok no-op, got %+v", outcome)
	}
	if session.Focused != a {
		t.Fatalf("expected focus unchanged, got %v", session.Focused)
	}
}
