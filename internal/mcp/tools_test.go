package mcp

import (
	"context"
	"testing"

	"github.com/1broseidon/termtile/internal/command"
	"github.com/1broseidon/termtile/internal/config"
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/tree"
)

func newTestServer() (*Server, command.Session) {
	cfg := config.Default()
	ws := tree.NewWorkspace(0, tree.Monitor{Usable: geometry.Rect{Width: 1000, Height: 600}}, tree.LayoutTiles, geometry.AxisH)
	a := &tree.Window{ID: 1, App: "term"}
	b := &tree.Window{ID: 2, App: "term"}
	_ = ws.Root.Append(tree.WindowNode(a))
	_ = ws.Root.Append(tree.WindowNode(b))
	session := command.Session{Workspace: ws, Focused: a, Config: cfg}

	s := &Server{
		apply: func(line string) command.Outcome {
			updated, outcome := command.ApplyCommand(context.Background(), session, line)
			session = updated
			return outcome
		},
		workspace: func() *tree.Workspace { return session.Workspace },
	}
	return s, session
}

func TestHandleRunCommand_AppliesAgainstSharedSession(t *testing.T) {
	s, _ := newTestServer()

	_, out, err := s.handleRunCommand(context.Background(), nil, RunCommandInput{Line: "layout dwindle"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.OK {
		t.Fatalf("expected ok, got %+v", out)
	}
	if s.workspace().Root.Layout != tree.LayoutDwindle {
		t.Fatalf("expected shared session to reflect layout change, got %v", s.workspace().Root.Layout)
	}
}

func TestHandleRunCommand_PropagatesFailureMessage(t *testing.T) {
	cfg := config.Default()
	ws := tree.NewWorkspace(0, tree.Monitor{}, tree.LayoutTiles, geometry.AxisH)
	session := command.Session{Workspace: ws, Config: cfg}
	s := &Server{
		apply: func(line string) command.Outcome {
			updated, outcome := command.ApplyCommand(context.Background(), session, line)
			session = updated
			return outcome
		},
		workspace: func() *tree.Workspace { return session.Workspace },
	}

	_, out, err := s.handleRunCommand(context.Background(), nil, RunCommandInput{Line: "promote-master"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.OK || out.Message != "no-window-focused" {
		t.Fatalf("expected no-window-focused, got %+v", out)
	}
}

func TestHandleGetWorkspaceTree_DescribesContainerAndLeaves(t *testing.T) {
	s, _ := newTestServer()

	_, out, err := s.handleGetWorkspaceTree(context.Background(), nil, GetWorkspaceTreeInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Root.Kind != "container" || out.Root.Layout != "tiles" {
		t.Fatalf("expected root container tiles, got %+v", out.Root)
	}
	if len(out.Root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(out.Root.Children))
	}
	if out.Root.Children[0].Kind != "window" || out.Root.Children[0].WindowID != 1 {
		t.Fatalf("expected first child window id 1, got %+v", out.Root.Children[0])
	}
}

func TestHandleGetWorkspaceTree_ReportsFloatingBucket(t *testing.T) {
	s, session := newTestServer()
	floated := &tree.Window{ID: 99}
	session.Workspace.Floating = append(session.Workspace.Floating, floated)

	_, out, err := s.handleGetWorkspaceTree(context.Background(), nil, GetWorkspaceTreeInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Floating) != 1 || out.Floating[0] != 99 {
		t.Fatalf("expected floating bucket [99], got %v", out.Floating)
	}
}
