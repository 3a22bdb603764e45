// Command termtile is the tiling layout engine's daemon entry point
// (SPEC_FULL.md "cmd/termtile"): it wires configuration, the X11 backend,
// one workspace on the active display, the command engine, and one command
// transport (internal/ipc, or internal/mcp under -mcp) together, then
// drives the refresh pass (spec.md §5) from the backend's asynchronous
// geometry events and the command stream.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/1broseidon/termtile/internal/command"
	"github.com/1broseidon/termtile/internal/config"
	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/ipc"
	"github.com/1broseidon/termtile/internal/layout"
	"github.com/1broseidon/termtile/internal/mcp"
	"github.com/1broseidon/termtile/internal/platform"
	"github.com/1broseidon/termtile/internal/resize"
	"github.com/1broseidon/termtile/internal/tree"
)

func main() {
	mcpStdio := flag.Bool("mcp", false, "serve MCP tools on stdio instead of starting the IPC socket daemon")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		log.Fatalf("failed to connect to display: %v", err)
	}

	ws, err := buildWorkspace(backend, cfg)
	if err != nil {
		log.Fatalf("failed to build workspace: %v", err)
	}

	e := newEngine(ws, cfg, backend)
	e.refresh()
	e.watchBackendEvents()
	go backend.EventLoop()

	if *mcpStdio {
		srv := mcp.NewServer(e.applyLine, e.workspace)
		if err := srv.Run(context.Background()); err != nil {
			log.Fatalf("mcp server exited: %v", err)
		}
		return
	}

	srv, err := ipc.NewServer(e.applyLine)
	if err != nil {
		log.Fatalf("failed to create IPC server: %v", err)
	}
	if err := srv.Start(); err != nil {
		log.Fatalf("failed to start IPC server: %v", err)
	}
	defer srv.Stop()

	log.Printf("termtile daemon listening (layout=%s)", cfg.DefaultRootContainerLayout)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
}

// buildWorkspace creates a single workspace on the active display and
// tail-inserts every already-present window (the "window insertion
// policy" decision in SPEC_FULL.md: new windows are always appended,
// never displace index 0).
func buildWorkspace(backend platform.Backend, cfg *config.Config) (*tree.Workspace, error) {
	display, err := backend.ActiveDisplay()
	if err != nil {
		return nil, fmt.Errorf("no active display: %w", err)
	}

	monitor := tree.Monitor{
		ID:     display.ID,
		Name:   display.Name,
		Frame:  display.Bounds,
		Usable: applyOuterGaps(display.Usable, cfg),
	}

	rootLayout := rootLayoutOf(cfg)
	ws := tree.NewWorkspace(display.ID, monitor, rootLayout, rootOrientationOf(cfg))
	if rootLayout == tree.LayoutMaster {
		ws.Root.MasterSide = tree.MasterLeft
	}

	windows, err := backend.ListWindowsOnDisplay(display.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}
	for _, w := range windows {
		win := &tree.Window{ID: tree.WindowID(w.ID), App: w.AppID, Title: w.Title}
		if err := ws.Root.Append(tree.WindowNode(win)); err != nil {
			log.Printf("failed to tile window %d: %v", w.ID, err)
		}
	}
	return ws, nil
}

func applyOuterGaps(r geometry.Rect, cfg *config.Config) geometry.Rect {
	return geometry.Rect{
		X:      r.X + cfg.Gaps.Outer.Left,
		Y:      r.Y + cfg.Gaps.Outer.Top,
		Width:  r.Width - cfg.Gaps.Outer.Left - cfg.Gaps.Outer.Right,
		Height: r.Height - cfg.Gaps.Outer.Top - cfg.Gaps.Outer.Bottom,
	}
}

func rootLayoutOf(cfg *config.Config) tree.LayoutKind {
	switch cfg.DefaultRootContainerLayout {
	case config.RootLayoutAccordion:
		return tree.LayoutAccordion
	case config.RootLayoutDwindle:
		return tree.LayoutDwindle
	case config.RootLayoutScroll:
		return tree.LayoutScroll
	case config.RootLayoutMaster:
		return tree.LayoutMaster
	default:
		return tree.LayoutTiles
	}
}

func rootOrientationOf(cfg *config.Config) geometry.Axis {
	if cfg.DefaultRootContainerOrientation == config.OrientationVertical {
		return geometry.AxisV
	}
	return geometry.AxisH
}

// engine owns the single shared Session and drives the refresh pass
// after every mutation (spec.md §5: "a refresh pass walks the active
// workspace... then pushes to the WindowBackend"), serializing access to
// match the event loop's single-writer model.
type engine struct {
	cfg     *config.Config
	backend platform.Backend
	pointer *resize.Driver

	mu      sync.Mutex
	session command.Session
}

func newEngine(ws *tree.Workspace, cfg *config.Config, backend platform.Backend) *engine {
	return &engine{
		cfg:     cfg,
		backend: backend,
		pointer: resize.NewDriver(cfg),
		session: command.NewSession(ws, cfg, backend),
	}
}

// workspace returns the session's current workspace, for callers (like
// internal/mcp's get_workspace_tree) that only need to read the tree.
func (e *engine) workspace() *tree.Workspace {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Workspace
}

// applyLine dispatches one command line against the shared session and
// runs the refresh pass, serialized by mu the way the single-writer
// event loop requires (spec.md §5). It is the Apply function both
// internal/ipc and internal/mcp transports are given.
func (e *engine) applyLine(line string) command.Outcome {
	e.mu.Lock()
	updated, outcome := command.ApplyCommand(context.Background(), e.session, line)
	e.session = updated
	e.mu.Unlock()

	e.refresh()
	return outcome
}

// refresh pushes the workspace's current tree through internal/layout,
// applying each leaf's resulting rect to the backend.
func (e *engine) refresh() {
	e.mu.Lock()
	ws := e.session.Workspace
	cfg := e.cfg
	e.mu.Unlock()

	ctx := &layout.Context{
		Config:      cfg,
		Manipulated: ws.Manipulated,
		Push: func(w *tree.Window, rect geometry.Rect) {
			w.VirtualRect = rect
			w.PhysicalRect = rect
			if err := e.backend.SetFrame(context.Background(), platform.WindowID(w.ID), rect); err != nil {
				log.Printf("refresh: failed to place window %d: %v", w.ID, err)
			}
		},
	}
	layout.Layout(tree.ContainerNode(ws.Root), ws.Monitor.Usable, ctx)
}

// watchBackendEvents registers geometry observers for every window
// currently tiled, translating backend-reported resizes into the
// pointer-driven resize path (spec.md §4.4.3/§4.4.4) and window-closed
// notifications into tree removal.
func (e *engine) watchBackendEvents() {
	for _, w := range tree.Leaves(tree.ContainerNode(e.workspace().Root)) {
		e.watchWindow(w)
	}
}

func (e *engine) watchWindow(w *tree.Window) {
	id := platform.WindowID(w.ID)
	e.backend.OnResized(id, func(_ platform.WindowID, rect geometry.Rect) {
		ws := e.workspace()
		if e.pointer.HandleEvent(context.Background(), ws, w, rect, time.Now()) {
			e.refresh()
		}
	})
	e.backend.OnClosed(id, func(_ platform.WindowID) {
		e.mu.Lock()
		e.session.Workspace.RemoveWindow(w.ID)
		if e.session.Focused == w {
			e.session.Focused = nil
		}
		e.mu.Unlock()
		e.refresh()
	})
}
