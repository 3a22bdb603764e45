//go:build linux

package platform

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection

	mu        sync.Mutex
	resized   map[WindowID][]ResizeHandler
	moved     map[WindowID][]MoveHandler
	closed    map[WindowID][]ClosedHandler
	connected map[WindowID]bool
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{
		conn:      conn,
		resized:   make(map[WindowID][]ResizeHandler),
		moved:     make(map[WindowID][]MoveHandler),
		closed:    make(map[WindowID][]ClosedHandler),
		connected: make(map[WindowID]bool),
	}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return NewLinuxBackend(conn), nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// Displays returns all active displays.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, displayFromMonitor(m))
	}

	sort.Slice(displays, func(i, j int) bool {
		return displays[i].ID < displays[j].ID
	})

	return displays, nil
}

// ActiveDisplay returns the currently active display.
func (b *LinuxBackend) ActiveDisplay() (Display, error) {
	conn, err := b.connection()
	if err != nil {
		return Display{}, err
	}

	active, err := conn.GetActiveMonitor()
	if err != nil {
		return Display{}, err
	}

	return displayFromMonitor(*active), nil
}

// ActiveWindow returns the currently active/focused window ID.
func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}

	wid, err := conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	return WindowID(wid), nil
}

// ListWindowsOnDisplay lists normal windows whose centers are inside the display bounds.
func (b *LinuxBackend) ListWindowsOnDisplay(displayID int) ([]Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	displays, err := b.Displays()
	if err != nil {
		return nil, err
	}

	var target *Display
	for i := range displays {
		if displays[i].ID == displayID {
			target = &displays[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("display with id %d not found", displayID)
	}

	clients, err := ewmh.ClientListGet(conn.XUtil)
	if err != nil {
		return nil, err
	}

	currentDesktop, desktopErr := ewmh.CurrentDesktopGet(conn.XUtil)
	hasCurrentDesktop := desktopErr == nil

	windows := make([]Window, 0, len(clients))
	for _, windowID := range clients {
		if !conn.IsNormalWindow(windowID) {
			continue
		}

		if hasCurrentDesktop {
			desktop, err := ewmh.WmDesktopGet(conn.XUtil, windowID)
			if err == nil && desktop != uint(0xFFFFFFFF) && desktop != currentDesktop {
				continue
			}
		}

		if b.shouldSkipByState(windowID) {
			continue
		}

		rect, ok := b.windowRect(windowID)
		if !ok {
			continue
		}

		if !target.Bounds.Contains(geometry.Point{X: rect.X + rect.Width/2, Y: rect.Y + rect.Height/2}) {
			continue
		}

		pid := 0
		if p, err := ewmh.WmPidGet(conn.XUtil, windowID); err == nil {
			pid = int(p)
		}

		windows = append(windows, Window{
			ID:     WindowID(windowID),
			PID:    pid,
			AppID:  b.windowAppID(windowID),
			Title:  b.windowTitle(windowID),
			Bounds: rect,
		})
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].ID < windows[j].ID
	})

	return windows, nil
}

// GetRect queries a window's current geometry. Suspending: it performs an
// X11 round trip; ctx cancellation is honoured before issuing the request
// (spec.md §5/§6).
func (b *LinuxBackend) GetRect(ctx context.Context, id WindowID) (geometry.Rect, error) {
	if err := ctx.Err(); err != nil {
		return geometry.Rect{}, err
	}
	if _, err := b.connection(); err != nil {
		return geometry.Rect{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	rect, ok := b.windowRect(xproto.Window(id))
	if !ok {
		return geometry.Rect{}, ErrWindowDead
	}
	return rect, nil
}

// SetRect moves and resizes a window. Suspending; see GetRect.
func (b *LinuxBackend) SetRect(ctx context.Context, id WindowID, origin geometry.Point, size geometry.Vector) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	conn, err := b.connection()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if err := conn.MoveResizeWindow(xproto.Window(id), origin.X, origin.Y, size.X, size.Y); err != nil {
		return fmt.Errorf("%w: %v", ErrWindowDead, err)
	}
	return nil
}

// SetFrame is a convenience wrapper over SetRect taking a single rect.
func (b *LinuxBackend) SetFrame(ctx context.Context, id WindowID, r geometry.Rect) error {
	return b.SetRect(ctx, id, geometry.Point{X: r.X, Y: r.Y}, geometry.Vector{X: r.Width, Y: r.Height})
}

// Focus activates and raises a window via _NET_ACTIVE_WINDOW.
func (b *LinuxBackend) Focus(ctx context.Context, id WindowID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	conn, err := b.connection()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if err := conn.FocusWindow(uint32(id)); err != nil {
		return fmt.Errorf("%w: %v", ErrWindowDead, err)
	}
	return nil
}

// Minimize minimizes a window via WM_CHANGE_STATE.
func (b *LinuxBackend) Minimize(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}

	reply, err := xproto.InternAtom(conn.XUtil.Conn(), false, uint16(len("WM_CHANGE_STATE")), "WM_CHANGE_STATE").Reply()
	if err != nil {
		return err
	}

	const iconicState = 3
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(windowID),
		Type:   reply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{iconicState, 0, 0, 0, 0}),
	}

	return xproto.SendEvent(
		conn.XUtil.Conn(),
		false,
		conn.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// Close requests graceful window close via WM_DELETE_WINDOW.
func (b *LinuxBackend) Close(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}

	deleteReply, err := xproto.InternAtom(conn.XUtil.Conn(), false, uint16(len("WM_DELETE_WINDOW")), "WM_DELETE_WINDOW").Reply()
	if err != nil {
		return err
	}
	protocolsReply, err := xproto.InternAtom(conn.XUtil.Conn(), false, uint16(len("WM_PROTOCOLS")), "WM_PROTOCOLS").Reply()
	if err != nil {
		return err
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(windowID),
		Type:   protocolsReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(deleteReply.Atom), 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		conn.XUtil.Conn(),
		false,
		xproto.Window(windowID),
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
}

// OnResized registers handler to be called whenever the backend reports a
// configure event changing windowID's size. Lazily attaches the X11
// ConfigureNotify callback on first registration for that window.
func (b *LinuxBackend) OnResized(id WindowID, handler ResizeHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resized[id] = append(b.resized[id], handler)
	b.ensureConfigureNotify(id)
}

// OnMoved registers handler for configure events that change windowID's origin.
func (b *LinuxBackend) OnMoved(id WindowID, handler MoveHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.moved[id] = append(b.moved[id], handler)
	b.ensureConfigureNotify(id)
}

// OnClosed registers handler for windowID's DestroyNotify event.
func (b *LinuxBackend) OnClosed(id WindowID, handler ClosedHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed[id] = append(b.closed[id], handler)
	if b.conn == nil {
		return
	}
	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		b.mu.Lock()
		handlers := append([]ClosedHandler(nil), b.closed[id]...)
		delete(b.connected, id)
		b.mu.Unlock()
		for _, h := range handlers {
			h(id)
		}
	}).Connect(b.conn.XUtil, xproto.Window(id))
}

// ensureConfigureNotify attaches a single ConfigureNotify callback per
// window that fans out to both the resize and move handler sets, keyed by
// whether the reported rect's size or origin changed relative to what we
// last observed.
func (b *LinuxBackend) ensureConfigureNotify(id WindowID) {
	if b.connected[id] || b.conn == nil {
		return
	}
	b.connected[id] = true

	last, _ := b.windowRect(xproto.Window(id))
	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		rect := geometry.Rect{X: int(ev.X), Y: int(ev.Y), Width: int(ev.Width), Height: int(ev.Height)}

		b.mu.Lock()
		prev := last
		last = rect
		resizeHandlers := append([]ResizeHandler(nil), b.resized[id]...)
		moveHandlers := append([]MoveHandler(nil), b.moved[id]...)
		b.mu.Unlock()

		if rect.Width != prev.Width || rect.Height != prev.Height {
			for _, h := range resizeHandlers {
				h(id, rect)
			}
		}
		if rect.X != prev.X || rect.Y != prev.Y {
			for _, h := range moveHandlers {
				h(id, rect)
			}
		}
	}).Connect(b.conn.XUtil, xproto.Window(id))
}

func (b *LinuxBackend) shouldSkipByState(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(b.conn.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_HIDDEN", "_NET_WM_STATE_FULLSCREEN":
			return true
		}
	}
	return false
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func displayFromMonitor(m x11.Monitor) Display {
	bounds := geometry.Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
	return Display{
		ID:     m.ID,
		Name:   m.Name,
		Bounds: bounds,
		Usable: bounds,
	}
}

func (b *LinuxBackend) windowRect(windowID xproto.Window) (geometry.Rect, bool) {
	conn := b.conn
	geom, err := xproto.GetGeometry(conn.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return geometry.Rect{}, false
	}

	translate, err := xproto.TranslateCoordinates(
		conn.XUtil.Conn(),
		windowID,
		conn.Root,
		0, 0,
	).Reply()
	if err != nil {
		return geometry.Rect{}, false
	}

	return geometry.Rect{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, true
}

func (b *LinuxBackend) windowAppID(windowID xproto.Window) string {
	wmClass, err := icccm.WmClassGet(b.conn.XUtil, windowID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

func (b *LinuxBackend) windowTitle(windowID xproto.Window) string {
	title, err := ewmh.WmNameGet(b.conn.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	title, err = icccm.WmNameGet(b.conn.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	return ""
}
