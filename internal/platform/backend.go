// Package platform abstracts the window-system operations the engine
// needs (spec.md §6 WindowBackend/MonitorProvider): querying and setting
// a window's rect, observer registration for backend-reported geometry
// changes, and monitor enumeration. One implementation per OS; this repo
// ships the Linux/X11 implementation in backend_linux.go.
package platform

import (
	"context"
	"errors"

	"github.com/1broseidon/termtile/internal/geometry"
)

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// ErrBackendUnavailable and ErrWindowDead are the two transient-failure
// kinds a WindowBackend call can fail with (spec.md §7 kind 3: backend
// transient failures are absorbed at the call site, never surfaced).
var (
	ErrBackendUnavailable = errors.New("platform: backend unavailable")
	ErrWindowDead         = errors.New("platform: window no longer exists")
)

// Display describes a physical display and its usable work area
// (MonitorProvider: frame is Bounds, visibleFrame is Usable).
type Display struct {
	ID     int
	Name   string
	Bounds geometry.Rect
	Usable geometry.Rect
}

// Window contains metadata and last-known geometry for a top-level window.
type Window struct {
	ID     WindowID
	PID    int
	AppID  string
	Title  string
	Bounds geometry.Rect
}

// ResizeHandler and friends receive backend-reported geometry/lifecycle
// events asynchronously, off the caller's goroutine.
type ResizeHandler func(WindowID, geometry.Rect)
type MoveHandler func(WindowID, geometry.Rect)
type ClosedHandler func(WindowID)

// Backend abstracts window-system operations across platforms. GetRect
// and SetRect are suspending (spec.md §5): they may block on the
// underlying OS round trip, so every call takes a context and the caller
// must be prepared for ctx cancellation (a superseding event) to abort it.
type Backend interface {
	Displays() ([]Display, error)
	ActiveDisplay() (Display, error)
	ActiveWindow() (WindowID, error)
	ListWindowsOnDisplay(displayID int) ([]Window, error)

	GetRect(ctx context.Context, id WindowID) (geometry.Rect, error)
	SetRect(ctx context.Context, id WindowID, origin geometry.Point, size geometry.Vector) error
	SetFrame(ctx context.Context, id WindowID, r geometry.Rect) error
	Focus(ctx context.Context, id WindowID) error

	Minimize(windowID WindowID) error
	Close(windowID WindowID) error

	OnResized(id WindowID, handler ResizeHandler)
	OnMoved(id WindowID, handler MoveHandler)
	OnClosed(id WindowID, handler ClosedHandler)
}
