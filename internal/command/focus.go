package command

import (
	"context"

	"github.com/1broseidon/termtile/internal/geometry"
	"github.com/1broseidon/termtile/internal/navigation"
)

var focusDirections = map[string]geometry.Direction{
	"left":  geometry.DirLeft,
	"right": geometry.DirRight,
	"up":    geometry.DirUp,
	"down":  geometry.DirDown,
}

// applyFocus implements `focus <direction>` (spec.md §4.5, §6): silent
// no-op at a boundary, in either direction of "no neighbour" or no window
// currently focused.
func applyFocus(ctx context.Context, session Session, args []string) (Session, Outcome) {
	if session.Focused == nil {
		return session, ok()
	}
	if len(args) != 1 {
		return session, fail("focus requires exactly one direction")
	}
	dir, known := focusDirections[args[0]]
	if !known {
		return session, fail("unknown focus direction: " + args[0])
	}

	next, found := navigation.Navigate(ctx, session.Backend, session.Config, session.Focused, dir)
	if !found {
		return session, ok()
	}
	session.Focused = next
	return session, ok()
}
