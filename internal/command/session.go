// Package command implements C6's command path (spec.md §6): parsing and
// dispatching the engine's five text commands against a Session value that
// threads focus and manipulation state through each call, the way
// spec.md §9's design notes describe ("model as a session value threaded
// through every command invocation").
package command

import (
	"context"
	"log"
	"strings"

	"github.com/1broseidon/termtile/internal/config"
	"github.com/1broseidon/termtile/internal/platform"
	"github.com/1broseidon/termtile/internal/tree"
	"github.com/google/uuid"
)

// Session bundles everything a command needs: the workspace it operates
// on, the currently focused window, the effective configuration, and the
// backend used by navigation's geometric sync (spec.md §4.5). It is
// passed by value to ApplyCommand and returned updated, mirroring the
// source's applyCommand(session, cmd) -> (session', outcome) shape.
type Session struct {
	ID        uuid.UUID
	Workspace *tree.Workspace
	Focused   *tree.Window
	Config    *config.Config
	Backend   platform.Backend
}

// NewSession creates a session with a fresh identifier (spec.md §9:
// sessions are the model's identity for the global mutable state the
// source otherwise carries ambiently).
func NewSession(ws *tree.Workspace, cfg *config.Config, backend platform.Backend) Session {
	return Session{ID: uuid.New(), Workspace: ws, Config: cfg, Backend: backend}
}

// Outcome is the (ok, message) pair every command yields (spec.md §7:
// "each command yields (success, optional message)").
type Outcome struct {
	OK      bool
	Message string
}

func ok() Outcome             { return Outcome{OK: true} }
func fail(msg string) Outcome { return Outcome{OK: false, Message: msg} }
func failErr(err error) Outcome {
	log.Printf("command: %v", err)
	return Outcome{OK: false, Message: err.Error()}
}

// ApplyCommand parses one line (spec.md §6: "one line each") and dispatches
// it, returning the session updated for any focus change plus the outcome.
// Errors never leave this function as a Go error value across the
// command boundary (spec.md §7): handlers fold internal errors into a
// failed Outcome through failErr, which also logs them.
func ApplyCommand(ctx context.Context, session Session, line string) (Session, Outcome) {
	name, args := splitCommand(line)
	switch name {
	case "layout":
		return session, applyLayout(session, args)
	case "resize":
		return session, applyResize(session, args)
	case "balance-sizes":
		return session, applyBalanceSizes(session)
	case "promote-master":
		return session, applyPromoteMaster(session)
	case "focus":
		return applyFocus(ctx, session, args)
	default:
		return session, fail("unknown command: " + name)
	}
}

func splitCommand(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}
