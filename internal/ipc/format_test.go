package ipc

import (
	"testing"

	"github.com/1broseidon/termtile/internal/command"
)

func TestFormatOutcome_SuccessWithAndWithoutMessage(t *testing.T) {
	if got := formatOutcome(command.Outcome{OK: true}); got != "OK" {
		t.Fatalf("expected bare OK, got %q", got)
	}
	if got := formatOutcome(command.Outcome{OK: true, Message: "noted"}); got != "OK noted" {
		t.Fatalf("expected OK with message, got %q", got)
	}
}

func TestFormatOutcome_Failure(t *testing.T) {
	got := formatOutcome(command.Outcome{OK: false, Message: "no-window-focused"})
	if got != "ERR no-window-focused" {
		t.Fatalf("expected ERR-prefixed message, got %q", got)
	}
}
