// Package ipc implements the Unix-domain-socket command transport over
// internal/command.ApplyCommand (SPEC_FULL.md "Commands transport"),
// adapted from the teacher's internal/ipc: the same net.Listen("unix", ...)
// + bufio line-framing server loop, but carrying the literal one-line
// command text from spec.md §6 instead of the teacher's JSON envelope.
package ipc

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"os"
	"sync"

	"github.com/1broseidon/termtile/internal/command"
	"github.com/1broseidon/termtile/internal/runtimepath"
)

// Apply dispatches one command line and reports its outcome. The caller
// (cmd/termtile's engine) owns the session and the post-command refresh
// pass; the server itself is a thin transport.
type Apply func(line string) command.Outcome

// Server accepts line-oriented command connections and dispatches each
// line through Apply, which the caller is responsible for serializing
// against its own session the way the engine's single-writer-thread model
// requires (spec.md §5: "the tree is mutated only by the event loop").
type Server struct {
	socketPath string
	listener   net.Listener
	apply      Apply

	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates an IPC server that dispatches every received line
// through apply.
func NewServer(apply Apply) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	os.Remove(socketPath)

	return &Server{socketPath: socketPath, apply: apply}, nil
}

// Start begins listening for connections.
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)
	go s.acceptLoop()
	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			down := s.shuttingDown
			s.shutdownMu.Unlock()
			if down {
				return
			}
			log.Printf("IPC accept error: %v", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

// handleConnection reads one command per line until the client disconnects,
// writing back "OK[ message]" or "ERR message" per line (spec.md §7: "each
// command yields (success, optional message)").
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		outcome := s.apply(line)
		if _, err := fmt.Fprintln(conn, formatOutcome(outcome)); err != nil {
			log.Printf("IPC write error: %v", err)
			return
		}
	}
}

func formatOutcome(o command.Outcome) string {
	if o.OK {
		if o.Message == "" {
			return "OK"
		}
		return "OK " + o.Message
	}
	return "ERR " + o.Message
}

// Stop gracefully shuts down the server and removes the socket file.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
