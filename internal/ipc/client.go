package ipc

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/1broseidon/termtile/internal/runtimepath"
)

// Client sends one-line text commands to the daemon's IPC socket and
// parses back its "OK[ message]"/"ERR message" reply (adapted from the
// teacher's internal/ipc.Client, minus the JSON request/response envelope).
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates an IPC client bound to the standard socket path.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		socketPath = ""
	}
	return &Client{socketPath: socketPath, timeout: 5 * time.Second}
}

// Send transmits one command line and returns (ok, message).
func (c *Client) Send(line string) (bool, string, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return false, "", fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	if _, err := fmt.Fprintln(conn, line); err != nil {
		return false, "", fmt.Errorf("failed to send command: %w", err)
	}

	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return false, "", fmt.Errorf("failed to read reply: %w", err)
	}
	reply = strings.TrimRight(reply, "\n")

	switch {
	case reply == "OK" || strings.HasPrefix(reply, "OK "):
		return true, strings.TrimPrefix(strings.TrimPrefix(reply, "OK"), " "), nil
	case strings.HasPrefix(reply, "ERR "):
		return false, strings.TrimPrefix(reply, "ERR "), nil
	default:
		return false, "", fmt.Errorf("unrecognised reply: %q", reply)
	}
}

// Ping checks whether the daemon is responding, using a command with no
// side effects at the boundary (focus with no window focused is a no-op).
func (c *Client) Ping() error {
	_, _, err := c.Send("focus left")
	return err
}
