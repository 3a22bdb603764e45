// Package mcp exposes the engine's command path (internal/command) as MCP
// tools (SPEC_FULL.md "Commands transport": run_command, get_workspace_tree),
// adapted from the teacher's internal/mcp server/tool registration pattern,
// redirected at the tiling commands instead of agent orchestration.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/termtile/internal/command"
	"github.com/1broseidon/termtile/internal/tree"
)

const (
	ServerName    = "termtile"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for the tiling layout engine. Like internal/ipc,
// it is a thin transport: apply and workspace are supplied by the caller
// (cmd/termtile's engine), which owns the session, serializes mutation
// against it, and runs the post-command refresh pass (spec.md §5).
type Server struct {
	mcpServer *mcpsdk.Server
	apply     func(line string) command.Outcome
	workspace func() *tree.Workspace
}

// NewServer creates an MCP server that dispatches run_command through
// apply and describes the workspace returned by workspace.
func NewServer(apply func(line string) command.Outcome, workspace func() *tree.Workspace) *Server {
	s := &Server{apply: apply, workspace: workspace}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "run_command",
		Description: "Run one text command against the tiling layout engine (layout, resize, balance-sizes, promote-master, focus). Returns whether the command succeeded and an optional message.",
	}, s.handleRunCommand)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_workspace_tree",
		Description: "Describe the current workspace's tiling tree: container layouts/orientations and window leaves, plus the floating window bucket.",
	}, s.handleGetWorkspaceTree)
}
