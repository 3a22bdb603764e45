package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/termtile/internal/tree"
)

func (s *Server) handleRunCommand(_ context.Context, _ *mcpsdk.CallToolRequest, args RunCommandInput) (*mcpsdk.CallToolResult, RunCommandOutput, error) {
	outcome := s.apply(args.Line)
	return nil, RunCommandOutput{OK: outcome.OK, Message: outcome.Message}, nil
}

func (s *Server) handleGetWorkspaceTree(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetWorkspaceTreeInput) (*mcpsdk.CallToolResult, GetWorkspaceTreeOutput, error) {
	ws := s.workspace()

	out := GetWorkspaceTreeOutput{Root: describeNode(tree.ContainerNode(ws.Root))}
	for _, w := range ws.Floating {
		out.Floating = append(out.Floating, uint32(w.ID))
	}
	return nil, out, nil
}

func describeNode(n tree.Node) TreeNode {
	if n.IsWindow() {
		w := n.Window
		return TreeNode{
			Kind:     "window",
			WindowID: uint32(w.ID),
			App:      w.App,
			Title:    w.Title,
		}
	}

	c := n.Container
	out := TreeNode{
		Kind:        "container",
		Layout:      c.Layout.String(),
		Orientation: c.Orientation.String(),
	}
	if c.Layout == tree.LayoutMaster {
		out.MasterSide = masterSideString(c.MasterSide)
	}
	for _, child := range c.Children {
		out.Children = append(out.Children, describeNode(child))
	}
	return out
}

func masterSideString(side tree.MasterSide) string {
	if side == tree.MasterRight {
		return "right"
	}
	return "left"
}
