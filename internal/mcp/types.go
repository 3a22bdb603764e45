package mcp

// RunCommandInput is the input for the run_command tool.
type RunCommandInput struct {
	Line string `json:"line" jsonschema:"required,One line of the engine's text command grammar (e.g. 'layout dwindle', 'resize width +20', 'focus right')"`
}

// RunCommandOutput is the output for the run_command tool.
type RunCommandOutput struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// GetWorkspaceTreeInput is the input for the get_workspace_tree tool. It
// takes no parameters; the tool always describes the server's single
// active workspace.
type GetWorkspaceTreeInput struct{}

// TreeNode is a JSON-serializable view of one tree.Node (spec.md §3),
// recursive over Children for containers and flat for window leaves.
type TreeNode struct {
	Kind string `json:"kind"` // "container" or "window"

	// Container fields.
	Layout      string     `json:"layout,omitempty"`
	Orientation string     `json:"orientation,omitempty"`
	MasterSide  string     `json:"master_side,omitempty"`
	Children    []TreeNode `json:"children,omitempty"`

	// Window fields.
	WindowID uint32 `json:"window_id,omitempty"`
	App      string `json:"app,omitempty"`
	Title    string `json:"title,omitempty"`
}

// GetWorkspaceTreeOutput is the output for the get_workspace_tree tool.
type GetWorkspaceTreeOutput struct {
	Root     TreeNode `json:"root"`
	Floating []uint32 `json:"floating,omitempty"`
}
