package command

import (
	"github.com/1broseidon/termtile/internal/tree"
)

// applyPromoteMaster implements `promote-master` (spec.md §4.6, §6).
func applyPromoteMaster(session Session) Outcome {
	if session.Focused == nil {
		return fail("no-window-focused")
	}
	parent := session.Focused.Parent()
	if parent == nil || parent.Layout != tree.LayoutMaster {
		return fail("not-master-layout")
	}
	if session.Focused.Index() == 0 {
		return fail("already-master")
	}

	master := parent.Children[0]
	if err := tree.Swap(tree.WindowNode(session.Focused), master); err != nil {
		return failErr(err)
	}
	return ok()
}
