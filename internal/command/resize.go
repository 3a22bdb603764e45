package command

import (
	"strconv"
	"strings"

	"github.com/1broseidon/termtile/internal/resize"
)

var resizeDimensions = map[string]resize.Dimension{
	"width":          resize.DimensionWidth,
	"height":         resize.DimensionHeight,
	"smart":          resize.DimensionSmart,
	"smart-opposite": resize.DimensionSmartOpposite,
}

// applyResize implements `resize <dimension> <amount>` (spec.md §6/§4.3).
func applyResize(session Session, args []string) Outcome {
	if session.Focused == nil {
		return fail("no-window-focused")
	}
	if len(args) != 2 {
		return fail("resize requires a dimension and an amount")
	}

	dim, known := resizeDimensions[args[0]]
	if !known {
		return fail("unknown resize dimension: " + args[0])
	}

	amount, err := parseAmount(args[1])
	if err != nil {
		return failErr(err)
	}

	err = resize.Discrete(session.Focused, dim, amount, session.Config)
	switch err {
	case nil:
		return ok()
	case resize.ErrFloatingNotSupported:
		return fail("floating-not-supported")
	case resize.ErrMasterHeightUnsupported:
		return fail("master-height-unsupported")
	default:
		return failErr(err)
	}
}

// parseAmount parses `+n`, `-n`, or a bare `n` — spec.md §6's command
// grammar for resize's amount argument (`{+n|-n|n}`). A signed token is a
// relative add/subtract; a bare token with no sign prefix is §4.3's `set`
// kind, setting the dimension to that absolute value.
func parseAmount(token string) (resize.Amount, error) {
	v, err := strconv.Atoi(token)
	if err != nil {
		return resize.Amount{}, err
	}
	switch {
	case strings.HasPrefix(token, "-"):
		return resize.Amount{Kind: resize.AmountSubtract, Value: -v}, nil
	case strings.HasPrefix(token, "+"):
		return resize.Amount{Kind: resize.AmountAdd, Value: v}, nil
	default:
		return resize.Amount{Kind: resize.AmountSet, Value: v}, nil
	}
}
