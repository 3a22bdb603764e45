// Package master implements the C5 cache behind the Master layout
// (spec.md §4.6): a single adjustable split between a master area and a
// stack. promote-master's sibling swap lives in internal/command.
package master

import (
	"github.com/1broseidon/termtile/internal/config"
	"github.com/1broseidon/termtile/internal/tree"
)

// Cache is the side-table attached to a container with Layout == Master
// (spec.md invariant 6).
type Cache struct {
	Percent float64
	Side    tree.MasterSide
}

// CacheKind implements tree.LayoutCache.
func (c *Cache) CacheKind() tree.LayoutKind { return tree.LayoutMaster }

var _ tree.LayoutCache = (*Cache)(nil)

// New builds a fresh cache from the container's configured side and the
// configured default master percent (spec.md §4.6).
func New(side tree.MasterSide, cfg *config.Config) *Cache {
	return &Cache{Percent: cfg.MasterDefaultPercent, Side: side}
}

// Resize adjusts Percent by a pixel delta measured against containerWidth,
// honoring the side so that growing the master area always means "move
// the split toward the stack" (spec.md §4.6 resize).
func (c *Cache) Resize(pixels int, shouldGrow bool, containerWidth int) {
	if c == nil || containerWidth <= 0 {
		return
	}
	sign := 1.0
	if !shouldGrow {
		sign = -1.0
	}
	if c.Side == tree.MasterRight {
		sign = -sign
	}

	delta := sign * float64(pixels) / float64(containerWidth)
	c.Percent = clamp(c.Percent+delta, 0.1, 0.9)
}

// Balance resets Percent to the configured default (spec.md §4.6).
func (c *Cache) Balance(cfg *config.Config) {
	if c == nil {
		return
	}
	c.Percent = cfg.MasterDefaultPercent
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
