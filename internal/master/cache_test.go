package master

import (
	"testing"

	"github.com/1broseidon/termtile/internal/config"
	"github.com/1broseidon/termtile/internal/tree"
)

func TestNew_UsesConfiguredDefaultPercent(t *testing.T) {
	cfg := config.Default()
	c := New(tree.MasterLeft, cfg)
	if c.Percent != 0.5 {
		t.Fatalf("expected default percent 0.5, got %v", c.Percent)
	}
}

func TestResize_LeftSideGrowingIncreasesPercent(t *testing.T) {
	c := &Cache{Percent: 0.5, Side: tree.MasterLeft}
	c.Resize(50, true, 990)

	want := 0.5 + 50.0/990.0
	if diff := c.Percent - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected percent %v, got %v", want, c.Percent)
	}
}

func TestResize_RightSideFlipsSign(t *testing.T) {
	left := &Cache{Percent: 0.5, Side: tree.MasterLeft}
	left.Resize(50, true, 990)

	right := &Cache{Percent: 0.5, Side: tree.MasterRight}
	right.Resize(50, true, 990)

	if left.Percent-0.5 != -(right.Percent - 0.5) {
		t.Fatalf("expected right-sided master to move opposite to left-sided: left=%v right=%v", left.Percent, right.Percent)
	}
}

func TestResize_ClampsToRange(t *testing.T) {
	c := &Cache{Percent: 0.89, Side: tree.MasterLeft}
	c.Resize(1000, true, 990)
	if c.Percent != 0.9 {
		t.Fatalf("expected clamp to 0.9, got %v", c.Percent)
	}

	c2 := &Cache{Percent: 0.11, Side: tree.MasterLeft}
	c2.Resize(1000, false, 990)
	if c2.Percent != 0.1 {
		t.Fatalf("expected clamp to 0.1, got %v", c2.Percent)
	}
}

func TestBalance_ResetsToDefault(t *testing.T) {
	cfg := config.Default()
	c := &Cache{Percent: 0.8, Side: tree.MasterLeft}
	c.Balance(cfg)
	if c.Percent != cfg.MasterDefaultPercent {
		t.Fatalf("expected balance to reset to default percent")
	}
}
