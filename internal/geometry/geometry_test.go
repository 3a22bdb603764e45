package geometry

import "testing"

func TestSplitAlong_EqualRatioHorizontalGap(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 1000, Height: 600}
	a, b := SplitAlong(r, AxisH, 1.0, 10)

	if a.Width != 495 || b.Width != 495 {
		t.Fatalf("expected widths 495/495, got %d/%d", a.Width, b.Width)
	}
	if a.X != 0 {
		t.Fatalf("expected a.X=0, got %d", a.X)
	}
	if b.X != 505 {
		t.Fatalf("expected b.X=505, got %d", b.X)
	}
	if a.Height != 600 || b.Height != 600 {
		t.Fatalf("expected full height carried through, got %d/%d", a.Height, b.Height)
	}
}

func TestSplitAlong_SkewedRatio(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 1000, Height: 600}
	a, b := SplitAlong(r, AxisH, 1.05, 0)

	// a = 1000 * 1.05/2.05 ~= 512
	if a.Width != 512 {
		t.Fatalf("expected a.Width=512, got %d", a.Width)
	}
	if a.Width+b.Width != 1000 {
		t.Fatalf("expected widths to sum to 1000, got %d", a.Width+b.Width)
	}
}

func TestOverlapLength(t *testing.T) {
	cases := []struct {
		aStart, aLen, bStart, bLen, want int
	}{
		{0, 10, 5, 10, 5},
		{0, 10, 10, 10, 0},
		{0, 10, 20, 10, 0},
		{0, 10, 2, 3, 3},
	}
	for _, c := range cases {
		got := OverlapLength(c.aStart, c.aLen, c.bStart, c.bLen)
		if got != c.want {
			t.Fatalf("OverlapLength(%d,%d,%d,%d) = %d, want %d", c.aStart, c.aLen, c.bStart, c.bLen, got, c.want)
		}
	}
}

func TestDirectionAxis(t *testing.T) {
	if DirLeft.Axis() != AxisH || DirRight.Axis() != AxisH {
		t.Fatalf("left/right should be horizontal")
	}
	if DirUp.Axis() != AxisV || DirDown.Axis() != AxisV {
		t.Fatalf("up/down should be vertical")
	}
}
