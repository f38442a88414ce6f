package detection

import (
	"math"
	"testing"
)

// blankMask creates an empty edge mask.
func blankMask(width, height int) [][]bool {
	mask := make([][]bool, height)
	for y := range mask {
		mask[y] = make([]bool, width)
	}
	return mask
}

// drawCircleMask marks a circle outline using the midpoint algorithm.
func drawCircleMask(mask [][]bool, cx, cy, radius int) {
	set := func(x, y int) {
		if y >= 0 && y < len(mask) && x >= 0 && x < len(mask[y]) {
			mask[y][x] = true
		}
	}

	x := radius
	y := 0
	err := 0
	for x >= y {
		set(cx+x, cy+y)
		set(cx+y, cy+x)
		set(cx-y, cy+x)
		set(cx-x, cy+y)
		set(cx-x, cy-y)
		set(cx-y, cy-x)
		set(cx+y, cy-x)
		set(cx+x, cy-y)

		if err <= 0 {
			y++
			err += 2*y + 1
		}
		if err > 0 {
			x--
			err -= 2*x + 1
		}
	}
}

func TestFindCircle(t *testing.T) {
	mask := blankMask(80, 80)
	drawCircleMask(mask, 40, 40, 20)

	circle := FindCircle(mask, 15, 26)
	if circle == nil {
		t.Fatal("no circle found in clean ring")
	}

	if math.Abs(circle.X-40) > 2 || math.Abs(circle.Y-40) > 2 {
		t.Errorf("center (%.0f,%.0f), want near (40,40)", circle.X, circle.Y)
	}
	if math.Abs(circle.R-20) > 2 {
		t.Errorf("radius %.0f, want near 20", circle.R)
	}
	if circle.Confidence <= 0 || circle.Confidence > 1 {
		t.Errorf("confidence %.2f outside (0,1]", circle.Confidence)
	}
}

func TestFindCircleOffCenter(t *testing.T) {
	mask := blankMask(100, 60)
	drawCircleMask(mask, 70, 30, 12)

	circle := FindCircle(mask, 8, 18)
	if circle == nil {
		t.Fatal("no circle found")
	}
	if math.Abs(circle.X-70) > 2 || math.Abs(circle.Y-30) > 2 {
		t.Errorf("center (%.0f,%.0f), want near (70,30)", circle.X, circle.Y)
	}
	if math.Abs(circle.R-12) > 2 {
		t.Errorf("radius %.0f, want near 12", circle.R)
	}
}

func TestFindCircleEmptyMask(t *testing.T) {
	if c := FindCircle(blankMask(64, 64), 5, 20); c != nil {
		t.Errorf("found circle %+v in empty mask", c)
	}
	if c := FindCircle(nil, 5, 20); c != nil {
		t.Errorf("found circle %+v in nil mask", c)
	}
}

func TestFindCircleMaxRadiusExclusive(t *testing.T) {
	mask := blankMask(80, 80)
	drawCircleMask(mask, 40, 40, 20)

	// The reported radius must always be below the exclusive bound.
	if c := FindCircle(mask, 10, 15); c != nil && c.R >= 15 {
		t.Errorf("radius %.0f >= exclusive bound 15", c.R)
	}

	// A range that only contains the true radius still finds it.
	c := FindCircle(mask, 20, 21)
	if c == nil {
		t.Fatal("no circle found with exact-radius range")
	}
	if c.R != 20 {
		t.Errorf("radius %.0f, want 20", c.R)
	}
}

func TestFindCircleRangeLargerThanMask(t *testing.T) {
	mask := blankMask(30, 30)
	drawCircleMask(mask, 15, 15, 8)

	// Radii that cannot fit in the mask are skipped, not crashed on.
	c := FindCircle(mask, 5, 200)
	if c == nil {
		t.Fatal("no circle found")
	}
	if math.Abs(c.R-8) > 2 {
		t.Errorf("radius %.0f, want near 8", c.R)
	}
}

func TestFindCirclePicksStrongest(t *testing.T) {
	mask := blankMask(120, 80)
	drawCircleMask(mask, 35, 40, 15)
	// Partial arc elsewhere: half the ring erased.
	drawCircleMask(mask, 90, 40, 15)
	for y := 0; y < 80; y++ {
		for x := 90; x < 120; x++ {
			mask[y][x] = false
		}
	}

	c := FindCircle(mask, 10, 20)
	if c == nil {
		t.Fatal("no circle found")
	}
	if math.Abs(c.X-35) > 2 || math.Abs(c.Y-40) > 2 {
		t.Errorf("picked (%.0f,%.0f), want the complete ring near (35,40)", c.X, c.Y)
	}
}
