package imaging

import (
	"image"
	"image/color"
	"testing"
)

// grayImage creates a uniform grayscale test image.
func grayImage(width, height int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// drawFilledSquare paints a filled square onto img.
func drawFilledSquare(img *image.Gray, x1, y1, x2, y2 int, v uint8) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
}

func countEdges(edges [][]bool) int {
	n := 0
	for _, row := range edges {
		for _, e := range row {
			if e {
				n++
			}
		}
	}
	return n
}

func TestCannyBlankImage(t *testing.T) {
	img := grayImage(64, 64, 128)

	edges := Canny(img, 50, 150)
	if got := countEdges(edges); got != 0 {
		t.Errorf("blank image produced %d edge pixels, want 0", got)
	}
}

func TestCannyFindsSquareBoundary(t *testing.T) {
	img := grayImage(64, 64, 255)
	drawFilledSquare(img, 16, 16, 48, 48, 0)

	edges := Canny(img, 50, 150)
	if got := countEdges(edges); got == 0 {
		t.Fatal("no edges found around a high-contrast square")
	}

	// Edges should cluster around the square boundary, not in the
	// homogeneous regions.
	if edges[2][2] {
		t.Error("edge reported in flat background region")
	}
	if edges[32][32] {
		t.Error("edge reported in flat interior region")
	}
}

func TestCannyMaskDimensions(t *testing.T) {
	img := grayImage(20, 10, 0)

	edges := Canny(img, 50, 150)
	if len(edges) != 10 {
		t.Fatalf("mask height %d, want 10", len(edges))
	}
	for y, row := range edges {
		if len(row) != 20 {
			t.Fatalf("row %d width %d, want 20", y, len(row))
		}
	}
}

func TestCannyThresholds(t *testing.T) {
	img := grayImage(64, 64, 255)
	drawFilledSquare(img, 16, 16, 48, 48, 200)

	// Low contrast step: permissive thresholds should find at least as
	// many edges as strict ones.
	loose := countEdges(Canny(img, 5, 20))
	strict := countEdges(Canny(img, 200, 250))

	if strict > loose {
		t.Errorf("strict thresholds found more edges (%d) than loose (%d)", strict, loose)
	}
}
