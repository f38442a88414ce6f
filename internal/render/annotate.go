// Package render draws detection results onto images for visual
// inspection.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vinay1337/hough-server/internal/protocol"
)

// Annotate returns a copy of src with every circle outlined.
//
// Each circle gets a distinct hue so overlapping detections stay
// distinguishable. The source image is not modified.
func Annotate(src image.Image, circles []*protocol.Circle) *image.NRGBA {
	out := imaging.Clone(src)
	n := 0
	for _, c := range circles {
		if c == nil {
			continue
		}
		drawCircle(out, c, paletteColor(n, len(circles)))
		n++
	}
	return out
}

// Save writes img to path; the format is chosen by file extension as in
// imaging.Save (".png", ".jpg", ...).
func Save(img image.Image, path string) error {
	return imaging.Save(img, path)
}

// paletteColor spreads hues evenly around the color wheel.
func paletteColor(i, total int) color.NRGBA {
	if total < 1 {
		total = 1
	}
	hue := float64(i) / float64(total) * 360.0
	c := colorful.Hsv(hue, 0.9, 0.95)
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// drawCircle rasterizes a 2px circle outline centered on the detection.
func drawCircle(img *image.NRGBA, c *protocol.Circle, col color.NRGBA) {
	bounds := img.Bounds()
	for _, r := range []float64{c.R, c.R + 1} {
		// Step fine enough that adjacent samples touch.
		steps := int(math.Ceil(2 * math.Pi * r))
		if steps < 8 {
			steps = 8
		}
		for i := 0; i < steps; i++ {
			theta := float64(i) / float64(steps) * 2 * math.Pi
			x := int(math.Round(c.X + r*math.Cos(theta)))
			y := int(math.Round(c.Y + r*math.Sin(theta)))
			if image.Pt(x, y).In(bounds) {
				img.SetNRGBA(x, y, col)
			}
		}
	}
}
