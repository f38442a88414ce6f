package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/effect"
)

// DecodeGray interprets data as row-major uint8 grayscale pixels of the
// given dimensions.
//
// Returns an error if the byte count does not match width*height exactly.
// The returned image aliases data; callers that retain the image beyond the
// lifetime of the buffer must copy it first.
func DecodeGray(data []byte, width, height int) (*image.Gray, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("gray frame size mismatch: got %d bytes, want %d (%dx%d)",
			len(data), width*height, width, height)
	}
	return &image.Gray{
		Pix:    data,
		Stride: width,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// GrayBytes extracts the row-major pixel bytes of a gray image.
//
// A fresh slice is returned even when the image is contiguous, so the result
// is safe to hand to the wire layer while the image stays in use. Sub-images
// (stride > width) are compacted.
func GrayBytes(img *image.Gray) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-img.Rect.Min.Y)*img.Stride : (y-img.Rect.Min.Y)*img.Stride+w]
		out = append(out, row...)
	}
	return out
}

// ToGray converts any image to 8-bit grayscale.
//
// Luminance conversion is delegated to bild's Grayscale filter; the single
// channel is then compacted into an *image.Gray. Inputs that are already
// gray are returned as-is.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	rgba := effect.Grayscale(img)
	b := rgba.Bounds()
	out := image.NewGray(b)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			// Grayscale output has R == G == B.
			out.Pix[y*out.Stride+x] = rgba.Pix[y*rgba.Stride+x*4]
		}
	}
	return out
}
