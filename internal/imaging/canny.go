package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
)

// blurRadius is the Gaussian radius applied before gradient computation,
// roughly equivalent to a 5x5 kernel.
const blurRadius = 2.0

// Canny performs Canny edge detection on a grayscale image.
//
// Parameters:
//   - gray: Source grayscale image.
//   - thresholdLow: Low hysteresis threshold (0-255). Gradients below this
//     are discarded. Typical value: 50.
//   - thresholdHigh: High hysteresis threshold (0-255). Gradients above this
//     are always edges; gradients between the thresholds are kept only when
//     connected to a strong edge. Typical value: 150.
//
// Returns a binary mask indexed as mask[y][x], true for edge pixels. Border
// pixels are never edges.
//
// # Algorithm
//
//  1. Gaussian blur to reduce noise
//  2. Sobel gradients: magnitude = sqrt(Gx² + Gy²), direction = atan2(Gy, Gx)
//  3. Non-maximum suppression along the gradient direction
//  4. Double threshold with hysteresis edge tracking
func Canny(gray *image.Gray, thresholdLow, thresholdHigh int) [][]bool {
	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Blur, then pull the single channel back out normalized to [0,1].
	blurred := blur.Gaussian(gray, blurRadius)
	lum := make([][]float64, height)
	for y := 0; y < height; y++ {
		lum[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			lum[y][x] = float64(blurred.Pix[y*blurred.Stride+x*4]) / 255.0
		}
	}

	// Sobel gradients
	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude := make([][]float64, height)
	direction := make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += lum[py][px] * sobelX[ky+1][kx+1]
					gy += lum[py][px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression: keep only local maxima along the gradient.
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}

			angle := direction[y][x]
			mag := magnitude[y][x]

			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[y][x-1]
				n2 = magnitude[y][x+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[y-1][x+1]
				n2 = magnitude[y+1][x-1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[y-1][x]
				n2 = magnitude[y+1][x]
			} else {
				n1 = magnitude[y-1][x-1]
				n2 = magnitude[y+1][x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}

	// Double threshold and hysteresis edge tracking.
	lowThresh := float64(thresholdLow) / 255.0
	highThresh := float64(thresholdHigh) / 255.0

	edges := make([][]bool, height)
	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			val := suppressed[y][x]
			if val >= highThresh {
				edges[y][x] = true
			} else if val >= lowThresh {
				for ky := -1; ky <= 1 && !edges[y][x]; ky++ {
					for kx := -1; kx <= 1 && !edges[y][x]; kx++ {
						py := clamp(y+ky, 0, height-1)
						px := clamp(x+kx, 0, width-1)
						if suppressed[py][px] >= highThresh {
							edges[y][x] = true
						}
					}
				}
			}
		}
	}

	return edges
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
