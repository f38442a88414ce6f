package detection

import (
	"math"
)

// voteStepDegrees is the angular step between votes cast around each edge
// pixel. 2° keeps center votes from scattering across neighboring cells at
// larger radii, where coarser steps displace votes by several pixels.
const voteStepDegrees = 2

// minConfidence is the detection floor: the winning cell must collect at
// least this fraction of the expected circumference support.
const minConfidence = 0.6

// Circle is a detected circle in pixel coordinates relative to the mask it
// was found in.
type Circle struct {
	// X, Y is the center.
	X float64
	Y float64

	// R is the radius in pixels.
	R float64

	// Confidence is the ratio of accumulated votes to expected
	// circumference support, capped at 1.0.
	Confidence float64
}

// FindCircle runs a Hough circle transform over a binary edge mask and
// returns the single best-supported circle, or nil when no candidate clears
// the confidence floor.
//
// Parameters:
//   - edges: Edge mask indexed as edges[y][x], as produced by imaging.Canny.
//   - minRadius: Inclusive lower bound of the radius search range, in pixels.
//   - maxRadius: Exclusive upper bound of the radius search range.
//
// Only centers far enough from the border for the full circle to fit are
// considered. The radius range is searched in 1-pixel steps; maxRadius
// itself is never reported.
func FindCircle(edges [][]bool, minRadius, maxRadius int) *Circle {
	height := len(edges)
	if height == 0 {
		return nil
	}
	width := len(edges[0])

	var best *Circle
	var bestScore float64

	for radius := minRadius; radius < maxRadius; radius++ {
		if 2*radius >= width || 2*radius >= height {
			break
		}

		accumulator := make([][]int, height)
		for y := 0; y < height; y++ {
			accumulator[y] = make([]int, width)
		}

		// Center offsets for this radius. Deduplicated: at small radii many
		// vote angles round to the same cell, which would overweight them.
		offsets := make([][2]int, 0, 360/voteStepDegrees)
		seen := make(map[[2]int]struct{}, 360/voteStepDegrees)
		for angle := 0; angle < 360; angle += voteStepDegrees {
			rad := float64(angle) * math.Pi / 180
			off := [2]int{
				int(math.Round(float64(radius) * math.Cos(rad))),
				int(math.Round(float64(radius) * math.Sin(rad))),
			}
			if _, dup := seen[off]; dup {
				continue
			}
			seen[off] = struct{}{}
			offsets = append(offsets, off)
		}

		// Vote for candidate centers around every edge pixel.
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !edges[y][x] {
					continue
				}
				for _, off := range offsets {
					cx := x - off[0]
					cy := y - off[1]
					if cx >= 0 && cx < width && cy >= 0 && cy < height {
						accumulator[cy][cx]++
					}
				}
			}
		}

		// Track the best-supported cell for this radius. Centers too close
		// to the border cannot hold a complete circle and are skipped.
		for y := radius; y < height-radius; y++ {
			for x := radius; x < width-radius; x++ {
				votes := accumulator[y][x]
				if votes == 0 {
					continue
				}
				score := float64(votes) / float64(2*radius)
				if score < minConfidence {
					continue
				}
				if best == nil || score > bestScore {
					bestScore = score
					best = &Circle{
						X:          float64(x),
						Y:          float64(y),
						R:          float64(radius),
						Confidence: math.Min(score, 1.0),
					}
				}
			}
		}
	}

	return best
}
