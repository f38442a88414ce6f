// Package imaging provides the pixel-level plumbing for the detection
// pipeline: decoding raw grayscale ROI frames, converting arbitrary images
// to gray8, and Canny edge detection.
//
// # Gray8 frames
//
// The wire protocol ships regions of interest as row-major uint8 grayscale
// bytes without any container format. DecodeGray turns such a frame into an
// *image.Gray; GrayBytes performs the inverse for the client side, handling
// sub-images whose stride exceeds their width.
//
// # Edge detection
//
// Canny implements the classic pipeline on a grayscale input:
//
//  1. Gaussian blur to suppress noise
//  2. Sobel gradients (magnitude and direction)
//  3. Non-maximum suppression to thin edges to single-pixel width
//  4. Hysteresis thresholding with the caller's low/high thresholds
//
// The output is a binary edge mask consumed by the Hough transform in the
// detection package. Thresholds are on the 0-255 scale; lower values detect
// more edges at the cost of noise.
package imaging
