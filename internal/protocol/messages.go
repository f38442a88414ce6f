package protocol

import (
	"errors"
	"fmt"
)

// TypeDetect is the message type for circle detection exchanges.
const TypeDetect = "detect"

// DefaultSocketPath is the Unix domain socket the server binds when no path
// is configured.
const DefaultSocketPath = "/tmp/hough_circles.sock"

// ErrInvalidRequest is wrapped by all request validation failures.
var ErrInvalidRequest = errors.New("invalid request")

// DetectParams carries the Canny edge detection thresholds applied to every
// ROI in a request. Both thresholds are on the 0-255 grayscale scale.
type DetectParams struct {
	CannyLow  int `json:"canny_low"`
	CannyHigh int `json:"canny_high"`
}

// Validate checks that both thresholds are within the 8-bit range.
func (p DetectParams) Validate() error {
	if p.CannyLow < 0 || p.CannyLow > 255 {
		return fmt.Errorf("%w: canny_low %d outside [0,255]", ErrInvalidRequest, p.CannyLow)
	}
	if p.CannyHigh < 0 || p.CannyHigh > 255 {
		return fmt.Errorf("%w: canny_high %d outside [0,255]", ErrInvalidRequest, p.CannyHigh)
	}
	return nil
}

// ROISpec describes one region of interest in the header frame. The pixel
// data itself follows as a raw frame of NumBytes row-major gray8 bytes.
type ROISpec struct {
	ID          string `json:"id"`
	Height      int    `json:"height"`
	Width       int    `json:"width"`
	NumBytes    int    `json:"num_bytes"`
	MinRadiusPx int    `json:"min_radius_px"`
	MaxRadiusPx int    `json:"max_radius_px"`
}

// Validate checks dimensions and the radius search range. MaxRadiusPx is an
// exclusive bound and must be strictly greater than MinRadiusPx.
func (s ROISpec) Validate() error {
	if s.Height <= 0 {
		return fmt.Errorf("%w: roi %q: height must be > 0", ErrInvalidRequest, s.ID)
	}
	if s.Width <= 0 {
		return fmt.Errorf("%w: roi %q: width must be > 0", ErrInvalidRequest, s.ID)
	}
	if s.NumBytes <= 0 {
		return fmt.Errorf("%w: roi %q: num_bytes must be > 0", ErrInvalidRequest, s.ID)
	}
	if s.NumBytes != s.Height*s.Width {
		return fmt.Errorf("%w: roi %q: num_bytes %d != height*width %d",
			ErrInvalidRequest, s.ID, s.NumBytes, s.Height*s.Width)
	}
	if s.MinRadiusPx <= 0 {
		return fmt.Errorf("%w: roi %q: min_radius_px must be > 0", ErrInvalidRequest, s.ID)
	}
	if s.MaxRadiusPx <= s.MinRadiusPx {
		return fmt.Errorf("%w: roi %q: max_radius_px must be > min_radius_px", ErrInvalidRequest, s.ID)
	}
	return nil
}

// DetectRequest is the JSON header frame opening a detect exchange.
type DetectRequest struct {
	Type     string       `json:"type"`
	Params   DetectParams `json:"params"`
	ROISpecs []ROISpec    `json:"roi_specs"`
}

// Validate checks the envelope type, parameters and every ROI spec.
func (r *DetectRequest) Validate() error {
	if r.Type != TypeDetect {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidRequest, r.Type)
	}
	if err := r.Params.Validate(); err != nil {
		return err
	}
	if len(r.ROISpecs) == 0 {
		return fmt.Errorf("%w: roi_specs must not be empty", ErrInvalidRequest)
	}
	for _, spec := range r.ROISpecs {
		if err := spec.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Circle is a detected circle in pixel coordinates relative to its ROI.
type Circle struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

// ROIResult is the per-ROI outcome. Circle is nil when no circle was found;
// Error is set when detection failed for this ROI without failing the batch.
type ROIResult struct {
	ID     string  `json:"id"`
	Circle *Circle `json:"circle"`
	Error  string  `json:"error,omitempty"`
}

// DetectResponse is the JSON frame closing a detect exchange.
//
// OK is false only for request-level failures (malformed header, frame
// mismatch); per-ROI failures are reported inside Results with OK still true.
type DetectResponse struct {
	Type    string      `json:"type"`
	OK      bool        `json:"ok"`
	Results []ROIResult `json:"results"`
	Millis  float64     `json:"ms,omitempty"`
	Error   string      `json:"error,omitempty"`
}
