// Package client implements the batch detect client for the houghd socket
// protocol.
package client

import (
	"context"
	"fmt"
	"image"
	"net"
	"time"

	"github.com/vinay1337/hough-server/internal/imaging"
	"github.com/vinay1337/hough-server/internal/protocol"
)

// DefaultTimeout bounds a whole detect exchange (dial, send, receive) when
// Options leaves Timeout zero.
const DefaultTimeout = 60 * time.Second

// ROI is one region of interest to submit for circle detection.
type ROI struct {
	// ID identifies the ROI in the result list (e.g. a hole name).
	ID string

	// Image is the grayscale ROI. Use imaging.ToGray to convert color
	// sources.
	Image *image.Gray

	// MinRadiusPx and MaxRadiusPx bound the radius search in pixels;
	// MaxRadiusPx is exclusive.
	MinRadiusPx int
	MaxRadiusPx int
}

// Options carries the detection parameters shared by all ROIs in a batch.
type Options struct {
	// CannyLow and CannyHigh are the edge detection thresholds (0-255).
	CannyLow  int
	CannyHigh int

	// Timeout bounds the whole exchange. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// DetectCircles sends a batch of ROIs to the server at socketPath and
// returns one result per ROI, in input order.
//
// The connection is opened for the exchange and closed before returning. A
// response with ok=false is surfaced as an error carrying the server's
// message.
func DetectCircles(ctx context.Context, socketPath string, rois []ROI, opts Options) ([]protocol.ROIResult, error) {
	if len(rois) == 0 {
		return nil, fmt.Errorf("no rois given")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	// Build the header and raw frames up front so validation failures
	// surface before any connection is made.
	specs := make([]protocol.ROISpec, 0, len(rois))
	frames := make([][]byte, 0, len(rois))
	for _, roi := range rois {
		if roi.Image == nil {
			return nil, fmt.Errorf("roi %q: image is nil", roi.ID)
		}
		b := roi.Image.Bounds()
		pix := imaging.GrayBytes(roi.Image)
		specs = append(specs, protocol.ROISpec{
			ID:          roi.ID,
			Height:      b.Dy(),
			Width:       b.Dx(),
			NumBytes:    len(pix),
			MinRadiusPx: roi.MinRadiusPx,
			MaxRadiusPx: roi.MaxRadiusPx,
		})
		frames = append(frames, pix)
	}

	req := protocol.DetectRequest{
		Type: protocol.TypeDetect,
		Params: protocol.DetectParams{
			CannyLow:  opts.CannyLow,
			CannyHigh: opts.CannyHigh,
		},
		ROISpecs: specs,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", socketPath, err)
	}
	defer func() { _ = conn.Close() }()
	_ = conn.SetDeadline(time.Now().Add(timeout))

	if err := protocol.WriteJSON(conn, &req); err != nil {
		return nil, err
	}
	for i, frame := range frames {
		if err := protocol.WriteFrame(conn, frame); err != nil {
			return nil, fmt.Errorf("roi %q: %w", rois[i].ID, err)
		}
	}

	var resp protocol.DetectResponse
	if err := protocol.ReadJSON(conn, &resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		if resp.Error != "" {
			return nil, fmt.Errorf("server error: %s", resp.Error)
		}
		return nil, fmt.Errorf("server returned ok=false")
	}
	if len(resp.Results) != len(rois) {
		return nil, fmt.Errorf("result count mismatch: got %d, want %d", len(resp.Results), len(rois))
	}

	return resp.Results, nil
}
