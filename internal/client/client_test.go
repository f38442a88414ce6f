package client

import (
	"context"
	"image"
	"image/color"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinay1337/hough-server/internal/server"
)

func diskImage(size, cx, cy, radius int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

func startServer(t *testing.T) string {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "hough.sock")
	srv := server.New(server.Options{SocketPath: socketPath, Workers: 2, ReadTimeout: 5 * time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("server error: %v", err)
		}
	})

	require.Eventually(t, func() bool {
		_, err := DetectCircles(context.Background(), socketPath, []ROI{{
			ID:          "probe",
			Image:       image.NewGray(image.Rect(0, 0, 8, 8)),
			MinRadiusPx: 1,
			MaxRadiusPx: 2,
		}}, Options{Timeout: time.Second})
		return err == nil
	}, 2*time.Second, 20*time.Millisecond, "server did not come up")

	return socketPath
}

func TestDetectCircles(t *testing.T) {
	socketPath := startServer(t)

	results, err := DetectCircles(context.Background(), socketPath, []ROI{
		{ID: "disk", Image: diskImage(64, 32, 32, 16), MinRadiusPx: 10, MaxRadiusPx: 24},
		{ID: "blank", Image: image.NewGray(image.Rect(0, 0, 64, 64)), MinRadiusPx: 10, MaxRadiusPx: 24},
	}, Options{CannyLow: 50, CannyHigh: 150})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Results come back in request order.
	assert.Equal(t, "disk", results[0].ID)
	assert.Equal(t, "blank", results[1].ID)

	require.NotNil(t, results[0].Circle)
	assert.InDelta(t, 32, results[0].Circle.X, 3)
	assert.InDelta(t, 32, results[0].Circle.Y, 3)
	assert.InDelta(t, 16, results[0].Circle.R, 3)

	assert.Nil(t, results[1].Circle)
}

func TestDetectCirclesSubImage(t *testing.T) {
	socketPath := startServer(t)

	// A sub-image view exercises stride compaction on the wire.
	big := diskImage(128, 40, 40, 14)
	sub := big.SubImage(image.Rect(8, 8, 72, 72)).(*image.Gray)

	results, err := DetectCircles(context.Background(), socketPath, []ROI{
		{ID: "sub", Image: sub, MinRadiusPx: 10, MaxRadiusPx: 20},
	}, Options{CannyLow: 50, CannyHigh: 150})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Circle)

	// Disk center (40,40) is (32,32) relative to the cropped view.
	assert.InDelta(t, 32, results[0].Circle.X, 3)
	assert.InDelta(t, 32, results[0].Circle.Y, 3)
	assert.InDelta(t, 14, results[0].Circle.R, 3)
}

func TestDetectCirclesValidation(t *testing.T) {
	tests := []struct {
		name string
		rois []ROI
		opts Options
	}{
		{"no rois", nil, Options{}},
		{"nil image", []ROI{{ID: "x", MinRadiusPx: 1, MaxRadiusPx: 2}}, Options{}},
		{"bad radii", []ROI{{
			ID: "x", Image: image.NewGray(image.Rect(0, 0, 8, 8)), MinRadiusPx: 5, MaxRadiusPx: 5,
		}}, Options{}},
		{"bad canny", []ROI{{
			ID: "x", Image: image.NewGray(image.Rect(0, 0, 8, 8)), MinRadiusPx: 1, MaxRadiusPx: 2,
		}}, Options{CannyLow: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Validation failures must surface before dialing, so a dead
			// socket path is fine here.
			_, err := DetectCircles(context.Background(), "/nonexistent.sock", tt.rois, tt.opts)
			require.Error(t, err)
		})
	}
}

func TestDetectCirclesNoServer(t *testing.T) {
	_, err := DetectCircles(context.Background(), filepath.Join(t.TempDir(), "nope.sock"), []ROI{{
		ID:          "x",
		Image:       image.NewGray(image.Rect(0, 0, 8, 8)),
		MinRadiusPx: 1,
		MaxRadiusPx: 2,
	}}, Options{Timeout: 500 * time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect")
}
