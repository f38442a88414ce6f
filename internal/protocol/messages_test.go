package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() DetectRequest {
	return DetectRequest{
		Type:   TypeDetect,
		Params: DetectParams{CannyLow: 50, CannyHigh: 150},
		ROISpecs: []ROISpec{{
			ID:          "roi-1",
			Height:      64,
			Width:       64,
			NumBytes:    64 * 64,
			MinRadiusPx: 5,
			MaxRadiusPx: 20,
		}},
	}
}

func TestDetectRequestValid(t *testing.T) {
	req := validRequest()
	require.NoError(t, req.Validate())
}

func TestDetectRequestValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DetectRequest)
	}{
		{"wrong type", func(r *DetectRequest) { r.Type = "ping" }},
		{"empty type", func(r *DetectRequest) { r.Type = "" }},
		{"no rois", func(r *DetectRequest) { r.ROISpecs = nil }},
		{"canny low negative", func(r *DetectRequest) { r.Params.CannyLow = -1 }},
		{"canny low too big", func(r *DetectRequest) { r.Params.CannyLow = 256 }},
		{"canny high too big", func(r *DetectRequest) { r.Params.CannyHigh = 300 }},
		{"zero height", func(r *DetectRequest) { r.ROISpecs[0].Height = 0 }},
		{"zero width", func(r *DetectRequest) { r.ROISpecs[0].Width = 0 }},
		{"zero bytes", func(r *DetectRequest) { r.ROISpecs[0].NumBytes = 0 }},
		{"bytes mismatch", func(r *DetectRequest) { r.ROISpecs[0].NumBytes = 100 }},
		{"zero min radius", func(r *DetectRequest) { r.ROISpecs[0].MinRadiusPx = 0 }},
		{"max equals min", func(r *DetectRequest) { r.ROISpecs[0].MaxRadiusPx = 5 }},
		{"max below min", func(r *DetectRequest) { r.ROISpecs[0].MaxRadiusPx = 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestROISpecBoundaryThresholds(t *testing.T) {
	for _, p := range []DetectParams{
		{CannyLow: 0, CannyHigh: 0},
		{CannyLow: 255, CannyHigh: 255},
	} {
		assert.NoError(t, p.Validate())
	}
}
