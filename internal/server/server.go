package server

import (
	"context"
	"fmt"
	"image"
	"math"
	"net"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vinay1337/hough-server/internal/detection"
	"github.com/vinay1337/hough-server/internal/imaging"
	"github.com/vinay1337/hough-server/internal/log"
	"github.com/vinay1337/hough-server/internal/metrics"
	"github.com/vinay1337/hough-server/internal/protocol"
)

// DefaultReadTimeout is the per-connection read deadline applied when
// Options leaves it zero.
const DefaultReadTimeout = 30 * time.Second

// Options configures a Server. Zero values fall back to defaults.
type Options struct {
	// SocketPath is the Unix socket to bind. Defaults to
	// protocol.DefaultSocketPath.
	SocketPath string

	// Workers bounds concurrent ROI detection per request. Defaults to
	// runtime.NumCPU().
	Workers int

	// ReadTimeout is the per-connection read deadline, refreshed before
	// each header read.
	ReadTimeout time.Duration

	// Logger is the base logger. Defaults to the package-level logger.
	Logger *zerolog.Logger
}

// Server accepts detect exchanges over a Unix domain socket.
type Server struct {
	socketPath  string
	workers     int
	readTimeout time.Duration
	logger      zerolog.Logger
}

// New builds a Server from opts.
func New(opts Options) *Server {
	s := &Server{
		socketPath:  opts.SocketPath,
		workers:     opts.Workers,
		readTimeout: opts.ReadTimeout,
	}
	if s.socketPath == "" {
		s.socketPath = protocol.DefaultSocketPath
	}
	if s.workers <= 0 {
		s.workers = runtime.NumCPU()
	}
	if s.readTimeout <= 0 {
		s.readTimeout = DefaultReadTimeout
	}
	if opts.Logger != nil {
		s.logger = *opts.Logger
	} else {
		s.logger = log.WithComponent("server")
	}
	return s
}

// Run binds the socket and serves until ctx is cancelled.
//
// A stale socket file from a previous run is removed before binding, and
// the socket file is removed again after shutdown. In-flight connections
// are waited for on the way out.
func (s *Server) Run(ctx context.Context) error {
	_ = os.Remove(s.socketPath)

	ln, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.socketPath, err)
	}
	s.logger.Info().Str("socket", s.socketPath).Int("workers", s.workers).Msg("listening")

	var conns sync.WaitGroup
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		_ = ln.Close()
		return nil
	})

	g.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("accept: %w", err)
			}
			conns.Add(1)
			go func() {
				defer conns.Done()
				s.handleConn(ctx, conn)
			}()
		}
	})

	err = g.Wait()
	conns.Wait()
	_ = os.Remove(s.socketPath)
	s.logger.Info().Msg("server stopped")
	return err
}

// handleConn serves detect exchanges on a single connection until the
// client disconnects, times out, or the server shuts down.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer func() { _ = conn.Close() }()

	connID := uuid.NewString()
	logger := log.WithContext(log.ContextWithConnID(ctx, connID), s.logger)
	logger.Debug().Msg("client connected")

	metrics.ActiveConnections.Inc()
	defer metrics.ActiveConnections.Dec()

	for ctx.Err() == nil {
		_ = conn.SetReadDeadline(time.Now().Add(s.readTimeout))

		var req protocol.DetectRequest
		if err := protocol.ReadJSON(conn, &req); err != nil {
			// Disconnect, idle timeout or garbage on the stream: drop the
			// client, the framing is no longer trustworthy.
			logger.Debug().Err(err).Msg("client dropped")
			return
		}

		if err := req.Validate(); err != nil {
			metrics.RequestsTotal.WithLabelValues("bad_request").Inc()
			if !s.writeResponse(conn, logger, &protocol.DetectResponse{
				Type:  protocol.TypeDetect,
				Error: fmt.Sprintf("bad request: %v", err),
			}) {
				return
			}
			continue
		}

		rois, err := s.readROIFrames(conn, req.ROISpecs)
		if err != nil {
			metrics.RequestsTotal.WithLabelValues("decode_failed").Inc()
			if !s.writeResponse(conn, logger, &protocol.DetectResponse{
				Type:  protocol.TypeDetect,
				Error: fmt.Sprintf("roi decode failed: %v", err),
			}) {
				return
			}
			continue
		}

		start := time.Now()
		results := s.processBatch(ctx, &req, rois)
		elapsed := time.Since(start)

		metrics.RequestsTotal.WithLabelValues("ok").Inc()
		metrics.ROIsProcessed.Add(float64(len(rois)))
		metrics.DetectDuration.Observe(elapsed.Seconds())

		logger.Info().
			Int("rois", len(rois)).
			Dur("elapsed", elapsed).
			Msg("batch processed")

		if !s.writeResponse(conn, logger, &protocol.DetectResponse{
			Type:    protocol.TypeDetect,
			OK:      true,
			Results: results,
			Millis:  roundMillis(elapsed),
		}) {
			return
		}
	}
}

// readROIFrames reads one raw frame per spec and decodes each into a gray
// image. Frame sizes must match the spec exactly.
func (s *Server) readROIFrames(conn net.Conn, specs []protocol.ROISpec) ([]*image.Gray, error) {
	rois := make([]*image.Gray, 0, len(specs))
	for _, spec := range specs {
		blob, err := protocol.ReadFrame(conn)
		if err != nil {
			return nil, fmt.Errorf("roi %q: %w", spec.ID, err)
		}
		if len(blob) != spec.NumBytes {
			return nil, fmt.Errorf("roi %q: expected %d bytes, got %d", spec.ID, spec.NumBytes, len(blob))
		}
		gray, err := imaging.DecodeGray(blob, spec.Width, spec.Height)
		if err != nil {
			return nil, fmt.Errorf("roi %q: %w", spec.ID, err)
		}
		rois = append(rois, gray)
	}
	return rois, nil
}

// processBatch runs detection for every ROI on a bounded worker pool and
// returns results in request order. Per-ROI failures become error entries.
func (s *Server) processBatch(ctx context.Context, req *protocol.DetectRequest, rois []*image.Gray) []protocol.ROIResult {
	results := make([]protocol.ROIResult, len(rois))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range rois {
		i := i
		g.Go(func() error {
			spec := req.ROISpecs[i]
			circle, err := detectOne(rois[i], spec.MinRadiusPx, spec.MaxRadiusPx,
				req.Params.CannyLow, req.Params.CannyHigh)
			result := protocol.ROIResult{ID: spec.ID}
			switch {
			case err != nil:
				result.Error = err.Error()
			case circle != nil:
				result.Circle = &protocol.Circle{X: circle.X, Y: circle.Y, R: circle.R}
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// detectOne runs the Canny + Hough pipeline for a single ROI, converting
// panics into errors so one bad ROI cannot take down the batch.
func detectOne(gray *image.Gray, minRadius, maxRadius, cannyLow, cannyHigh int) (circle *detection.Circle, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("detection panic: %v", r)
		}
	}()
	edges := imaging.Canny(gray, cannyLow, cannyHigh)
	return detection.FindCircle(edges, minRadius, maxRadius), nil
}

// writeResponse sends a response frame under a write deadline. Returns
// false when the connection should be dropped.
func (s *Server) writeResponse(conn net.Conn, logger zerolog.Logger, resp *protocol.DetectResponse) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(s.readTimeout))
	if err := protocol.WriteJSON(conn, resp); err != nil {
		logger.Warn().Err(err).Msg("write response failed")
		return false
	}
	return true
}

// roundMillis reports d in milliseconds rounded to two decimals, matching
// the wire format's ms field.
func roundMillis(d time.Duration) float64 {
	ms := float64(d.Microseconds()) / 1000.0
	return math.Round(ms*100) / 100
}
