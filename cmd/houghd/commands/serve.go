package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vinay1337/hough-server/internal/log"
	"github.com/vinay1337/hough-server/internal/metrics"
	"github.com/vinay1337/hough-server/internal/server"
)

func serveCmd() *cobra.Command {
	var (
		workers int
		opsAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the detection server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers > 0 {
				cfg.Workers = workers
			}
			if opsAddr != "" {
				cfg.OpsAddr = opsAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := log.WithComponent("daemon")

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				srv := server.New(server.Options{
					SocketPath:  cfg.SocketPath,
					Workers:     cfg.Workers,
					ReadTimeout: cfg.ReadTimeout,
				})
				return srv.Run(ctx)
			})
			if cfg.OpsAddr != "" {
				g.Go(func() error {
					return metrics.Serve(ctx, cfg.OpsAddr, log.WithComponent("ops"))
				})
			}

			err := g.Wait()
			if err != nil {
				logger.Error().Err(err).Msg("shutdown with error")
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent ROI workers (default: CPU count)")
	cmd.Flags().StringVar(&opsAddr, "ops-addr", "", "ops HTTP listen address for /healthz and /metrics (default off)")
	return cmd
}
