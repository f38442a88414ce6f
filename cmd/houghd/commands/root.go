// Package commands wires the houghd command line interface.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/vinay1337/hough-server/internal/config"
	"github.com/vinay1337/hough-server/internal/log"
)

var (
	cfg config.Config

	socketPath string
	logLevel   string
)

// Execute runs the root command.
func Execute() error {
	root := &cobra.Command{
		Use:           "houghd",
		Short:         "Hough circle detection server and client",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			if socketPath != "" {
				loaded.SocketPath = socketPath
			}
			if logLevel != "" {
				loaded.LogLevel = logLevel
			}
			cfg = loaded
			log.Configure(log.Config{Level: cfg.LogLevel})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&socketPath, "socket", "", "unix socket path (default from HOUGHD_SOCKET)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(serveCmd(), detectCmd(), versionCmd())
	return root.Execute()
}
