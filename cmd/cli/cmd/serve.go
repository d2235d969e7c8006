// Package cmd - serve command
package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rating-engine/api"
	"rating-engine/internal/config"
	"rating-engine/internal/logging"
)

var serveAddr string

// serveCmd starts the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rating API over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		if !cfg.Logging.Development {
			gin.SetMode(gin.ReleaseMode)
		}

		svc, err := newService()
		if err != nil {
			return err
		}

		server := api.NewServer(svc, api.Options{
			Version:        Version,
			CORSOrigin:     cfg.Server.CORSOrigin,
			MetricsEnabled: cfg.Server.MetricsEnabled,
			RateLimitRPS:   cfg.Server.RateLimitRPS,
			RateLimitBurst: cfg.Server.RateLimitBurst,
			Logger:         logging.Named("http"),
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logging.Info("Rating engine listening", zap.String("addr", cfg.Server.Addr), zap.String("version", Version))
		defer logging.Sync()
		return server.Run(ctx, cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}
