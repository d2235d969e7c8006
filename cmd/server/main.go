// Package main - Entry point for the rating engine HTTP server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rating-engine/api"
	"rating-engine/core/rating"
	"rating-engine/internal/config"
	"rating-engine/internal/logging"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Path to JSON config file")
	addr := flag.String("addr", "", "Server address (overrides config)")
	rates := flag.String("rates", "", "Rate table override (.yaml, .yml, .hcl or .json)")
	flag.Parse()

	if err := run(*configPath, *addr, *rates); err != nil {
		fmt.Fprintf(os.Stderr, "rating-engine: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, addr, rates string) error {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if rates != "" {
		cfg.Rating.RatesFile = rates
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.Sync()

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	table, err := rating.LoadTableOrDefault(cfg.Rating.RatesFile)
	if err != nil {
		return err
	}
	svc := rating.NewService(table, rating.WithLogger(logging.Named("rating")))

	server := api.NewServer(svc, api.Options{
		Version:        version,
		CORSOrigin:     cfg.Server.CORSOrigin,
		MetricsEnabled: cfg.Server.MetricsEnabled,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		Logger:         logging.Named("http"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("Rating engine server started",
		zap.String("version", version),
		zap.String("addr", cfg.Server.Addr),
		zap.Int("states", len(table.StateCodes())),
		zap.Int("businesses", len(table.BusinessTypes())))

	return server.Run(ctx, cfg.Server.Addr)
}
