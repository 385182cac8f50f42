package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/bank_ledger/internal/core/services"
	"github.com/SscSPs/bank_ledger/internal/handlers"
	"github.com/SscSPs/bank_ledger/internal/middleware"
	"github.com/SscSPs/bank_ledger/internal/platform/config"
	"github.com/SscSPs/bank_ledger/internal/repositories/memory"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.CORS(cfg.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	repos := memory.NewRepositoryProvider()
	serviceContainer := services.NewServiceContainer(cfg, repos)

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	logger.Info("Starting server", slog.String("port", cfg.Port), slog.Bool("production", cfg.IsProduction))
	if err := r.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("failed to run server: %w", err)
	}
	return nil
}
