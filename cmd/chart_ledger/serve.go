package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"github.com/SscSPs/chart_ledger/internal/core/services"
	"github.com/SscSPs/chart_ledger/internal/handlers"
	"github.com/SscSPs/chart_ledger/internal/middleware"
	"github.com/SscSPs/chart_ledger/internal/platform/config"
	"github.com/SscSPs/chart_ledger/internal/platform/i18n"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCommand(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return runServe(cmd, cfg, logger)
		},
	}
}

func runServe(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	repos, closeRepos, err := openRepositories(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepos()

	container := services.NewServiceContainer(cfg, repos)
	if _, err := container.Account.LoadRoot(cmd.Context()); err != nil {
		if !errors.Is(err, apperrors.ErrNotInitialized) {
			return fmt.Errorf("failed to load root account: %w", err)
		}
		logger.Warn("Chart of accounts not initialised; POST /api/v1/root or run init-root")
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	if err := handlers.RegisterRoutes(r, cfg, container, i18n.New()); err != nil {
		return err
	}

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
	return r.Run(":" + cfg.Port)
}
