package main

import (
	"context"
	"log/slog"

	portsrepo "github.com/SscSPs/chart_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/chart_ledger/internal/platform/config"
	"github.com/SscSPs/chart_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/chart_ledger/internal/repositories/memory"
	"github.com/SscSPs/chart_ledger/pkg/database"
)

// openRepositories builds the repositories for the configured storage driver. The
// returned func releases whatever was opened.
func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("Using in-memory storage; data is lost on exit")
		return memory.NewStore().Repositories(), func() {}, nil
	}

	if cfg.RunMigrations {
		if err := database.Migrate(cfg.DatabaseURL, database.Up, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck, logger)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool, logger) }, nil
}
