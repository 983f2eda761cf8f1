package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/chart_ledger/internal/platform/config"
	"github.com/SscSPs/chart_ledger/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or revert the database schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.Up), string(database.Down)},
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.StorageDriver != config.StoragePostgres {
				return fmt.Errorf("migrate needs STORAGE_DRIVER=%s", config.StoragePostgres)
			}
			return database.Migrate(cfg.DatabaseURL, database.Direction(args[0]), logger)
		},
	}
}
