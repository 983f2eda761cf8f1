package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// @title Chart Ledger API
// @version 1.0
// @description Double-entry ledger: chart of accounts, journal entries and ledger domains.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := newRootCommand(logger).Execute(); err != nil {
		logger.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCommand(logger *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chart_ledger",
		Short: "Double-entry ledger service",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newServeCommand(logger),
		newMigrateCommand(logger),
		newInitRootCommand(logger),
		newTokenCommand(),
	)
	return rootCmd
}
