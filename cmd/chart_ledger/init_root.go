package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/chart_ledger/internal/core/domain"
	"github.com/SscSPs/chart_ledger/internal/core/services"
	"github.com/SscSPs/chart_ledger/internal/platform/config"
	"github.com/spf13/cobra"
)

func newInitRootCommand(logger *slog.Logger) *cobra.Command {
	var name, language, user string

	cmd := &cobra.Command{
		Use:   "init-root",
		Short: "Create the root of the chart of accounts and the default domain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if language == "" {
				language = cfg.Ledger.DefaultLanguage
			}

			repos, closeRepos, err := openRepositories(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeRepos()

			container := services.NewServiceContainer(cfg, repos)
			root, err := container.Account.CreateRoot(cmd.Context(), domain.CreateRootInput{
				Names: []domain.Name{{Name: name, Language: language}},
			}, user)
			if err != nil {
				return err
			}
			logger.Info("Chart of accounts created", slog.String("root_uuid", root.UUID), slog.String("default_domain", cfg.Ledger.DefaultDomain))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Chart of Accounts", "display name of the root account")
	cmd.Flags().StringVar(&language, "language", "", "language of the name (defaults to LEDGER_LANGUAGE_DEFAULT)")
	cmd.Flags().StringVar(&user, "user", "cli", "user id recorded in the audit fields")
	return cmd
}
