package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/chart_ledger/internal/platform/config"
	"github.com/SscSPs/chart_ledger/internal/utils"
	"github.com/spf13/cobra"
)

func newTokenCommand() *cobra.Command {
	var subject string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is empty; the API accepts unauthenticated requests")
			}
			token, err := utils.GenerateJWT(subject, cfg.JWTSecret, ttl, utils.TokenIssuer)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "user id carried by the token (required)")
	_ = cmd.MarkFlagRequired("subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
