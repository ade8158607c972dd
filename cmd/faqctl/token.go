package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/yunbow/line-faq-bot/src/config"
	"github.com/yunbow/line-faq-bot/src/webserver"
)

func newTokenCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.AdminJWTSecret == "" {
				return fmt.Errorf("ADMIN_JWT_SECRET is not set")
			}
			tok, err := webserver.IssueAdminToken(subject, ttl, []byte(cfg.AdminJWTSecret))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
