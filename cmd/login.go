package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"mailprov/internal/config"
	"mailprov/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func loginCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Checks the credentials and prints the session URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx = withRunID(ctx)

			p, closeBrowser, err := getPanel(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeBrowser()

			token, err := p.Login(ctx)
			if err != nil {
				logger.Error(ctx, "login failed", zap.Error(err))

				return fmt.Errorf("could not log in: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(token))

			return nil
		},
	}

	return cmd
}
