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

func listCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Prints the e-mail accounts shown on the first page of the accounts table",
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
				return fmt.Errorf("could not log in: %w", err)
			}
			if err := p.OpenAccountsList(ctx, token); err != nil {
				return fmt.Errorf("could not open accounts list: %w", err)
			}

			accounts, err := p.Accounts(ctx)
			if err != nil {
				return fmt.Errorf("could not read accounts: %w", err)
			}
			logger.Info(ctx, "accounts listed", zap.Int("count", len(accounts)))

			for _, address := range accounts {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), address)
			}

			return nil
		},
	}

	return cmd
}
