package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"mailprov/internal/api"
	"mailprov/internal/config"
	"mailprov/internal/provisioner"
	"mailprov/pkg/logger"
	"mailprov/pkg/metrics"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// setupMetrics creates the meter and returns a function that writes the
// textfile, when configured, and shuts the meter down.
func setupMetrics(ctx context.Context, cfg *config.Config) (*metrics.Metrics, func()) {
	m, err := metrics.New()
	if err != nil {
		logger.Warn(ctx, "metrics disabled", zap.Error(err))

		return nil, func() {}
	}

	return m, func() {
		if path := cfg.MetricsPath(); path != "" {
			if err := m.WriteTextfile(path); err != nil {
				logger.Warn(ctx, "could not write metrics", zap.Error(err))
			} else {
				logger.Info(ctx, "metrics written", zap.String("path", path))
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := m.Shutdown(shutdownCtx); err != nil {
			logger.Warn(ctx, "could not shutdown metrics", zap.Error(err))
		}
	}
}

func createCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Logs in and creates the configured batch of e-mail accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx = withRunID(ctx)

			logger.Info(ctx, "starting batch",
				zap.String("panel", cfg.Panel.URL),
				zap.Int("count", cfg.Accounts.Count),
				zap.String("domain", cfg.Accounts.Domain))

			p, closeBrowser, err := getPanel(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeBrowser()

			m, flushMetrics := setupMetrics(ctx, cfg)
			defer flushMetrics()

			var recorder provisioner.Recorder
			deps := api.Deps{}
			if m != nil {
				recorder = m
				deps.Gatherer = m.Gatherer()
			}

			prov := provisioner.New(p, recorder, provisioner.NewOptions(cfg))
			deps.Progress = prov

			stopServer := setupServer(ctx, cfg, deps)
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Status.ShutdownTimeout)
				defer cancel()
				stopServer(shutdownCtx)
			}()

			tally, err := prov.Run(ctx)
			if err != nil {
				if provisioner.IsInterrupted(err) {
					logger.Warn(ctx, "batch interrupted", zap.Stringer("tally", tally))
				} else {
					logger.Error(ctx, "batch failed", zap.Error(err))
				}

				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nSUMMARY: %s\n", tally)

			return nil
		},
	}

	return cmd
}
