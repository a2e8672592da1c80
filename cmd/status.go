package main

import (
	"context"
	"errors"
	"net/http"

	"mailprov/internal/api"
	"mailprov/internal/config"
	"mailprov/pkg/logger"

	"go.uber.org/zap"
)

// setupServer starts the status endpoint when an address is configured and
// returns a function that stops it.
func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	if cfg.Status.Addr == "" {
		return func(context.Context) {}
	}

	server := api.NewServer(ctx, deps, api.NewOptions(cfg))

	go func() {
		logger.Info(ctx, "starting status endpoint...", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start status endpoint", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping status endpoint...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop status endpoint", zap.Error(err))
		}
	}
}
