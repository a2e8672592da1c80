// Package api configures the optional HTTP status endpoint served while a
// batch runs: progress as JSON, Prometheus metrics and pprof.
package api

import (
	"context"
	"net/http"
	"time"

	"mailprov/internal/config"
	"mailprov/internal/provisioner"
	"mailprov/pkg/controller"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options holds configuration for the HTTP server.
// It is typically created from a config.Config via NewOptions.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":9090".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	// It must leave room for CPU profiles, which run for 30 seconds by default.
	WriteTimeout time.Duration
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:         cfg.Status.Addr,
		ReadTimeout:  cfg.Status.ReadTimeout,
		WriteTimeout: cfg.Status.WriteTimeout,
	}
}

// ProgressReporter is implemented by *provisioner.Provisioner.
type ProgressReporter interface {
	Progress() provisioner.Progress
}

// Deps are the sources the endpoint reports on.
type Deps struct {
	Progress ProgressReporter
	// Gatherer may be nil when metrics are disabled.
	Gatherer prometheus.Gatherer
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// It sets up:
// - GET /status with the batch progress
// - GET /metrics with the run's Prometheus registry
// - GET /healthz
// - pprof endpoints for profiling
// Every request is logged through ctx's logger.
func NewServer(ctx context.Context, deps Deps, opts Options) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	mux.HandleFunc("GET /status", func(w http.ResponseWriter, _ *http.Request) {
		controller.WriteJSON(w, http.StatusOK, deps.Progress.Progress())
	})

	if deps.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	controller.RegisterPprof(mux)

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           controller.WithLogger(ctx, mux),
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadTimeout,
		WriteTimeout:      opts.WriteTimeout,
	}
}
