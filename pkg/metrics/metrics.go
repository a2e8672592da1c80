// Package metrics records per-account outcomes and attempt durations with
// OpenTelemetry instruments backed by a Prometheus registry. The registry is
// written to a textfile at the end of a run so a node exporter textfile
// collector can pick it up.
package metrics

import (
	"context"
	"fmt"
	"time"

	"mailprov/pkg/domain"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides histogram buckets in seconds sized for a single
// account attempt, which spans several page loads and waits.
var DefaultBuckets = []float64{1, 2.5, 5, 10, 15, 20, 30, 45, 60, 90, 120} //nolint: gochecknoglobals

const meterName = "mailprov"

// Metrics owns the registry and the instruments of one run.
type Metrics struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider

	outcomes metric.Int64Counter
	duration metric.Float64Histogram
	logins   metric.Int64Counter
}

// New creates a private registry and registers the run instruments on it.
func New() (*Metrics, error) {
	registry := prometheus.NewRegistry()
	exporter, err := otelprom.New(
		otelprom.WithRegisterer(registry),
		otelprom.WithoutTargetInfo(),
		otelprom.WithoutScopeInfo(),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	meter := provider.Meter(meterName)

	outcomes, err := meter.Int64Counter("mailprov_accounts",
		metric.WithDescription("Account attempts by final outcome."))
	if err != nil {
		return nil, fmt.Errorf("could not create outcome counter: %w", err)
	}

	duration, err := meter.Float64Histogram("mailprov_attempt_duration",
		metric.WithDescription("Wall time of one account attempt including retries."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create duration histogram: %w", err)
	}

	logins, err := meter.Int64Counter("mailprov_logins",
		metric.WithDescription("Login attempts by result."))
	if err != nil {
		return nil, fmt.Errorf("could not create login counter: %w", err)
	}

	return &Metrics{
		registry: registry,
		provider: provider,
		outcomes: outcomes,
		duration: duration,
		logins:   logins,
	}, nil
}

// RecordOutcome counts one finished account attempt.
func (m *Metrics) RecordOutcome(ctx context.Context, outcome domain.Outcome, took time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", string(outcome)))
	m.outcomes.Add(ctx, 1, attrs)
	m.duration.Record(ctx, took.Seconds(), attrs)
}

// RecordLogin counts one login attempt.
func (m *Metrics) RecordLogin(ctx context.Context, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	m.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// Gatherer exposes the registry, mostly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer { return m.registry }

// WriteTextfile writes the current registry content in the Prometheus text
// format. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("could not write metrics textfile: %w", err)
	}

	return nil
}

// Shutdown releases the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if err := m.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("could not shutdown meter provider: %w", err)
	}

	return nil
}
