// Package telemetry provides OpenTelemetry metrics for notice delivery.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsProvider provides access to delivery metrics instruments. The
// instruments are created against the globally registered meter provider
// and stay no-ops unless the host process installs one.
type MetricsProvider struct {
	meter metric.Meter

	deliveries       metric.Int64Counter
	deliveryFailures metric.Int64Counter
	deliveryDuration metric.Float64Histogram
	payloadBytes     metric.Int64Histogram

	initOnce sync.Once
	initErr  error
}

// MetricsConfig configures the metrics provider.
type MetricsConfig struct {
	// MeterName is the name of the meter.
	MeterName string
	// MeterVersion is the version of the meter.
	MeterVersion string
}

// DefaultMetricsConfig returns a default metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		MeterName:    "github.com/fussybeaver/honeybadger-go",
		MeterVersion: "1.0.0",
	}
}

// NewMetricsProvider creates a new metrics provider.
func NewMetricsProvider(config MetricsConfig) *MetricsProvider {
	if config.MeterName == "" {
		config = DefaultMetricsConfig()
	}

	provider := otel.GetMeterProvider()
	meter := provider.Meter(
		config.MeterName,
		metric.WithInstrumentationVersion(config.MeterVersion),
	)

	mp := &MetricsProvider{meter: meter}
	mp.initOnce.Do(func() {
		mp.initErr = mp.initInstruments()
	})

	return mp
}

func (mp *MetricsProvider) initInstruments() error {
	var err error

	mp.deliveries, err = mp.meter.Int64Counter(
		"honeybadger.deliveries",
		metric.WithDescription("Number of notice delivery attempts"),
		metric.WithUnit("{delivery}"),
	)
	if err != nil {
		return err
	}

	mp.deliveryFailures, err = mp.meter.Int64Counter(
		"honeybadger.delivery.failures",
		metric.WithDescription("Number of failed notice deliveries"),
		metric.WithUnit("{delivery}"),
	)
	if err != nil {
		return err
	}

	mp.deliveryDuration, err = mp.meter.Float64Histogram(
		"honeybadger.delivery.duration",
		metric.WithDescription("Duration of notice deliveries"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	mp.payloadBytes, err = mp.meter.Int64Histogram(
		"honeybadger.payload.bytes",
		metric.WithDescription("Size of serialized notice payloads"),
		metric.WithUnit("By"),
	)
	return err
}

// Error returns any initialization error.
func (mp *MetricsProvider) Error() error {
	return mp.initErr
}

// RecordDelivery records one delivery attempt. Outcome is the terminal
// classification of the attempt ("success", "rate_limited", "timed_out",
// and so on).
func (mp *MetricsProvider) RecordDelivery(ctx context.Context, outcome string, payloadSize int, duration time.Duration) {
	if mp.initErr != nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("outcome", outcome),
	}

	mp.deliveries.Add(ctx, 1, metric.WithAttributes(attrs...))
	mp.deliveryDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	mp.payloadBytes.Record(ctx, int64(payloadSize))

	if outcome != "success" {
		mp.deliveryFailures.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
