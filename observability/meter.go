package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/skillsenselab/transcript-api/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	if name == "" {
		name = defaultTracerName
	}
	return otel.Meter(name)
}

// Metrics holds metric instruments for transcript retrieval.
type Metrics struct {
	fetchTotal    metric.Int64Counter
	fetchDuration metric.Float64Histogram
	errorTotal    metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	fetchTotal, err := meter.Int64Counter("transcript.fetch.total",
		metric.WithDescription("Total number of transcript fetch operations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcript.fetch.total counter: %w", err)
	}

	fetchDuration, err := meter.Float64Histogram("transcript.fetch.duration",
		metric.WithDescription("Duration of transcript fetch operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcript.fetch.duration histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("transcript.error.total",
		metric.WithDescription("Total number of transcript retrieval errors by code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcript.error.total counter: %w", err)
	}

	return &Metrics{
		fetchTotal:    fetchTotal,
		fetchDuration: fetchDuration,
		errorTotal:    errorTotal,
	}, nil
}

// RecordFetch records one completed fetch with its duration, language, and format.
func (m *Metrics) RecordFetch(ctx context.Context, d time.Duration, language, format string) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("language", language),
		attribute.String("format", format),
	)
	m.fetchTotal.Add(ctx, 1, attrs)
	m.fetchDuration.Record(ctx, d.Seconds(), attrs)
}

// RecordError records one failed retrieval tagged with its error code.
func (m *Metrics) RecordError(ctx context.Context, code string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("code", code)))
}
