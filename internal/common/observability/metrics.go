// internal/common/observability/metrics.go
package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// Observability owns the OTel meter provider for the worker process. All
// instruments are job-level; per-feature and per-executor counters live in
// the prometheus metrics package.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	jobsHandled   otelmetric.Int64Counter
	jobDuration   otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
	)

	provider := metric.NewMeterProvider(
		metric.WithReader(exporter),
		metric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	jobsHandled, _ := meter.Int64Counter(
		"worker.jobs.handled",
		otelmetric.WithDescription("Number of Zeebe jobs handled"),
	)

	jobDuration, _ := meter.Float64Histogram(
		"worker.jobs.duration",
		otelmetric.WithDescription("Zeebe job handling duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		jobsHandled:   jobsHandled,
		jobDuration:   jobDuration,
	}
}

// RecordJobHandled counts one handled job and its wall-clock duration,
// attributed by task type.
func (o *Observability) RecordJobHandled(ctx context.Context, taskType string, duration time.Duration) {
	attrs := otelmetric.WithAttributes(attribute.String("task.type", taskType))

	if o.jobsHandled != nil {
		o.jobsHandled.Add(ctx, 1, attrs)
	}
	if o.jobDuration != nil {
		o.jobDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
