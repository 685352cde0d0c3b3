package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace"
)

// Observability owns the OpenTelemetry meter provider and the instruments
// recorded around each triage decision.
type Observability struct {
	meterProvider   *metric.MeterProvider
	tracer          trace.Tracer
	decisionCounter otelmetric.Int64Counter
	decisionLatency otelmetric.Float64Histogram
}

// New wires an OTel meter provider to the prometheus exporter, so the
// instruments show up on the same /metrics endpoint as promauto collectors.
// Failures degrade to a no-op instance.
func New(serviceName string) *Observability {
	o := &Observability{tracer: otel.Tracer(serviceName)}

	exporter, err := prometheus.New()
	if err != nil {
		return o
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)
	meter := provider.Meter(serviceName)

	o.meterProvider = provider
	o.decisionCounter, _ = meter.Int64Counter(
		"triage.decisions",
		otelmetric.WithDescription("Number of triage decisions"),
	)
	o.decisionLatency, _ = meter.Float64Histogram(
		"triage.decision.duration",
		otelmetric.WithDescription("Triage decision duration"),
		otelmetric.WithUnit("ms"),
	)
	return o
}

// NewNoop returns an instance whose recorders do nothing; used in tests.
func NewNoop() *Observability {
	return &Observability{tracer: otel.Tracer("noop")}
}

// StartSpan opens a span on the globally registered tracer provider.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// RecordDecision records one completed triage decision.
func (o *Observability) RecordDecision(ctx context.Context, duration time.Duration, level, source string) {
	attrs := otelmetric.WithAttributes(
		attribute.String("level", level),
		attribute.String("source", source),
	)
	if o.decisionCounter != nil {
		o.decisionCounter.Add(ctx, 1, attrs)
	}
	if o.decisionLatency != nil {
		o.decisionLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.meterProvider.Shutdown(ctx)
	}
}
