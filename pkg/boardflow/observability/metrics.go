package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records host metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordActivation records one node activation with its duration and
	// whether the node reported failure.
	RecordActivation(ctx context.Context, node string, duration time.Duration, failed bool)

	// RecordRun records a finished or aborted run.
	RecordRun(ctx context.Context, outcome string, duration time.Duration)

	// RecordDenial records a capability gate denial.
	RecordDenial(ctx context.Context, node, capability string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	activations     metric.Int64Counter
	activationMs    metric.Float64Histogram
	nodeFailures    metric.Int64Counter
	runs            metric.Int64Counter
	runMs           metric.Float64Histogram
	gateDenials     metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("boardflow")

	activations, err := meter.Int64Counter("boardflow.node.activations",
		metric.WithDescription("Number of node activations"),
	)
	if err != nil {
		return nil, err
	}

	activationMs, err := meter.Float64Histogram("boardflow.node.latency_ms",
		metric.WithDescription("Node activation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	nodeFailures, err := meter.Int64Counter("boardflow.node.failures",
		metric.WithDescription("Number of node-reported failures"),
	)
	if err != nil {
		return nil, err
	}

	runs, err := meter.Int64Counter("boardflow.run.count",
		metric.WithDescription("Number of board runs"),
	)
	if err != nil {
		return nil, err
	}

	runMs, err := meter.Float64Histogram("boardflow.run.latency_ms",
		metric.WithDescription("Board run latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	gateDenials, err := meter.Int64Counter("boardflow.gate.denials",
		metric.WithDescription("Number of capability gate denials"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		activations:  activations,
		activationMs: activationMs,
		nodeFailures: nodeFailures,
		runs:         runs,
		runMs:        runMs,
		gateDenials:  gateDenials,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordActivation records one node activation.
func (m *otelMetrics) RecordActivation(ctx context.Context, node string, duration time.Duration, failed bool) {
	attrs := []attribute.KeyValue{
		attribute.String("node", node),
	}

	m.activations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.activationMs.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if failed {
		m.nodeFailures.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordRun records a finished or aborted run.
func (m *otelMetrics) RecordRun(ctx context.Context, outcome string, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("outcome", outcome),
	}
	m.runs.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.runMs.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordDenial records a capability gate denial.
func (m *otelMetrics) RecordDenial(ctx context.Context, node, capability string) {
	m.gateDenials.Add(ctx, 1, metric.WithAttributes(
		attribute.String("node", node),
		attribute.String("capability", capability),
	))
}
