// Package telemetry exports service metrics through OpenTelemetry to a
// Prometheus scrape endpoint.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Namespace prefixes every instrument name.
const Namespace = "apiembed"

// durationBuckets are upper bounds in seconds. Embeds include an outbound
// fetch, so the tail goes well past typical API latencies.
var durationBuckets = []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

type Metrics struct {
	// HTTP layer
	Requests        metric.Int64Counter
	RequestDuration metric.Float64Histogram
	ErrorCount      metric.Int64Counter

	// Up is 1 while the service accepts requests
	Up metric.Int64Gauge

	// Embed outcomes
	Snippets      metric.Int64Counter
	EmbedFailures metric.Int64Counter

	handler http.Handler
}

// ShutdownFunc is a delegate that shuts down the OpenTelemetry components.
type ShutdownFunc func(ctx context.Context) error

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.Requests, "http.requests", "Total number of HTTP requests"},
		{&m.ErrorCount, "http.errors", "Total number of HTTP responses with a 4xx or 5xx status"},
		{&m.Snippets, "snippets.generated", "Total number of generated snippets"},
		{&m.EmbedFailures, "embed.failures", "Total number of embed requests rendered as an error page"},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(Namespace+"."+c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s counter: %w", c.name, err)
		}
		*c.dst = counter
	}

	var err error
	m.RequestDuration, err = meter.Float64Histogram(
		Namespace+".http.request.duration",
		metric.WithDescription("Duration of HTTP requests in seconds"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request duration histogram: %w", err)
	}

	m.Up, err = meter.Int64Gauge(
		Namespace+".service.up",
		metric.WithDescription("Service health status (1 for up, 0 for down)"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create service up gauge: %w", err)
	}

	return m, nil
}

// RecordSnippet counts one generated snippet. client is empty for clientless
// targets.
func (m *Metrics) RecordSnippet(ctx context.Context, target, client string) {
	if m == nil {
		return
	}
	m.Snippets.Add(ctx, 1, metric.WithAttributes(
		attribute.String("target", target),
		attribute.String("client", client),
	))
}

// RecordFailure counts one failed embed request.
func (m *Metrics) RecordFailure(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.EmbedFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func NewPrometheusMeterProvider(res *resource.Resource, exp *prometheus.Exporter) (*sdkmetric.MeterProvider, error) {
	if exp == nil {
		return nil, errors.New("exporter cannot be nil")
	}
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exp),
	), nil
}

// InitMetrics exports to the process-wide Prometheus registry.
func InitMetrics(version string) (ShutdownFunc, *Metrics, error) {
	return initMetrics(version, promclient.DefaultRegisterer, promhttp.Handler())
}

// InitMetricsWithRegistry exports to a dedicated registry instead of the
// process-wide default one.
func InitMetricsWithRegistry(version string, reg *promclient.Registry) (ShutdownFunc, *Metrics, error) {
	return initMetrics(version, reg, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
}

func serviceResource(version string) (*resource.Resource, error) {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(Namespace),
			semconv.ServiceVersion(version),
		),
		resource.WithProcessRuntimeDescription(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return resource.Merge(resource.Default(), res)
}

func initMetrics(version string, reg promclient.Registerer, handler http.Handler) (ShutdownFunc, *Metrics, error) {
	noop := func(context.Context) error { return nil }

	res, err := serviceResource(version)
	if err != nil {
		return noop, nil, err
	}

	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		return noop, nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	mp, err := NewPrometheusMeterProvider(res, exporter)
	if err != nil {
		return noop, nil, fmt.Errorf("failed to create Prometheus meter provider: %w", err)
	}
	otel.SetMeterProvider(mp)

	meter := mp.Meter(Namespace,
		metric.WithSchemaURL(semconv.SchemaURL),
		metric.WithInstrumentationVersion(runtime.Version()),
	)
	metrics, err := NewMetrics(meter)
	if err != nil {
		return mp.Shutdown, nil, err
	}
	metrics.handler = handler

	return mp.Shutdown, metrics, nil
}

// PrometheusHandler returns the HTTP handler for Prometheus metrics
func (m *Metrics) PrometheusHandler() http.Handler {
	if m.handler != nil {
		return m.handler
	}
	return promhttp.Handler()
}
