package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// PrometheusMeterProvider builds an OTel MeterProvider backed by a
// Prometheus exporter and returns it alongside the http.Handler that serves
// its /metrics scrape endpoint. Each call creates an independent Prometheus
// registry, so callers that need more than one session's metrics exposed on
// one process should aggregate at the handler level themselves.
//
// Pass the returned provider to WithMeterProvider to have a parse session's
// lifecycle counters (nodes started/closed/deleted, contexts
// collapsed/promoted) show up on the handler.
func PrometheusMeterProvider() (metric.MeterProvider, http.Handler, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	return provider, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), nil
}
