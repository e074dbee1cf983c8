// Package observability wires optional OpenTelemetry tracing/metrics and
// structured slog diagnostics around the parser core's lifecycle operations.
// Every hook is a no-op until explicitly configured, so the core itself
// carries zero runtime dependency footprint unless a caller opts in —
// mirroring how github.com/Sumatoshi-tech/codefang's internal/observability
// package is wired in by its caller rather than read from a file.
package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Hooks bundles the optional instrumentation a parse session may be given.
// The zero value is fully usable and silent.
type Hooks struct {
	tracer trace.Tracer
	logger *slog.Logger

	started   metric.Int64Counter
	closed    metric.Int64Counter
	deleted   metric.Int64Counter
	collapsed metric.Int64Counter
	promoted  metric.Int64Counter
}

// Option configures a Hooks value.
type Option func(*Hooks)

// WithTracer attaches an OTel tracer; lifecycle operations open a child
// span under the caller's context when set.
func WithTracer(tracer trace.Tracer) Option {
	return func(h *Hooks) { h.tracer = tracer }
}

// WithLogger attaches a slog logger; lifecycle operations emit debug-level
// records for driver troubleshooting when set.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hooks) { h.logger = logger }
}

// WithMeterProvider registers the lifecycle counters against the given
// meter provider, such as the Prometheus-backed one PrometheusMeterProvider
// returns.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(h *Hooks) {
		meter := provider.Meter("mquery-parser/pkg/parser")

		// Instrument creation only fails on malformed names/units, which
		// are fixed at compile time here; treat failure as "no metrics"
		// rather than panicking the caller's session setup.
		h.started, _ = meter.Int64Counter("parser.nodes.started")
		h.closed, _ = meter.Int64Counter("parser.nodes.closed")
		h.deleted, _ = meter.Int64Counter("parser.nodes.deleted")
		h.collapsed, _ = meter.Int64Counter("parser.contexts.collapsed")
		h.promoted, _ = meter.Int64Counter("parser.contexts.promoted")
	}
}

// New builds a Hooks value from the given options. With no options it is
// silent: no tracing, no metrics, no logging.
func New(opts ...Option) *Hooks {
	h := &Hooks{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// StartSpan opens a child span named name under ctx, or returns ctx
// unchanged with a no-op span if no tracer was configured.
func (h *Hooks) StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if h == nil || h.tracer == nil {
		return ctx, trace.SpanFromContext(context.Background())
	}

	return h.tracer.Start(ctx, name)
}

// Debug logs msg at debug level if a logger was configured.
func (h *Hooks) Debug(ctx context.Context, msg string, args ...any) {
	if h == nil || h.logger == nil {
		return
	}

	h.logger.DebugContext(ctx, msg, args...)
}

func (h *Hooks) incr(ctx context.Context, counter metric.Int64Counter) {
	if h == nil || counter == nil {
		return
	}

	counter.Add(ctx, 1)
}

// IncStarted records one context-start.
func (h *Hooks) IncStarted(ctx context.Context) { h.incr(ctx, h.started) }

// IncClosed records one context-close.
func (h *Hooks) IncClosed(ctx context.Context) { h.incr(ctx, h.closed) }

// IncDeleted records one context-delete.
func (h *Hooks) IncDeleted(ctx context.Context) { h.incr(ctx, h.deleted) }

// IncCollapsed records one interior single-child collapse.
func (h *Hooks) IncCollapsed(ctx context.Context) { h.incr(ctx, h.collapsed) }

// IncPromoted records one root single-child promotion.
func (h *Hooks) IncPromoted(ctx context.Context) { h.incr(ctx, h.promoted) }
