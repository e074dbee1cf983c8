package parser

import "github.com/Sumatoshi-tech/mquery-parser/internal/observability"

// Option configures the optional instrumentation of a parse session. With
// none supplied a session traces, logs, and counts nothing.
type Option = observability.Option

// WithTracer attaches an OTel tracer; lifecycle operations open a child
// span under the caller's context when set.
var WithTracer = observability.WithTracer

// WithLogger attaches a slog logger; lifecycle operations emit debug-level
// records for driver troubleshooting when set.
var WithLogger = observability.WithLogger

// WithMeterProvider registers lifecycle counters (nodes started/closed/
// deleted, contexts collapsed/promoted) against the given meter provider.
var WithMeterProvider = observability.WithMeterProvider
