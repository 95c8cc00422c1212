// Package tracing provides OpenTelemetry tracing middleware for HTTP handlers.
// Trace ids are propagated in W3C Trace Context format and exposed to clients
// via the X-Trace-Id response header; the logging middleware picks the same
// trace id up for log correlation.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the instrumentation-scoped tracer for the item monitoring service.
var tracer = otel.Tracer("item-monitor")

// GetTracer returns the tracer used for creating spans.
func GetTracer() trace.Tracer {
	return tracer
}
