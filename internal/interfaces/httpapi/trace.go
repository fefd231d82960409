package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("squadbets/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		// Filtered routes such as /healthz have no server span.
		return ctx, noopSpan
	}
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name)
}

// Handlers and the admin guard get spans; response helpers and the outer
// middleware chain are covered by the otelhttp server span.
func shouldCreateHTTPAPISpan(name string) bool {
	switch {
	case name == "httpapi.Handler.validateRequest":
		return false
	case strings.HasPrefix(name, "httpapi.Handler."), name == "httpapi.RequireAdminToken":
		return true
	default:
		return false
	}
}
