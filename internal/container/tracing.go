package container

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracer emits spans around Resolve so a service's construction cost is
// visible alongside the rest of a run's trace.
var tracer = otel.Tracer("gitaicore.container")

func startResolveSpan(ctx context.Context, typeKey string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Container.Resolve",
		trace.WithAttributes(attribute.String("container.type", typeKey)),
	)
}

func setResolveSpanOutcome(span trace.Span, cacheHit bool) {
	span.SetAttributes(attribute.Bool("container.cache_hit", cacheHit))
}
