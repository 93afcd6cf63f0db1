package cache

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracer emits spans around cache misses so a build's cost shows up
// alongside the rest of a run's trace.
var tracer = otel.Tracer("gitaicore.cache")

// startGetOrBuildSpan opens a span for one GetOrBuild call, tagged with
// the key's language so cache misses can be filtered by language in a
// trace backend.
func startGetOrBuildSpan(ctx context.Context, key CacheKey) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Cache.GetOrBuild",
		trace.WithAttributes(
			attribute.String("cache.language", key.Language),
			attribute.String("cache.content_hash", key.ContentHash),
		),
	)
}

// setSpanOutcome records whether the span's GetOrBuild call was served
// from the cache or required a build.
func setSpanOutcome(span trace.Span, hit bool) {
	span.SetAttributes(attribute.Bool("cache.hit", hit))
}
