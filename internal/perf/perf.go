// Package perf records timing regions of a run as OpenTelemetry spans kept in
// memory, so a debug run can report where the time went.
package perf

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/meza/js-translations/internal/constants"
)

var (
	finished = &recorder{}
	provider = sdktrace.NewTracerProvider(sdktrace.WithSyncer(finished))
	tracer   = provider.Tracer(constants.AppName)
)

type PerformanceRegion struct {
	ctx  context.Context
	span trace.Span
}

func StartRegion(name string) *PerformanceRegion {
	_, region := StartRegionContext(context.Background(), name)
	return region
}

// StartRegionContext starts a region nested under any region carried by ctx.
func StartRegionContext(ctx context.Context, name string) (context.Context, *PerformanceRegion) {
	ctx, span := tracer.Start(ctx, name)
	return ctx, &PerformanceRegion{ctx: ctx, span: span}
}

func (r *PerformanceRegion) Context() context.Context {
	return r.ctx
}

func (r *PerformanceRegion) SetDetail(key string, value any) {
	r.span.SetAttributes(toAttribute(key, value))
}

func (r *PerformanceRegion) End() {
	r.span.End()
}

// Reset drops every recorded span.
func Reset() {
	finished.clear()
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
