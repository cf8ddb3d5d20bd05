package perf

import (
	"context"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// recorder is a synchronous span exporter that keeps finished regions as
// snapshots for the debug timing report of the current run.
type recorder struct {
	mu    sync.Mutex
	spans []SpanSnapshot
}

var _ sdktrace.SpanExporter = (*recorder)(nil)

func (r *recorder) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, span := range spans {
		r.spans = append(r.spans, snapshotSpan(span))
	}
	return nil
}

func (r *recorder) Shutdown(context.Context) error {
	return nil
}

func (r *recorder) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spans = nil
}

func (r *recorder) recorded() []SpanSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]SpanSnapshot, len(r.spans))
	copy(out, r.spans)
	return out
}
