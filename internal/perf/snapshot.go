package perf

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace"
)

type SpanSnapshot struct {
	Name       string
	StartTime  time.Time
	EndTime    time.Time
	Attributes map[string]string
}

func (s SpanSnapshot) Duration() time.Duration {
	if s.EndTime.Before(s.StartTime) {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// Total aggregates every span sharing a name.
type Total struct {
	Name     string
	Count    int
	Duration time.Duration
}

// GetSpans returns the finished spans in the order they ended.
func GetSpans() []SpanSnapshot {
	return finished.recorded()
}

func FindSpanByName(spans []SpanSnapshot, name string) (SpanSnapshot, bool) {
	for _, span := range spans {
		if span.Name == name {
			return span, true
		}
	}
	return SpanSnapshot{}, false
}

// Totals sums span durations per name, keeping the order of first appearance.
func Totals(spans []SpanSnapshot) []Total {
	totals := make([]Total, 0)
	index := map[string]int{}
	for _, span := range spans {
		position, ok := index[span.Name]
		if !ok {
			position = len(totals)
			index[span.Name] = position
			totals = append(totals, Total{Name: span.Name})
		}
		totals[position].Count++
		totals[position].Duration += span.Duration()
	}
	return totals
}

func snapshotSpan(span trace.ReadOnlySpan) SpanSnapshot {
	return SpanSnapshot{
		Name:       span.Name(),
		StartTime:  span.StartTime(),
		EndTime:    span.EndTime(),
		Attributes: attributesToMap(span.Attributes()),
	}
}

func attributesToMap(attributes []attribute.KeyValue) map[string]string {
	out := make(map[string]string, len(attributes))
	for _, kv := range attributes {
		out[string(kv.Key)] = kv.Value.Emit()
	}
	return out
}
