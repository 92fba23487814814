package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/weave/pkg/weave"
)

// TracerName is the instrumentation name used for engine spans.
const TracerName = "github.com/vango-dev/weave"

// TracerOption configures a Tracer.
type TracerOption func(*Tracer)

// WithTracerProvider sets the provider spans are created from.
// Default: otel.GetTracerProvider()
func WithTracerProvider(tp trace.TracerProvider) TracerOption {
	return func(t *Tracer) {
		t.provider = tp
	}
}

// WithSliceSpans also records a span for every work loop slice.
func WithSliceSpans() TracerOption {
	return func(t *Tracer) {
		t.slices = true
	}
}

// WithSpanAttributes adds attributes to every span.
func WithSpanAttributes(attrs ...attribute.KeyValue) TracerOption {
	return func(t *Tracer) {
		t.attrs = append(t.attrs, attrs...)
	}
}

// Tracer records engine activity as OpenTelemetry spans. It implements
// weave.Observer. Spans are created after the fact, backdated by the
// reported duration.
type Tracer struct {
	provider trace.TracerProvider
	tracer   trace.Tracer
	slices   bool
	attrs    []attribute.KeyValue
	now      func() time.Time
}

var _ weave.Observer = (*Tracer)(nil)

// NewTracer creates a Tracer.
func NewTracer(opts ...TracerOption) *Tracer {
	t := &Tracer{now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	if t.provider == nil {
		t.provider = otel.GetTracerProvider()
	}
	t.tracer = t.provider.Tracer(TracerName)
	return t
}

func (t *Tracer) span(name string, end time.Time, d time.Duration, attrs ...attribute.KeyValue) trace.Span {
	_, span := t.tracer.Start(context.Background(), name,
		trace.WithTimestamp(end.Add(-d)),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(t.attrs...),
		trace.WithAttributes(attrs...),
	)
	return span
}

// SliceDone implements weave.Observer.
func (t *Tracer) SliceDone(r weave.SliceReport) {
	if !t.slices {
		return
	}
	end := t.now()
	span := t.span("weave.slice", end, r.Duration,
		attribute.Int("weave.slice.units", r.Units),
		attribute.Bool("weave.slice.yielded", r.Yielded),
		attribute.Int("weave.slice.restarts", r.Restarts),
	)
	span.End(trace.WithTimestamp(end))
}

// Committed implements weave.Observer.
func (t *Tracer) Committed(r weave.CommitReport) {
	end := t.now()
	span := t.span("weave.commit", end, r.Duration,
		attribute.Int64("weave.generation", int64(r.Generation)),
		attribute.Int("weave.commit.placements", r.Placements),
		attribute.Int("weave.commit.updates", r.Updates),
		attribute.Int("weave.commit.unchanged", r.Unchanged),
		attribute.Int("weave.commit.deletions", r.Deletions),
		attribute.Int("weave.commit.mutations", r.Mutations),
	)
	span.SetStatus(codes.Ok, "")
	span.End(trace.WithTimestamp(end))
}

// Failed implements weave.Observer.
func (t *Tracer) Failed(err error) {
	span := t.span("weave.abort", t.now(), 0,
		attribute.String("weave.error.code", errorCode(err)),
	)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()
}
