package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/execai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var _ execai.Assistant = (*Assistant)(nil)

// Assistant traces and measures calls to another Assistant.
type Assistant struct {
	next     execai.Assistant
	tracer   trace.Tracer
	latency  metric.Float64Histogram
	failures metric.Int64Counter
}

// NewAssistant wraps next.
func NewAssistant(next execai.Assistant, tracer trace.Tracer, meter metric.Meter) (*Assistant, error) {
	latency, err := meter.Float64Histogram(
		"execai.assistant.duration",
		metric.WithDescription("Assistant reply latency"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create latency histogram: %w", err)
	}
	failures, err := meter.Int64Counter(
		"execai.assistant.failures",
		metric.WithDescription("Assistant replies that failed"),
	)
	if err != nil {
		return nil, fmt.Errorf("create failure counter: %w", err)
	}
	return &Assistant{next: next, tracer: tracer, latency: latency, failures: failures}, nil
}

// Reply forwards to the wrapped Assistant inside an "assistant.reply" span.
func (a *Assistant) Reply(ctx context.Context, req execai.ReplyRequest) (execai.Reply, error) {
	ctx, span := a.tracer.Start(ctx, "assistant.reply", trace.WithAttributes(
		attribute.Int("execai.history.length", len(req.History)),
		attribute.Int("execai.briefing.tasks", len(req.Briefing.Tasks)),
	))
	defer span.End()

	start := time.Now()
	reply, err := a.next.Reply(ctx, req)
	a.latency.Record(ctx, float64(time.Since(start).Milliseconds()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.failures.Add(ctx, 1)
		return reply, err
	}
	span.SetAttributes(attribute.Int("execai.reply.sources", len(reply.Sources)))
	return reply, nil
}
