package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/execai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var _ execai.TranscriptStore = (*Store)(nil)

// Store traces and counts operations on another TranscriptStore.
type Store struct {
	next   execai.TranscriptStore
	tracer trace.Tracer
	ops    metric.Int64Counter
}

// NewStore wraps next.
func NewStore(next execai.TranscriptStore, tracer trace.Tracer, meter metric.Meter) (*Store, error) {
	ops, err := meter.Int64Counter(
		"execai.transcript.operations",
		metric.WithDescription("Transcript store operations by kind and result"),
	)
	if err != nil {
		return nil, fmt.Errorf("create operation counter: %w", err)
	}
	return &Store{next: next, tracer: tracer, ops: ops}, nil
}

// Save forwards to the wrapped store.
func (s *Store) Save(ctx context.Context, transcript []execai.Message) error {
	ctx, span := s.tracer.Start(ctx, "transcript.save",
		trace.WithAttributes(attribute.Int("execai.transcript.length", len(transcript))))
	defer span.End()
	err := s.next.Save(ctx, transcript)
	s.record(ctx, span, "save", err)
	return err
}

// Load forwards to the wrapped store. A missing transcript is not recorded
// as a failure.
func (s *Store) Load(ctx context.Context) ([]execai.Message, error) {
	ctx, span := s.tracer.Start(ctx, "transcript.load")
	defer span.End()
	transcript, err := s.next.Load(ctx)
	if errors.Is(err, execai.ErrNoTranscript) {
		span.SetAttributes(attribute.Bool("execai.transcript.found", false))
		s.ops.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "load"), attribute.String("result", "empty")))
		return nil, err
	}
	s.record(ctx, span, "load", err)
	if err == nil {
		span.SetAttributes(attribute.Int("execai.transcript.length", len(transcript)))
	}
	return transcript, err
}

// Clear forwards to the wrapped store.
func (s *Store) Clear(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "transcript.clear")
	defer span.End()
	err := s.next.Clear(ctx)
	s.record(ctx, span, "clear", err)
	return err
}

func (s *Store) record(ctx context.Context, span trace.Span, op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.ops.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op), attribute.String("result", result)))
}
