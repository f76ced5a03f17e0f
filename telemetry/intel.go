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

var (
	_ execai.Analyst     = (*Analyst)(nil)
	_ execai.Narrator    = (*Narrator)(nil)
	_ execai.Portraitist = (*Portraitist)(nil)
)

// instruments is shared by the one-shot intelligence decorators. Every call
// is recorded under an "op" attribute.
type instruments struct {
	tracer   trace.Tracer
	latency  metric.Float64Histogram
	failures metric.Int64Counter
}

func newInstruments(tracer trace.Tracer, meter metric.Meter) (instruments, error) {
	latency, err := meter.Float64Histogram(
		"execai.intel.duration",
		metric.WithDescription("Analysis, speech and image call latency"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return instruments{}, fmt.Errorf("create latency histogram: %w", err)
	}
	failures, err := meter.Int64Counter(
		"execai.intel.failures",
		metric.WithDescription("Analysis, speech and image calls that failed"),
	)
	if err != nil {
		return instruments{}, fmt.Errorf("create failure counter: %w", err)
	}
	return instruments{tracer: tracer, latency: latency, failures: failures}, nil
}

// observe runs fn inside a span named after op and records its outcome.
func (in instruments) observe(ctx context.Context, op string, fn func(context.Context, trace.Span) error) error {
	ctx, span := in.tracer.Start(ctx, op)
	defer span.End()

	opAttr := metric.WithAttributes(attribute.String("op", op))
	start := time.Now()
	err := fn(ctx, span)
	in.latency.Record(ctx, float64(time.Since(start).Milliseconds()), opAttr)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		in.failures.Add(ctx, 1, opAttr)
	}
	return err
}

// Analyst traces and measures calls to another Analyst.
type Analyst struct {
	next execai.Analyst
	in   instruments
}

// NewAnalyst wraps next.
func NewAnalyst(next execai.Analyst, tracer trace.Tracer, meter metric.Meter) (*Analyst, error) {
	in, err := newInstruments(tracer, meter)
	if err != nil {
		return nil, err
	}
	return &Analyst{next: next, in: in}, nil
}

func (a *Analyst) AnalyzeDailyPlan(ctx context.Context, events []execai.CalendarEvent, emails []execai.EmailInsight) (string, error) {
	var analysis string
	err := a.in.observe(ctx, "analyst.daily_plan", func(ctx context.Context, span trace.Span) error {
		span.SetAttributes(
			attribute.Int("execai.briefing.events", len(events)),
			attribute.Int("execai.briefing.emails", len(emails)),
		)
		var err error
		analysis, err = a.next.AnalyzeDailyPlan(ctx, events, emails)
		return err
	})
	return analysis, err
}

func (a *Analyst) SummarizeTask(ctx context.Context, task execai.Task) (execai.TaskSummary, error) {
	var summary execai.TaskSummary
	err := a.in.observe(ctx, "analyst.task", func(ctx context.Context, span trace.Span) error {
		span.SetAttributes(attribute.String("execai.task.id", task.ID))
		var err error
		summary, err = a.next.SummarizeTask(ctx, task)
		if err == nil {
			span.SetAttributes(attribute.Int("execai.task.subtasks", len(summary.Subtasks)))
		}
		return err
	})
	return summary, err
}

func (a *Analyst) SummarizeMeeting(ctx context.Context, transcript string) (execai.MeetingSummary, error) {
	var summary execai.MeetingSummary
	err := a.in.observe(ctx, "analyst.meeting", func(ctx context.Context, span trace.Span) error {
		span.SetAttributes(attribute.Int("execai.meeting.length", len(transcript)))
		var err error
		summary, err = a.next.SummarizeMeeting(ctx, transcript)
		return err
	})
	return summary, err
}

// Narrator traces and measures calls to another Narrator.
type Narrator struct {
	next execai.Narrator
	in   instruments
}

// NewNarrator wraps next.
func NewNarrator(next execai.Narrator, tracer trace.Tracer, meter metric.Meter) (*Narrator, error) {
	in, err := newInstruments(tracer, meter)
	if err != nil {
		return nil, err
	}
	return &Narrator{next: next, in: in}, nil
}

func (n *Narrator) Speak(ctx context.Context, script string) (execai.Audio, error) {
	var audio execai.Audio
	err := n.in.observe(ctx, "narrator.speak", func(ctx context.Context, span trace.Span) error {
		var err error
		audio, err = n.next.Speak(ctx, script)
		if err == nil {
			span.SetAttributes(attribute.Int("execai.audio.bytes", len(audio.Data)))
		}
		return err
	})
	return audio, err
}

// Portraitist traces and measures calls to another Portraitist.
type Portraitist struct {
	next execai.Portraitist
	in   instruments
}

// NewPortraitist wraps next.
func NewPortraitist(next execai.Portraitist, tracer trace.Tracer, meter metric.Meter) (*Portraitist, error) {
	in, err := newInstruments(tracer, meter)
	if err != nil {
		return nil, err
	}
	return &Portraitist{next: next, in: in}, nil
}

func (p *Portraitist) GenerateAvatar(ctx context.Context, role, company string) (execai.Image, error) {
	var img execai.Image
	err := p.in.observe(ctx, "portraitist.avatar", func(ctx context.Context, span trace.Span) error {
		var err error
		img, err = p.next.GenerateAvatar(ctx, role, company)
		if err == nil {
			span.SetAttributes(attribute.String("execai.image.mime_type", img.MIMEType))
		}
		return err
	})
	return img, err
}
