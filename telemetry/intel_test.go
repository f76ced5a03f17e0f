package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/execai"
	"github.com/fwojciec/execai/mock"
	"github.com/fwojciec/execai/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestAnalyst(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	next := &mock.Analyst{
		AnalyzeDailyPlanFn: func(_ context.Context, events []execai.CalendarEvent, _ []execai.EmailInsight) (string, error) {
			return "Main effort: close the round.", nil
		},
		SummarizeTaskFn: func(_ context.Context, task execai.Task) (execai.TaskSummary, error) {
			return execai.TaskSummary{Summary: task.Title, Subtasks: []string{"a", "b"}}, nil
		},
		SummarizeMeetingFn: func(context.Context, string) (execai.MeetingSummary, error) {
			return execai.MeetingSummary{}, errors.New("empty response")
		},
	}
	a, err := telemetry.NewAnalyst(next, h.tp.Tracer("test"), h.mp.Meter("test"))
	require.NoError(t, err)
	ctx := context.Background()
	briefing := execai.SampleBriefing()

	analysis, err := a.AnalyzeDailyPlan(ctx, briefing.Events, briefing.Emails)
	require.NoError(t, err)
	assert.Equal(t, "Main effort: close the round.", analysis)

	summary, err := a.SummarizeTask(ctx, execai.Task{ID: "t1", Title: "Board deck"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, summary.Subtasks)

	_, err = a.SummarizeMeeting(ctx, "notes")
	assert.EqualError(t, err, "empty response")

	spans := h.spans.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "analyst.daily_plan", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.Int("execai.briefing.events", len(briefing.Events)))
	assert.Equal(t, "analyst.task", spans[1].Name())
	assert.Contains(t, spans[1].Attributes(), attribute.Int("execai.task.subtasks", 2))
	assert.Equal(t, "analyst.meeting", spans[2].Name())
	assert.Equal(t, codes.Error, spans[2].Status().Code)

	failures := h.metric(t, "execai.intel.failures")
	assert.Equal(t, int64(1), sumFor(t, failures, attribute.String("op", "analyst.meeting")))
	assert.Equal(t, int64(0), sumFor(t, failures, attribute.String("op", "analyst.task")))

	hist, ok := h.metric(t, "execai.intel.duration").(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.Len(t, hist.DataPoints, 3)
}

func TestNarrator(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	var got string
	next := &mock.Narrator{
		SpeakFn: func(_ context.Context, script string) (execai.Audio, error) {
			got = script
			return execai.Audio{Data: make([]byte, 48), SampleRate: 24000}, nil
		},
	}
	n, err := telemetry.NewNarrator(next, h.tp.Tracer("test"), h.mp.Meter("test"))
	require.NoError(t, err)

	audio, err := n.Speak(context.Background(), "Good morning.")
	require.NoError(t, err)
	assert.Equal(t, "Good morning.", got)
	assert.Equal(t, 24000, audio.SampleRate)

	spans := h.spans.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "narrator.speak", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.Int("execai.audio.bytes", 48))
}

func TestPortraitist(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	boom := errors.New("quota exceeded")
	next := &mock.Portraitist{
		GenerateAvatarFn: func(context.Context, string, string) (execai.Image, error) {
			return execai.Image{}, boom
		},
	}
	p, err := telemetry.NewPortraitist(next, h.tp.Tracer("test"), h.mp.Meter("test"))
	require.NoError(t, err)

	_, err = p.GenerateAvatar(context.Background(), "CEO", "Acme")
	assert.ErrorIs(t, err, boom)

	spans := h.spans.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "portraitist.avatar", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, int64(1), sumFor(t, h.metric(t, "execai.intel.failures"), attribute.String("op", "portraitist.avatar")))
}
