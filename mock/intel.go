package mock

import (
	"context"

	"github.com/fwojciec/execai"
)

// Analyst is a test double for execai.Analyst.
type Analyst struct {
	AnalyzeDailyPlanFn func(ctx context.Context, events []execai.CalendarEvent, emails []execai.EmailInsight) (string, error)
	SummarizeTaskFn    func(ctx context.Context, task execai.Task) (execai.TaskSummary, error)
	SummarizeMeetingFn func(ctx context.Context, transcript string) (execai.MeetingSummary, error)
}

// AnalyzeDailyPlan delegates to AnalyzeDailyPlanFn.
func (a *Analyst) AnalyzeDailyPlan(ctx context.Context, events []execai.CalendarEvent, emails []execai.EmailInsight) (string, error) {
	return a.AnalyzeDailyPlanFn(ctx, events, emails)
}

// SummarizeTask delegates to SummarizeTaskFn.
func (a *Analyst) SummarizeTask(ctx context.Context, task execai.Task) (execai.TaskSummary, error) {
	return a.SummarizeTaskFn(ctx, task)
}

// SummarizeMeeting delegates to SummarizeMeetingFn.
func (a *Analyst) SummarizeMeeting(ctx context.Context, transcript string) (execai.MeetingSummary, error) {
	return a.SummarizeMeetingFn(ctx, transcript)
}

// Narrator is a test double for execai.Narrator.
type Narrator struct {
	SpeakFn func(ctx context.Context, script string) (execai.Audio, error)
}

// Speak delegates to SpeakFn.
func (n *Narrator) Speak(ctx context.Context, script string) (execai.Audio, error) {
	return n.SpeakFn(ctx, script)
}

// Portraitist is a test double for execai.Portraitist.
type Portraitist struct {
	GenerateAvatarFn func(ctx context.Context, role, company string) (execai.Image, error)
}

// GenerateAvatar delegates to GenerateAvatarFn.
func (p *Portraitist) GenerateAvatar(ctx context.Context, role, company string) (execai.Image, error) {
	return p.GenerateAvatarFn(ctx, role, company)
}
