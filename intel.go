package execai

import "context"

// Analyst turns the briefing into executive analysis.
type Analyst interface {
	// AnalyzeDailyPlan identifies the main effort, schedule risk and
	// strategic opportunity in today's calendar and inbox.
	AnalyzeDailyPlan(ctx context.Context, events []CalendarEvent, emails []EmailInsight) (string, error)
	// SummarizeTask condenses a task and proposes sub-tasks.
	SummarizeTask(ctx context.Context, task Task) (TaskSummary, error)
	// SummarizeMeeting extracts outcomes from a meeting transcript.
	SummarizeMeeting(ctx context.Context, transcript string) (MeetingSummary, error)
}

// Narrator synthesizes speech.
type Narrator interface {
	Speak(ctx context.Context, script string) (Audio, error)
}

// Portraitist generates profile imagery.
type Portraitist interface {
	GenerateAvatar(ctx context.Context, role, company string) (Image, error)
}

// TaskSummary is the structured result of SummarizeTask.
type TaskSummary struct {
	Summary  string   `json:"summary"`
	Subtasks []string `json:"subtasks"`
}

// MeetingSummary is the structured result of SummarizeMeeting.
type MeetingSummary struct {
	Summary     string   `json:"summary"`
	ActionItems []string `json:"actionItems"`
	Decisions   []string `json:"decisions"`
}

// Image is generated image data.
type Image struct {
	Data     []byte
	MIMEType string
}

// Audio is synthesized speech. Gemini TTS returns raw 16-bit mono PCM.
type Audio struct {
	Data       []byte
	MIMEType   string
	SampleRate int
}
