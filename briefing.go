package execai

// Briefing is the snapshot of an executive's day that grounds assistant
// replies. It is owned by the caller; the session only forwards it.
type Briefing struct {
	Tasks  []Task          `json:"tasks"`
	Events []CalendarEvent `json:"events"`
	Emails []EmailInsight  `json:"emails"`
}

// TaskStatus is the progress state of a Task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
)

// Priority ranks a Task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task is a to-do item on the executive's plate.
type Task struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Status   TaskStatus `json:"status"`
	Priority Priority   `json:"priority"`
	DueTime  string     `json:"dueTime"`
}

// CalendarEvent is a meeting or time block.
type CalendarEvent struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	Attendees   []string `json:"attendees"`
	Location    string   `json:"location,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	ActionItems []string `json:"actionItems,omitempty"`
}

// EmailCategory is the triage bucket of an EmailInsight.
type EmailCategory string

const (
	EmailUrgent        EmailCategory = "Urgent"
	EmailFollowUp      EmailCategory = "Follow-up"
	EmailIgnore        EmailCategory = "Ignore"
	EmailInformational EmailCategory = "Informational"
)

// EmailInsight is a pre-summarized inbox item.
type EmailInsight struct {
	ID                   string        `json:"id"`
	From                 string        `json:"from"`
	Subject              string        `json:"subject"`
	Category             EmailCategory `json:"category"`
	Summary              string        `json:"summary"`
	ActionRequired       bool          `json:"actionRequired"`
	ReceivedAt           string        `json:"receivedAt"`
	Snoozed              bool          `json:"snoozed,omitempty"`
	ExtractedActionItems []string      `json:"extractedActionItems,omitempty"`
}

// FindTask returns the task with the given ID.
func (b Briefing) FindTask(id string) (Task, bool) {
	for _, t := range b.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
