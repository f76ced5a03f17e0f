package execai

import (
	"fmt"
	"strings"
)

// PlannerBriefingScript builds the spoken planner update. The first open
// high-priority task is named as the main effort.
func PlannerBriefingScript(tasks []Task) string {
	var open []Task
	for _, t := range tasks {
		if t.Priority == PriorityHigh && t.Status != TaskCompleted {
			open = append(open, t)
		}
	}
	if len(open) == 0 {
		return "Operational status green. No high-priority blocks remaining. Suggesting a pivot to long-term strategy work."
	}
	return fmt.Sprintf("Tactical update. Your main effort today is %s. You have %d high-stakes items total. I recommend clearing the schedule for the next two hours.",
		open[0].Title, len(open))
}

// InboxBriefingScript builds the spoken inbox update.
func InboxBriefingScript(emails []EmailInsight) string {
	urgent := 0
	for _, e := range emails {
		if e.Category == EmailUrgent {
			urgent++
		}
	}
	if urgent == 0 {
		return "Inbox status optimal. No urgent flags detected in your current communications stack."
	}
	return fmt.Sprintf("Intelligence update. You have %d urgent communications requiring immediate review. Strategic priority is recommended.", urgent)
}

var speechReplacer = strings.NewReplacer("<br/>", " ", "#", "", "*", "")

// SpeechText strips markup that a speech model would otherwise read aloud.
func SpeechText(analysis string) string {
	return speechReplacer.Replace(analysis)
}

// PlannerNarration is the full speech prompt for the planner briefing.
func PlannerNarration(tasks []Task) string {
	return "Read this tactical update with professional urgency and female clarity: " + PlannerBriefingScript(tasks)
}

// InboxNarration is the full speech prompt for the inbox briefing.
func InboxNarration(emails []EmailInsight) string {
	return "Read this email update with professional female authority: " + InboxBriefingScript(emails)
}

// SummaryNarration is the full speech prompt for reading back an analysis.
func SummaryNarration(analysis string) string {
	return "Read this executive summary with professional female authority: " + SpeechText(analysis)
}
