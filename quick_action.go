package execai

// QuickAction is a preset directive bound to a shortcut. Sending one goes
// through exactly the same path as free-text input.
type QuickAction struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Icon   string `json:"icon,omitempty"`
	Prompt string `json:"prompt"`
}

// DefaultQuickActions returns the shortcuts every new profile starts with.
func DefaultQuickActions() []QuickAction {
	return []QuickAction{
		{ID: "1", Label: "Draft Board Update", Icon: "chart", Prompt: "Draft a concise update for the board highlighting Q3 progress and hiring velocity."},
		{ID: "2", Label: "Review Pipeline", Icon: "bolt", Prompt: "Summarize the current sales pipeline and identify any high-risk deals."},
		{ID: "3", Label: "Competitor Intel", Icon: "search", Prompt: "Pull recent news on top 3 competitors in our space."},
		{ID: "4", Label: "Draft Job Post", Icon: "people", Prompt: "Create a job description for a Senior Frontend Engineer with Gemini expertise."},
	}
}
