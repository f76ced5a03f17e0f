package execai

// SampleBriefing returns demo data for a founder's day. It stands in for
// real task, calendar and inbox integrations.
func SampleBriefing() Briefing {
	return Briefing{
		Tasks: []Task{
			{ID: "1", Title: "Approve series B pitch deck", Status: TaskPending, Priority: PriorityHigh, DueTime: "2:00 PM"},
			{ID: "2", Title: "Review engineering hiring roadmap", Status: TaskInProgress, Priority: PriorityMedium, DueTime: "4:30 PM"},
			{ID: "3", Title: "Team sync: Q4 goals", Status: TaskPending, Priority: PriorityMedium, DueTime: "11:00 AM"},
			{ID: "4", Title: "Update personal expense report", Status: TaskCompleted, Priority: PriorityLow, DueTime: "9:00 AM"},
			{ID: "5", Title: "Urgent: Fix production login issue", Status: TaskInProgress, Priority: PriorityHigh, DueTime: "ASAP"},
		},
		Events: []CalendarEvent{
			{ID: "1", Title: "Board Update - Q3 Financials", StartTime: "10:00 AM", EndTime: "11:30 AM", Attendees: []string{"Jane CFO", "Board"}, Location: "Zoom"},
			{ID: "2", Title: "1:1 with VP Product", StartTime: "1:00 PM", EndTime: "1:45 PM", Attendees: []string{"VP Product"}, Location: "HQ Coffee"},
			{ID: "3", Title: "Deep Work: Strategy", StartTime: "2:00 PM", EndTime: "4:00 PM", Attendees: []string{"Self"}},
		},
		Emails: []EmailInsight{
			{ID: "1", From: "marcus@vc-fund.com", Subject: "Follow up on term sheet", Category: EmailUrgent, Summary: "Investor requesting final signatures by EOD today on the Series B round.", ActionRequired: true, ReceivedAt: "2h ago"},
			{ID: "2", From: "aws-billing@amazon.com", Subject: "Invoice #8821 available", Category: EmailInformational, Summary: "Standard monthly billing notification for infrastructure usage.", ReceivedAt: "4h ago"},
			{ID: "3", From: "recruiter@hiring.com", Subject: "Candidate: Senior ML Engineer", Category: EmailFollowUp, Summary: "Final round interview feedback required for the top prospect in engineering.", ActionRequired: true, ReceivedAt: "5h ago"},
			{ID: "4", From: "news@tech-brief.com", Subject: "Daily Tech Trends", Category: EmailIgnore, Summary: "General news digest about the semiconductor market.", ReceivedAt: "6h ago"},
			{ID: "5", From: "sarah.p@product.com", Subject: "New Roadmap Draft", Category: EmailFollowUp, Summary: "Requested feedback on the Q1 product feature set.", ActionRequired: true, ReceivedAt: "1h ago"},
		},
	}
}
