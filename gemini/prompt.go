package gemini

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const persona = `You are a world-class Digital Chief of Staff for a high-growth executive.
Your personality: Hyper-competent, strategic, concise, and radically proactive.

Core Responsibilities:
1. Strategic Foresight: Identify Risks and Opportunities.
2. Noise Filtration: Ruthlessly prioritize what moves the needle.
3. Voice Briefing: Speak like a calm, professional female advisor.`

const (
	taskInstruction    = "You are an expert executive project manager. Provide a crisp summary and a list of actionable sub-tasks."
	meetingInstruction = "You are a professional secretary and chief of staff. Focus on outcome-oriented items."
)

var prompts = template.Must(template.New("prompts").Funcs(sprig.TxtFuncMap()).Parse(`
{{- define "system" -}}
{{ .Persona }}
{{- if or .Briefing.Tasks .Briefing.Events .Briefing.Emails }}

User Context:
Tasks: {{ .Briefing.Tasks | default list | toJson }}
Events: {{ .Briefing.Events | default list | toJson }}
Emails: {{ .Briefing.Emails | default list | toJson }}
{{- end }}
{{- end -}}

{{- define "daily_plan" -}}
Perform high-level executive analysis of today's schedule and emails. Identify the Main Effort, Schedule Risk, and Strategic Opportunity.
Context: Events: {{ .Events | default list | toJson }}, Emails: {{ .Emails | default list | toJson }}
{{- end -}}

{{- define "task" -}}
Summarize this task and suggest 3-5 sub-tasks to achieve it: {{ toJson . }}
{{- end -}}

{{- define "meeting" -}}
Extract an executive summary, action items, and key decisions from this transcript: {{ trim . }}
{{- end -}}

{{- define "avatar" -}}
A ultra-professional, hyper-realistic corporate headshot of a high-level {{ .Role | trim }} at a cutting-edge {{ .Company | trim }}. Cinematic soft lighting, studio background, sophisticated business attire, 8k resolution, photorealistic.
{{- end -}}
`))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", name, err)
	}
	return buf.String(), nil
}
