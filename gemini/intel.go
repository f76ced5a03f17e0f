package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"strconv"
	"strings"

	"github.com/fwojciec/execai"
	"google.golang.org/genai"
)

// AnalyzeDailyPlan identifies the main effort, schedule risk and strategic
// opportunity in today's calendar and inbox.
func (c *Client) AnalyzeDailyPlan(ctx context.Context, events []execai.CalendarEvent, emails []execai.EmailInsight) (string, error) {
	prompt, err := render("daily_plan", struct {
		Events []execai.CalendarEvent
		Emails []execai.EmailInsight
	}{events, emails})
	if err != nil {
		return "", err
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.analysisModel,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(persona, genai.RoleUser),
			Tools:             []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		})
	if err != nil {
		return "", fmt.Errorf("gemini: analyze daily plan: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: analyze daily plan: empty response: %w", execai.ErrValidation)
	}
	return text, nil
}

var taskSummarySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary":  {Type: genai.TypeString},
		"subtasks": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"summary", "subtasks"},
}

var meetingSummarySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary":     {Type: genai.TypeString},
		"actionItems": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"decisions":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"summary", "actionItems", "decisions"},
}

// SummarizeTask condenses a task and proposes three to five sub-tasks.
func (c *Client) SummarizeTask(ctx context.Context, task execai.Task) (execai.TaskSummary, error) {
	prompt, err := render("task", task)
	if err != nil {
		return execai.TaskSummary{}, err
	}
	var out execai.TaskSummary
	if err := c.generateJSON(ctx, c.analysisModel, taskInstruction, prompt, taskSummarySchema, &out); err != nil {
		return execai.TaskSummary{}, fmt.Errorf("gemini: summarize task: %w", err)
	}
	return out, nil
}

// SummarizeMeeting extracts the summary, action items and decisions from
// a meeting transcript.
func (c *Client) SummarizeMeeting(ctx context.Context, transcript string) (execai.MeetingSummary, error) {
	if strings.TrimSpace(transcript) == "" {
		return execai.MeetingSummary{}, fmt.Errorf("gemini: summarize meeting: empty transcript: %w", execai.ErrValidation)
	}
	prompt, err := render("meeting", transcript)
	if err != nil {
		return execai.MeetingSummary{}, err
	}
	var out execai.MeetingSummary
	if err := c.generateJSON(ctx, c.model, meetingInstruction, prompt, meetingSummarySchema, &out); err != nil {
		return execai.MeetingSummary{}, fmt.Errorf("gemini: summarize meeting: %w", err)
	}
	return out, nil
}

func (c *Client) generateJSON(ctx context.Context, model, instruction, prompt string, schema *genai.Schema, v any) error {
	resp, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    schema,
		})
	if err != nil {
		return err
	}
	text := resp.Text()
	if text == "" {
		return fmt.Errorf("empty response: %w", execai.ErrValidation)
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// GenerateAvatar renders a square corporate headshot.
func (c *Client) GenerateAvatar(ctx context.Context, role, company string) (execai.Image, error) {
	prompt, err := render("avatar", struct{ Role, Company string }{role, company})
	if err != nil {
		return execai.Image{}, err
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.imageModel,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ImageConfig: &genai.ImageConfig{AspectRatio: "1:1"},
		})
	if err != nil {
		return execai.Image{}, fmt.Errorf("gemini: generate avatar: %w", err)
	}
	blob := firstInlineData(resp)
	if blob == nil {
		return execai.Image{}, fmt.Errorf("gemini: generate avatar: %w", execai.ErrNoMedia)
	}
	mimeType := blob.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return execai.Image{Data: blob.Data, MIMEType: mimeType}, nil
}

// Speak synthesizes script with the configured prebuilt voice.
func (c *Client) Speak(ctx context.Context, script string) (execai.Audio, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.speechModel,
		[]*genai.Content{genai.NewContentFromText(script, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseModalities: []string{string(genai.ModalityAudio)},
			SpeechConfig: &genai.SpeechConfig{
				VoiceConfig: &genai.VoiceConfig{
					PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: c.voice},
				},
			},
		})
	if err != nil {
		return execai.Audio{}, fmt.Errorf("gemini: speak: %w", err)
	}
	blob := firstInlineData(resp)
	if blob == nil {
		return execai.Audio{}, fmt.Errorf("gemini: speak: %w", execai.ErrNoMedia)
	}
	return execai.Audio{
		Data:       blob.Data,
		MIMEType:   blob.MIMEType,
		SampleRate: SampleRate(blob.MIMEType),
	}, nil
}

// SampleRate reads the rate parameter of a PCM MIME type such as
// "audio/L16;codec=pcm;rate=24000", falling back to the Gemini TTS default.
func SampleRate(mimeType string) int {
	_, params, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return defaultSampleRate
	}
	rate, err := strconv.Atoi(params["rate"])
	if err != nil || rate <= 0 {
		return defaultSampleRate
	}
	return rate
}

func firstInlineData(resp *genai.GenerateContentResponse) *genai.Blob {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData
		}
	}
	return nil
}
