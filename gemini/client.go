package gemini

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fwojciec/execai"
	"google.golang.org/genai"
)

// Interface compliance checks.
var (
	_ execai.Assistant   = (*Client)(nil)
	_ execai.Analyst     = (*Client)(nil)
	_ execai.Narrator    = (*Client)(nil)
	_ execai.Portraitist = (*Client)(nil)
)

// Client implements the execai service interfaces for the Gemini API.
type Client struct {
	client        *genai.Client
	model         string
	analysisModel string
	imageModel    string
	speechModel   string
	voice         string

	baseURL    string
	httpClient *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the chat model ID. Default is gemini-3-pro-preview.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithAnalysisModel sets the model used for daily plan analysis and task
// summaries. Default is gemini-3-flash-preview.
func WithAnalysisModel(model string) Option {
	return func(c *Client) { c.analysisModel = model }
}

// WithVoice sets the prebuilt TTS voice. Default is Kore.
func WithVoice(voice string) Option {
	return func(c *Client) { c.voice = voice }
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	c := &Client{
		model:         defaultModel,
		analysisModel: defaultAnalysisModel,
		imageModel:    defaultImageModel,
		speechModel:   defaultSpeechModel,
		voice:         defaultVoice,
	}
	for _, o := range opts {
		o(c)
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  c.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: c.baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c.client = gc
	return c, nil
}

// Reply asks the chat model for the next Chief of Staff turn, grounded in
// the briefing and Google Search.
func (c *Client) Reply(ctx context.Context, req execai.ReplyRequest) (execai.Reply, error) {
	system, err := render("system", struct {
		Persona  string
		Briefing execai.Briefing
	}{persona, req.Briefing})
	if err != nil {
		return execai.Reply{}, err
	}

	contents := ConvertHistory(req.History)
	contents = append(contents, genai.NewContentFromText(req.Message, genai.RoleUser))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](replyTemperature),
		Tools:             []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		return execai.Reply{}, fmt.Errorf("gemini: generate reply: %w", err)
	}

	text := resp.Text()
	if text == "" {
		text = fallbackReply
	}
	return execai.Reply{Text: text, Sources: ConvertSources(resp)}, nil
}

// ConvertHistory converts a transcript to genai Contents. Assistant turns
// map to the model role; every other turn is sent as user.
// Exported for testing.
func ConvertHistory(msgs []execai.Message) []*genai.Content {
	result := make([]*genai.Content, 0, len(msgs)+1)
	for _, m := range msgs {
		role := genai.Role(genai.RoleUser)
		if m.Role == execai.RoleAssistant {
			role = genai.RoleModel
		}
		result = append(result, genai.NewContentFromText(m.Content, role))
	}
	return result
}

// ConvertSources maps the grounding chunks of the first candidate onto
// execai Sources. Web pages, map places and retrieved documents all become
// plain title/URI pairs; chunks without a URI are dropped.
// Exported for testing.
func ConvertSources(resp *genai.GenerateContentResponse) []execai.Source {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var sources []execai.Source
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil {
			continue
		}
		switch {
		case chunk.Web != nil:
			sources = append(sources, execai.Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
		case chunk.Maps != nil:
			sources = append(sources, execai.Source{Title: chunk.Maps.Title, URI: chunk.Maps.URI})
		case chunk.RetrievedContext != nil:
			sources = append(sources, execai.Source{Title: chunk.RetrievedContext.Title, URI: chunk.RetrievedContext.URI})
		}
	}
	return execai.NormalizeSources(sources)
}
