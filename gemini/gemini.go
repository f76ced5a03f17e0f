// Package gemini implements the execai service interfaces on the Google
// Gemini API.
//
// It wraps the google.golang.org/genai SDK, translating between execai's
// domain types and the Gemini API types. Grounding citations are
// normalized into [execai.Source] here so nothing downstream depends on
// the provider's shapes.
package gemini

const (
	defaultModel         = "gemini-3-pro-preview"
	defaultAnalysisModel = "gemini-3-flash-preview"
	defaultImageModel    = "gemini-2.5-flash-image"
	defaultSpeechModel   = "gemini-2.5-flash-preview-tts"
	defaultVoice         = "Kore"

	// Gemini TTS emits 16-bit mono PCM at this rate unless the response
	// MIME type says otherwise.
	defaultSampleRate = 24000

	replyTemperature = 0.4

	// fallbackReply stands in for a successful response that carried no text.
	fallbackReply = "I'm monitoring the situation."
)
