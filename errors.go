package execai

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a reply, message or transcript failed validation.
	ErrValidation = errors.New("validation error")

	// ErrNoTranscript indicates the store holds no transcript under its key.
	ErrNoTranscript = errors.New("no transcript")

	// ErrNoMedia indicates a generation call returned no inline image or audio.
	ErrNoMedia = errors.New("no media in response")
)
