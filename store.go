package execai

import "context"

// TranscriptKey is the fixed key the Chief of Staff transcript is stored
// under. Only one session should write it at a time; concurrent writers
// overwrite each other (last write wins).
const TranscriptKey = "execai.chief_of_staff.transcript"

// TranscriptStore is durable key-value storage for a single transcript.
type TranscriptStore interface {
	// Save replaces the stored transcript.
	Save(ctx context.Context, transcript []Message) error
	// Load returns the stored transcript, or ErrNoTranscript when none exists.
	Load(ctx context.Context) ([]Message, error)
	// Clear removes the stored transcript. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
