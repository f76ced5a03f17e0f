package execai

import (
	"context"
	"fmt"
	"strings"
)

// Assistant produces Chief of Staff replies. Implementations are remote
// calls: they may be slow and they may fail.
type Assistant interface {
	Reply(ctx context.Context, req ReplyRequest) (Reply, error)
}

// ReplyRequest carries one user turn to the assistant.
type ReplyRequest struct {
	// Message is the text the user just sent.
	Message string
	// History is the transcript as it stood before Message was appended.
	History []Message
	// Briefing grounds the reply in the executive's tasks, events and inbox.
	Briefing Briefing
}

// Reply is the assistant's answer to a ReplyRequest.
type Reply struct {
	Text    string
	Sources []Source
}

// Validate rejects replies that carry no text.
func (r Reply) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("reply text is empty: %w", ErrValidation)
	}
	return nil
}
