package execai

import (
	"fmt"
	"strings"
)

// ValidateMessage checks that a message is well formed for its role.
func ValidateMessage(m Message) error {
	if !m.Role.Valid() {
		return fmt.Errorf("unknown role %q: %w", m.Role, ErrValidation)
	}
	if m.Timestamp.IsZero() {
		return fmt.Errorf("%s message has no timestamp: %w", m.Role, ErrValidation)
	}
	if m.Role == RoleUser && strings.TrimSpace(m.Content) == "" {
		return fmt.Errorf("user message content is empty: %w", ErrValidation)
	}
	if m.Role != RoleAssistant && len(m.Sources) > 0 {
		return fmt.Errorf("sources not allowed in %s message: %w", m.Role, ErrValidation)
	}
	return nil
}

// ValidateTranscript checks a restored transcript. A transcript is never
// empty, so an empty one is rejected along with any malformed message.
func ValidateTranscript(transcript []Message) error {
	if len(transcript) == 0 {
		return fmt.Errorf("transcript is empty: %w", ErrValidation)
	}
	for i, m := range transcript {
		if err := ValidateMessage(m); err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
	}
	return nil
}
