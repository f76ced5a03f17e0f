// Package json implements the transcript wire format and a file-backed
// transcript store.
package json

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/execai"
)

// messageDTO is the persisted representation of a Message.
type messageDTO struct {
	ID        string      `json:"id"`
	Role      string      `json:"role"`
	Content   string      `json:"content"`
	Timestamp string      `json:"timestamp"`
	Sources   []sourceDTO `json:"sources,omitempty"`
}

type sourceDTO struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// MarshalTranscript serializes a transcript as a JSON array of messages.
// Timestamps are written in RFC 3339 with nanoseconds, in UTC.
func MarshalTranscript(transcript []execai.Message) ([]byte, error) {
	dtos := make([]messageDTO, len(transcript))
	for i, m := range transcript {
		dtos[i] = messageDTO{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: m.Timestamp.UTC().Format(time.RFC3339Nano),
		}
		for _, s := range m.Sources {
			dtos[i].Sources = append(dtos[i].Sources, sourceDTO{Title: s.Title, URI: s.URI})
		}
	}
	return json.Marshal(dtos)
}

// UnmarshalTranscript deserializes a transcript. Invalid JSON, an empty
// array, or any malformed message is rejected; structural problems wrap
// execai.ErrValidation.
func UnmarshalTranscript(data []byte) ([]execai.Message, error) {
	var dtos []messageDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("unmarshal transcript: %w", err)
	}
	transcript := make([]execai.Message, len(dtos))
	for i, dto := range dtos {
		ts, err := time.Parse(time.RFC3339Nano, dto.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("message %d: timestamp %q: %w", i, dto.Timestamp, execai.ErrValidation)
		}
		m := execai.Message{
			ID:        dto.ID,
			Role:      execai.Role(dto.Role),
			Content:   dto.Content,
			Timestamp: ts,
		}
		for _, s := range dto.Sources {
			m.Sources = append(m.Sources, execai.Source{Title: s.Title, URI: s.URI})
		}
		transcript[i] = m
	}
	if err := execai.ValidateTranscript(transcript); err != nil {
		return nil, err
	}
	return transcript, nil
}
