package mock

import (
	"context"

	"github.com/fwojciec/execai"
)

// Store is a test double for execai.TranscriptStore.
// LoadFn panics when nil to catch missing setup. SaveFn and ClearFn are
// nil-safe (no-op) because most tests only care about what the session
// does in memory.
type Store struct {
	SaveFn  func(ctx context.Context, transcript []execai.Message) error
	LoadFn  func(ctx context.Context) ([]execai.Message, error)
	ClearFn func(ctx context.Context) error
}

// Save delegates to SaveFn. Returns nil when SaveFn is not set.
func (s *Store) Save(ctx context.Context, transcript []execai.Message) error {
	if s.SaveFn == nil {
		return nil
	}
	return s.SaveFn(ctx, transcript)
}

// Load delegates to LoadFn.
func (s *Store) Load(ctx context.Context) ([]execai.Message, error) {
	return s.LoadFn(ctx)
}

// Clear delegates to ClearFn. Returns nil when ClearFn is not set.
func (s *Store) Clear(ctx context.Context) error {
	if s.ClearFn == nil {
		return nil
	}
	return s.ClearFn(ctx)
}
