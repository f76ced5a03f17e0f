package json

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/execai"
)

var _ execai.TranscriptStore = (*FileStore)(nil)

// FileStore keeps the transcript in a single JSON file named after
// execai.TranscriptKey inside a directory.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing under dir. The directory is created
// on first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, execai.TranscriptKey+".json")}
}

// Path returns the file the transcript is stored in.
func (s *FileStore) Path() string { return s.path }

// Save replaces the stored transcript atomically.
func (s *FileStore) Save(_ context.Context, transcript []execai.Message) error {
	data, err := MarshalTranscript(transcript)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads the stored transcript.
func (s *FileStore) Load(_ context.Context) ([]execai.Message, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, execai.ErrNoTranscript
	}
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalTranscript(data)
}

// Clear removes the stored transcript.
func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
