package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/execai"
	execjson "github.com/fwojciec/execai/json"
	"github.com/fwojciec/execai/sqlite"
)

// Store kinds accepted by --store.
const (
	storeJSON   = "json"
	storeSQLite = "sqlite"
)

// environment carries the values main reads from the process environment.
type environment struct {
	geminiKey string
	apiKey    string
	baseURL   string
	home      string
}

// config holds the resolved global flags.
type config struct {
	apiKey      string
	dataDir     string
	store       string
	model       string
	contextPath string
	logLevel    string
}

func defaultDataDir(home string) string {
	return filepath.Join(home, ".execai")
}

// resolveAPIKey picks the API key: explicit flag, then GEMINI_API_KEY, then
// API_KEY.
func resolveAPIKey(flagKey, geminiEnvKey, apiEnvKey string) (string, error) {
	for _, k := range []string{flagKey, geminiEnvKey, apiEnvKey} {
		if k != "" {
			return k, nil
		}
	}
	return "", errors.New("no API key found: set GEMINI_API_KEY or API_KEY (or use --api-key)")
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// resolveStore opens the transcript store of the given kind under dataDir.
func resolveStore(kind, dataDir string) (execai.TranscriptStore, io.Closer, error) {
	switch kind {
	case storeJSON, "":
		return execjson.NewFileStore(dataDir), closerFunc(func() error { return nil }), nil
	case storeSQLite:
		if err := os.MkdirAll(dataDir, 0o700); err != nil {
			return nil, nil, fmt.Errorf("create data directory: %w", err)
		}
		s, err := sqlite.Open(filepath.Join(dataDir, "execai.db"))
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q: must be %q or %q", kind, storeJSON, storeSQLite)
	}
}

// loadBriefing reads the briefing file, or returns the sample day when no
// file is given.
func loadBriefing(path string) (execai.Briefing, error) {
	if path == "" {
		return execai.SampleBriefing(), nil
	}
	return execjson.LoadBriefing(path)
}
