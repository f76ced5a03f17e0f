// Command execai is an executive Chief of Staff console backed by Gemini.
//
// Usage:
//
//	GEMINI_API_KEY=... execai [command] [flags]
//
// Commands:
//
//	chat                     Interactive console (default)
//	ask <text>               Send one message and print the reply
//	reset [--yes]            Clear the stored transcript
//	plan                     Analyze today's calendar and inbox
//	task <id>                Summarize a task into sub-tasks
//	meeting <file|->         Summarize a meeting transcript
//	avatar                   Generate a profile headshot
//	brief planner|inbox|text Synthesize a spoken briefing to WAV
//
// Global flags:
//
//	--api-key string    API key (overrides GEMINI_API_KEY / API_KEY)
//	--data-dir string   Transcript, log and telemetry directory (default ~/.execai)
//	--store string      Transcript store: json, sqlite (default json)
//	--model string      Chat model ID
//	--context string    Briefing JSON file (default: built-in sample day)
//	--log-level string  debug, info, warn, error (default info)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Env vars are read here and passed down as values.
	env := environment{
		geminiKey: os.Getenv("GEMINI_API_KEY"),
		apiKey:    os.Getenv("API_KEY"),
		baseURL:   os.Getenv("GEMINI_BASE_URL"),
		home:      userHome(),
	}

	if err := newRootCmd(env).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "execai: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
