package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fwojciec/execai"
	"github.com/fwojciec/execai/gemini"
	"github.com/fwojciec/execai/telemetry"
	"github.com/google/uuid"
)

// app is the per-invocation dependency graph. Collaborators are built on
// first use so commands that only touch the store never need an API key.
type app struct {
	cfg       config
	env       environment
	logger    *slog.Logger
	telemetry *telemetry.Telemetry
	briefing  execai.Briefing

	client  *gemini.Client
	closers []io.Closer
}

func newApp(ctx context.Context, cfg config, env environment) (*app, error) {
	level, err := telemetry.ParseLevel(cfg.logLevel)
	if err != nil {
		return nil, err
	}
	briefing, err := loadBriefing(cfg.contextPath)
	if err != nil {
		return nil, err
	}

	logDir := filepath.Join(cfg.dataDir, "logs")
	logger, logCloser, err := telemetry.NewLogger(logDir, level)
	if err != nil {
		return nil, err
	}
	tel, err := telemetry.Setup(ctx, logDir, version)
	if err != nil {
		logCloser.Close()
		return nil, err
	}

	logger.Info("starting", "version", version, "store", cfg.store, "tasks", len(briefing.Tasks))
	return &app{
		cfg:       cfg,
		env:       env,
		logger:    logger,
		telemetry: tel,
		briefing:  briefing,
		closers:   []io.Closer{logCloser},
	}, nil
}

// Close flushes telemetry and releases the store and log files.
func (a *app) Close(ctx context.Context) error {
	errs := []error{a.telemetry.Shutdown(ctx)}
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	return errors.Join(errs...)
}

// store opens the configured transcript store, instrumented.
func (a *app) store() (execai.TranscriptStore, error) {
	s, closer, err := resolveStore(a.cfg.store, a.cfg.dataDir)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closer)
	return telemetry.NewStore(s, a.telemetry.Tracer, a.telemetry.Meter)
}

// geminiClient returns the shared Gemini client.
func (a *app) geminiClient(ctx context.Context) (*gemini.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	key, err := resolveAPIKey(a.cfg.apiKey, a.env.geminiKey, a.env.apiKey)
	if err != nil {
		return nil, err
	}
	var opts []gemini.Option
	if a.cfg.model != "" {
		opts = append(opts, gemini.WithModel(a.cfg.model))
	}
	if a.env.baseURL != "" {
		opts = append(opts, gemini.WithBaseURL(a.env.baseURL))
	}
	c, err := gemini.New(ctx, key, opts...)
	if err != nil {
		return nil, err
	}
	a.client = c
	return c, nil
}

// analyst returns the instrumented daily-plan, task and meeting analyst.
func (a *app) analyst(ctx context.Context) (execai.Analyst, error) {
	client, err := a.geminiClient(ctx)
	if err != nil {
		return nil, err
	}
	return telemetry.NewAnalyst(client, a.telemetry.Tracer, a.telemetry.Meter)
}

// narrator returns the instrumented speech synthesizer.
func (a *app) narrator(ctx context.Context) (execai.Narrator, error) {
	client, err := a.geminiClient(ctx)
	if err != nil {
		return nil, err
	}
	return telemetry.NewNarrator(client, a.telemetry.Tracer, a.telemetry.Meter)
}

// portraitist returns the instrumented avatar generator.
func (a *app) portraitist(ctx context.Context) (execai.Portraitist, error) {
	client, err := a.geminiClient(ctx)
	if err != nil {
		return nil, err
	}
	return telemetry.NewPortraitist(client, a.telemetry.Tracer, a.telemetry.Meter)
}

// session builds an initialized Chief of Staff session. It fails early
// when no API key is configured.
func (a *app) session(ctx context.Context, opts ...execai.SessionOption) (*execai.Session, error) {
	if _, err := a.geminiClient(ctx); err != nil {
		return nil, err
	}
	return a.storedSession(ctx, opts...)
}

// storedSession builds an initialized session over the configured store.
// The Gemini client is resolved on the first send, so a session that only
// resets needs no API key.
func (a *app) storedSession(ctx context.Context, opts ...execai.SessionOption) (*execai.Session, error) {
	assistant, err := telemetry.NewAssistant(deferredAssistant{app: a}, a.telemetry.Tracer, a.telemetry.Meter)
	if err != nil {
		return nil, fmt.Errorf("instrument assistant: %w", err)
	}
	store, err := a.store()
	if err != nil {
		return nil, err
	}

	opts = append([]execai.SessionOption{
		execai.WithLogger(a.logger),
		execai.WithIDFunc(newMessageID),
	}, opts...)
	s := execai.NewSession(assistant, store, opts...)
	s.Initialize(ctx)
	return s, nil
}

// deferredAssistant replies through the app's Gemini client, creating it
// on first use.
type deferredAssistant struct {
	app *app
}

func (d deferredAssistant) Reply(ctx context.Context, req execai.ReplyRequest) (execai.Reply, error) {
	client, err := d.app.geminiClient(ctx)
	if err != nil {
		return execai.Reply{}, err
	}
	return client.Reply(ctx, req)
}

func newMessageID() string {
	return uuid.Must(uuid.NewV7()).String()
}
