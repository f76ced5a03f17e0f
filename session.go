package execai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Fixed assistant texts.
const (
	// WelcomeMessage seeds every new transcript.
	WelcomeMessage = "Briefing complete. You have a gap at 2 PM. I recommend using it to prep for the Series B update. Should I pull the latest market comps for you?"

	// ResetNotice replaces the transcript after a confirmed reset.
	ResetNotice = "Session reset. Prior context cleared. What should we tackle next?"

	// DegradedLinkNotice is shown in place of a reply when the assistant
	// call fails.
	DegradedLinkNotice = "Connection error. Re-establishing link."
)

// Session owns the Chief of Staff conversation: the transcript, its
// persistence, and the sequencing of requests to the Assistant.
//
// At most one Send is outstanding at a time. A Send attempted while one
// is pending is rejected, not queued. A confirmed reset bumps the session
// epoch so a reply that lands afterwards is discarded.
type Session struct {
	assistant Assistant
	store     TranscriptStore
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
	notify    func()

	// persistMu serializes snapshot-and-write so writes reach the store in
	// mutation order.
	persistMu sync.Mutex

	mu             sync.Mutex
	transcript     []Message
	pending        bool
	draft          string
	epoch          uint64
	resetRequested bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger. Default discards all output.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithClock sets the time source used for message timestamps.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithIDFunc sets the message ID generator. It must be safe for concurrent use.
func WithIDFunc(fn func() string) SessionOption {
	return func(s *Session) { s.newID = fn }
}

// WithNotify sets a callback invoked after every transcript or state change,
// so the presentation layer can re-render and scroll to the latest message.
// It is called without any session lock held.
func WithNotify(fn func()) SessionOption {
	return func(s *Session) { s.notify = fn }
}

// NewSession creates a Session seeded with the welcome message. Call
// Initialize to restore a previously persisted transcript.
func NewSession(assistant Assistant, store TranscriptStore, opts ...SessionOption) *Session {
	s := &Session{
		assistant: assistant,
		store:     store,
		logger:    slog.New(slog.DiscardHandler),
		now:       time.Now,
		notify:    func() {},
	}
	for _, o := range opts {
		o(s)
	}
	if s.newID == nil {
		var seq atomic.Uint64
		s.newID = func() string {
			return fmt.Sprintf("%d-%d", s.now().UnixNano(), seq.Add(1))
		}
	}
	s.transcript = []Message{s.newMessage(RoleAssistant, WelcomeMessage, nil)}
	return s
}

// Initialize restores the persisted transcript. A missing, unreadable or
// malformed transcript is replaced by a fresh welcome message, so the
// transcript is never empty afterwards.
func (s *Session) Initialize(ctx context.Context) {
	restored, err := s.store.Load(ctx)
	if err == nil {
		err = ValidateTranscript(restored)
	}

	s.mu.Lock()
	if err != nil {
		if !errors.Is(err, ErrNoTranscript) {
			s.logger.Warn("discarding unreadable transcript", "error", err)
		}
		s.transcript = []Message{s.newMessage(RoleAssistant, WelcomeMessage, nil)}
	} else {
		s.transcript = restored
	}
	n := len(s.transcript)
	s.mu.Unlock()

	s.logger.Info("session initialized", "messages", n, "restored", err == nil)
	s.notify()
}

// Transcript returns a copy of the conversation in order.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.transcript)
}

// Pending reports whether an assistant reply is being awaited.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Draft returns the unsent input.
func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetDraft records the unsent input.
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	s.draft = text
	s.mu.Unlock()
}

// Send appends text as a user message, asks the assistant for a reply and
// appends the reply. It blocks until the reply has been merged and reports
// whether the message was accepted: blank text, or a call made while
// another Send is pending, is a no-op returning false.
//
// Assistant failures never surface to the caller; they are logged and
// rendered as DegradedLinkNotice.
func (s *Session) Send(ctx context.Context, text string, briefing Briefing) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		s.logger.Debug("send rejected: reply pending")
		return false
	}
	history := slices.Clone(s.transcript)
	s.transcript = append(s.transcript, s.newMessage(RoleUser, text, nil))
	s.draft = ""
	s.pending = true
	epoch := s.epoch
	s.mu.Unlock()
	s.changed(ctx)

	msg := s.reply(ctx, ReplyRequest{
		Message:  text,
		History:  history,
		Briefing: briefing,
	})

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		s.logger.Info("discarding reply that arrived after reset", "epoch", epoch)
		return true
	}
	s.transcript = append(s.transcript, msg)
	s.pending = false
	s.mu.Unlock()
	s.changed(ctx)
	return true
}

// SendQuickDirective sends the prompt of a preset shortcut. It behaves
// exactly like Send.
func (s *Session) SendQuickDirective(ctx context.Context, action QuickAction, briefing Briefing) bool {
	s.logger.Debug("quick directive", "label", action.Label)
	return s.Send(ctx, action.Prompt, briefing)
}

// RequestReset opens the confirmation gate for a reset. Nothing changes
// until ConfirmReset is called.
func (s *Session) RequestReset() {
	s.mu.Lock()
	s.resetRequested = true
	s.mu.Unlock()
	s.notify()
}

// CancelReset closes the confirmation gate.
func (s *Session) CancelReset() {
	s.mu.Lock()
	s.resetRequested = false
	s.mu.Unlock()
	s.notify()
}

// ResetRequested reports whether a reset awaits confirmation.
func (s *Session) ResetRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetRequested
}

// ConfirmReset replaces the transcript with a fresh reset notice and clears
// the store. It is a no-op returning false unless RequestReset was called
// first. A reply still in flight is discarded when it lands.
func (s *Session) ConfirmReset(ctx context.Context) bool {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	if !s.resetRequested {
		s.mu.Unlock()
		return false
	}
	s.resetRequested = false
	s.epoch++
	s.pending = false
	s.transcript = []Message{s.newMessage(RoleAssistant, ResetNotice, nil)}
	s.mu.Unlock()

	if err := s.store.Clear(context.WithoutCancel(ctx)); err != nil {
		s.logger.Warn("clearing stored transcript failed", "error", err)
	}
	s.logger.Info("session reset")
	s.notify()
	return true
}

func (s *Session) reply(ctx context.Context, req ReplyRequest) Message {
	start := time.Now()
	reply, err := s.assistant.Reply(ctx, req)
	if err == nil {
		err = reply.Validate()
	}
	if err != nil {
		s.logger.Error("assistant reply failed", "error", err, "elapsed", time.Since(start))
		return s.newMessage(RoleAssistant, DegradedLinkNotice, nil)
	}
	sources := NormalizeSources(reply.Sources)
	s.logger.Info("assistant replied", "sources", len(sources), "elapsed", time.Since(start))
	return s.newMessage(RoleAssistant, reply.Text, sources)
}

// changed persists the transcript and notifies the presentation layer.
// Persistence is best-effort: failures are logged and the session carries
// on in memory.
func (s *Session) changed(ctx context.Context) {
	s.persistMu.Lock()
	snapshot := s.Transcript()
	if err := s.store.Save(context.WithoutCancel(ctx), snapshot); err != nil {
		s.logger.Warn("persisting transcript failed", "error", err, "messages", len(snapshot))
	}
	s.persistMu.Unlock()
	s.notify()
}

func (s *Session) newMessage(role Role, content string, sources []Source) Message {
	return Message{
		ID:        s.newID(),
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
		Sources:   sources,
	}
}
