package execai_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/execai"
	"github.com/fwojciec/execai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore returns a mock.Store backed by a slice, plus a function
// reporting what is currently stored (nil when cleared or never written).
func memoryStore() (*mock.Store, func() []execai.Message) {
	var (
		mu     sync.Mutex
		stored []execai.Message
	)
	s := &mock.Store{
		SaveFn: func(_ context.Context, transcript []execai.Message) error {
			mu.Lock()
			defer mu.Unlock()
			stored = slices.Clone(transcript)
			return nil
		},
		LoadFn: func(context.Context) ([]execai.Message, error) {
			mu.Lock()
			defer mu.Unlock()
			if stored == nil {
				return nil, execai.ErrNoTranscript
			}
			return slices.Clone(stored), nil
		},
		ClearFn: func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			stored = nil
			return nil
		},
	}
	return s, func() []execai.Message {
		mu.Lock()
		defer mu.Unlock()
		return slices.Clone(stored)
	}
}

// fixedClock returns a clock that advances one second per call.
func fixedClock() func() time.Time {
	var n atomic.Int64
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		return base.Add(time.Duration(n.Add(1)) * time.Second)
	}
}

func replyWith(text string, sources ...execai.Source) *mock.Assistant {
	return &mock.Assistant{
		ReplyFn: func(context.Context, execai.ReplyRequest) (execai.Reply, error) {
			return execai.Reply{Text: text, Sources: sources}, nil
		},
	}
}

func newSession(t *testing.T, a execai.Assistant, s execai.TranscriptStore, opts ...execai.SessionOption) *execai.Session {
	t.Helper()
	opts = append([]execai.SessionOption{execai.WithClock(fixedClock())}, opts...)
	sess := execai.NewSession(a, s, opts...)
	sess.Initialize(context.Background())
	return sess
}

func TestNewSession(t *testing.T) {
	t.Parallel()

	sess := execai.NewSession(replyWith("unused"), &mock.Store{})

	transcript := sess.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, execai.RoleAssistant, transcript[0].Role)
	assert.Equal(t, execai.WelcomeMessage, transcript[0].Content)
	assert.False(t, sess.Pending())
}

func TestSession_Initialize(t *testing.T) {
	t.Parallel()

	t.Run("no persisted data seeds welcome message", func(t *testing.T) {
		t.Parallel()
		store, _ := memoryStore()
		sess := newSession(t, replyWith("unused"), store)

		transcript := sess.Transcript()
		require.Len(t, transcript, 1)
		assert.Equal(t, execai.RoleAssistant, transcript[0].Role)
		assert.Equal(t, execai.WelcomeMessage, transcript[0].Content)
		assert.False(t, transcript[0].Timestamp.IsZero())
	})

	t.Run("restores persisted transcript", func(t *testing.T) {
		t.Parallel()
		ts := time.Date(2026, 10, 17, 15, 4, 5, 0, time.UTC)
		persisted := []execai.Message{
			{ID: "a", Role: execai.RoleAssistant, Content: "Welcome back.", Timestamp: ts},
			{ID: "b", Role: execai.RoleUser, Content: "Status?", Timestamp: ts.Add(time.Minute)},
			{ID: "c", Role: execai.RoleAssistant, Content: "Green.", Timestamp: ts.Add(2 * time.Minute),
				Sources: []execai.Source{{Title: "Wire", URI: "https://example.com/wire"}}},
		}
		store := &mock.Store{
			LoadFn: func(context.Context) ([]execai.Message, error) { return persisted, nil },
		}
		sess := newSession(t, replyWith("unused"), store)

		assert.Equal(t, persisted, sess.Transcript())
	})

	t.Run("load failure falls back to welcome message", func(t *testing.T) {
		t.Parallel()
		store := &mock.Store{
			LoadFn: func(context.Context) ([]execai.Message, error) {
				return nil, errors.New("unexpected end of JSON input")
			},
		}
		sess := newSession(t, replyWith("unused"), store)

		transcript := sess.Transcript()
		require.Len(t, transcript, 1)
		assert.Equal(t, execai.WelcomeMessage, transcript[0].Content)
	})

	t.Run("malformed transcript falls back to welcome message", func(t *testing.T) {
		t.Parallel()
		store := &mock.Store{
			LoadFn: func(context.Context) ([]execai.Message, error) {
				return []execai.Message{{ID: "x", Role: "narrator", Content: "?", Timestamp: time.Now()}}, nil
			},
		}
		sess := newSession(t, replyWith("unused"), store)

		transcript := sess.Transcript()
		require.Len(t, transcript, 1)
		assert.Equal(t, execai.WelcomeMessage, transcript[0].Content)
	})

	t.Run("empty transcript falls back to welcome message", func(t *testing.T) {
		t.Parallel()
		store := &mock.Store{
			LoadFn: func(context.Context) ([]execai.Message, error) { return []execai.Message{}, nil },
		}
		sess := newSession(t, replyWith("unused"), store)

		require.Len(t, sess.Transcript(), 1)
	})
}

func TestSession_Send(t *testing.T) {
	t.Parallel()

	t.Run("appends user message and reply", func(t *testing.T) {
		t.Parallel()
		store, _ := memoryStore()
		sess := newSession(t, replyWith("Three risks identified."), store)

		ok := sess.Send(context.Background(), "Summarize my risks", execai.SampleBriefing())
		require.True(t, ok)

		transcript := sess.Transcript()
		require.Len(t, transcript, 3)
		assert.Equal(t, execai.WelcomeMessage, transcript[0].Content)
		assert.Equal(t, execai.RoleUser, transcript[1].Role)
		assert.Equal(t, "Summarize my risks", transcript[1].Content)
		assert.Equal(t, execai.RoleAssistant, transcript[2].Role)
		assert.Equal(t, "Three risks identified.", transcript[2].Content)
		assert.Nil(t, transcript[2].Sources)
		assert.False(t, sess.Pending())
	})

	t.Run("forwards message, prior history and briefing", func(t *testing.T) {
		t.Parallel()
		store, _ := memoryStore()
		var got execai.ReplyRequest
		a := &mock.Assistant{
			ReplyFn: func(_ context.Context, req execai.ReplyRequest) (execai.Reply, error) {
				got = req
				return execai.Reply{Text: "On it."}, nil
			},
		}
		sess := newSession(t, a, store)
		briefing := execai.SampleBriefing()

		require.True(t, sess.Send(context.Background(), "Pull comps", briefing))

		assert.Equal(t, "Pull comps", got.Message)
		require.Len(t, got.History, 1)
		assert.Equal(t, execai.WelcomeMessage, got.History[0].Content)
		assert.Equal(t, briefing, got.Briefing)
	})

	t.Run("keeps normalized sources", func(t *testing.T) {
		t.Parallel()
		store, _ := memoryStore()
		a := replyWith("See the filings.",
			execai.Source{Title: "SEC", URI: "https://sec.gov/x"},
			execai.Source{URI: "https://example.com/untitled"},
			execai.Source{Title: "no link"},
		)
		sess := newSession(t, a, store)

		require.True(t, sess.Send(context.Background(), "Any filings?", execai.Briefing{}))

		last := sess.Transcript()[2]
		assert.Equal(t, []execai.Source{
			{Title: "SEC", URI: "https://sec.gov/x"},
			{Title: execai.DefaultSourceTitle, URI: "https://example.com/untitled"},
		}, last.Sources)
	})

	t.Run("whitespace input is a no-op", func(t *testing.T) {
		t.Parallel()
		store, _ := memoryStore()
		var calls atomic.Int32
		a := &mock.Assistant{
			ReplyFn: func(context.Context, execai.ReplyRequest) (execai.Reply, error) {
				calls.Add(1)
				return execai.Reply{Text: "unused"}, nil
			},
		}
		sess := newSession(t, a, store)

		assert.False(t, sess.Send(context.Background(), "  ", execai.Briefing{}))
		assert.False(t, sess.Send(context.Background(), "", execai.Briefing{}))

		assert.Len(t, sess.Transcript(), 1)
		assert.Zero(t, calls.Load())
	})

	t.Run("assistant failure appends degraded link notice", func(t *testing.T) {
		t.Parallel()
		store, _ := memoryStore()
		a := &mock.Assistant{
			ReplyFn: func(context.Context, execai.ReplyRequest) (execai.Reply, error) {
				return execai.Reply{}, errors.New("503 service unavailable")
			},
		}
		sess := newSession(t, a, store)

		require.True(t, sess.Send(context.Background(), "Pull comps", execai.Briefing{}))

		transcript := sess.Transcript()
		require.Len(t, transcript, 3)
		assert.Equal(t, "Pull comps", transcript[1].Content)
		assert.Equal(t, execai.RoleAssistant, transcript[2].Role)
		assert.Equal(t, execai.DegradedLinkNotice, transcript[2].Content)
		assert.Nil(t, transcript[2].Sources)
		assert.False(t, sess.Pending())
	})

	t.Run("empty reply is treated as malformed", func(t *testing.T) {
		t.Parallel()
		store, _ := memoryStore()
		a := replyWith("   ", execai.Source{Title: "ignored", URI: "https://example.com"})
		sess := newSession(t, a, store)

		require.True(t, sess.Send(context.Background(), "Hello", execai.Briefing{}))

		last := sess.Transcript()[2]
		assert.Equal(t, execai.DegradedLinkNotice, last.Content)
		assert.Nil(t, last.Sources)
	})

	t.Run("clears draft", func(t *testing.T) {
		t.Parallel()
		store, _ := memoryStore()
		sess := newSession(t, replyWith("ok"), store)
		sess.SetDraft("Draft a memo")
		require.Equal(t, "Draft a memo", sess.Draft())

		require.True(t, sess.Send(context.Background(), "Draft a memo", execai.Briefing{}))

		assert.Empty(t, sess.Draft())
	})

	t.Run("persists after every mutation", func(t *testing.T) {
		t.Parallel()
		var saves [][]execai.Message
		store := &mock.Store{
			LoadFn: func(context.Context) ([]execai.Message, error) { return nil, execai.ErrNoTranscript },
			SaveFn: func(_ context.Context, transcript []execai.Message) error {
				saves = append(saves, transcript)
				return nil
			},
		}
		sess := newSession(t, replyWith("ok"), store)

		require.True(t, sess.Send(context.Background(), "hi", execai.Briefing{}))

		require.Len(t, saves, 2)
		assert.Len(t, saves[0], 2)
		assert.Len(t, saves[1], 3)
		assert.Equal(t, sess.Transcript(), saves[1])
	})

	t.Run("save failure does not affect transcript", func(t *testing.T) {
		t.Parallel()
		store := &mock.Store{
			LoadFn: func(context.Context) ([]execai.Message, error) { return nil, execai.ErrNoTranscript },
			SaveFn: func(context.Context, []execai.Message) error { return errors.New("quota exceeded") },
		}
		sess := newSession(t, replyWith("ok"), store)

		require.True(t, sess.Send(context.Background(), "hi", execai.Briefing{}))

		assert.Len(t, sess.Transcript(), 3)
		assert.False(t, sess.Pending())
	})

	t.Run("notifies on every mutation", func(t *testing.T) {
		t.Parallel()
		store, _ := memoryStore()
		var notified atomic.Int32
		sess := newSession(t, replyWith("ok"), store, execai.WithNotify(func() { notified.Add(1) }))
		notified.Store(0)

		require.True(t, sess.Send(context.Background(), "hi", execai.Briefing{}))

		assert.Equal(t, int32(2), notified.Load())
	})

	t.Run("uses injected ids", func(t *testing.T) {
		t.Parallel()
		store, _ := memoryStore()
		var n atomic.Int32
		ids := func() string { return fmt.Sprintf("msg-%d", n.Add(1)) }
		sess := newSession(t, replyWith("ok"), store, execai.WithIDFunc(ids))

		require.True(t, sess.Send(context.Background(), "hi", execai.Briefing{}))

		transcript := sess.Transcript()
		assert.Equal(t, "msg-2", transcript[0].ID)
		assert.Equal(t, "msg-3", transcript[1].ID)
		assert.Equal(t, "msg-4", transcript[2].ID)
	})

	t.Run("default ids are distinct", func(t *testing.T) {
		t.Parallel()
		store, _ := memoryStore()
		sess := execai.NewSession(replyWith("ok"), store)
		sess.Initialize(context.Background())

		require.True(t, sess.Send(context.Background(), "a", execai.Briefing{}))
		require.True(t, sess.Send(context.Background(), "b", execai.Briefing{}))

		seen := make(map[string]bool)
		for _, m := range sess.Transcript() {
			assert.False(t, seen[m.ID], "duplicate id %s", m.ID)
			seen[m.ID] = true
		}
	})
}

// blockingAssistant replies only after release is closed and reports each
// call on started.
func blockingAssistant(started chan<- struct{}, release <-chan struct{}, calls *atomic.Int32) *mock.Assistant {
	return &mock.Assistant{
		ReplyFn: func(_ context.Context, req execai.ReplyRequest) (execai.Reply, error) {
			calls.Add(1)
			started <- struct{}{}
			<-release
			return execai.Reply{Text: "re: " + req.Message}, nil
		},
	}
}

func TestSession_Send_WhilePending(t *testing.T) {
	t.Parallel()

	store, _ := memoryStore()
	started := make(chan struct{}, 4)
	release := make(chan struct{})
	var calls atomic.Int32
	sess := newSession(t, blockingAssistant(started, release, &calls), store)

	done := make(chan bool)
	go func() {
		done <- sess.Send(context.Background(), "first", execai.Briefing{})
	}()
	<-started
	require.True(t, sess.Pending())

	assert.False(t, sess.Send(context.Background(), "second", execai.Briefing{}))
	assert.Len(t, sess.Transcript(), 2)

	close(release)
	require.True(t, <-done)
	assert.False(t, sess.Pending())
	assert.Equal(t, int32(1), calls.Load())

	require.True(t, sess.Send(context.Background(), "third", execai.Briefing{}))
	<-started
	assert.Equal(t, int32(2), calls.Load())

	transcript := sess.Transcript()
	require.Len(t, transcript, 5)
	assert.Equal(t, "re: first", transcript[2].Content)
	assert.Equal(t, "third", transcript[3].Content)
	assert.Equal(t, "re: third", transcript[4].Content)
}

func TestSession_SendQuickDirective(t *testing.T) {
	t.Parallel()

	store, _ := memoryStore()
	var got string
	a := &mock.Assistant{
		ReplyFn: func(_ context.Context, req execai.ReplyRequest) (execai.Reply, error) {
			got = req.Message
			return execai.Reply{Text: "Drafted."}, nil
		},
	}
	sess := newSession(t, a, store)
	action := execai.DefaultQuickActions()[0]

	require.True(t, sess.SendQuickDirective(context.Background(), action, execai.Briefing{}))

	assert.Equal(t, action.Prompt, got)
	transcript := sess.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, action.Prompt, transcript[1].Content)
}

func TestSession_Reset(t *testing.T) {
	t.Parallel()

	t.Run("confirm without request is a no-op", func(t *testing.T) {
		t.Parallel()
		store, stored := memoryStore()
		sess := newSession(t, replyWith("ok"), store)
		require.True(t, sess.Send(context.Background(), "hi", execai.Briefing{}))

		assert.False(t, sess.ConfirmReset(context.Background()))
		assert.Len(t, sess.Transcript(), 3)
		assert.Len(t, stored(), 3)
	})

	t.Run("confirmed reset reseeds and clears storage", func(t *testing.T) {
		t.Parallel()
		store, stored := memoryStore()
		sess := newSession(t, replyWith("Three risks identified."), store)
		require.True(t, sess.Send(context.Background(), "Summarize my risks", execai.Briefing{}))
		require.Len(t, stored(), 3)

		sess.RequestReset()
		require.True(t, sess.ResetRequested())
		require.True(t, sess.ConfirmReset(context.Background()))

		transcript := sess.Transcript()
		require.Len(t, transcript, 1)
		assert.Equal(t, execai.RoleAssistant, transcript[0].Role)
		assert.Equal(t, execai.ResetNotice, transcript[0].Content)
		assert.Nil(t, stored())
		assert.False(t, sess.ResetRequested())
		assert.False(t, sess.Pending())
	})

	t.Run("cancel closes the gate", func(t *testing.T) {
		t.Parallel()
		store, _ := memoryStore()
		sess := newSession(t, replyWith("ok"), store)

		sess.RequestReset()
		sess.CancelReset()

		assert.False(t, sess.ResetRequested())
		assert.False(t, sess.ConfirmReset(context.Background()))
	})

	t.Run("clear failure still resets in memory", func(t *testing.T) {
		t.Parallel()
		store := &mock.Store{
			LoadFn:  func(context.Context) ([]execai.Message, error) { return nil, execai.ErrNoTranscript },
			ClearFn: func(context.Context) error { return errors.New("disk full") },
		}
		sess := newSession(t, replyWith("ok"), store)
		require.True(t, sess.Send(context.Background(), "hi", execai.Briefing{}))

		sess.RequestReset()
		require.True(t, sess.ConfirmReset(context.Background()))

		assert.Len(t, sess.Transcript(), 1)
	})

	t.Run("reply landing after reset is discarded", func(t *testing.T) {
		t.Parallel()
		store, stored := memoryStore()
		started := make(chan struct{}, 4)
		release := make(chan struct{})
		var calls atomic.Int32
		sess := newSession(t, blockingAssistant(started, release, &calls), store)

		done := make(chan bool)
		go func() {
			done <- sess.Send(context.Background(), "before reset", execai.Briefing{})
		}()
		<-started

		sess.RequestReset()
		require.True(t, sess.ConfirmReset(context.Background()))
		assert.False(t, sess.Pending())

		close(release)
		require.True(t, <-done)

		transcript := sess.Transcript()
		require.Len(t, transcript, 1)
		assert.Equal(t, execai.ResetNotice, transcript[0].Content)
		assert.Nil(t, stored())
	})
}

func TestSession_NeverEmpty(t *testing.T) {
	t.Parallel()

	store, _ := memoryStore()
	a := &mock.Assistant{
		ReplyFn: func(_ context.Context, req execai.ReplyRequest) (execai.Reply, error) {
			if len(req.History)%2 == 0 {
				return execai.Reply{}, errors.New("flaky")
			}
			return execai.Reply{Text: "ok"}, nil
		},
	}
	sess := newSession(t, a, store)
	ctx := context.Background()

	steps := []func(){
		func() { sess.Send(ctx, "one", execai.Briefing{}) },
		func() { sess.Send(ctx, " ", execai.Briefing{}) },
		func() { sess.RequestReset(); sess.ConfirmReset(ctx) },
		func() { sess.ConfirmReset(ctx) },
		func() { sess.Send(ctx, "two", execai.Briefing{}) },
		func() { sess.Initialize(ctx) },
	}
	for i, step := range steps {
		step()
		assert.NotEmpty(t, sess.Transcript(), "step %d", i)
	}
}
