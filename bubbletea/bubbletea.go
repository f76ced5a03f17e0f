// Package bubbletea provides a Bubble Tea chat surface for the Chief of Staff
// session.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. The context is used for graceful shutdown: when cancelled, the
// program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// Notifier returns a channel for WithUpdates and the callback that feeds it,
// suitable for execai.WithNotify. Bursts of notifications collapse into one
// pending signal; the callback never blocks.
func Notifier() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	return ch, func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// TranscriptChangedMsg signals that the session transcript or its state
// changed and the view should be rebuilt.
type TranscriptChangedMsg struct{}

// SendDoneMsg signals that a Send started by the model has returned.
type SendDoneMsg struct {
	Seq      int
	Accepted bool
}

// ResetDoneMsg signals that a confirmed reset has been applied.
type ResetDoneMsg struct{}
