// Package mock provides test doubles for execai interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/execai"
)

// Interface compliance checks.
var (
	_ execai.Assistant       = (*Assistant)(nil)
	_ execai.TranscriptStore = (*Store)(nil)
	_ execai.Analyst         = (*Analyst)(nil)
	_ execai.Narrator        = (*Narrator)(nil)
	_ execai.Portraitist     = (*Portraitist)(nil)
)

// Assistant is a test double for execai.Assistant.
// Set ReplyFn before calling Reply.
type Assistant struct {
	ReplyFn func(ctx context.Context, req execai.ReplyRequest) (execai.Reply, error)
}

// Reply delegates to ReplyFn.
func (a *Assistant) Reply(ctx context.Context, req execai.ReplyRequest) (execai.Reply, error) {
	return a.ReplyFn(ctx, req)
}
