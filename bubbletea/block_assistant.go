package bubbletea

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/execai"
	"github.com/fwojciec/execai/goldmark"
	"github.com/mattn/go-runewidth"
)

var _ MessageBlock = (*AssistantMessageBlock)(nil)

// AssistantLabel heads every assistant reply.
const AssistantLabel = "Chief of Staff"

// AssistantMessageBlock renders a reply with markdown formatting followed by
// its citations. Messages never change once appended, so the rendering is
// cached per width.
type AssistantMessageBlock struct {
	msg     execai.Message
	theme   execai.Theme
	styles  Styles
	byWidth map[int]string
}

// NewAssistantMessageBlock creates an AssistantMessageBlock.
func NewAssistantMessageBlock(msg execai.Message, theme execai.Theme, styles Styles) *AssistantMessageBlock {
	return &AssistantMessageBlock{
		msg:     msg,
		theme:   theme,
		styles:  styles,
		byWidth: make(map[int]string),
	}
}

func (b *AssistantMessageBlock) View(width int) string {
	if cached, ok := b.byWidth[width]; ok {
		return cached
	}

	var sb strings.Builder
	sb.WriteString(b.styles.Assistant.Render(AssistantLabel))
	sb.WriteString("\n")
	sb.WriteString(strings.TrimRight(goldmark.Render(b.msg.Content, width, b.theme), "\n"))

	if len(b.msg.Sources) > 0 {
		sb.WriteString("\n")
		sb.WriteString(b.styles.Muted.Render("Sources"))
		for i, s := range b.msg.Sources {
			sb.WriteString("\n")
			sb.WriteString(b.styles.Source.Render(sourceLine(i, s, width)))
		}
	}

	out := sb.String()
	b.byWidth[width] = out
	return out
}

// sourceLine formats one citation as "[n] Title · host", cut to width.
func sourceLine(i int, s execai.Source, width int) string {
	line := fmt.Sprintf("[%d] %s", i+1, goldmark.Sanitize(s.Title))
	if u, err := url.Parse(s.URI); err == nil && u.Host != "" {
		line += " · " + u.Host
	}
	if width > 0 {
		line = runewidth.Truncate(line, width, "…")
	}
	return line
}
