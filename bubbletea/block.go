package bubbletea

import "github.com/fwojciec/execai"

// MessageBlock is a renderable element in the conversation.
// View takes a width parameter so the root model controls layout and blocks
// are testable in isolation.
type MessageBlock interface {
	View(width int) string
}

// newBlock picks the block type for a transcript message.
func newBlock(msg execai.Message, theme execai.Theme, styles Styles) MessageBlock {
	switch {
	case msg.Role == execai.RoleUser:
		return NewUserMessageBlock(msg.Content, styles)
	case msg.Role == execai.RoleAssistant && msg.Content == execai.DegradedLinkNotice:
		return NewNoticeBlock(msg.Content, styles)
	case msg.Role == execai.RoleAssistant:
		return NewAssistantMessageBlock(msg, theme, styles)
	default:
		return NewSystemBlock(msg.Content, styles)
	}
}
