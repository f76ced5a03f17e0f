package bubbletea

import "github.com/charmbracelet/lipgloss"

var (
	_ MessageBlock = (*NoticeBlock)(nil)
	_ MessageBlock = (*SystemBlock)(nil)
)

// NoticeBlock renders a degraded-link notice in the error color.
type NoticeBlock struct {
	text   string
	styles Styles
}

// NewNoticeBlock creates a NoticeBlock.
func NewNoticeBlock(text string, styles Styles) *NoticeBlock {
	return &NoticeBlock{text: text, styles: styles}
}

func (b *NoticeBlock) View(width int) string {
	content := b.styles.Error.Render("! " + b.text)
	return lipgloss.NewStyle().Width(width).Render(content)
}

// SystemBlock renders a system message, muted.
type SystemBlock struct {
	text   string
	styles Styles
}

// NewSystemBlock creates a SystemBlock.
func NewSystemBlock(text string, styles Styles) *SystemBlock {
	return &SystemBlock{text: text, styles: styles}
}

func (b *SystemBlock) View(width int) string {
	return lipgloss.NewStyle().Width(width).Render(b.styles.Muted.Render(b.text))
}
