// Package goldmark renders assistant replies to ANSI-styled terminal output
// using goldmark for parsing and lipgloss for styling.
//
// Replies come from a grounded model and routinely carry GitHub-flavored
// tables, bare URLs and stray <br/> tags; all three are handled here.
package goldmark

import "github.com/fwojciec/execai"

// Render parses markdown source and returns ANSI-styled terminal output.
// Escape sequences already present in source are stripped first.
// Paragraphs and list items are word-wrapped to width. Code blocks and
// tables are rendered without reflow.
func Render(source string, width int, theme execai.Theme) string {
	source = Sanitize(source)
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := newRenderer(theme)
	return r.render([]byte(source), width)
}
