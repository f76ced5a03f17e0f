package execai

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the
// console matches any color scheme.
type Theme struct {
	UserMsg   int // User message accent
	Assistant int // Chief of Staff header
	Source    int // Citation links
	Error     int // Degraded link notices
	Warning   int // Reset confirmation prompt
	Muted     int // Status bar, timestamps, placeholders
	CodeBg    int // Code block background
	Accent    int // Headings, links
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg:   4,
		Assistant: 6,
		Source:    2,
		Error:     1,
		Warning:   3,
		Muted:     8,
		CodeBg:    0,
		Accent:    5,
	}
}
