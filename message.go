package execai

import "time"

// Message is one turn in a conversation transcript.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time

	// Sources lists citations backing an assistant reply. Nil when the
	// backend returned none.
	Sources []Source
}

// Source is a normalized citation record. Providers map their own
// grounding shapes (web pages, map places, retrieved documents) onto it
// so nothing downstream branches on where a citation came from.
type Source struct {
	Title string
	URI   string
}

// DefaultSourceTitle is shown for citations the provider left untitled.
const DefaultSourceTitle = "Source"

// NormalizeSources drops citations without a URI and fills in missing
// titles. It returns nil rather than an empty slice so an absent source
// list stays absent.
func NormalizeSources(sources []Source) []Source {
	var out []Source
	for _, s := range sources {
		if s.URI == "" {
			continue
		}
		if s.Title == "" {
			s.Title = DefaultSourceTitle
		}
		out = append(out, s)
	}
	return out
}
