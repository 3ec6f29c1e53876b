package pipeline

import "strings"

// Window extracts a single-line snippet of up to width whitespace-delimited
// tokens on each side of the match, with the matched text in the middle.
// At text boundaries the window truncates instead of failing.
// Deterministic for a given (text, match, width) triple.
func Window(text string, m Match, width int) string {
	if width < 0 {
		width = 0
	}

	lead := strings.Fields(text[:m.Start])
	if len(lead) > width {
		lead = lead[len(lead)-width:]
	}

	trail := strings.Fields(text[m.End:])
	if len(trail) > width {
		trail = trail[:width]
	}

	parts := make([]string, 0, len(lead)+len(trail)+1)
	parts = append(parts, lead...)
	parts = append(parts, strings.Join(strings.Fields(m.Value), " "))
	parts = append(parts, trail...)

	return strings.Join(parts, " ")
}
