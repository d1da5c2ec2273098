package header

import "strings"

// Finder returns the index of the first matching header, or -1.
type Finder func(headers []string) int

// NewFinder builds a Finder that matches headers containing any of parts,
// ignoring case. Headers are tried in order; for each header, parts are
// tried in order.
func NewFinder(parts ...string) Finder {
	lowered := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			lowered = append(lowered, p)
		}
	}
	return func(headers []string) int {
		return Find(headers, lowered...)
	}
}

// Find returns the index of the first header containing one of parts,
// ignoring case, or -1.
func Find(headers []string, parts ...string) int {
	for i, h := range headers {
		h = strings.ToLower(h)
		for _, part := range parts {
			if part != "" && strings.Contains(h, strings.ToLower(part)) {
				return i
			}
		}
	}
	return -1
}
