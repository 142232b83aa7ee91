package binding

import "strings"

// Separator joins the tokens of a key sequence
const Separator = "+"

// Normalize canonicalizes a raw key sequence: each '+'-separated token is
// trimmed and lowercased, empty tokens are dropped, and the rest are joined
// back with '+'. The empty string is the "unset" key.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	parts := strings.Split(raw, Separator)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		tokens = append(tokens, strings.ToLower(p))
	}

	return strings.Join(tokens, Separator)
}

// Equivalent reports whether two raw key sequences normalize to the same key
func Equivalent(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
