// Package filter searches the bindings of a profile with fuzzy matching
package filter

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/studiowebux/keydeck/internal/types"
)

// fieldSep separates the name and key in the searched text
const fieldSep = "  "

// Match is one binding hit
type Match struct {
	Index          int // position in the searched slice
	Binding        types.Binding
	Text           string // searched text: name, separator, key
	MatchedIndexes []int  // byte offsets into Text
	Score          int
}

// NameRange returns the matched offsets that fall within the name
func (m Match) NameRange() []int {
	return m.within(0, len(m.Binding.Name))
}

// KeyRange returns the matched offsets within the key, relative to the key
func (m Match) KeyRange() []int {
	start := len(m.Binding.Name) + len(fieldSep)
	out := m.within(start, start+len(m.Binding.Key))
	for i := range out {
		out[i] -= start
	}
	return out
}

func (m Match) within(lo, hi int) []int {
	var out []int
	for _, i := range m.MatchedIndexes {
		if i >= lo && i < hi {
			out = append(out, i)
		}
	}
	return out
}

type bindingSource []types.Binding

func (s bindingSource) String(i int) string {
	return searchText(s[i])
}

func (s bindingSource) Len() int {
	return len(s)
}

func searchText(b types.Binding) string {
	return b.Name + fieldSep + b.Key
}

// Bindings returns the bindings matching query, best first. An empty
// query matches everything in the original order.
func Bindings(query string, bindings []types.Binding) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]Match, len(bindings))
		for i, b := range bindings {
			out[i] = Match{Index: i, Binding: b, Text: searchText(b)}
		}
		return out
	}

	found := fuzzy.FindFrom(query, bindingSource(bindings))
	out := make([]Match, 0, len(found))
	for _, m := range found {
		out = append(out, Match{
			Index:          m.Index,
			Binding:        bindings[m.Index],
			Text:           m.Str,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		})
	}
	return out
}

// Highlight wraps every matched byte of text with mark
func Highlight(text string, matched []int, mark func(string) string) string {
	if len(matched) == 0 {
		return text
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range text {
		if hit[i] {
			b.WriteString(mark(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
