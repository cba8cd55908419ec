package featurenote

import (
	"slices"
	"unicode"
)

// Range is a half-open [Start, End) span in rune offsets.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FindHighlightRanges returns every case-insensitive occurrence of query in
// text, overlapping ones included. An empty query matches nothing.
func FindHighlightRanges(text, query string) []Range {
	if query == "" {
		return nil
	}
	t, q := fold(text), fold(query)

	var ranges []Range
	for i := 0; i+len(q) <= len(t); i++ {
		if slices.Equal(t[i:i+len(q)], q) {
			ranges = append(ranges, Range{Start: i, End: i + len(q)})
		}
	}
	return ranges
}

// fold lowercases rune by rune so offsets stay aligned with the input.
func fold(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

// Match is a note that satisfied a search with the spans to highlight.
type Match struct {
	Note              Note
	KeyRanges         []Range
	DescriptionRanges []Range
}

// Search keeps notes whose key or description contains query.
// An empty query keeps every note without highlights.
func Search(notes []Note, query string) []Match {
	matches := make([]Match, 0, len(notes))
	for _, n := range notes {
		if query == "" {
			matches = append(matches, Match{Note: n})
			continue
		}
		key := FindHighlightRanges(n.Feature.Key(), query)
		desc := FindHighlightRanges(n.Feature.Description(), query)
		if len(key) == 0 && len(desc) == 0 {
			continue
		}
		matches = append(matches, Match{Note: n, KeyRanges: key, DescriptionRanges: desc})
	}
	return matches
}
