package featurenote_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/proteus/pkg/feature"
	"github.com/dmitrymomot/proteus/pkg/featurenote"
)

func TestFindHighlightRanges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		query string
		want  []featurenote.Range
	}{
		{"single match", "user_authentication", "auth", []featurenote.Range{{5, 9}}},
		{"overlapping", "aaaa", "aa", []featurenote.Range{{0, 2}, {1, 3}, {2, 4}}},
		{"case insensitive", "Dark_MODE", "mode", []featurenote.Range{{5, 9}}},
		{"sharp s is not expanded", "größe", "GRÖSSE", nil},
		{"multibyte", "größe_limit", "limit", []featurenote.Range{{6, 11}}},
		{"empty query", "anything", "", nil},
		{"longer query", "ab", "abc", nil},
		{"no match", "checkout", "xyz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, featurenote.FindHighlightRanges(tt.text, tt.query))
		})
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()
	notes := []featurenote.Note{
		{Feature: feature.MustNew("user_authentication", feature.BooleanValue(true))},
		{Feature: feature.MustNew("dark_mode", feature.BooleanValue(false), feature.WithDescription("Author preview theme"))},
		{Feature: feature.MustNew("max_items", feature.LongValue(1))},
	}

	matches := featurenote.Search(notes, "auth")
	require.Len(t, matches, 2)
	assert.Equal(t, "user_authentication", matches[0].Note.Feature.Key())
	assert.Equal(t, []featurenote.Range{{5, 9}}, matches[0].KeyRanges)
	assert.Empty(t, matches[0].DescriptionRanges)
	assert.Equal(t, "dark_mode", matches[1].Note.Feature.Key())
	assert.Equal(t, []featurenote.Range{{0, 4}}, matches[1].DescriptionRanges)

	all := featurenote.Search(notes, "")
	assert.Len(t, all, 3)

	assert.Empty(t, featurenote.Search(notes, "nothing"))
}
