package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestNames(t *testing.T) {
	candidates := []string{"username", "user_id", "email", "toUpper", "toLower"}

	tests := []struct {
		name     string
		target   string
		contains []string
	}{
		{"subsequence", "usr", []string{"username", "user_id"}},
		{"typo", "emial", []string{"email"}},
		{"case typo", "toupper", []string{"toUpper"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestNames(tt.target, candidates, MaxSuggestions)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			assert.LessOrEqual(t, len(got), MaxSuggestions)
		})
	}
}

func TestSuggestNames_NoMatch(t *testing.T) {
	assert.Nil(t, SuggestNames("zzzzzzzz", []string{"a", "b"}, MaxSuggestions))
	assert.Nil(t, SuggestNames("x", nil, MaxSuggestions))
	assert.Nil(t, SuggestNames("", []string{"a"}, MaxSuggestions))
}

func TestFormatSuggestions(t *testing.T) {
	assert.Equal(t, "", FormatSuggestions(nil))
	assert.Equal(t, "'a'", FormatSuggestions([]string{"a"}))
	assert.Equal(t, "'a' or 'b'", FormatSuggestions([]string{"a", "b"}))
	assert.Equal(t, "'a', 'b' or 'c'", FormatSuggestions([]string{"a", "b", "c"}))
}
