package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"page1", "page1", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"a", "ab", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"pgae2", "page2", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "symmetry")
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 0.6, Similarity("pgae2", "page2"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "pagetwo", NormalizeName("Page_Two"))
	assert.Equal(t, "pagetwo", NormalizeName("page-two"))
}

func TestSuggest(t *testing.T) {
	known := []string{"page1", "page2", "page3", "detail"}

	assert.Equal(t, []string{"page2"}, Suggest("pgae2", known, 3))

	assert.Empty(t, Suggest("zzzzzz", known, 3))
	assert.Len(t, Suggest("page", known, 2), 2)
}
