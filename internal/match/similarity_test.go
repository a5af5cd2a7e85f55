package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity_Identity(t *testing.T) {
	for _, s := range []string{"barolo", "a", "château margaux"} {
		assert.Equal(t, 1.0, Similarity(s, s), s)
	}
	assert.Equal(t, 1.0, Similarity("", ""))
}

func TestSimilarity_EmptyVsNonEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("", "x"))
	assert.Equal(t, 0.0, Similarity("x", ""))
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"barolo", "barola"},
		{"chianti", "chablis"},
		{"rioja", "riojaa"},
		{"", "anything"},
	}
	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), "%q vs %q", p[0], p[1])
	}
}

func TestSimilarity_Values(t *testing.T) {
	// one substitution over six runes
	assert.InDelta(t, 1-1.0/6.0, Similarity("barolo", "barola"), 1e-9)
	// completely different strings stay low
	assert.Less(t, Similarity("barolo", "chablis"), 0.3)
}
