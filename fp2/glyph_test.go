package fp2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EMATech/faderport/fp2"
)

func TestGlyphForEveryHexDigit(t *testing.T) {
	for _, c := range "0123456789ABCDEF" {
		pattern, ok := fp2.GlyphFor(c)
		require.True(t, ok, "digit %c", c)
		require.NotEmpty(t, pattern)
		for _, i := range pattern {
			assert.GreaterOrEqual(t, i, 0)
			assert.Less(t, i, len(fp2.Controls))
		}
	}
}

func TestGlyphForCaseInsensitive(t *testing.T) {
	upper, ok := fp2.GlyphFor('A')
	require.True(t, ok)
	lower, ok := fp2.GlyphFor('a')
	require.True(t, ok)
	assert.Equal(t, upper, lower)
}

func TestGlyphForUnknownCharacter(t *testing.T) {
	for _, c := range "G z%-" {
		_, ok := fp2.GlyphFor(c)
		assert.False(t, ok, "character %q", c)
	}
}
