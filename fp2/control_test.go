package fp2_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EMATech/faderport/fp2"
)

func TestControlTableDistinct(t *testing.T) {
	require.Len(t, fp2.Controls, 26)

	names := make(map[string]bool)
	codes := make(map[uint8]bool)
	for _, c := range fp2.Controls {
		assert.False(t, names[c.Name], "duplicate name %q", c.Name)
		assert.False(t, codes[c.Code], "duplicate code %d", c.Code)
		names[c.Name] = true
		codes[c.Code] = true
	}
}

func TestControlLookupRoundTrip(t *testing.T) {
	for _, c := range fp2.Controls {
		byCode, ok := fp2.ControlByCode(c.Code)
		require.True(t, ok, "code %d", c.Code)
		assert.Equal(t, c, byCode)

		byName, err := fp2.ControlByName(c.Name)
		require.NoError(t, err)
		assert.Equal(t, c, byName)
	}
}

func TestControlByNameCaseInsensitive(t *testing.T) {
	upper, err := fp2.ControlByName("MUTE")
	require.NoError(t, err)
	lower, err := fp2.ControlByName("mute")
	require.NoError(t, err)
	assert.Equal(t, upper, lower)
	assert.Equal(t, "Mute", upper.Name)
}

func TestControlByNameUnknown(t *testing.T) {
	_, err := fp2.ControlByName("Flux Capacitor")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fp2.ErrUnknownControl))
}

func TestControlByCodeUnmapped(t *testing.T) {
	_, ok := fp2.ControlByCode(1)
	assert.False(t, ok)

	// The fader touch sentinel has no lamp and no table entry.
	_, ok = fp2.ControlByCode(fp2.NoteFaderTouch)
	assert.False(t, ok)
}
