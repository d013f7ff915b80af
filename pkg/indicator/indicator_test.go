package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlaying(t *testing.T) {
	collection, err := ParsePlaying("tie; articulation.name = staccato; tremolo.flag_count = 3")
	require.NoError(t, err)

	assert.True(t, collection.Tie)
	assert.Equal(t, "staccato", collection.Articulation.Name)
	assert.Equal(t, 3, collection.Tremolo.FlagCount)
	assert.False(t, collection.Prall)
}

func TestParsePlayingBareAndAssigned(t *testing.T) {
	collection, err := ParsePlaying("prall = true; laissez_vibrer")
	require.NoError(t, err)
	assert.True(t, collection.Prall)
	assert.True(t, collection.LaissezVibrer)

	collection, err = ParsePlaying("tie = false")
	require.NoError(t, err)
	assert.False(t, collection.Tie)
}

func TestParsePlayingQuotedValues(t *testing.T) {
	collection, err := ParsePlaying("arpeggio.direction = 'up'")
	require.NoError(t, err)
	assert.Equal(t, ArpeggioUp, collection.Arpeggio.Direction)
}

func TestParsePlayingErrors(t *testing.T) {
	_, err := ParsePlaying("vibrato")
	assert.Error(t, err)

	_, err = ParsePlaying("tremolo.flag_count = many")
	assert.Error(t, err)

	_, err = ParsePlaying("arpeggio.direction = sideways")
	assert.Error(t, err)

	_, err = ParsePlaying("tie = maybe")
	assert.Error(t, err)
}

func TestParsePlayingEmpty(t *testing.T) {
	collection, err := ParsePlaying("")
	require.NoError(t, err)
	assert.Empty(t, collection.Active())

	collection, err = ParsePlaying(" ; ; ")
	require.NoError(t, err)
	assert.Empty(t, collection.Active())
}

func TestActive(t *testing.T) {
	collection, err := ParsePlaying("tie; arpeggio.direction = down")
	require.NoError(t, err)

	// Declaration order, regardless of the order indicators were set.
	assert.Equal(t, []string{"tie", "arpeggio"}, collection.Active())

	collection, err = ParsePlaying("hairpin.symbol = <; prall; optional")
	require.NoError(t, err)
	assert.Equal(t, []string{"prall", "optional", "hairpin"}, collection.Active())
}

func TestParseNotation(t *testing.T) {
	collection, err := ParseNotation("clef.name = treble; ottava.octave_count = -1")
	require.NoError(t, err)
	assert.Equal(t, "treble", collection.Clef.Name)
	assert.Equal(t, -1, collection.Ottava.OctaveCount)
	assert.True(t, collection.Ottava.IsActive())

	_, err = ParseNotation("ottava.octave_count = low")
	assert.Error(t, err)

	_, err = ParseNotation("unknown.path = 1")
	assert.Error(t, err)
}
