package instrument

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musekit/musekit/pkg/pitch"
)

func western(t *testing.T, name string) pitch.Pitch {
	t.Helper()
	p, err := pitch.ParseWestern(name)
	require.NoError(t, err)
	return p
}

func TestNewAmbitus(t *testing.T) {
	_, err := NewAmbitus(western(t, "c4"), western(t, "c6"))
	assert.NoError(t, err)

	_, err = NewAmbitus(western(t, "c6"), western(t, "c4"))
	assert.Error(t, err)

	_, err = NewAmbitus(nil, western(t, "c4"))
	assert.Error(t, err)
}

func TestAmbitusContains(t *testing.T) {
	ambitus, err := NewAmbitus(western(t, "c4"), western(t, "c6"))
	require.NoError(t, err)

	assert.True(t, ambitus.Contains(western(t, "c4")))
	assert.True(t, ambitus.Contains(western(t, "a4")))
	assert.True(t, ambitus.Contains(western(t, "c6")))
	assert.False(t, ambitus.Contains(western(t, "b3")))
	assert.False(t, ambitus.Contains(western(t, "cs6")))
}

func TestAmbitusVariants(t *testing.T) {
	ambitus, err := NewAmbitus(western(t, "c4"), western(t, "c6"))
	require.NoError(t, err)

	variants := ambitus.Variants(western(t, "a4"))
	require.Len(t, variants, 2)
	assert.InDelta(t, 440.0, variants[0].Hertz(), 1e-6)
	assert.InDelta(t, 880.0, variants[1].Hertz(), 1e-6)

	// Starting pitch outside the range still lands inside.
	variants = ambitus.Variants(western(t, "a7"))
	require.Len(t, variants, 2)
	assert.InDelta(t, 440.0, variants[0].Hertz(), 1e-6)
}

func TestAmbitusFilterPitches(t *testing.T) {
	ambitus, err := NewAmbitus(western(t, "c4"), western(t, "c6"))
	require.NoError(t, err)

	in := []pitch.Pitch{western(t, "b3"), western(t, "g4"), western(t, "d6")}
	out := ambitus.FilterPitches(in)
	require.Len(t, out, 1)
	assert.InDelta(t, western(t, "g4").Hertz(), out[0].Hertz(), 1e-9)
}

func TestPredefinedInstruments(t *testing.T) {
	tests := []struct {
		instrument Instrument
		shortName  string
		inside     string
		outside    string
	}{
		{Piccolo(), "pcl.", "g6", "c4"},
		{Flute(), "flt.", "a4", "b3"},
		{Oboe(), "ob.", "c5", "g3"},
		{BfClarinet(), "bf-cl.", "e3", "c3"},
		{EfClarinet(), "ef-cl.", "c5", "c3"},
		{Bassoon(), "bs.", "c3", "a5"},
	}
	for _, tt := range tests {
		t.Run(tt.instrument.Name, func(t *testing.T) {
			assert.Equal(t, tt.shortName, tt.instrument.ShortName)
			assert.True(t, tt.instrument.IsMonophonic())
			assert.True(t, tt.instrument.Playable(western(t, tt.inside)))
			assert.False(t, tt.instrument.Playable(western(t, tt.outside)))
		})
	}
}

func TestTransposition(t *testing.T) {
	piccolo := Piccolo()
	written := piccolo.WrittenPitch(western(t, "a5"))
	assert.InDelta(t, 440.0, written.Hertz(), 1e-6)

	sounding := piccolo.SoundingPitch(western(t, "a4"))
	assert.InDelta(t, 880.0, sounding.Hertz(), 1e-6)

	flute := Flute()
	same := flute.SoundingPitch(western(t, "a4"))
	assert.InDelta(t, 440.0, same.Hertz(), 1e-6)
}

func TestOrchestra(t *testing.T) {
	orchestra := Orchestra()
	require.Len(t, orchestra, 6)
	assert.Equal(t, "ob.", orchestra["oboe"].ShortName)
}
