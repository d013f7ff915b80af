package volume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecibelAmplitudeRoundTrip(t *testing.T) {
	tests := []struct {
		decibel   float64
		amplitude float64
	}{
		{0, 1},
		{-20, 0.1},
		{-40, 0.01},
		{6.0206, 2},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.amplitude, DecibelToAmplitude(tt.decibel), 1e-4)
		decibel, err := AmplitudeToDecibel(tt.amplitude)
		require.NoError(t, err)
		assert.InDelta(t, tt.decibel, decibel, 1e-4)
	}

	_, err := AmplitudeToDecibel(0)
	assert.Error(t, err)
}

func TestMidiVelocity(t *testing.T) {
	assert.Equal(t, 127, MidiVelocity(Decibel(0)))
	assert.Equal(t, 0, MidiVelocity(Decibel(-40)))
	assert.Equal(t, 127, MidiVelocity(Decibel(10)))
	assert.Equal(t, 0, MidiVelocity(Decibel(-80)))
	assert.Equal(t, 64, MidiVelocity(Decibel(-19.9)))
}

func TestWesternDynamics(t *testing.T) {
	loudest, err := NewWestern("fffff")
	require.NoError(t, err)
	assert.InDelta(t, 0, loudest.Decibel(), 1e-9)

	softest, err := NewWestern("ppppp")
	require.NoError(t, err)
	assert.InDelta(t, -40, softest.Decibel(), 1e-9)

	mf, err := NewWestern("mf")
	require.NoError(t, err)
	assert.InDelta(t, -40+6*(40.0/11), mf.Decibel(), 1e-9)

	_, err = NewWestern("extremely loud")
	assert.Error(t, err)
}

func TestWesternSpecialDynamics(t *testing.T) {
	sfz, err := NewWestern("sfz")
	require.NoError(t, err)
	ff, err := NewWestern("ff")
	require.NoError(t, err)
	assert.Equal(t, ff.Decibel(), sfz.Decibel())
	assert.Equal(t, "ff", sfz.Name())
}

func TestWesternFromDecibel(t *testing.T) {
	assert.Equal(t, "fffff", WesternFromDecibel(0).Name())
	assert.Equal(t, "ppppp", WesternFromDecibel(-39).Name())
	assert.Equal(t, "mf", WesternFromDecibel(-18).Name())
}

func TestFromAny(t *testing.T) {
	v, err := FromAny("mf")
	require.NoError(t, err)
	_, ok := v.(Western)
	assert.True(t, ok)

	v, err = FromAny(-12.0)
	require.NoError(t, err)
	assert.InDelta(t, -12, v.Decibel(), 1e-9)

	v, err = FromAny("-12.5")
	require.NoError(t, err)
	assert.InDelta(t, -12.5, v.Decibel(), 1e-9)

	_, err = FromAny("blaring")
	assert.Error(t, err)

	direct, err := NewDirect(0.5)
	require.NoError(t, err)
	v, err = FromAny(direct)
	require.NoError(t, err)
	assert.InDelta(t, direct.Decibel(), v.Decibel(), 1e-9)

	_, err = FromAny([]int{1})
	assert.Error(t, err)
}
