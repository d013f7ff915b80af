package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musekit/musekit/pkg/events"
	"github.com/musekit/musekit/pkg/pitch"
)

func TestGenerateMIDIHeader(t *testing.T) {
	m := NewMIDIConverter()
	note, err := events.NewNote("a4", 1.0, "mf")
	require.NoError(t, err)

	data, err := m.GenerateMIDI(note)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(data), 14)
	assert.Equal(t, []byte("MThd"), data[:4])
}

func TestMIDIRoundTrip(t *testing.T) {
	m := NewMIDIConverter()

	first, err := events.NewNote("a4", 1.0, "mf")
	require.NoError(t, err)
	rest, err := events.NewRest(0.5)
	require.NoError(t, err)
	chord, err := events.NewNote("c4 e4", 2.0, "ff")
	require.NoError(t, err)

	sequence := &events.Sequence{Events: []events.Event{first, rest, chord}}

	data, err := m.GenerateMIDI(sequence)
	require.NoError(t, err)

	parsed, err := m.ParseMIDI(data)
	require.NoError(t, err)
	require.Len(t, parsed.Events, 3)

	got := make([]*events.Note, 3)
	for i, e := range parsed.Events {
		note, ok := e.(*events.Note)
		require.True(t, ok)
		got[i] = note
	}

	assert.InDelta(t, 1.0, got[0].Duration(), 1e-9)
	require.Len(t, got[0].Pitches, 1)
	assert.InDelta(t, 69, pitch.MidiNumber(got[0].Pitches[0]), 1e-6)

	assert.True(t, got[1].IsRest())
	assert.InDelta(t, 0.5, got[1].Duration(), 1e-9)

	assert.InDelta(t, 2.0, got[2].Duration(), 1e-9)
	require.Len(t, got[2].Pitches, 2)
	assert.InDelta(t, 60, pitch.MidiNumber(got[2].Pitches[0]), 1e-6)
	assert.InDelta(t, 64, pitch.MidiNumber(got[2].Pitches[1]), 1e-6)
}

func TestGenerateMIDIConcurrenceTracks(t *testing.T) {
	m := NewMIDIConverter()

	upper, err := events.NewNote("c5", 1.0, "mf")
	require.NoError(t, err)
	lower, err := events.NewNote("c3", 1.0, "mf")
	require.NoError(t, err)
	concurrence := &events.Concurrence{Events: []events.Event{
		&events.Sequence{Events: []events.Event{upper}},
		&events.Sequence{Events: []events.Event{lower}},
	}}

	data, err := m.GenerateMIDI(concurrence)
	require.NoError(t, err)

	parsed, err := m.ParseMIDI(data)
	require.NoError(t, err)
	require.Len(t, parsed.Events, 1)

	chord, ok := parsed.Events[0].(*events.Note)
	require.True(t, ok)
	require.Len(t, chord.Pitches, 2)
	assert.InDelta(t, 48, pitch.MidiNumber(chord.Pitches[0]), 1e-6)
	assert.InDelta(t, 72, pitch.MidiNumber(chord.Pitches[1]), 1e-6)
}

func TestGenerateMIDIRejectsEmpty(t *testing.T) {
	m := NewMIDIConverter()
	_, err := m.GenerateMIDI(&events.Concurrence{})
	assert.Error(t, err)
}

func TestSetTempo(t *testing.T) {
	m := NewMIDIConverter()
	assert.NoError(t, m.SetTempo(90))
	assert.Error(t, m.SetTempo(0))
	assert.Error(t, m.SetTempo(-10))
}
