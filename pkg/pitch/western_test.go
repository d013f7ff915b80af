package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWestern(t *testing.T, name string) Western {
	t.Helper()
	p, err := ParseWestern(name)
	require.NoError(t, err)
	return p
}

func TestWesternHertz(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"a4", 440},
		{"a5", 880},
		{"a3", 220},
		{"c4", 261.6255653},
		{"cs4", 277.1826310},
		{"aqs4", 452.8929841},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, mustWestern(t, tt.name).Hertz(), 1e-6)
		})
	}
}

func TestParseWestern(t *testing.T) {
	p := mustWestern(t, "gqf2")
	assert.Equal(t, "gqf", p.PitchClassName())
	assert.Equal(t, 2, p.Octave())

	p = mustWestern(t, "b")
	assert.Equal(t, 4, p.Octave())

	_, err := ParseWestern("h4")
	assert.Error(t, err)
	_, err = ParseWestern("czz4")
	assert.Error(t, err)
}

func TestWesternAddInterval(t *testing.T) {
	tests := []struct {
		pitch    string
		interval string
		want     string
	}{
		{"c4", "p5", "g4"},
		{"c4", "M3", "e4"},
		{"e4", "m3", "g4"},
		{"c4", "p8", "c5"},
		{"b3", "m2", "c4"},
		{"cs4", "m3", "e4"},
		{"c4", "A4", "fs4"},
		{"c4", "d5", "gf4"},
		{"c4", "m-3", "a3"},
		{"g4", "p-5", "c4"},
		{"ef4", "M3", "g4"},
		{"f4", "A1", "fs4"},
	}

	for _, tt := range tests {
		t.Run(tt.pitch+"+"+tt.interval, func(t *testing.T) {
			interval, err := ParseWesternInterval(tt.interval)
			require.NoError(t, err)
			got := mustWestern(t, tt.pitch).Add(interval)
			western, ok := got.(Western)
			require.True(t, ok)
			assert.Equal(t, tt.want, western.String())
			assert.InDelta(t, mustWestern(t, tt.want).Hertz(), got.Hertz(), 1e-9)
		})
	}
}

func TestWesternAddKeepsCentsOnFallback(t *testing.T) {
	// Stacked augmentations push past the named accidentals, so the walk
	// falls back to chromatic naming while keeping the frequency.
	interval, err := ParseWesternInterval("AAAA1")
	require.NoError(t, err)

	start := mustWestern(t, "cs4")
	got := start.Add(interval)
	assert.InDelta(t, start.Hertz()*centsRatio(400), got.Hertz(), 1e-9)
}

func centsRatio(cents float64) float64 {
	interval := Cents(cents)
	base := Direct{hertz: 1}
	return base.Add(interval).Hertz()
}

func TestWesternAddDirectInterval(t *testing.T) {
	// Cents intervals need not land on a named accidental, so the result
	// degrades to Direct and keeps the exact frequency.
	c4 := mustWestern(t, "c4")

	got := c4.Add(Cents(8))
	_, isDirect := got.(Direct)
	assert.True(t, isDirect)
	assert.InDelta(t, c4.Hertz()*centsRatio(8), got.Hertz(), 1e-9)

	got = c4.Add(Cents(702))
	assert.InDelta(t, c4.Hertz()*centsRatio(702), got.Hertz(), 1e-9)
}

func TestWesternAddJustInterval(t *testing.T) {
	// A pure fifth above c4 sits 1.955 cents above the tempered g4.
	c4 := mustWestern(t, "c4")
	got := c4.Add(mustRatio(t, "3/2"))
	_, isDirect := got.(Direct)
	assert.True(t, isDirect)
	assert.InDelta(t, c4.Hertz()*1.5, got.Hertz(), 1e-9)
	assert.Greater(t, got.Hertz(), mustWestern(t, "g4").Hertz())
}

func TestBetweenWestern(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want string
	}{
		{"c4", "g4", "p5"},
		{"g4", "c4", "p-5"},
		{"c4", "e4", "M3"},
		{"e4", "c4", "M-3"},
		{"c4", "c5", "p8"},
		{"c4", "fs4", "A4"},
		{"cs4", "df4", "d2"},
		{"b3", "c4", "m2"},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			interval, err := Between(mustWestern(t, tt.from), mustWestern(t, tt.to))
			require.NoError(t, err)
			western, ok := interval.(WesternInterval)
			require.True(t, ok)
			assert.Equal(t, tt.want, western.Name())
		})
	}
}

func TestBetweenMicrotonalFallsBack(t *testing.T) {
	interval, err := Between(mustWestern(t, "cqs4"), mustWestern(t, "g4"))
	require.NoError(t, err)
	_, isDirect := interval.(DirectInterval)
	assert.True(t, isDirect)
	assert.InDelta(t, 650, interval.Cents(), 1e-9)
}

func TestWesternFromMidiNumber(t *testing.T) {
	assert.Equal(t, "a4", WesternFromMidiNumber(69).String())
	assert.Equal(t, "c4", WesternFromMidiNumber(60).String())
	assert.Equal(t, "fs3", WesternFromMidiNumber(54).String())
}

func TestEnharmonicVariants(t *testing.T) {
	variants := mustWestern(t, "cs4").EnharmonicVariants()
	names := make([]string, 0, len(variants))
	for _, v := range variants {
		names = append(names, v.String())
	}
	assert.Contains(t, names, "df4")
	assert.Contains(t, names, "bss3")
}

func TestWesternAddMatchesCentsSum(t *testing.T) {
	// The symbolic walk must stay consistent with plain cents arithmetic.
	intervals := []string{"p5", "m3", "M6", "d5", "A2", "m-7", "p-4"}
	p := Pitch(mustWestern(t, "c4"))
	cents := 0.0
	for _, name := range intervals {
		interval, err := ParseWesternInterval(name)
		require.NoError(t, err)
		p = p.Add(interval)
		cents += interval.Cents()
	}
	want := mustWestern(t, "c4").Hertz() * centsRatio(cents)
	assert.InDelta(t, want, p.Hertz(), 1e-6)
}
