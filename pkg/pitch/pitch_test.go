package pitch

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musekit/musekit/pkg/music"
)

func mustDirect(t *testing.T, hertz float64) Direct {
	t.Helper()
	p, err := NewDirect(hertz)
	require.NoError(t, err)
	return p
}

func TestSubtractCents(t *testing.T) {
	tests := []struct {
		name string
		high float64
		low  float64
		want float64
	}{
		{"octave", 880, 440, 1200},
		{"unison", 440, 440, 0},
		{"downward fifth", 440, 660, -701.955},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interval, err := Subtract(mustDirect(t, tt.high), mustDirect(t, tt.low))
			require.NoError(t, err)
			want := 1200 * math.Log2(tt.high/tt.low)
			assert.InDelta(t, want, interval.Cents(), 1e-9)
			assert.InDelta(t, tt.want, interval.Cents(), 1e-2)
		})
	}
}

func TestDirectAdd(t *testing.T) {
	p := mustDirect(t, 440).Add(Cents(1200))
	assert.InDelta(t, 880, p.Hertz(), 1e-9)

	p = mustDirect(t, 440).Add(Cents(-1200))
	assert.InDelta(t, 220, p.Hertz(), 1e-9)
}

func TestNewDirectRejectsNonPositive(t *testing.T) {
	var domainErr *music.DomainError
	_, err := NewDirect(0)
	assert.True(t, errors.As(err, &domainErr))
	_, err = NewDirect(-100)
	assert.True(t, errors.As(err, &domainErr))
}

func TestCompareTolerance(t *testing.T) {
	a := mustDirect(t, 440)
	b := mustDirect(t, 440.0000001)
	assert.Equal(t, 0, Compare(a, b))
	assert.True(t, Equal(a, b))

	c := mustDirect(t, 441)
	assert.Equal(t, -1, Compare(a, c))
	assert.Equal(t, 1, Compare(c, a))
}

func TestMidiNumber(t *testing.T) {
	assert.InDelta(t, 69, MidiNumber(mustDirect(t, 440)), 1e-9)
	assert.InDelta(t, 57, MidiNumber(mustDirect(t, 220)), 1e-9)
}

func TestAddIntervalsMixedVariants(t *testing.T) {
	western, err := ParseWesternInterval("p5")
	require.NoError(t, err)

	combined := AddIntervals(western, Cents(100))
	_, isDirect := combined.(DirectInterval)
	assert.True(t, isDirect)
	assert.InDelta(t, 800, combined.Cents(), 1e-9)
}

func TestAddIntervalsJust(t *testing.T) {
	fifth, err := ParseRatio("3/2")
	require.NoError(t, err)
	fourth, err := ParseRatio("4/3")
	require.NoError(t, err)

	combined := AddIntervals(fifth, fourth)
	just, ok := combined.(Just)
	require.True(t, ok)
	assert.Equal(t, "2", just.String())
	assert.InDelta(t, 1200, just.Cents(), 1e-9)
}
