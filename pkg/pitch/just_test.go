package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRatio(t *testing.T, s string) Just {
	t.Helper()
	j, err := ParseRatio(s)
	require.NoError(t, err)
	return j
}

func TestJustCents(t *testing.T) {
	tests := []struct {
		ratio string
		want  float64
	}{
		{"1/1", 0},
		{"2/1", 1200},
		{"3/2", 701.955},
		{"4/3", 498.045},
		{"5/4", 386.314},
		{"1/2", -1200},
	}

	for _, tt := range tests {
		t.Run(tt.ratio, func(t *testing.T) {
			assert.InDelta(t, tt.want, mustRatio(t, tt.ratio).Cents(), 1e-3)
		})
	}
}

func TestJustHertz(t *testing.T) {
	assert.InDelta(t, 440, mustRatio(t, "1/1").Hertz(), 1e-9)
	assert.InDelta(t, 660, mustRatio(t, "3/2").Hertz(), 1e-9)
	assert.InDelta(t, 220, mustRatio(t, "1/2").Hertz(), 1e-9)
}

func TestJustNormalize(t *testing.T) {
	tests := []struct {
		ratio string
		want  string
	}{
		{"9/4", "9/8"},
		{"1/3", "4/3"},
		{"2/1", "1"},
		{"3/2", "3/2"},
		{"15/2", "15/8"},
	}

	for _, tt := range tests {
		t.Run(tt.ratio, func(t *testing.T) {
			assert.Equal(t, tt.want, mustRatio(t, tt.ratio).Normalize().String())
		})
	}
}

func TestJustRegister(t *testing.T) {
	assert.Equal(t, "3/4", mustRatio(t, "3/2").Register(-1).String())
	assert.Equal(t, "3", mustRatio(t, "3/2").Register(1).String())
	assert.Equal(t, "9/8", mustRatio(t, "9/2").Register(0).String())
}

func TestJustInverse(t *testing.T) {
	inverse := mustRatio(t, "3/2").Inverse()
	just, ok := inverse.(Just)
	require.True(t, ok)
	assert.Equal(t, "2/3", just.String())
	assert.InDelta(t, -701.955, just.Cents(), 1e-3)
}

func TestJustAdd(t *testing.T) {
	got := mustRatio(t, "3/2").Add(mustRatio(t, "5/4"))
	just, ok := got.(Just)
	require.True(t, ok)
	assert.Equal(t, "15/8", just.String())

	// A cents interval is not exact, so the result degrades to Direct.
	direct := mustRatio(t, "3/2").Add(Cents(100))
	_, isDirect := direct.(Direct)
	assert.True(t, isDirect)
	assert.InDelta(t, 660*centsRatio(100), direct.Hertz(), 1e-9)
}

func TestJustRejectsNonPositive(t *testing.T) {
	_, err := NewJust(-3, 2)
	assert.Error(t, err)
	_, err = NewJust(0, 1)
	assert.Error(t, err)
	_, err = ParseRatio("-3/2")
	assert.Error(t, err)
	_, err = ParseRatio("nonsense")
	assert.Error(t, err)
}

func TestJustNumeratorDenominator(t *testing.T) {
	fifth := mustRatio(t, "3/2")
	assert.Equal(t, int64(3), fifth.Numerator())
	assert.Equal(t, int64(2), fifth.Denominator())

	// Lowest terms even when constructed from a reducible pair.
	reducible, err := NewJust(6, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(3), reducible.Numerator())
	assert.Equal(t, int64(2), reducible.Denominator())
}

func TestJustHarmonicity(t *testing.T) {
	fifth := mustRatio(t, "3/2")
	assert.InDelta(t, 2.585, fifth.HarmonicityTenney(), 1e-3)
	assert.Equal(t, 4, fifth.HarmonicityEuler())

	octave := mustRatio(t, "2/1")
	assert.Equal(t, 2, octave.HarmonicityEuler())
}
