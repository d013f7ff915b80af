package music

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHertzToCents(t *testing.T) {
	tests := []struct {
		name string
		f0   float64
		f1   float64
		want float64
	}{
		{"unison", 440, 440, 0},
		{"octave up", 440, 880, 1200},
		{"octave down", 880, 440, -1200},
		{"two octaves", 220, 880, 2400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HertzToCents(tt.f0, tt.f1)
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestHertzToCentsInvalid(t *testing.T) {
	_, err := HertzToCents(0, 440)
	var domainErr *DomainError
	assert.True(t, errors.As(err, &domainErr))

	_, err = HertzToCents(440, -1)
	assert.True(t, errors.As(err, &domainErr))
	assert.True(t, errors.Is(err, ErrDomain))
}

func TestRatioToCents(t *testing.T) {
	assert.InDelta(t, 701.955, RatioToCents(big.NewRat(3, 2)), 1e-3)
	assert.InDelta(t, 1200, RatioToCents(big.NewRat(2, 1)), 1e-9)
	assert.InDelta(t, -1200, RatioToCents(big.NewRat(1, 2)), 1e-9)
}

func TestCentsToRatio(t *testing.T) {
	assert.InDelta(t, 2, CentsToRatio(1200), 1e-9)
	assert.InDelta(t, 1, CentsToRatio(0), 1e-9)
	assert.InDelta(t, 0.5, CentsToRatio(-1200), 1e-9)
}

func TestMidiNumberConversion(t *testing.T) {
	assert.InDelta(t, 69, HertzToMidiNumber(440), 1e-9)
	assert.InDelta(t, 60, HertzToMidiNumber(MidiNumberToHertz(60)), 1e-9)
	assert.InDelta(t, 57, HertzToMidiNumber(220), 1e-9)
}

func TestCheckHertz(t *testing.T) {
	assert.NoError(t, CheckHertz(440))
	assert.Error(t, CheckHertz(0))
	assert.Error(t, CheckHertz(-10))

	SetAudibleRange(20, 20000)
	defer SetAudibleRange(0.01, 200000)
	assert.Error(t, CheckHertz(5))
	assert.NoError(t, CheckHertz(5000))
}
