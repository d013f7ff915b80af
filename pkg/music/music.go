// Package music holds the shared numeric core: frequency, cents and ratio
// conversions plus the domain error type used across the parameter packages.
package music

import (
	"fmt"
	"math"
	"math/big"
)

// ConcertPitchHertz is the reference frequency for a'.
const ConcertPitchHertz = 440.0

// CentsTolerance is the maximum cents difference at which two pitches or
// intervals still compare as equal.
var CentsTolerance = 1e-4

// Audible-range guard bounds in hertz. Advisory: wide enough that octave
// registration never trips it, narrow enough to catch nonsense input.
var (
	minHertz = 0.01
	maxHertz = 200000.0
)

// SetAudibleRange overrides the frequency guard applied by pitch constructors.
func SetAudibleRange(min, max float64) {
	minHertz, maxHertz = min, max
}

// DomainError reports an invalid musical value.
type DomainError struct {
	Msg string
}

// ErrDomain matches any DomainError under errors.Is.
var ErrDomain = &DomainError{Msg: "invalid musical value"}

func (e *DomainError) Error() string { return e.Msg }

// Is reports whether target is a DomainError, so callers can test
// errors.Is(err, music.ErrDomain) without unwrapping by hand.
func (e *DomainError) Is(target error) bool {
	_, ok := target.(*DomainError)
	return ok
}

// Errorf builds a DomainError from a format string.
func Errorf(format string, args ...any) error {
	return &DomainError{Msg: fmt.Sprintf(format, args...)}
}

// CheckHertz validates a frequency against the audible-range guard.
func CheckHertz(hertz float64) error {
	if hertz <= 0 || math.IsNaN(hertz) || math.IsInf(hertz, 0) {
		return Errorf("frequency must be positive, got %v", hertz)
	}
	if hertz < minHertz || hertz > maxHertz {
		return Errorf("frequency %v hertz outside audible range [%v, %v]", hertz, minHertz, maxHertz)
	}
	return nil
}

// HertzToCents returns the cents distance from frequency0 to frequency1.
func HertzToCents(frequency0, frequency1 float64) (float64, error) {
	if frequency0 <= 0 || frequency1 <= 0 {
		return 0, Errorf("cents distance needs positive frequencies, got %v and %v", frequency0, frequency1)
	}
	return 1200 * math.Log2(frequency1/frequency0), nil
}

// RatioToCents converts an interval ratio to its size in cents.
func RatioToCents(ratio *big.Rat) float64 {
	f, _ := ratio.Float64()
	return 1200 * math.Log2(f)
}

// CentsToRatio converts a cents distance to a frequency ratio.
func CentsToRatio(cents float64) float64 {
	return math.Pow(2, cents/1200)
}

// HertzToMidiNumber converts a frequency to a fractional MIDI note number
// (69 at concert pitch).
func HertzToMidiNumber(hertz float64) float64 {
	return 69 + 12*math.Log2(hertz/ConcertPitchHertz)
}

// MidiNumberToHertz is the inverse of HertzToMidiNumber.
func MidiNumberToHertz(number float64) float64 {
	return ConcertPitchHertz * math.Pow(2, (number-69)/12)
}
