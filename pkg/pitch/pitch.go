// Package pitch models musical pitches and intervals. Three pitch variants
// are supported: Direct (a plain frequency), Western (diatonic letter,
// accidental and octave in 12-tone equal temperament) and Just (an exact
// frequency ratio). Intervals come in a Direct (cents) variant, a symbolic
// Western variant and the Just variant, which doubles as both pitch and
// interval.
package pitch

import (
	"fmt"
	"math"

	"github.com/musekit/musekit/pkg/music"
)

// Pitch is a frequency-bearing musical value.
type Pitch interface {
	// Hertz returns the frequency of the pitch.
	Hertz() float64
	// Add transposes the pitch by an interval. The result stays in the
	// pitch's own variant when the interval is compatible and falls back
	// to a Direct pitch otherwise.
	Add(Interval) Pitch
}

// Interval is a directed distance between two pitches.
type Interval interface {
	// Cents returns the signed size of the interval in cents.
	Cents() float64
	// Inverse returns the interval with flipped direction.
	Inverse() Interval
}

// Direct is a pitch defined by its frequency alone.
type Direct struct {
	hertz float64
}

// NewDirect builds a Direct pitch, validating the frequency against the
// audible-range guard.
func NewDirect(hertz float64) (Direct, error) {
	if err := music.CheckHertz(hertz); err != nil {
		return Direct{}, err
	}
	return Direct{hertz: hertz}, nil
}

// Hertz returns the frequency of the pitch.
func (d Direct) Hertz() float64 { return d.hertz }

// Add transposes the pitch by the interval's cents size.
func (d Direct) Add(interval Interval) Pitch {
	return Direct{hertz: d.hertz * music.CentsToRatio(interval.Cents())}
}

func (d Direct) String() string {
	return fmt.Sprintf("%gHz", d.hertz)
}

// DirectInterval is an interval defined by its cents size alone.
type DirectInterval struct {
	cents float64
}

// Cents builds a DirectInterval from a cents value.
func Cents(cents float64) DirectInterval {
	return DirectInterval{cents: cents}
}

// Cents returns the signed size of the interval in cents.
func (i DirectInterval) Cents() float64 { return i.cents }

// Inverse returns the interval with flipped direction.
func (i DirectInterval) Inverse() Interval { return DirectInterval{cents: -i.cents} }

func (i DirectInterval) String() string {
	return fmt.Sprintf("%g cents", i.cents)
}

// Subtract returns the interval between two pitches as a plain cents value,
// positive when a is higher than b.
func Subtract(a, b Pitch) (Interval, error) {
	cents, err := music.HertzToCents(b.Hertz(), a.Hertz())
	if err != nil {
		return nil, err
	}
	return DirectInterval{cents: cents}, nil
}

// Between returns the interval from one pitch to another, symbolic when both
// pitches share a variant that supports it (Western to Western, Just to
// Just) and a DirectInterval otherwise.
func Between(from, to Pitch) (Interval, error) {
	switch f := from.(type) {
	case Western:
		if t, ok := to.(Western); ok {
			if interval, ok := f.westernIntervalTo(t); ok {
				return interval, nil
			}
		}
	case Just:
		if t, ok := to.(Just); ok {
			return t.Divide(f), nil
		}
	}
	cents, err := music.HertzToCents(from.Hertz(), to.Hertz())
	if err != nil {
		return nil, err
	}
	return DirectInterval{cents: cents}, nil
}

// AddIntervals combines two intervals. The result stays symbolic when both
// operands share a symbolic variant and degrades to a DirectInterval of the
// cents sum otherwise.
func AddIntervals(a, b Interval) Interval {
	switch first := a.(type) {
	case WesternInterval:
		if second, ok := b.(WesternInterval); ok {
			return first.Add(second)
		}
	case Just:
		if second, ok := b.(Just); ok {
			return first.Multiply(second)
		}
	}
	return DirectInterval{cents: a.Cents() + b.Cents()}
}

// Compare orders two pitches by frequency, treating differences inside the
// cents tolerance as equal. It returns -1, 0 or 1.
func Compare(a, b Pitch) int {
	cents := 1200 * math.Log2(a.Hertz()/b.Hertz())
	switch {
	case math.Abs(cents) <= music.CentsTolerance:
		return 0
	case cents < 0:
		return -1
	default:
		return 1
	}
}

// Equal reports whether two pitches have the same frequency within the
// cents tolerance.
func Equal(a, b Pitch) bool { return Compare(a, b) == 0 }

// MidiNumber returns the fractional MIDI note number of a pitch.
func MidiNumber(p Pitch) float64 {
	return music.HertzToMidiNumber(p.Hertz())
}
