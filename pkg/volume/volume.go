// Package volume models loudness as decibels relative to a maximum of 0 dB,
// with amplitude, MIDI velocity and Western dynamic name views.
package volume

import (
	"fmt"
	"math"
	"strconv"

	"github.com/musekit/musekit/pkg/music"
)

// Volume is a loudness value measured in decibels (0 dB = full scale).
type Volume interface {
	Decibel() float64
}

// MIDI velocity bounds.
const (
	MinimumVelocity = 0
	MaximumVelocity = 127
)

// Decibel window used for both MIDI velocity scaling and the standard
// dynamic names.
var (
	MinimumDecibel = -40.0
	MaximumDecibel = 0.0
)

// standardDynamics lists the dynamic names in rising loudness. Their
// decibel values are spaced evenly over the decibel window.
var standardDynamics = []string{
	"ppppp", "pppp", "ppp", "pp", "p", "mp", "mf", "f", "ff", "fff", "ffff", "fffff",
}

// specialDynamics maps accented dynamics to the standard name with the same
// loudness.
var specialDynamics = map[string]string{
	"fp": "mf", "sf": "f", "sff": "ff", "sfz": "ff", "sp": "p", "spp": "pp", "rfz": "f",
}

// DecibelToAmplitude converts a decibel value to a linear amplitude.
func DecibelToAmplitude(decibel float64) float64 {
	return math.Pow(10, decibel/20)
}

// AmplitudeToDecibel converts a linear amplitude to decibels.
func AmplitudeToDecibel(amplitude float64) (float64, error) {
	if amplitude <= 0 {
		return 0, music.Errorf("amplitude must be positive, got %v", amplitude)
	}
	return 20 * math.Log10(amplitude), nil
}

// Amplitude returns the linear amplitude of a volume.
func Amplitude(v Volume) float64 {
	return DecibelToAmplitude(v.Decibel())
}

// MidiVelocity clips the volume to the decibel window and scales it to the
// MIDI velocity range.
func MidiVelocity(v Volume) int {
	decibel := v.Decibel()
	if decibel < MinimumDecibel {
		decibel = MinimumDecibel
	}
	if decibel > MaximumDecibel {
		decibel = MaximumDecibel
	}
	scaled := (decibel - MinimumDecibel) / (MaximumDecibel - MinimumDecibel)
	return MinimumVelocity + int(math.Round(scaled*(MaximumVelocity-MinimumVelocity)))
}

// Decibel is a volume stated directly in decibels.
type Decibel float64

// Decibel returns the decibel value.
func (d Decibel) Decibel() float64 { return float64(d) }

func (d Decibel) String() string { return fmt.Sprintf("%gdB", float64(d)) }

// Direct is a volume stated as a linear amplitude.
type Direct struct {
	amplitude float64
}

// NewDirect builds an amplitude volume.
func NewDirect(amplitude float64) (Direct, error) {
	if amplitude <= 0 {
		return Direct{}, music.Errorf("amplitude must be positive, got %v", amplitude)
	}
	return Direct{amplitude: amplitude}, nil
}

// Amplitude returns the linear amplitude.
func (d Direct) Amplitude() float64 { return d.amplitude }

// Decibel returns the decibel value of the amplitude.
func (d Direct) Decibel() float64 {
	return 20 * math.Log10(d.amplitude)
}

// Western is a volume named by a dynamic indicator like "mf" or "fff".
type Western struct {
	name string
}

// NewWestern builds a volume from a dynamic name, accepting the special
// accented names as aliases for their standard loudness.
func NewWestern(name string) (Western, error) {
	resolved := name
	if standard, ok := specialDynamics[name]; ok {
		resolved = standard
	}
	if dynamicIndex(resolved) < 0 {
		return Western{}, music.Errorf("unknown dynamic indicator %q", name)
	}
	return Western{name: resolved}, nil
}

// WesternFromDecibel names the standard dynamic closest to a decibel value.
func WesternFromDecibel(decibel float64) Western {
	best, bestDistance := 0, math.Inf(1)
	for i := range standardDynamics {
		if distance := math.Abs(dynamicDecibel(i) - decibel); distance < bestDistance {
			best, bestDistance = i, distance
		}
	}
	return Western{name: standardDynamics[best]}
}

// Name returns the standard dynamic name.
func (w Western) Name() string { return w.name }

// Decibel returns the decibel value of the dynamic.
func (w Western) Decibel() float64 {
	return dynamicDecibel(dynamicIndex(w.name))
}

func (w Western) String() string { return w.name }

func dynamicIndex(name string) int {
	for i, dynamic := range standardDynamics {
		if dynamic == name {
			return i
		}
	}
	return -1
}

func dynamicDecibel(index int) float64 {
	step := (MaximumDecibel - MinimumDecibel) / float64(len(standardDynamics)-1)
	return MinimumDecibel + float64(index)*step
}

// FromAny coerces a value into a Volume: an existing Volume passes through,
// numbers are decibels and strings are dynamic names with a numeric
// fallback.
func FromAny(value any) (Volume, error) {
	switch v := value.(type) {
	case Volume:
		return v, nil
	case string:
		if western, err := NewWestern(v); err == nil {
			return western, nil
		}
		decibel, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, music.Errorf("cannot read %q as a volume", v)
		}
		return Decibel(decibel), nil
	case float64:
		return Decibel(v), nil
	case float32:
		return Decibel(v), nil
	case int:
		return Decibel(v), nil
	default:
		return nil, music.Errorf("cannot build a volume from %T", value)
	}
}
