// Package instrument models pitched instruments and their playable ranges.
package instrument

import (
	"github.com/musekit/musekit/pkg/music"
	"github.com/musekit/musekit/pkg/pitch"
)

// Ambitus is the playable pitch range of an instrument, inclusive on both
// ends.
type Ambitus struct {
	Min pitch.Pitch
	Max pitch.Pitch
}

// NewAmbitus builds an ambitus from two pitches.
func NewAmbitus(min, max pitch.Pitch) (Ambitus, error) {
	if min == nil || max == nil {
		return Ambitus{}, music.Errorf("ambitus needs both border pitches")
	}
	if min.Hertz() > max.Hertz() {
		return Ambitus{}, music.Errorf(
			"ambitus minimum %v is above maximum %v", min, max)
	}
	return Ambitus{Min: min, Max: max}, nil
}

// Contains reports whether a pitch lies inside the ambitus.
func (a Ambitus) Contains(p pitch.Pitch) bool {
	hertz := p.Hertz()
	return hertz >= a.Min.Hertz() && hertz <= a.Max.Hertz()
}

// FilterPitches keeps the pitches that lie inside the ambitus.
func (a Ambitus) FilterPitches(pitches []pitch.Pitch) []pitch.Pitch {
	out := make([]pitch.Pitch, 0, len(pitches))
	for _, p := range pitches {
		if a.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}

// Variants returns all octave transpositions of a pitch that fit inside
// the ambitus, from low to high.
func (a Ambitus) Variants(p pitch.Pitch) []pitch.Pitch {
	octave := pitch.Interval(pitch.Cents(1200))
	candidate := p
	for candidate.Hertz() > a.Min.Hertz() {
		candidate = candidate.Add(octave.Inverse())
	}

	var variants []pitch.Pitch
	for candidate.Hertz() <= a.Max.Hertz() {
		if a.Contains(candidate) {
			variants = append(variants, candidate)
		}
		candidate = candidate.Add(octave)
	}
	return variants
}

// Instrument describes a pitched instrument.
type Instrument struct {
	Name          string
	ShortName     string
	Ambitus       Ambitus
	Transposition pitch.Interval

	// How many simultaneous pitches the instrument can play.
	MinPitchCount int
	MaxPitchCount int
}

// IsMonophonic reports whether the instrument plays one pitch at a time.
func (i Instrument) IsMonophonic() bool {
	return i.MaxPitchCount <= 1
}

// Playable reports whether the instrument can sound the pitch.
func (i Instrument) Playable(p pitch.Pitch) bool {
	return i.Ambitus.Contains(p)
}

// WrittenPitch transposes a sounding pitch to how the instrument notates
// it. The transposition interval is added to the sounding pitch.
func (i Instrument) WrittenPitch(sounding pitch.Pitch) pitch.Pitch {
	if i.Transposition == nil {
		return sounding
	}
	return sounding.Add(i.Transposition)
}

// SoundingPitch transposes a written pitch to the pitch that actually
// sounds.
func (i Instrument) SoundingPitch(written pitch.Pitch) pitch.Pitch {
	if i.Transposition == nil {
		return written
	}
	return written.Add(i.Transposition.Inverse())
}

func mustWestern(pitchClassName string, octave int) pitch.Western {
	w, err := pitch.NewWestern(pitchClassName, octave)
	if err != nil {
		panic(err)
	}
	return w
}

func mustInterval(name string) pitch.WesternInterval {
	iv, err := pitch.ParseWesternInterval(name)
	if err != nil {
		panic(err)
	}
	return iv
}

func orchestral(name, shortName string, min, max pitch.Western, transposition pitch.Interval) Instrument {
	return Instrument{
		Name:          name,
		ShortName:     shortName,
		Ambitus:       Ambitus{Min: min, Max: max},
		Transposition: transposition,
		MinPitchCount: 1,
		MaxPitchCount: 1,
	}
}

// Piccolo sounds one octave above notation.
func Piccolo() Instrument {
	return orchestral("piccolo", "pcl.",
		mustWestern("d", 5), mustWestern("c", 8), mustInterval("p-8"))
}

func Flute() Instrument {
	return orchestral("flute", "flt.",
		mustWestern("c", 4), mustWestern("d", 7), nil)
}

func Oboe() Instrument {
	return orchestral("oboe", "ob.",
		mustWestern("bf", 3), mustWestern("a", 6), nil)
}

// BfClarinet sounds a step below notation.
func BfClarinet() Instrument {
	return orchestral("bf-clarinet", "bf-cl.",
		mustWestern("d", 3), mustWestern("bf", 6), mustInterval("m2"))
}

// EfClarinet sounds a minor third above notation.
func EfClarinet() Instrument {
	return orchestral("ef-clarinet", "ef-cl.",
		mustWestern("g", 3), mustWestern("ef", 7), mustInterval("m-3"))
}

func Bassoon() Instrument {
	return orchestral("bassoon", "bs.",
		mustWestern("bf", 1), mustWestern("ef", 5), nil)
}

// Orchestra returns the predefined instruments keyed by name.
func Orchestra() map[string]Instrument {
	out := map[string]Instrument{}
	for _, i := range []Instrument{
		Piccolo(), Flute(), Oboe(), BfClarinet(), EfClarinet(), Bassoon(),
	} {
		out[i.Name] = i
	}
	return out
}
