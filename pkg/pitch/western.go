package pitch

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/musekit/musekit/pkg/music"
)

// Western pitch reference: concert a' sits in octave 4 on chromatic pitch
// class 9.
const (
	concertOctave     = 4
	concertPitchClass = 9
)

// diatonicLetters lists the diatonic pitch class names in rising order.
const diatonicLetters = "cdefgab"

// diatonicPitchClass maps a diatonic index to its chromatic pitch class.
var diatonicPitchClass = [7]int{0, 2, 4, 5, 7, 9, 11}

// Accidental is a pitch class modification measured in 24ths of a semitone,
// fine enough to hold every named microtonal accidental exactly.
type Accidental int

// accidentalByName maps accidental names to their modification. The set
// covers twelfth-tones up to double sharp and double flat.
var accidentalByName = map[string]Accidental{
	"":    0,
	"ts":  4, "tf": -4, // twelfth-tone
	"es": 6, "ef": -6, // eighth-tone
	"xs": 8, "xf": -8, // sixth-tone
	"qs": 12, "qf": -12, // quarter-tone
	"rs": 16, "rf": -16, // third-tone
	"tes": 18, "tef": -18, // three eighth-tones
	"fts": 20, "ftf": -20, // five twelfth-tones
	"s": 24, "f": -24,
	"sts": 28, "stf": -28, // seven twelfth-tones
	"trs": 32, "trf": -32, // two third-tones
	"tqs": 36, "tqf": -36, // three quarter-tones
	"ses": 42, "sef": -42, // seven eighth-tones
	"ets": 44, "etf": -44, // eleven twelfth-tones
	"ss": 48, "ff": -48,
	"nes": 54, "nef": -54, // nine eighth-tones
	"sxs": 56, "sxf": -56, // seven sixth-tones
}

var (
	accidentalName   = map[Accidental]string{}
	namedAccidentals []Accidental
)

// compensationCents[from][to] is the cents gap between the diatonic distance
// from one letter to another and the reference distance the same scale
// position has from c in the c major scale.
var compensationCents [7][7]int

func init() {
	for name, value := range accidentalByName {
		accidentalName[value] = name
		namedAccidentals = append(namedAccidentals, value)
	}
	sort.Slice(namedAccidentals, func(i, j int) bool {
		return namedAccidentals[i] < namedAccidentals[j]
	})

	for root := 0; root < 7; root++ {
		for step := 0; step < 7; step++ {
			to := (root + step) % 7
			centDistance := (diatonicPitchClass[to] - diatonicPitchClass[root]) * 100
			if centDistance < 0 {
				centDistance += 1200
			}
			compensationCents[root][to] = diatonicPitchClass[step]*100 - centDistance
		}
	}
}

// AccidentalFromName resolves an accidental name like "s", "qf" or "tqs".
func AccidentalFromName(name string) (Accidental, error) {
	accidental, ok := accidentalByName[name]
	if !ok {
		return 0, music.Errorf("unknown accidental name %q", name)
	}
	return accidental, nil
}

// Name returns the accidental's name and whether the value is named at all.
func (a Accidental) Name() (string, bool) {
	name, ok := accidentalName[a]
	return name, ok
}

// Semitones returns the modification in semitones.
func (a Accidental) Semitones() float64 { return float64(a) / 24 }

func nearestNamedAccidental(value float64) Accidental {
	best := namedAccidentals[0]
	bestDistance := math.Abs(value - float64(best))
	for _, candidate := range namedAccidentals[1:] {
		if distance := math.Abs(value - float64(candidate)); distance < bestDistance {
			best, bestDistance = candidate, distance
		}
	}
	return best
}

// Western is a 12-tone equal tempered pitch named by diatonic letter,
// accidental and octave (middle c lives in octave 4).
type Western struct {
	diatonic   int
	accidental Accidental
	octave     int
}

// NewWestern builds a Western pitch from a pitch class name like "c", "as"
// or "gqf" plus an octave.
func NewWestern(pitchClassName string, octave int) (Western, error) {
	if pitchClassName == "" {
		return Western{}, music.Errorf("empty pitch class name")
	}
	diatonic := strings.IndexByte(diatonicLetters, pitchClassName[0])
	if diatonic < 0 {
		return Western{}, music.Errorf("unknown diatonic pitch class %q", pitchClassName[:1])
	}
	accidental, err := AccidentalFromName(pitchClassName[1:])
	if err != nil {
		return Western{}, fmt.Errorf("pitch class %q: %w", pitchClassName, err)
	}
	return Western{diatonic: diatonic, accidental: accidental, octave: octave}, nil
}

// ParseWestern parses a full pitch name with optional trailing octave like
// "cs4", "a" or "gqf-1". A missing octave defaults to 4.
func ParseWestern(name string) (Western, error) {
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}
	octave := concertOctave
	if i < len(name) {
		if i > 0 && name[i-1] == '-' {
			i--
		}
		parsed, err := strconv.Atoi(name[i:])
		if err != nil {
			return Western{}, music.Errorf("invalid octave in pitch name %q", name)
		}
		octave = parsed
	}
	return NewWestern(name[:i], octave)
}

// WesternFromMidiNumber names the 12-tone pitch closest to a MIDI note
// number.
func WesternFromMidiNumber(number float64) Western {
	pitchNumber := number - 12
	pitchClass := math.Mod(pitchNumber, 12)
	if pitchClass < 0 {
		pitchClass += 12
	}
	octave := int(math.Floor(pitchNumber / 12))
	return westernFromPitchClass(pitchClass, octave)
}

// westernFromPitchClass names a chromatic pitch class in [0, 12) by its
// closest diatonic letter, sharp side preferred on ties, with the remainder
// expressed as the nearest named accidental.
func westernFromPitchClass(pitchClass float64, octave int) Western {
	bestDiatonic := 0
	bestDistance := math.Inf(1)
	for diatonic := 0; diatonic < 7; diatonic++ {
		difference := pitchClass - float64(diatonicPitchClass[diatonic])
		distance := math.Abs(difference)
		if distance < bestDistance || (distance == bestDistance && difference > 0) {
			bestDiatonic = diatonic
			bestDistance = distance
		}
	}
	difference := pitchClass - float64(diatonicPitchClass[bestDiatonic])
	accidental := nearestNamedAccidental(difference * 24)
	return Western{diatonic: bestDiatonic, accidental: accidental, octave: octave}
}

// PitchClassName returns the letter plus accidental, e.g. "cs".
func (w Western) PitchClassName() string {
	name, _ := w.accidental.Name()
	return string(diatonicLetters[w.diatonic]) + name
}

// Octave returns the pitch's octave.
func (w Western) Octave() int { return w.octave }

// PitchClass returns the chromatic pitch class as a float, accidental
// included.
func (w Western) PitchClass() float64 {
	return float64(diatonicPitchClass[w.diatonic]) + w.accidental.Semitones()
}

// IsMicrotonal reports whether the accidental leaves the chromatic grid.
func (w Western) IsMicrotonal() bool { return w.accidental%24 != 0 }

// Hertz returns the frequency relative to concert pitch.
func (w Western) Hertz() float64 {
	cents := float64(w.octave-concertOctave)*1200 + (w.PitchClass()-concertPitchClass)*100
	return music.ConcertPitchHertz * music.CentsToRatio(cents)
}

func (w Western) String() string {
	return fmt.Sprintf("%s%d", w.PitchClassName(), w.octave)
}

// Add transposes the pitch. A WesternInterval moves symbolically along the
// diatonic letters; any other interval falls back to a Direct pitch holding
// the exact frequency, since cents or ratio values need not land on a named
// accidental.
func (w Western) Add(interval Interval) Pitch {
	if western, ok := interval.(WesternInterval); ok {
		return w.addWestern(western)
	}
	return Direct{hertz: w.Hertz() * music.CentsToRatio(interval.Cents())}
}

func (w Western) addWestern(interval WesternInterval) Western {
	total := w.diatonic + interval.diatonicSteps()
	newDiatonic := ((total % 7) + 7) % 7
	octaveCarry := floorDiv(total, 7)

	from, to := w.diatonic, newDiatonic
	if interval.falling {
		from, to = to, from
	}
	addedCents := interval.qualityCentDeviation() + compensationCents[from][to]
	added := Accidental(addedCents * 24 / 100)

	accidental := w.accidental + added
	if interval.falling {
		accidental = w.accidental - added
	}
	if _, ok := accidental.Name(); !ok {
		// The needed accidental is beyond the named set, so give up on
		// the symbolic walk and move chromatically instead.
		return w.addCents(interval.Cents())
	}
	return Western{diatonic: newDiatonic, accidental: accidental, octave: w.octave + octaveCarry}
}

// addCents moves chromatically and renames the result. Only used for
// symbolic-overflow fallback, where the cents value is a whole number of
// semitones and the renaming is exact.
func (w Western) addCents(cents float64) Western {
	pitchClass := w.PitchClass() + cents/100
	octave := w.octave
	for pitchClass < 0 {
		pitchClass += 12
		octave--
	}
	for pitchClass >= 12 {
		pitchClass -= 12
		octave++
	}
	return westernFromPitchClass(pitchClass, octave)
}

// westernIntervalTo derives the symbolic interval from w up or down to
// another Western pitch. It reports false when either pitch is microtonal.
func (w Western) westernIntervalTo(other Western) (WesternInterval, bool) {
	if w.IsMicrotonal() || other.IsMicrotonal() {
		return WesternInterval{}, false
	}
	if Compare(other, w) < 0 {
		interval, ok := other.westernIntervalTo(w)
		if !ok {
			return WesternInterval{}, false
		}
		interval.falling = !interval.falling
		return interval, true
	}

	difference := other.diatonic - w.diatonic
	stepCount := ((difference % 7) + 7) % 7
	octaveCount := floorDiv(difference, 7) + other.octave - w.octave

	baseType := stepCount + 1
	intervalType := baseType + 7*abs(octaveCount)

	qualitySemitones := -compensationCents[w.diatonic][other.diatonic] / 100
	qualitySemitones += int(other.accidental-w.accidental) / 24

	quality := qualityForSemitones(baseType, qualitySemitones)
	return WesternInterval{quality: quality, intervalType: intervalType}, true
}

// EnharmonicVariants returns pitches with the same frequency spelled from
// the neighbouring diatonic letters.
func (w Western) EnharmonicVariants() []Western {
	ownClass := math.Mod(w.PitchClass()+12, 12)
	var variants []Western
	for _, direction := range []int{-1, 1} {
		neighbourIndex := w.diatonic + direction
		octave := w.octave + floorDiv(neighbourIndex, 7)
		neighbour := ((neighbourIndex % 7) + 7) % 7
		for _, accidental := range namedAccidentals {
			if direction < 0 && accidental < 0 {
				continue
			}
			if direction > 0 && accidental > 0 {
				continue
			}
			candidate := Western{diatonic: neighbour, accidental: accidental, octave: octave}
			class := math.Mod(candidate.PitchClass()+12, 12)
			if math.Abs(class-ownClass) < 1e-9 {
				variants = append(variants, candidate)
			}
		}
	}
	return variants
}

func floorDiv(a, b int) int {
	quotient := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		quotient--
	}
	return quotient
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
