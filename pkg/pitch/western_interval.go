package pitch

import (
	"math"
	"strconv"
	"strings"

	"github.com/musekit/musekit/pkg/music"
)

// baseTypeCents maps a base interval type (1..7) to its size in cents with
// perfect or major quality.
var baseTypeCents = [8]int{0, 0, 200, 400, 500, 700, 900, 1100}

// perfectBaseTypes marks the interval types that take perfect quality; the
// remaining types (2, 3, 6, 7) are imperfect.
var perfectBaseTypes = map[int]bool{1: true, 4: true, 5: true}

// semitoneIntervalData maps a semitone count in [0, 12) to base interval
// type and quality. The tritone resolves to the augmented fourth.
var semitoneIntervalData = [12]struct {
	baseType int
	quality  string
}{
	{1, "p"}, {2, "m"}, {2, "M"}, {3, "m"}, {3, "M"}, {4, "p"},
	{4, "A"}, {5, "p"}, {6, "m"}, {6, "M"}, {7, "m"}, {7, "M"},
}

// WesternInterval is a symbolic 12-tone interval written as quality plus
// interval type, e.g. "p5", "m-3" (falling minor third) or "AA4".
type WesternInterval struct {
	quality      string
	intervalType int
	falling      bool
}

// NewWesternInterval builds a validated symbolic interval.
func NewWesternInterval(quality string, intervalType int, falling bool) (WesternInterval, error) {
	if intervalType < 1 {
		return WesternInterval{}, music.Errorf("interval type must be positive, got %d", intervalType)
	}
	if quality == "" {
		return WesternInterval{}, music.Errorf("interval quality is empty")
	}
	for i := 1; i < len(quality); i++ {
		if quality[i] != quality[0] {
			return WesternInterval{}, music.Errorf("interval quality %q mixes qualities", quality)
		}
	}
	switch quality[0] {
	case 'A', 'd':
	case 'p', 'm', 'M':
		if len(quality) > 1 {
			return WesternInterval{}, music.Errorf("interval quality %q cannot be stacked", quality)
		}
	default:
		return WesternInterval{}, music.Errorf("unknown interval quality %q", quality)
	}

	baseType := (intervalType-1)%7 + 1
	perfect := perfectBaseTypes[baseType]
	if perfect && (quality[0] == 'm' || quality[0] == 'M') {
		return WesternInterval{}, music.Errorf("perfect interval type %d cannot take quality %q", intervalType, quality)
	}
	if !perfect && quality[0] == 'p' {
		return WesternInterval{}, music.Errorf("imperfect interval type %d cannot take quality %q", intervalType, quality)
	}
	return WesternInterval{quality: quality, intervalType: intervalType, falling: falling}, nil
}

// ParseWesternInterval parses an interval name like "p5", "m-3" or "dddd6".
func ParseWesternInterval(name string) (WesternInterval, error) {
	i := 0
	for i < len(name) && strings.ContainsRune("pmMAd", rune(name[i])) {
		i++
	}
	quality, rest := name[:i], name[i:]
	falling := strings.HasPrefix(rest, "-")
	if falling {
		rest = rest[1:]
	}
	intervalType, err := strconv.Atoi(rest)
	if err != nil || rest == "" {
		return WesternInterval{}, music.Errorf("invalid interval name %q", name)
	}
	return NewWesternInterval(quality, intervalType, falling)
}

// WesternIntervalFromSemitones names the interval spanning a signed whole
// number of semitones.
func WesternIntervalFromSemitones(semitones int) WesternInterval {
	falling := semitones < 0
	count := abs(semitones)
	data := semitoneIntervalData[count%12]
	intervalType := data.baseType + 7*(count/12)
	return WesternInterval{quality: data.quality, intervalType: intervalType, falling: falling}
}

// Name returns the interval name, e.g. "m-3" for a falling minor third.
func (i WesternInterval) Name() string {
	direction := ""
	if i.falling {
		direction = "-"
	}
	return i.quality + direction + strconv.Itoa(i.intervalType)
}

func (i WesternInterval) String() string { return i.Name() }

// Type returns the interval type (1 = prime, 8 = octave, ...).
func (i WesternInterval) Type() int { return i.intervalType }

// Quality returns the quality run (p, m, M, or stacked A/d).
func (i WesternInterval) Quality() string { return i.quality }

// IsFalling reports the interval direction.
func (i WesternInterval) IsFalling() bool { return i.falling }

// IsPerfect reports whether the base type is a perfect one (prime, fourth,
// fifth and their octaves).
func (i WesternInterval) IsPerfect() bool {
	return perfectBaseTypes[(i.intervalType-1)%7+1]
}

// diatonicSteps returns the signed count of diatonic letters the interval
// moves.
func (i WesternInterval) diatonicSteps() int {
	steps := i.intervalType - 1
	if i.falling {
		return -steps
	}
	return steps
}

// qualityCentDeviation returns the cents the quality bends the base type by.
func (i WesternInterval) qualityCentDeviation() int {
	deviation := 0
	for _, r := range i.quality {
		switch r {
		case 'm', 'd':
			deviation -= 100
		case 'A':
			deviation += 100
		}
	}
	if !i.IsPerfect() && i.quality[0] == 'd' {
		deviation -= 100
	}
	return deviation
}

// Cents returns the signed interval size.
func (i WesternInterval) Cents() float64 {
	baseType := (i.intervalType-1)%7 + 1
	octaves := (i.intervalType - 1) / 7
	cents := float64(baseTypeCents[baseType] + 1200*octaves + i.qualityCentDeviation())
	if i.falling {
		return -cents
	}
	return cents
}

// Inverse returns the interval with flipped direction.
func (i WesternInterval) Inverse() Interval {
	i.falling = !i.falling
	return i
}

// Add combines two symbolic intervals into a symbolic result: the diatonic
// steps add and the quality is rebuilt from the cents remainder, so the
// result's cents always equal the cents sum of the operands.
func (i WesternInterval) Add(other WesternInterval) WesternInterval {
	steps := i.diatonicSteps() + other.diatonicSteps()
	cents := int(math.Round(i.Cents() + other.Cents()))

	falling := steps < 0 || (steps == 0 && cents < 0)
	if falling {
		steps, cents = -steps, -cents
	}

	baseType := steps%7 + 1
	octaves := steps / 7
	qualitySemitones := (cents - baseTypeCents[baseType] - 1200*octaves) / 100
	return WesternInterval{
		quality:      qualityForSemitones(baseType, qualitySemitones),
		intervalType: steps + 1,
		falling:      falling,
	}
}

// qualityForSemitones names the quality that bends a base interval type by
// the given signed semitone count.
func qualityForSemitones(baseType, semitones int) string {
	if perfectBaseTypes[baseType] {
		switch {
		case semitones == 0:
			return "p"
		case semitones > 0:
			return strings.Repeat("A", semitones)
		default:
			return strings.Repeat("d", -semitones)
		}
	}
	switch {
	case semitones == 0:
		return "M"
	case semitones == -1:
		return "m"
	case semitones > 0:
		return strings.Repeat("A", semitones)
	default:
		return strings.Repeat("d", -(semitones + 1))
	}
}
