package pitch

import (
	"math"
	"math/big"
	"strings"

	"github.com/musekit/musekit/pkg/music"
)

var (
	ratOne = big.NewRat(1, 1)
	ratTwo = big.NewRat(2, 1)
)

// Just is a just intonation pitch: an exact frequency ratio relative to
// concert pitch. A Just value doubles as an Interval, sized by the ratio.
type Just struct {
	ratio *big.Rat
}

// NewJust builds a just intonation pitch from an integer ratio.
func NewJust(numerator, denominator int64) (Just, error) {
	if numerator <= 0 || denominator <= 0 {
		return Just{}, music.Errorf("ratio must be positive, got %d/%d", numerator, denominator)
	}
	return Just{ratio: big.NewRat(numerator, denominator)}, nil
}

// JustFromRat builds a just intonation pitch from a rational, copying it.
func JustFromRat(ratio *big.Rat) (Just, error) {
	if ratio.Sign() <= 0 {
		return Just{}, music.Errorf("ratio must be positive, got %s", ratio.RatString())
	}
	return Just{ratio: new(big.Rat).Set(ratio)}, nil
}

// ParseRatio parses a ratio string like "3/2" or "5".
func ParseRatio(s string) (Just, error) {
	ratio, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return Just{}, music.Errorf("invalid ratio %q", s)
	}
	return JustFromRat(ratio)
}

// Ratio returns a copy of the frequency ratio.
func (j Just) Ratio() *big.Rat { return new(big.Rat).Set(j.rat()) }

// Numerator returns the numerator of the ratio in lowest terms.
func (j Just) Numerator() int64 { return j.rat().Num().Int64() }

// Denominator returns the denominator of the ratio in lowest terms.
func (j Just) Denominator() int64 { return j.rat().Denom().Int64() }

// rat treats the zero value as 1/1.
func (j Just) rat() *big.Rat {
	if j.ratio == nil {
		return ratOne
	}
	return j.ratio
}

// Hertz returns the frequency relative to concert pitch (1/1 = concert
// pitch).
func (j Just) Hertz() float64 {
	ratio, _ := j.rat().Float64()
	return music.ConcertPitchHertz * ratio
}

// Cents returns the interval size of the ratio.
func (j Just) Cents() float64 { return music.RatioToCents(j.rat()) }

// Inverse returns the reciprocal ratio.
func (j Just) Inverse() Interval {
	return Just{ratio: new(big.Rat).Inv(j.rat())}
}

// Multiply combines two ratios exactly (interval addition).
func (j Just) Multiply(other Just) Just {
	return Just{ratio: new(big.Rat).Mul(j.rat(), other.rat())}
}

// Divide returns the exact ratio from other to j (interval subtraction).
func (j Just) Divide(other Just) Just {
	return Just{ratio: new(big.Rat).Quo(j.rat(), other.rat())}
}

// Add transposes the pitch. Adding another Just value stays exact; any
// other interval falls back to a Direct pitch.
func (j Just) Add(interval Interval) Pitch {
	if other, ok := interval.(Just); ok {
		return j.Multiply(other)
	}
	return Direct{hertz: j.Hertz() * music.CentsToRatio(interval.Cents())}
}

// Normalize octave-reduces the ratio into [1, 2).
func (j Just) Normalize() Just {
	ratio := new(big.Rat).Set(j.rat())
	for ratio.Cmp(ratTwo) >= 0 {
		ratio.Quo(ratio, ratTwo)
	}
	for ratio.Cmp(ratOne) < 0 {
		ratio.Mul(ratio, ratTwo)
	}
	return Just{ratio: ratio}
}

// Register moves the pitch into the given octave: octave 0 holds the
// ratios in [1, 2), octave -1 those in [1/2, 1), and so on.
func (j Just) Register(octave int) Just {
	registered := j.Normalize()
	shift := new(big.Rat).SetFrac(
		new(big.Int).Lsh(big.NewInt(1), uint(max(octave, 0))),
		new(big.Int).Lsh(big.NewInt(1), uint(max(-octave, 0))),
	)
	return Just{ratio: registered.rat().Mul(registered.rat(), shift)}
}

// HarmonicityTenney returns Tenney's harmonic distance log2(numerator *
// denominator); smaller values mean simpler ratios.
func (j Just) HarmonicityTenney() float64 {
	product := new(big.Int).Mul(j.rat().Num(), j.rat().Denom())
	f, _ := new(big.Float).SetInt(product).Float64()
	return math.Log2(f)
}

// HarmonicityEuler returns Euler's gradus suavitatis of the ratio.
func (j Just) HarmonicityEuler() int {
	product := new(big.Int).Mul(j.rat().Num(), j.rat().Denom())
	gradus := 1
	n := product.Int64()
	for factor := int64(2); factor*factor <= n; factor++ {
		for n%factor == 0 {
			gradus += int(factor) - 1
			n /= factor
		}
	}
	if n > 1 {
		gradus += int(n) - 1
	}
	return gradus
}

func (j Just) String() string { return j.rat().RatString() }
