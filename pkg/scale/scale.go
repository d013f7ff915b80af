// Package scale models scale families (interval patterns) and concrete
// scales bound to a tonic pitch.
package scale

import (
	"math"

	"github.com/musekit/musekit/pkg/music"
	"github.com/musekit/musekit/pkg/pitch"
)

// Family is a finite scale pattern: intervals measured from the tonic,
// sorted monotonically, with optional weights, scale degrees and period
// offsets per interval.
type Family struct {
	intervals []pitch.Interval
	weights   []float64
	degrees   []int
	periods   []int
}

// FamilyOption configures optional Family data.
type FamilyOption func(*Family)

// WithWeights attaches a weight per interval.
func WithWeights(weights []float64) FamilyOption {
	return func(f *Family) { f.weights = weights }
}

// WithDegrees attaches an explicit scale degree per interval.
func WithDegrees(degrees []int) FamilyOption {
	return func(f *Family) { f.degrees = degrees }
}

// WithPeriods attaches a period offset per interval.
func WithPeriods(periods []int) FamilyOption {
	return func(f *Family) { f.periods = periods }
}

// NewFamily builds a validated scale family. Intervals must be sorted
// rising or falling; attached weights, degrees and periods must match the
// interval count.
func NewFamily(intervals []pitch.Interval, opts ...FamilyOption) (*Family, error) {
	if len(intervals) == 0 {
		return nil, music.Errorf("scale family needs at least one interval")
	}
	family := &Family{intervals: intervals}
	for _, opt := range opts {
		opt(family)
	}
	if family.weights == nil {
		family.weights = make([]float64, len(intervals))
		for i := range family.weights {
			family.weights[i] = 1
		}
	}
	if family.degrees == nil {
		family.degrees = make([]int, len(intervals))
		for i := range family.degrees {
			family.degrees[i] = i
		}
	}
	if family.periods == nil {
		family.periods = make([]int, len(intervals))
	}
	if len(family.weights) != len(intervals) || len(family.degrees) != len(intervals) || len(family.periods) != len(intervals) {
		return nil, music.Errorf("scale family data length mismatch: %d intervals, %d weights, %d degrees, %d periods",
			len(intervals), len(family.weights), len(family.degrees), len(family.periods))
	}
	if !sortedMonotone(intervals) {
		return nil, music.Errorf("scale family intervals must be sorted rising or falling")
	}
	return family, nil
}

func sortedMonotone(intervals []pitch.Interval) bool {
	rising, falling := true, true
	for i := 1; i < len(intervals); i++ {
		if intervals[i].Cents() < intervals[i-1].Cents() {
			rising = false
		}
		if intervals[i].Cents() > intervals[i-1].Cents() {
			falling = false
		}
	}
	return rising || falling
}

// Intervals returns the interval pattern.
func (f *Family) Intervals() []pitch.Interval { return f.intervals }

// Weights returns the per-interval weights.
func (f *Family) Weights() []float64 { return f.weights }

// Degrees returns the per-interval scale degrees.
func (f *Family) Degrees() []int { return f.degrees }

// Periods returns the per-interval period offsets.
func (f *Family) Periods() []int { return f.periods }

// Len returns the interval count.
func (f *Family) Len() int { return len(f.intervals) }

// RepeatingFamily is a scale pattern of one period plus the interval at
// which the period repeats, usually the octave.
type RepeatingFamily struct {
	period     []pitch.Interval
	repetition pitch.Interval
}

// NewRepeatingFamily builds a repeating scale pattern. The period intervals
// must be sorted rising and stay inside the repetition interval.
func NewRepeatingFamily(period []pitch.Interval, repetition pitch.Interval) (*RepeatingFamily, error) {
	if len(period) == 0 {
		return nil, music.Errorf("repeating scale family needs at least one interval")
	}
	if repetition.Cents() <= 0 {
		return nil, music.Errorf("repetition interval must be rising, got %g cents", repetition.Cents())
	}
	for i := 1; i < len(period); i++ {
		if period[i].Cents() < period[i-1].Cents() {
			return nil, music.Errorf("repeating scale family intervals must be sorted rising")
		}
	}
	if span := period[len(period)-1].Cents() - period[0].Cents(); span >= repetition.Cents() {
		return nil, music.Errorf("scale period spans %g cents, repetition interval is only %g", span, repetition.Cents())
	}
	return &RepeatingFamily{period: period, repetition: repetition}, nil
}

// Period returns the one-period interval pattern.
func (f *RepeatingFamily) Period() []pitch.Interval { return f.period }

// Repetition returns the repetition interval.
func (f *RepeatingFamily) Repetition() pitch.Interval { return f.repetition }

// Len returns the period length.
func (f *RepeatingFamily) Len() int { return len(f.period) }

// intervalAt returns the interval from the tonic to any signed degree.
func (f *RepeatingFamily) intervalAt(degree int) pitch.Interval {
	length := len(f.period)
	index := ((degree % length) + length) % length
	periodCount := floorDiv(degree, length)

	interval := f.period[index]
	step := f.repetition
	if periodCount < 0 {
		step = f.repetition.Inverse()
	}
	for i := 0; i < abs(periodCount); i++ {
		interval = pitch.AddIntervals(interval, step)
	}
	return interval
}

// Materialize expands the pattern into a finite Family holding every
// interval within [min, max), tracking scale degree and period count per
// interval.
func (f *RepeatingFamily) Materialize(min, max pitch.Interval) (*Family, error) {
	if min.Cents() >= max.Cents() {
		return nil, music.Errorf("materialization bounds are empty: [%g, %g) cents", min.Cents(), max.Cents())
	}

	repetitionCents := f.repetition.Cents()
	firstPeriod := int(math.Floor((min.Cents() - f.period[len(f.period)-1].Cents()) / repetitionCents))

	var intervals []pitch.Interval
	var degrees, periods []int
	for periodCount := firstPeriod; ; periodCount++ {
		belowMax := false
		for index := range f.period {
			interval := f.intervalAt(periodCount*len(f.period) + index)
			cents := interval.Cents()
			if cents >= max.Cents() {
				continue
			}
			belowMax = true
			if cents < min.Cents() {
				continue
			}
			intervals = append(intervals, interval)
			degrees = append(degrees, index)
			periods = append(periods, periodCount)
		}
		if !belowMax && periodCount > firstPeriod {
			break
		}
	}
	if len(intervals) == 0 {
		return nil, music.Errorf("no scale intervals inside [%g, %g) cents", min.Cents(), max.Cents())
	}
	return NewFamily(intervals, WithDegrees(degrees), WithPeriods(periods))
}

// Scale binds a scale family to a tonic pitch. A Scale built from a
// RepeatingFamily answers degree queries for any integer degree; one built
// from a finite Family only inside its interval list.
type Scale struct {
	tonic     pitch.Pitch
	family    *Family
	repeating *RepeatingFamily
}

// New binds a finite family to a tonic.
func New(tonic pitch.Pitch, family *Family) (*Scale, error) {
	if err := music.CheckHertz(tonic.Hertz()); err != nil {
		return nil, err
	}
	return &Scale{tonic: tonic, family: family}, nil
}

// NewRepeating binds a repeating family to a tonic.
func NewRepeating(tonic pitch.Pitch, family *RepeatingFamily) (*Scale, error) {
	if err := music.CheckHertz(tonic.Hertz()); err != nil {
		return nil, err
	}
	return &Scale{tonic: tonic, repeating: family}, nil
}

// Tonic returns the scale's tonic pitch.
func (s *Scale) Tonic() pitch.Pitch { return s.tonic }

// Repeating reports whether degrees extend without bound in both
// directions.
func (s *Scale) Repeating() bool { return s.repeating != nil }

// DegreeCount returns the number of degrees in one period.
func (s *Scale) DegreeCount() int {
	if s.repeating != nil {
		return s.repeating.Len()
	}
	return s.family.Len()
}

// PitchAt returns the pitch at a scale degree. Repeating scales accept any
// integer degree; finite scales reject degrees outside their interval list.
func (s *Scale) PitchAt(degree int) (pitch.Pitch, error) {
	interval, err := s.intervalAt(degree)
	if err != nil {
		return nil, err
	}
	return s.tonic.Add(interval), nil
}

func (s *Scale) intervalAt(degree int) (pitch.Interval, error) {
	if s.repeating != nil {
		return s.repeating.intervalAt(degree), nil
	}
	if degree < 0 || degree >= s.family.Len() {
		return nil, music.Errorf("scale degree %d outside [0, %d)", degree, s.family.Len())
	}
	return s.family.intervals[degree], nil
}

// Pitches materializes the scale degrees from one degree up to but not
// including another.
func (s *Scale) Pitches(from, to int) ([]pitch.Pitch, error) {
	if to < from {
		return nil, music.Errorf("invalid degree range [%d, %d)", from, to)
	}
	pitches := make([]pitch.Pitch, 0, to-from)
	for degree := from; degree < to; degree++ {
		p, err := s.PitchAt(degree)
		if err != nil {
			return nil, err
		}
		pitches = append(pitches, p)
	}
	return pitches, nil
}

// Position splits a degree of a repeating scale into its position in the
// period and the period count.
func (s *Scale) Position(degree int) (scaleDegree, periodCount int) {
	length := s.DegreeCount()
	return ((degree % length) + length) % length, floorDiv(degree, length)
}

// DegreeFromPosition is the inverse of Position.
func (s *Scale) DegreeFromPosition(scaleDegree, periodCount int) (int, error) {
	if scaleDegree < 0 || scaleDegree >= s.DegreeCount() {
		return 0, music.Errorf("scale position %d outside [0, %d)", scaleDegree, s.DegreeCount())
	}
	return periodCount*s.DegreeCount() + scaleDegree, nil
}

// NearestDegree finds the degree whose pitch is closest to the given pitch
// and the residual distance in cents from that degree's pitch to the given
// one. Ties resolve to the lower degree.
func (s *Scale) NearestDegree(p pitch.Pitch) (int, float64, error) {
	cents, err := music.HertzToCents(s.tonic.Hertz(), p.Hertz())
	if err != nil {
		return 0, 0, err
	}

	if s.repeating == nil {
		best, bestResidual := 0, math.Inf(1)
		for degree, interval := range s.family.intervals {
			residual := cents - interval.Cents()
			if residualCompare(residual, bestResidual) < 0 {
				best, bestResidual = degree, residual
			}
		}
		return best, bestResidual, nil
	}

	meanStep := s.repeating.Repetition().Cents() / float64(s.repeating.Len())
	guess := int(math.Round(cents / meanStep))

	residualAt := func(degree int) float64 {
		return cents - s.repeating.intervalAt(degree).Cents()
	}

	best, bestResidual := guess, residualAt(guess)
	for degree := guess + 1; ; degree++ {
		residual := residualAt(degree)
		if residualCompare(residual, bestResidual) >= 0 {
			break
		}
		best, bestResidual = degree, residual
	}
	for degree := guess - 1; ; degree-- {
		residual := residualAt(degree)
		if residualCompare(residual, bestResidual) > 0 {
			break
		}
		best, bestResidual = degree, residual
	}
	return best, bestResidual, nil
}

// residualCompare orders residuals by magnitude, treating magnitudes within
// the cents tolerance as equal so an exact midpoint resolves as a tie rather
// than by floating-point noise.
func residualCompare(a, b float64) int {
	difference := math.Abs(a) - math.Abs(b)
	switch {
	case math.Abs(difference) <= music.CentsTolerance:
		return 0
	case difference < 0:
		return -1
	default:
		return 1
	}
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
