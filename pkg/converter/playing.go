package converter

import (
	"sort"

	"github.com/musekit/musekit/pkg/events"
	"github.com/musekit/musekit/pkg/indicator"
	"github.com/musekit/musekit/pkg/music"
	"github.com/musekit/musekit/pkg/pitch"
)

// PlayingConverter expands a note according to one of its playing
// indicators.
type PlayingConverter interface {
	// Applies reports whether the converter's indicator is set on the note.
	Applies(*events.Note) bool
	// Convert expands the note into the event that realizes the indicator.
	Convert(*events.Note) (events.Event, error)
}

// ArpeggioConverter spreads a chord into single attacks, rising or falling
// with the arpeggio direction. The last attack holds the remaining duration.
type ArpeggioConverter struct {
	AttackDuration float64
}

// NewArpeggioConverter returns an arpeggio converter with the default
// attack duration.
func NewArpeggioConverter() *ArpeggioConverter {
	return &ArpeggioConverter{AttackDuration: 0.1}
}

// Applies reports whether the note carries an arpeggio.
func (c *ArpeggioConverter) Applies(note *events.Note) bool {
	return note.Playing.Arpeggio.IsActive() && len(note.Pitches) > 1
}

// Convert splits the chord into one note per pitch.
func (c *ArpeggioConverter) Convert(note *events.Note) (events.Event, error) {
	attack := c.AttackDuration
	if total := note.Duration(); total < attack*float64(len(note.Pitches)) {
		attack = total / float64(len(note.Pitches))
	}

	sorted := append([]pitch.Pitch(nil), note.Pitches...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if note.Playing.Arpeggio.Direction == indicator.ArpeggioDown {
			return sorted[i].Hertz() > sorted[j].Hertz()
		}
		return sorted[i].Hertz() < sorted[j].Hertz()
	})

	out := &events.Sequence{}
	for i, p := range sorted {
		attackNote := note.Clone()
		attackNote.Pitches = []pitch.Pitch{p}
		attackNote.Dur = attack
		attackNote.Playing.Arpeggio = indicator.Arpeggio{}
		if i == len(sorted)-1 {
			attackNote.Dur = note.Duration() - attack*float64(len(sorted)-1)
		}
		out.Append(attackNote)
	}
	return out, nil
}

// StaccatoConverter shortens a staccato note to half its duration and pads
// the rest with silence.
type StaccatoConverter struct{}

// Applies reports whether the articulation asks for staccato.
func (c *StaccatoConverter) Applies(note *events.Note) bool {
	name := note.Playing.Articulation.Name
	return name == "staccato" || name == "."
}

// Convert halves the note and appends a rest for the remainder.
func (c *StaccatoConverter) Convert(note *events.Note) (events.Event, error) {
	sounding := note.Clone()
	sounding.Dur = note.Duration() / 2
	sounding.Playing.Articulation = indicator.Articulation{}

	rest, err := events.NewRest(note.Duration() - sounding.Dur)
	if err != nil {
		return nil, err
	}
	return &events.Sequence{Events: []events.Event{sounding, rest}}, nil
}

// PrallConverter realizes a prall as a quick alternation between the note
// and its upper neighbour.
type PrallConverter struct {
	AttackDuration float64
	Neighbour      pitch.Interval
}

// NewPrallConverter returns a prall converter alternating with the whole
// tone above.
func NewPrallConverter() *PrallConverter {
	return &PrallConverter{AttackDuration: 0.125, Neighbour: pitch.Cents(200)}
}

// Applies reports whether the note carries a prall.
func (c *PrallConverter) Applies(note *events.Note) bool {
	return note.Playing.Prall && len(note.Pitches) > 0
}

// Convert alternates the note with its upper neighbour, ending on the note.
func (c *PrallConverter) Convert(note *events.Note) (events.Event, error) {
	if c.AttackDuration <= 0 {
		return nil, music.Errorf("prall attack duration must be positive, got %v", c.AttackDuration)
	}
	total := note.Duration()
	attackCount := int(total / c.AttackDuration)
	if attackCount < 2 {
		attackCount = 2
	}
	if attackCount%2 != 0 {
		attackCount--
	}
	attack := total / float64(attackCount)

	out := &events.Sequence{}
	for i := 0; i < attackCount; i++ {
		attackNote := note.Clone()
		attackNote.Dur = attack
		attackNote.Playing.Prall = false
		if i%2 == 1 {
			raised := make([]pitch.Pitch, len(attackNote.Pitches))
			for j, p := range attackNote.Pitches {
				raised[j] = p.Add(c.Neighbour)
			}
			attackNote.Pitches = raised
		}
		out.Append(attackNote)
	}
	return out, nil
}

// OptionalConverter either keeps optional notes or replaces them with rests.
type OptionalConverter struct {
	Omit bool
}

// Applies reports whether the note is marked optional.
func (c *OptionalConverter) Applies(note *events.Note) bool {
	return note.Playing.Optional
}

// Convert keeps or silences the note depending on the Omit flag.
func (c *OptionalConverter) Convert(note *events.Note) (events.Event, error) {
	kept := note.Clone()
	kept.Playing.Optional = false
	if c.Omit {
		kept.Pitches = nil
	}
	return kept, nil
}

// ApplyPlaying walks an event tree and expands every note through the first
// converter whose indicator is set on it.
func ApplyPlaying(event events.Event, converters ...PlayingConverter) (events.Event, error) {
	switch e := event.(type) {
	case *events.Note:
		for _, c := range converters {
			if c.Applies(e) {
				return c.Convert(e)
			}
		}
		return e, nil

	case *events.Sequence:
		out := &events.Sequence{}
		for _, child := range e.Events {
			converted, err := ApplyPlaying(child, converters...)
			if err != nil {
				return nil, err
			}
			if seq, ok := converted.(*events.Sequence); ok {
				out.Append(seq.Events...)
				continue
			}
			out.Append(converted)
		}
		return out, nil

	case *events.Concurrence:
		out := &events.Concurrence{}
		for _, child := range e.Events {
			converted, err := ApplyPlaying(child, converters...)
			if err != nil {
				return nil, err
			}
			out.Append(converted)
		}
		return out, nil

	default:
		return nil, music.Errorf("cannot apply playing indicators to event type %T", event)
	}
}

// DefaultPlayingConverters returns the standard converter chain.
func DefaultPlayingConverters() []PlayingConverter {
	return []PlayingConverter{
		NewArpeggioConverter(),
		&StaccatoConverter{},
		NewPrallConverter(),
		&OptionalConverter{},
	}
}
