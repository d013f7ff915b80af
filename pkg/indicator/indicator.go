// Package indicator holds playing and notation indicators that attach to
// note events without changing their sounding core.
package indicator

// Articulation names how a note is attacked, e.g. "staccato" or "tenuto".
type Articulation struct {
	Name string
}

// IsActive reports whether the articulation is set.
func (a Articulation) IsActive() bool { return a.Name != "" }

// Tremolo asks for a repeated-note tremolo with the given flag count.
type Tremolo struct {
	FlagCount int
}

// IsActive reports whether the tremolo is set.
func (t Tremolo) IsActive() bool { return t.FlagCount > 0 }

// Arpeggio directions.
const (
	ArpeggioUp   = "up"
	ArpeggioDown = "down"
)

// Arpeggio spreads a chord in the given direction.
type Arpeggio struct {
	Direction string
}

// IsActive reports whether the arpeggio is set.
func (a Arpeggio) IsActive() bool { return a.Direction != "" }

// Fermata holds a note beyond its written duration.
type Fermata struct {
	Kind string
}

// IsActive reports whether the fermata is set.
func (f Fermata) IsActive() bool { return f.Kind != "" }

// Hairpin is a gradual dynamic change, "<", ">" or "!".
type Hairpin struct {
	Symbol string
}

// IsActive reports whether the hairpin is set.
func (h Hairpin) IsActive() bool { return h.Symbol != "" }

// PlayingCollection bundles the playing indicators of one event. The bool
// fields are explicit on/off indicators, the struct fields carry arguments.
type PlayingCollection struct {
	Tie                 bool
	Prall               bool
	Flageolet           bool
	BartokPizzicato     bool
	LaissezVibrer       bool
	Glissando           bool
	BreathMark          bool
	Optional            bool
	DurationLineDashed  bool
	DurationLineTriller bool

	Articulation Articulation
	Tremolo      Tremolo
	Arpeggio     Arpeggio
	Fermata      Fermata
	Hairpin      Hairpin
}

// Active lists the names of all set indicators in declaration order.
func (c *PlayingCollection) Active() []string {
	indicators := []struct {
		name string
		set  bool
	}{
		{"tie", c.Tie},
		{"prall", c.Prall},
		{"flageolet", c.Flageolet},
		{"bartok_pizzicato", c.BartokPizzicato},
		{"laissez_vibrer", c.LaissezVibrer},
		{"glissando", c.Glissando},
		{"breath_mark", c.BreathMark},
		{"optional", c.Optional},
		{"duration_line_dashed", c.DurationLineDashed},
		{"duration_line_triller", c.DurationLineTriller},
		{"articulation", c.Articulation.IsActive()},
		{"tremolo", c.Tremolo.IsActive()},
		{"arpeggio", c.Arpeggio.IsActive()},
		{"fermata", c.Fermata.IsActive()},
		{"hairpin", c.Hairpin.IsActive()},
	}
	var active []string
	for _, indicator := range indicators {
		if indicator.set {
			active = append(active, indicator.name)
		}
	}
	return active
}

// Clef names.
type Clef struct {
	Name string
}

// IsActive reports whether the clef is set.
func (c Clef) IsActive() bool { return c.Name != "" }

// Ottava shifts the written octave.
type Ottava struct {
	OctaveCount int
}

// IsActive reports whether the ottava is set.
func (o Ottava) IsActive() bool { return o.OctaveCount != 0 }

// BarLine requests an explicit bar line, e.g. "|." for a final one.
type BarLine struct {
	Abbreviation string
}

// IsActive reports whether the bar line is set.
func (b BarLine) IsActive() bool { return b.Abbreviation != "" }

// MarginMarkup writes text into the margin before the staff.
type MarginMarkup struct {
	Content string
}

// IsActive reports whether the markup is set.
func (m MarginMarkup) IsActive() bool { return m.Content != "" }

// NotationCollection bundles the notation indicators of one event.
type NotationCollection struct {
	Clef         Clef
	Ottava       Ottava
	BarLine      BarLine
	MarginMarkup MarginMarkup
}
