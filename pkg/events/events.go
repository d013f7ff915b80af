// Package events models the event tree: notes with optional grace notes,
// sequential containers and parallel containers. Durations are in beats.
package events

import (
	"github.com/musekit/musekit/pkg/indicator"
	"github.com/musekit/musekit/pkg/lyric"
	"github.com/musekit/musekit/pkg/music"
	"github.com/musekit/musekit/pkg/pitch"
	"github.com/musekit/musekit/pkg/volume"
)

// Event is anything that lasts for a duration.
type Event interface {
	Duration() float64
}

// Note is a sounding event: zero pitches make a rest, one a tone, several a
// chord. Grace and AfterGrace hold ornamental notes played before and after
// the note itself.
type Note struct {
	Pitches    []pitch.Pitch
	Dur        float64
	Volume     volume.Volume
	Lyric      lyric.Lyric
	Grace      []*Note
	AfterGrace []*Note
	Playing    indicator.PlayingCollection
	Notation   indicator.NotationCollection
}

// NewNote builds a note, coercing the pitch and volume arguments the way
// the parameter packages' FromAny functions do. A nil volume argument
// defaults to mezzoforte.
func NewNote(pitches any, duration float64, vol any) (*Note, error) {
	if duration < 0 {
		return nil, music.Errorf("note duration must not be negative, got %v", duration)
	}
	pitchList, err := pitch.ListFromAny(pitches)
	if err != nil {
		return nil, err
	}
	if vol == nil {
		vol = "mf"
	}
	noteVolume, err := volume.FromAny(vol)
	if err != nil {
		return nil, err
	}
	return &Note{Pitches: pitchList, Dur: duration, Volume: noteVolume}, nil
}

// NewRest builds a pitchless note.
func NewRest(duration float64) (*Note, error) {
	return NewNote(nil, duration, nil)
}

// Duration returns the note's own duration, grace notes excluded.
func (n *Note) Duration() float64 { return n.Dur }

// IsRest reports whether the note carries no pitches.
func (n *Note) IsRest() bool { return len(n.Pitches) == 0 }

// Clone copies the note, its slices and its grace-note trees.
func (n *Note) Clone() *Note {
	clone := *n
	clone.Pitches = append([]pitch.Pitch(nil), n.Pitches...)
	clone.Grace = cloneNotes(n.Grace)
	clone.AfterGrace = cloneNotes(n.AfterGrace)
	return &clone
}

func cloneNotes(notes []*Note) []*Note {
	if notes == nil {
		return nil
	}
	cloned := make([]*Note, len(notes))
	for i, note := range notes {
		if note != nil {
			cloned[i] = note.Clone()
		}
	}
	return cloned
}

// Sequence plays its events one after another.
type Sequence struct {
	Events []Event
}

// Duration returns the sum of the child durations.
func (s *Sequence) Duration() float64 {
	total := 0.0
	for _, event := range s.Events {
		total += event.Duration()
	}
	return total
}

// Append adds events to the end of the sequence.
func (s *Sequence) Append(events ...Event) {
	s.Events = append(s.Events, events...)
}

// Concurrence plays its events at the same time.
type Concurrence struct {
	Events []Event
}

// Duration returns the longest child duration.
func (c *Concurrence) Duration() float64 {
	longest := 0.0
	for _, event := range c.Events {
		if d := event.Duration(); d > longest {
			longest = d
		}
	}
	return longest
}

// Append adds parallel events.
func (c *Concurrence) Append(events ...Event) {
	c.Events = append(c.Events, events...)
}
