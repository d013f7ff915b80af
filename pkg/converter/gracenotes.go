// Package converter transforms event trees: grace-note splicing, playing
// indicator expansion and MIDI file export and import.
package converter

import (
	"github.com/musekit/musekit/pkg/events"
	"github.com/musekit/musekit/pkg/music"
)

// GraceNotes splices each note's grace notes into the surrounding sequence:
// preceding grace notes, then the note itself, then the following ones.
// Every note keeps its own written duration, so the converted sequence grows
// by the grace-note durations while the principal notes stay untouched.
type GraceNotes struct{}

// NewGraceNotes returns a grace-note converter.
func NewGraceNotes() *GraceNotes { return &GraceNotes{} }

// Convert expands an event. A Note becomes the Sequence of its expansion, a
// Sequence gets note expansions spliced inline, and a Concurrence converts
// each branch on its own so parallel parts never leak into each other.
func (g *GraceNotes) Convert(event events.Event) (events.Event, error) {
	switch e := event.(type) {
	case *events.Note:
		expanded, err := expandNote(e)
		if err != nil {
			return nil, err
		}
		return &events.Sequence{Events: expanded}, nil

	case *events.Sequence:
		out := &events.Sequence{}
		for _, child := range e.Events {
			if note, ok := child.(*events.Note); ok {
				expanded, err := expandNote(note)
				if err != nil {
					return nil, err
				}
				out.Append(expanded...)
				continue
			}
			converted, err := g.Convert(child)
			if err != nil {
				return nil, err
			}
			out.Append(converted)
		}
		return out, nil

	case *events.Concurrence:
		out := &events.Concurrence{}
		for _, child := range e.Events {
			converted, err := g.Convert(child)
			if err != nil {
				return nil, err
			}
			out.Append(converted)
		}
		return out, nil

	default:
		return nil, music.Errorf("cannot expand grace notes of event type %T", event)
	}
}

// expandNote flattens a note's grace-note tree into play order using an
// explicit work list, so arbitrarily deep trees cannot exhaust the stack.
func expandNote(note *events.Note) ([]events.Event, error) {
	if note == nil {
		return nil, music.Errorf("grace-note expansion hit a nil note")
	}

	type workItem struct {
		note *events.Note
		emit bool
	}
	stack := []workItem{{note: note}}
	var out []events.Event

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current.note == nil {
			return nil, music.Errorf("grace-note list holds a nil note")
		}
		if current.emit {
			flat := current.note.Clone()
			flat.Grace, flat.AfterGrace = nil, nil
			out = append(out, flat)
			continue
		}

		n := current.note
		for i := len(n.AfterGrace) - 1; i >= 0; i-- {
			stack = append(stack, workItem{note: n.AfterGrace[i]})
		}
		stack = append(stack, workItem{note: n, emit: true})
		for i := len(n.Grace) - 1; i >= 0; i-- {
			stack = append(stack, workItem{note: n.Grace[i]})
		}
	}
	return out, nil
}
