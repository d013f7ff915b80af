package converter

import (
	"github.com/musekit/musekit/pkg/events"
)

// Pipeline runs the full performance expansion: grace notes first, then
// playing indicators. The result contains plain notes and rests only and
// is ready for MIDI rendering.
type Pipeline struct {
	grace   *GraceNotes
	playing []PlayingConverter
}

// NewPipeline creates a pipeline with the default playing converters.
func NewPipeline() *Pipeline {
	return &Pipeline{
		grace:   NewGraceNotes(),
		playing: DefaultPlayingConverters(),
	}
}

// NewPipelineWith creates a pipeline with a custom converter list.
func NewPipelineWith(converters ...PlayingConverter) *Pipeline {
	return &Pipeline{
		grace:   NewGraceNotes(),
		playing: converters,
	}
}

// Render expands an event tree into performable notes.
func (p *Pipeline) Render(event events.Event) (events.Event, error) {
	expanded, err := p.grace.Convert(event)
	if err != nil {
		return nil, err
	}
	return ApplyPlaying(expanded, p.playing...)
}

// RenderMIDI expands an event tree and renders it to MIDI file bytes.
func (p *Pipeline) RenderMIDI(event events.Event) ([]byte, error) {
	rendered, err := p.Render(event)
	if err != nil {
		return nil, err
	}
	return NewMIDIConverter().GenerateMIDI(rendered)
}

// RenderMIDIFile expands an event tree and writes it to a .mid file.
func (p *Pipeline) RenderMIDIFile(path string, event events.Event) error {
	rendered, err := p.Render(event)
	if err != nil {
		return err
	}
	return NewMIDIConverter().WriteFile(path, rendered)
}
