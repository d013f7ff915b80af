package converter

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/musekit/musekit/pkg/events"
	"github.com/musekit/musekit/pkg/music"
	"github.com/musekit/musekit/pkg/pitch"
	"github.com/musekit/musekit/pkg/volume"
)

// MIDIConverter renders event trees to standard MIDI files and reads them
// back. Durations in beats map to quarter notes.
type MIDIConverter struct {
	ticksPerQuarter uint32
	tempo           float64
}

// NewMIDIConverter creates a converter with 960 ticks per quarter at 120
// bpm.
func NewMIDIConverter() *MIDIConverter {
	return &MIDIConverter{
		ticksPerQuarter: 960,
		tempo:           120.0,
	}
}

// SetTempo overrides the tempo written into generated files.
func (m *MIDIConverter) SetTempo(bpm float64) error {
	if bpm <= 0 {
		return music.Errorf("tempo must be positive, got %v", bpm)
	}
	m.tempo = bpm
	return nil
}

// GenerateMIDI renders an event to MIDI file bytes. A Sequence becomes one
// track; a Concurrence becomes one track per branch. Grace notes must be
// expanded beforehand.
func (m *MIDIConverter) GenerateMIDI(event events.Event) ([]byte, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(m.ticksPerQuarter)

	var branches []events.Event
	if concurrence, ok := event.(*events.Concurrence); ok {
		branches = concurrence.Events
	} else {
		branches = []events.Event{event}
	}
	if len(branches) == 0 {
		return nil, music.Errorf("cannot render an empty event to MIDI")
	}

	for i, branch := range branches {
		track, err := m.renderTrack(branch, i == 0)
		if err != nil {
			return nil, err
		}
		if err := s.Add(track); err != nil {
			return nil, fmt.Errorf("failed to add track: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders an event and writes it to a .mid file.
func (m *MIDIConverter) WriteFile(path string, event events.Event) error {
	data, err := m.GenerateMIDI(event)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write MIDI file: %w", err)
	}
	return nil
}

func (m *MIDIConverter) renderTrack(event events.Event, withMeta bool) (smf.Track, error) {
	var track smf.Track

	if withMeta {
		microsecondsPerBeat := uint32(60000000.0 / m.tempo)
		tempoData := smf.Message([]byte{
			0xFF, 0x51, 0x03,
			byte(microsecondsPerBeat >> 16),
			byte(microsecondsPerBeat >> 8),
			byte(microsecondsPerBeat),
		})
		track.Add(0, tempoData)

		// 4/4 time signature
		timeSigData := smf.Message([]byte{0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08})
		track.Add(0, timeSigData)
	}

	notes, err := flattenNotes(event)
	if err != nil {
		return nil, err
	}

	channel := uint8(0)
	pendingDelta := uint32(0)
	for _, n := range notes {
		durationTicks := uint32(math.Round(n.Duration() * float64(m.ticksPerQuarter)))
		if n.IsRest() {
			pendingDelta += durationTicks
			continue
		}

		velocity := uint8(100)
		if n.Volume != nil {
			velocity = uint8(volume.MidiVelocity(n.Volume))
		}
		keys := make([]uint8, 0, len(n.Pitches))
		for _, p := range n.Pitches {
			keys = append(keys, clampKey(pitch.MidiNumber(p)))
		}

		for i, key := range keys {
			delta := uint32(0)
			if i == 0 {
				delta = pendingDelta
			}
			track.Add(delta, midi.NoteOn(channel, key, velocity))
		}
		for i, key := range keys {
			delta := uint32(0)
			if i == 0 {
				delta = durationTicks
			}
			track.Add(delta, midi.NoteOff(channel, key))
		}
		pendingDelta = 0
	}

	track.Close(pendingDelta)
	return track, nil
}

// flattenNotes walks an already grace-expanded event into play order.
func flattenNotes(event events.Event) ([]*events.Note, error) {
	switch e := event.(type) {
	case *events.Note:
		return []*events.Note{e}, nil
	case *events.Sequence:
		var notes []*events.Note
		for _, child := range e.Events {
			childNotes, err := flattenNotes(child)
			if err != nil {
				return nil, err
			}
			notes = append(notes, childNotes...)
		}
		return notes, nil
	default:
		return nil, music.Errorf("cannot render event type %T into a MIDI track", event)
	}
}

func clampKey(midiNumber float64) uint8 {
	key := math.Round(midiNumber)
	if key < 0 {
		key = 0
	}
	if key > 127 {
		key = 127
	}
	return uint8(key)
}

// ParseMIDI reads MIDI file bytes back into a Sequence of notes and rests.
// Notes starting and ending together merge into chords; overlaps beyond
// that flatten sequentially.
func (m *MIDIConverter) ParseMIDI(data []byte) (*events.Sequence, error) {
	reader := bytes.NewReader(data)
	s, err := smf.ReadFrom(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIDI: %w", err)
	}

	ticksPerQuarter := m.ticksPerQuarter
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		ticksPerQuarter = uint32(mt.Resolution())
	}

	type span struct {
		start    int64
		end      int64
		note     uint8
		velocity uint8
	}
	var spans []span
	active := map[uint8]span{}

	for _, track := range s.Tracks {
		currentTick := int64(0)
		for _, ev := range track {
			currentTick += int64(ev.Delta)
			msg := ev.Message
			if len(msg) < 3 {
				continue
			}
			status, noteNum, velocity := msg[0], msg[1], msg[2]

			// Note On (0x90-0x9F) with velocity
			if status >= 0x90 && status <= 0x9F && velocity > 0 {
				active[noteNum] = span{start: currentTick, note: noteNum, velocity: velocity}
			}
			// Note Off (0x80-0x8F) or Note On with velocity 0
			if (status >= 0x80 && status <= 0x8F) || (status >= 0x90 && status <= 0x9F && velocity == 0) {
				if open, ok := active[noteNum]; ok {
					open.end = currentTick
					spans = append(spans, open)
					delete(active, noteNum)
				}
			}
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].note < spans[j].note
	})

	sequence := &events.Sequence{}
	cursor := int64(0)
	for i := 0; i < len(spans); {
		current := spans[i]
		if gap := current.start - cursor; gap > 0 {
			rest, err := events.NewRest(float64(gap) / float64(ticksPerQuarter))
			if err != nil {
				return nil, err
			}
			sequence.Append(rest)
		}

		// Group simultaneous spans of equal length into one chord.
		j := i
		var pitches []pitch.Pitch
		for ; j < len(spans) && spans[j].start == current.start && spans[j].end == current.end; j++ {
			p, err := pitch.NewDirect(music.MidiNumberToHertz(float64(spans[j].note)))
			if err != nil {
				return nil, err
			}
			pitches = append(pitches, p)
		}

		decibel := volume.MinimumDecibel +
			float64(current.velocity)/float64(volume.MaximumVelocity)*(volume.MaximumDecibel-volume.MinimumDecibel)
		duration := float64(current.end-current.start) / float64(ticksPerQuarter)
		note, err := events.NewNote(pitches, duration, volume.Decibel(decibel))
		if err != nil {
			return nil, err
		}
		sequence.Append(note)

		cursor = current.end
		i = j
	}
	return sequence, nil
}
