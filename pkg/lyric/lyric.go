// Package lyric carries sung text attached to events.
package lyric

import "github.com/musekit/musekit/pkg/music"

// Lyric is text written under a note.
type Lyric interface {
	Written() string
}

// Text is a plain lyric.
type Text string

// Written returns the lyric text.
func (t Text) Written() string { return string(t) }

// Syllable is a lyric fragment that may close a word.
type Syllable struct {
	Text   string
	IsLast bool
}

// Written returns the syllable text.
func (s Syllable) Written() string { return s.Text }

// FromAny coerces a value into a Lyric: strings become plain text lyrics.
func FromAny(value any) (Lyric, error) {
	switch v := value.(type) {
	case Lyric:
		return v, nil
	case string:
		return Text(v), nil
	default:
		return nil, music.Errorf("cannot build a lyric from %T", value)
	}
}
