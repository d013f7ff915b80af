package indicator

import (
	"strconv"
	"strings"

	"github.com/musekit/musekit/pkg/music"
)

// ParsePlaying reads a playing indicator collection from a compact string:
// statements are separated by ";", each one either a bare indicator name
// ("tie") or a dotted assignment ("tremolo.flag_count = 3").
func ParsePlaying(s string) (*PlayingCollection, error) {
	collection := &PlayingCollection{}
	if err := eachStatement(s, collection.set); err != nil {
		return nil, err
	}
	return collection, nil
}

// ParseNotation reads a notation indicator collection, same syntax as
// ParsePlaying ("clef.name = treble; ottava.octave_count = -1").
func ParseNotation(s string) (*NotationCollection, error) {
	collection := &NotationCollection{}
	if err := eachStatement(s, collection.set); err != nil {
		return nil, err
	}
	return collection, nil
}

func eachStatement(s string, set func(path, value string) error) error {
	for _, statement := range strings.Split(s, ";") {
		statement = strings.TrimSpace(statement)
		if statement == "" {
			continue
		}
		path, value := statement, ""
		if i := strings.IndexByte(statement, '='); i >= 0 {
			path = strings.TrimSpace(statement[:i])
			value = strings.TrimSpace(statement[i+1:])
		}
		if err := set(path, value); err != nil {
			return err
		}
	}
	return nil
}

func (c *PlayingCollection) set(path, value string) error {
	switch path {
	case "tie":
		return setBool(&c.Tie, path, value)
	case "prall":
		return setBool(&c.Prall, path, value)
	case "flageolet":
		return setBool(&c.Flageolet, path, value)
	case "bartok_pizzicato":
		return setBool(&c.BartokPizzicato, path, value)
	case "laissez_vibrer":
		return setBool(&c.LaissezVibrer, path, value)
	case "glissando":
		return setBool(&c.Glissando, path, value)
	case "breath_mark":
		return setBool(&c.BreathMark, path, value)
	case "optional":
		return setBool(&c.Optional, path, value)
	case "duration_line_dashed":
		return setBool(&c.DurationLineDashed, path, value)
	case "duration_line_triller":
		return setBool(&c.DurationLineTriller, path, value)
	case "articulation.name":
		c.Articulation.Name = unquote(value)
		return nil
	case "tremolo.flag_count":
		count, err := strconv.Atoi(value)
		if err != nil {
			return music.Errorf("tremolo.flag_count needs an integer, got %q", value)
		}
		c.Tremolo.FlagCount = count
		return nil
	case "arpeggio.direction":
		direction := unquote(value)
		if direction != ArpeggioUp && direction != ArpeggioDown {
			return music.Errorf("arpeggio.direction must be %q or %q, got %q", ArpeggioUp, ArpeggioDown, direction)
		}
		c.Arpeggio.Direction = direction
		return nil
	case "fermata.kind":
		c.Fermata.Kind = unquote(value)
		return nil
	case "hairpin.symbol":
		c.Hairpin.Symbol = unquote(value)
		return nil
	default:
		return music.Errorf("unknown playing indicator %q", path)
	}
}

func (c *NotationCollection) set(path, value string) error {
	switch path {
	case "clef.name":
		c.Clef.Name = unquote(value)
		return nil
	case "ottava.octave_count":
		count, err := strconv.Atoi(value)
		if err != nil {
			return music.Errorf("ottava.octave_count needs an integer, got %q", value)
		}
		c.Ottava.OctaveCount = count
		return nil
	case "bar_line.abbreviation":
		c.BarLine.Abbreviation = unquote(value)
		return nil
	case "margin_markup.content":
		c.MarginMarkup.Content = unquote(value)
		return nil
	default:
		return music.Errorf("unknown notation indicator %q", path)
	}
}

// setBool handles explicit indicators: a bare name activates, an assigned
// value must read as a bool.
func setBool(target *bool, path, value string) error {
	if value == "" {
		*target = true
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return music.Errorf("indicator %q needs a bool, got %q", path, value)
	}
	*target = parsed
	return nil
}

func unquote(value string) string {
	if len(value) >= 2 {
		if (value[0] == '\'' && value[len(value)-1] == '\'') || (value[0] == '"' && value[len(value)-1] == '"') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
