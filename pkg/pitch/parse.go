package pitch

import (
	"strconv"
	"strings"

	"github.com/musekit/musekit/pkg/music"
)

// FromAny coerces a value into a Pitch. Strings containing "/" are read as
// just intonation ratios, strings starting with a diatonic letter as Western
// pitch names (trailing digits select the octave), and numbers or numeric
// strings as frequencies in hertz.
func FromAny(value any) (Pitch, error) {
	switch v := value.(type) {
	case Pitch:
		return v, nil
	case string:
		return fromString(v)
	case float64:
		return NewDirect(v)
	case float32:
		return NewDirect(float64(v))
	case int:
		return NewDirect(float64(v))
	case int64:
		return NewDirect(float64(v))
	default:
		return nil, music.Errorf("cannot build a pitch from %T", value)
	}
}

func fromString(s string) (Pitch, error) {
	if s == "" {
		return nil, music.Errorf("cannot build a pitch from an empty string")
	}
	if strings.Contains(s, "/") {
		return ParseRatio(s)
	}
	if s[0] >= 'a' && s[0] <= 'g' {
		return ParseWestern(s)
	}
	hertz, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, music.Errorf("cannot read %q as a pitch", s)
	}
	return NewDirect(hertz)
}

// ListFromAny coerces a value into a pitch list. Nil yields an empty list; a
// string is split on spaces with empty fields skipped; slices convert per
// element.
func ListFromAny(value any) ([]Pitch, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []Pitch:
		return v, nil
	case string:
		var pitches []Pitch
		for _, field := range strings.Fields(v) {
			p, err := fromString(field)
			if err != nil {
				return nil, err
			}
			pitches = append(pitches, p)
		}
		return pitches, nil
	case []string:
		pitches := make([]Pitch, 0, len(v))
		for _, field := range v {
			p, err := FromAny(field)
			if err != nil {
				return nil, err
			}
			pitches = append(pitches, p)
		}
		return pitches, nil
	case []any:
		pitches := make([]Pitch, 0, len(v))
		for _, element := range v {
			p, err := FromAny(element)
			if err != nil {
				return nil, err
			}
			pitches = append(pitches, p)
		}
		return pitches, nil
	default:
		p, err := FromAny(value)
		if err != nil {
			return nil, err
		}
		return []Pitch{p}, nil
	}
}

// IntervalFromAny coerces a value into an Interval. Strings containing "/"
// are just intonation ratios, other strings are Western interval names with
// a numeric fallback, and numbers are cents.
func IntervalFromAny(value any) (Interval, error) {
	switch v := value.(type) {
	case Interval:
		return v, nil
	case string:
		if v == "" {
			return nil, music.Errorf("cannot build an interval from an empty string")
		}
		if strings.Contains(v, "/") {
			return ParseRatio(v)
		}
		if interval, err := ParseWesternInterval(v); err == nil {
			return interval, nil
		}
		cents, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, music.Errorf("cannot read %q as an interval", v)
		}
		return Cents(cents), nil
	case float64:
		return Cents(v), nil
	case float32:
		return Cents(float64(v)), nil
	case int:
		return Cents(float64(v)), nil
	case int64:
		return Cents(float64(v)), nil
	default:
		return nil, music.Errorf("cannot build an interval from %T", value)
	}
}
