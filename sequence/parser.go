package sequence

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/notewheel/constants"
	"github.com/jsphweid/notewheel/model"
	"github.com/jsphweid/notewheel/pitch"
	"github.com/jsphweid/notewheel/scale"
)

var ErrMalformedSequence = errors.New("malformed sequence")

const (
	sectionSep = "|"
	eventSep   = ";"
	noteSep    = "+"
	fieldSep   = ","
)

var (
	absoluteRe = regexp.MustCompile(`^[A-G]#?$`)
	degreeRe   = regexp.MustCompile(`^-?\d+$`)
	offsetRe   = regexp.MustCompile(`^s-?\d+$`)
)

func malformed(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fault.Wrap(ErrMalformedSequence,
		fmsg.WithDesc(msg, "The demo sequence could not be read: "+msg),
		ftag.With(ftag.InvalidArgument),
	)
}

// DefaultSustain is the sustain used when only a duration is given.
func DefaultSustain(duration time.Duration) time.Duration {
	return duration * constants.SustainPercent / 100
}

// ParseNote classifies a single note token. Tokens that fit none of the forms
// come back as model.NoteRaw.
func ParseNote(token string) model.NoteSpec {
	switch {
	case absoluteRe.MatchString(token):
		return model.NoteSpec{Kind: model.NoteAbsolute, Name: token, Text: token}
	case degreeRe.MatchString(token):
		v, _ := strconv.Atoi(token)
		return model.NoteSpec{Kind: model.NoteDegree, Value: v, Text: token}
	case offsetRe.MatchString(token):
		v, _ := strconv.Atoi(token[1:])
		return model.NoteSpec{Kind: model.NoteOffset, Value: v, Text: token}
	default:
		return model.NoteSpec{Kind: model.NoteRaw, Text: token}
	}
}

// Parse reads the compact form:
//
//	temperament,root,scale,fifths,chromaticColors|note+note;note|duration,sustain
//
// Every config field is optional and positional. One timing applies to all
// events.
func Parse(input string) (*model.Sequence, error) {
	sections := strings.Split(strings.TrimSpace(input), sectionSep)
	if len(sections) < 2 {
		return nil, malformed("missing %q between config and events", sectionSep)
	}
	if len(sections) > 3 {
		return nil, malformed("expected at most 3 sections, got %d", len(sections))
	}

	config, err := parseConfig(sections[0])
	if err != nil {
		return nil, err
	}

	duration := constants.DefaultDuration
	sustain := DefaultSustain(duration)
	if len(sections) == 3 {
		duration, sustain, err = parseTiming(sections[2])
		if err != nil {
			return nil, err
		}
	}

	events, err := parseEvents(sections[1], duration, sustain)
	if err != nil {
		return nil, err
	}

	return &model.Sequence{Config: config, Events: events}, nil
}

func parseConfig(section string) (model.SequenceConfig, error) {
	var c model.SequenceConfig
	if strings.TrimSpace(section) == "" {
		return c, nil
	}
	fields := strings.Split(section, fieldSep)
	if len(fields) > 5 {
		return c, malformed("config has %d fields, at most 5 allowed", len(fields))
	}
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v := f
		switch i {
		case 0:
			c.Temperament = &v
		case 1:
			if !pitch.IsValid(v) {
				return c, malformed("config root %q is not a note", v)
			}
			c.Root = &v
		case 2:
			if !scale.IsKnown(v) {
				return c, malformed("config scale %q is not a known scale type", v)
			}
			c.Scale = &v
		case 3, 4:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return c, malformed("config field %d %q is not a boolean", i+1, v)
			}
			if i == 3 {
				c.Fifths = &b
			} else {
				c.ChromaticColors = &b
			}
		}
	}
	return c, nil
}

func parseTiming(section string) (time.Duration, time.Duration, error) {
	section = strings.TrimSpace(section)
	if section == "" {
		d := constants.DefaultDuration
		return d, DefaultSustain(d), nil
	}
	fields := strings.Split(section, fieldSep)
	if len(fields) > 2 {
		return 0, 0, malformed("timing %q has more than duration and sustain", section)
	}
	ms, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil || ms <= 0 {
		return 0, 0, malformed("duration %q must be a positive integer", fields[0])
	}
	duration := time.Duration(ms) * time.Millisecond
	if len(fields) == 1 || strings.TrimSpace(fields[1]) == "" {
		return duration, DefaultSustain(duration), nil
	}
	ms, err = strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil || ms < 0 {
		return 0, 0, malformed("sustain %q must be a non-negative integer", fields[1])
	}
	return duration, time.Duration(ms) * time.Millisecond, nil
}

func parseEvents(section string, duration, sustain time.Duration) ([]model.Event, error) {
	section = strings.TrimSpace(section)
	if section == "" {
		return nil, nil
	}
	var events []model.Event
	for i, raw := range strings.Split(section, eventSep) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, malformed("event %d is empty", i+1)
		}
		var notes []model.NoteSpec
		for j, token := range strings.Split(raw, noteSep) {
			token = strings.TrimSpace(token)
			if token == "" {
				return nil, malformed("event %d note %d is empty", i+1, j+1)
			}
			notes = append(notes, ParseNote(token))
		}
		events = append(events, model.Event{Notes: notes, Duration: duration, Sustain: sustain})
	}
	return events, nil
}
