package sequence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jsphweid/notewheel/constants"
	"github.com/jsphweid/notewheel/model"
	"github.com/jsphweid/notewheel/pitch"
	"github.com/jsphweid/notewheel/scale"
)

// DemoParam is the query parameter a shared link carries its sequence in.
const DemoParam = "demo"

type objectSequence struct {
	Config model.SequenceConfig `json:"config"`
	Events []objectEvent        `json:"events"`
}

type objectEvent struct {
	Notes    []json.RawMessage `json:"notes"`
	Duration *int              `json:"duration"`
	Sustain  *int              `json:"sustain"`
}

// ParseJSON reads the structured form, which unlike the compact form allows
// timing per event. Notes may be strings in any compact note form or bare
// numbers for scale degrees.
func ParseJSON(data []byte) (*model.Sequence, error) {
	var obj objectSequence
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&obj); err != nil {
		return nil, malformed("invalid json: %v", err)
	}

	c := obj.Config
	if c.Root != nil && !pitch.IsValid(*c.Root) {
		return nil, malformed("config root %q is not a note", *c.Root)
	}
	if c.Scale != nil && !scale.IsKnown(*c.Scale) {
		return nil, malformed("config scale %q is not a known scale type", *c.Scale)
	}

	seq := model.Sequence{Config: c}
	for i, e := range obj.Events {
		if len(e.Notes) == 0 {
			return nil, malformed("event %d has no notes", i+1)
		}
		duration := constants.DefaultDuration
		if e.Duration != nil {
			if *e.Duration <= 0 {
				return nil, malformed("event %d duration must be positive", i+1)
			}
			duration = time.Duration(*e.Duration) * time.Millisecond
		}
		sustain := DefaultSustain(duration)
		if e.Sustain != nil {
			if *e.Sustain < 0 {
				return nil, malformed("event %d sustain must not be negative", i+1)
			}
			sustain = time.Duration(*e.Sustain) * time.Millisecond
		}

		var notes []model.NoteSpec
		for j, raw := range e.Notes {
			n, err := parseObjectNote(raw)
			if err != nil {
				return nil, malformed("event %d note %d: %v", i+1, j+1, err)
			}
			notes = append(notes, n)
		}
		seq.Events = append(seq.Events, model.Event{Notes: notes, Duration: duration, Sustain: sustain})
	}
	return &seq, nil
}

func parseObjectNote(raw json.RawMessage) (model.NoteSpec, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return model.NoteSpec{}, fmt.Errorf("empty note")
		}
		return ParseNote(s), nil
	}
	var d int
	if err := json.Unmarshal(raw, &d); err == nil {
		return model.NoteSpec{Kind: model.NoteDegree, Value: d, Text: fmt.Sprint(d)}, nil
	}
	return model.NoteSpec{}, fmt.Errorf("note must be a string or an integer, got %s", string(raw))
}

// FromURL pulls the demo parameter out of a link and parses it. ok is false
// when the link has no demo. The value is unescaped without turning '+' into
// a space, since '+' joins chord notes.
func FromURL(raw string) (seq *model.Sequence, ok bool, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, false, malformed("invalid url: %v", err)
	}
	for _, pair := range strings.Split(u.RawQuery, "&") {
		key, value, _ := strings.Cut(pair, "=")
		if key != DemoParam {
			continue
		}
		decoded, err := url.PathUnescape(value)
		if err != nil {
			return nil, true, malformed("demo parameter is not url encoded: %v", err)
		}
		seq, err := Parse(decoded)
		return seq, true, err
	}
	return nil, false, nil
}

// Format writes a sequence back in compact form. The compact form has one
// timing for all events, so sequences with mixed timing are rejected.
func Format(seq *model.Sequence) (string, error) {
	var b strings.Builder
	b.WriteString(formatConfig(seq.Config))
	b.WriteString(sectionSep)

	if len(seq.Events) == 0 {
		return b.String(), nil
	}

	events := make([]string, 0, len(seq.Events))
	first := seq.Events[0]
	for i, e := range seq.Events {
		if e.Duration != first.Duration || e.Sustain != first.Sustain {
			return "", malformed("event %d timing differs from the first event", i+1)
		}
		notes := make([]string, 0, len(e.Notes))
		for _, n := range e.Notes {
			notes = append(notes, n.String())
		}
		events = append(events, strings.Join(notes, noteSep))
	}
	b.WriteString(strings.Join(events, eventSep))
	b.WriteString(sectionSep)
	fmt.Fprintf(&b, "%d", first.Duration.Milliseconds())
	if first.Sustain != DefaultSustain(first.Duration) {
		fmt.Fprintf(&b, "%s%d", fieldSep, first.Sustain.Milliseconds())
	}
	return b.String(), nil
}

// Link builds a shareable query string for a sequence.
func Link(base string, seq *model.Sequence) (string, error) {
	compact, err := Format(seq)
	if err != nil {
		return "", err
	}
	return base + "?" + DemoParam + "=" + url.PathEscape(compact), nil
}

func formatConfig(c model.SequenceConfig) string {
	str := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	boolean := func(b *bool) string {
		if b == nil {
			return ""
		}
		return fmt.Sprint(*b)
	}
	fields := []string{str(c.Temperament), str(c.Root), str(c.Scale), boolean(c.Fifths), boolean(c.ChromaticColors)}
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, fieldSep)
}
