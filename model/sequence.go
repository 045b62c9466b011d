package model

import (
	"strconv"
	"time"
)

type NoteKind int

const (
	// NoteRaw is a token none of the other forms recognised. It is kept as is
	// and fails later when something tries to sound it.
	NoteRaw NoteKind = iota
	NoteAbsolute
	NoteDegree
	NoteOffset
)

// NoteSpec is a note reference as written in a sequence, resolved against the
// live scale only when the event plays.
type NoteSpec struct {
	Kind  NoteKind
	Name  string
	Value int
	Text  string
}

func (n NoteSpec) String() string {
	switch n.Kind {
	case NoteAbsolute:
		return n.Name
	case NoteDegree:
		return strconv.Itoa(n.Value)
	case NoteOffset:
		return "s" + strconv.Itoa(n.Value)
	default:
		return n.Text
	}
}

// SequenceConfig is a patch: nil fields leave that part of the session alone.
type SequenceConfig struct {
	Temperament     *string `json:"temperament,omitempty"`
	Root            *string `json:"root,omitempty"`
	Scale           *string `json:"scale,omitempty"`
	Fifths          *bool   `json:"fifths,omitempty"`
	ChromaticColors *bool   `json:"chromatic_colors,omitempty"`
}

func (c SequenceConfig) IsEmpty() bool {
	return c.Temperament == nil && c.Root == nil && c.Scale == nil &&
		c.Fifths == nil && c.ChromaticColors == nil
}

type Event struct {
	Notes    []NoteSpec
	Duration time.Duration
	Sustain  time.Duration
}

type Sequence struct {
	Config SequenceConfig
	Events []Event
}

// Step is an event after its notes have been resolved to names.
type Step struct {
	Notes    Notes
	Duration time.Duration
	Sustain  time.Duration
}
