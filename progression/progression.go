package progression

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/notewheel/chord"
	"github.com/jsphweid/notewheel/model"
	"github.com/jsphweid/notewheel/util"
)

var (
	ErrUnknownProgression = errors.New("unknown progression")
	ErrIdle               = errors.New("no progression selected")
)

const TwelveBarBlues = "12-bar-blues"

type Progression struct {
	Name  string
	Steps []int
}

var catalog = []Progression{
	{Name: "1-4-5-1", Steps: []int{1, 4, 5, 1}},
	{Name: "1-5-6-4", Steps: []int{1, 5, 6, 4}},
	{Name: "2-5-1", Steps: []int{2, 5, 1}},
	{Name: "1-6-4-5", Steps: []int{1, 6, 4, 5}},
	{Name: "6-4-1-5", Steps: []int{6, 4, 1, 5}},
	{Name: "1-4-6-5", Steps: []int{1, 4, 6, 5}},
	{Name: TwelveBarBlues, Steps: []int{1, 1, 1, 1, 4, 4, 1, 1, 5, 4, 1, 5}},
}

var numerals = []string{"I", "II", "III", "IV", "V", "VI", "VII"}

// Scale is the part of the scale engine a progression resolves against.
type Scale interface {
	NoteForDegree(d int) string
	ChordQualityForDegree(d int) string
}

func Names() []string {
	res := make([]string, 0, len(catalog))
	for _, p := range catalog {
		res = append(res, p.Name)
	}
	return res
}

func Lookup(name string) (Progression, error) {
	for _, p := range catalog {
		if p.Name == name {
			return p, nil
		}
	}
	return Progression{}, fault.Wrap(ErrUnknownProgression,
		fmsg.WithDesc(fmt.Sprintf("progression %q", name), "That progression is not in the catalog."),
		ftag.With(ftag.NotFound),
	)
}

// Numeral renders a degree as a roman numeral in the case its quality implies.
func Numeral(degree int, quality string) string {
	n := numerals[util.Mod(degree-1, len(numerals))]
	switch quality {
	case model.QualityMinor:
		return strings.ToLower(n)
	case model.QualityDiminished:
		return strings.ToLower(n) + "°"
	case model.QualityAugmented:
		return n + "+"
	default:
		return n
	}
}

// Engine is a cursor over one progression. The zero value is idle.
type Engine struct {
	current *Progression
	step    int
}

// SetProgression selects a progression and rewinds to its first step. An
// empty name makes the engine idle.
func (e *Engine) SetProgression(name string) error {
	if name == "" {
		e.current = nil
		e.step = 0
		return nil
	}
	p, err := Lookup(name)
	if err != nil {
		return err
	}
	e.current = &p
	e.step = 0
	return nil
}

func (e *Engine) Active() bool { return e.current != nil }

func (e *Engine) Name() string {
	if e.current == nil {
		return ""
	}
	return e.current.Name
}

func (e *Engine) Step() int { return e.step }

func (e *Engine) Next() error {
	if e.current == nil {
		return ErrIdle
	}
	e.step = (e.step + 1) % len(e.current.Steps)
	return nil
}

func (e *Engine) Previous() error {
	if e.current == nil {
		return ErrIdle
	}
	n := len(e.current.Steps)
	e.step = (e.step - 1 + n) % n
	return nil
}

// CurrentChord resolves the step under the cursor against the live scale.
// It returns nil while idle.
func (e *Engine) CurrentChord(s Scale) *model.ProgressionChord {
	if e.current == nil {
		return nil
	}
	degree := e.current.Steps[e.step]
	quality := s.ChordQualityForDegree(degree)
	numeral := Numeral(degree, quality)
	count := len(e.current.Steps)
	return &model.ProgressionChord{
		Progression: e.current.Name,
		Degree:      degree,
		Root:        s.NoteForDegree(degree),
		Quality:     quality,
		Numeral:     numeral,
		Step:        e.step,
		StepCount:   count,
		Label:       fmt.Sprintf("%s (%d/%d)", numeral, e.step+1, count),
	}
}

func (e *Engine) CurrentChordNotes(s Scale) (model.Notes, error) {
	c := e.CurrentChord(s)
	if c == nil {
		return nil, ErrIdle
	}
	return chord.BuildTriad(c.Root, c.Quality)
}
