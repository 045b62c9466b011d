package scale

import (
	"errors"
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/notewheel/pitch"
)

var ErrUnknownScaleType = errors.New("unknown scale type")

type Pattern = []int

const (
	Major           = "Major"
	Minor           = "Minor"
	MinorPentatonic = "Minor Pentatonic"
	MajorPentatonic = "Major Pentatonic"
	Blues           = "Blues"
	HarmonicMinor   = "Harmonic Minor"
	MelodicMinor    = "Melodic Minor"
	Ionian          = "Ionian"
	Dorian          = "Dorian"
	Phrygian        = "Phrygian"
	Lydian          = "Lydian"
	Mixolydian      = "Mixolydian"
	Aeolian         = "Aeolian"
	Locrian         = "Locrian"
)

// order is the listing order for catalogs and menus
var order = []string{
	Major, Minor, MinorPentatonic, MajorPentatonic, Blues, HarmonicMinor, MelodicMinor,
	Ionian, Dorian, Phrygian, Lydian, Mixolydian, Aeolian, Locrian,
}

var patterns = map[string]Pattern{
	Major:           {0, 2, 4, 5, 7, 9, 11},
	Minor:           {0, 2, 3, 5, 7, 8, 10},
	MinorPentatonic: {0, 3, 5, 7, 10},
	MajorPentatonic: {0, 2, 4, 7, 9},
	Blues:           {0, 3, 5, 6, 7, 10},
	HarmonicMinor:   {0, 2, 3, 5, 7, 8, 11},
	MelodicMinor:    {0, 2, 3, 5, 7, 9, 11},
	Ionian:          {0, 2, 4, 5, 7, 9, 11},
	Dorian:          {0, 2, 3, 5, 7, 9, 10},
	Phrygian:        {0, 1, 3, 5, 7, 8, 10},
	Lydian:          {0, 2, 4, 6, 7, 9, 11},
	Mixolydian:      {0, 2, 4, 5, 7, 9, 10},
	Aeolian:         {0, 2, 3, 5, 7, 8, 10},
	Locrian:         {0, 1, 3, 5, 6, 8, 10},
}

// semitones from a mode's root to the root of its parent major scale
var modeOffsets = map[string]int{
	Ionian:     0,
	Dorian:     -2,
	Phrygian:   -4,
	Lydian:     -5,
	Mixolydian: -7,
	Aeolian:    -9,
	Locrian:    -11,
}

var majorFamily = map[string]bool{
	Major:           true,
	Ionian:          true,
	Lydian:          true,
	Mixolydian:      true,
	MajorPentatonic: true,
}

func unknownScale(name string) error {
	return fault.Wrap(ErrUnknownScaleType,
		fmsg.WithDesc(fmt.Sprintf("scale type %q", name), "That scale type is not in the catalog."),
		ftag.With(ftag.NotFound),
	)
}

func Types() []string {
	res := make([]string, len(order))
	copy(res, order)
	return res
}

func IsKnown(name string) bool {
	_, ok := patterns[name]
	return ok
}

// PatternFor returns a copy of the interval pattern for a scale type.
func PatternFor(name string) (Pattern, error) {
	p, ok := patterns[name]
	if !ok {
		return nil, unknownScale(name)
	}
	res := make(Pattern, len(p))
	copy(res, p)
	return res, nil
}

func IsMajorFamily(name string) bool {
	return majorFamily[name]
}

// ParentMajorOf returns the root of the major scale a mode is drawn from, or
// nil when the scale type is not a registered mode or is itself the tonic form.
func ParentMajorOf(root string, name string) (*string, error) {
	if !IsKnown(name) {
		return nil, unknownScale(name)
	}
	offset, ok := modeOffsets[name]
	if !ok {
		return nil, nil
	}
	parent, err := pitch.Transpose(root, offset)
	if err != nil {
		return nil, err
	}
	if parent == root {
		return nil, nil
	}
	return &parent, nil
}
