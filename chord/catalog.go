package chord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/notewheel/model"
	"github.com/jsphweid/notewheel/pitch"
)

var ErrUnknownChordType = errors.New("unknown chord type")

type Pattern = []int

type Type struct {
	Suffix    string
	Name      string
	Intervals Pattern
}

const Fifth = "f"

// NOTE: order matters, it is the order matches are reported in for a root
var catalog = []Type{
	{Suffix: "", Name: "major", Intervals: Pattern{0, 4, 7}},
	{Suffix: "7", Name: "dominant 7th", Intervals: Pattern{0, 4, 7, 10}},
	{Suffix: "maj7", Name: "major 7th", Intervals: Pattern{0, 4, 7, 11}},
	{Suffix: "m", Name: "minor", Intervals: Pattern{0, 3, 7}},
	{Suffix: "m7", Name: "minor 7th", Intervals: Pattern{0, 3, 7, 10}},
	{Suffix: Fifth, Name: "fifth", Intervals: Pattern{0, 7}},
	{Suffix: "dim", Name: "diminished", Intervals: Pattern{0, 3, 6}},
	{Suffix: "m7b5", Name: "half-diminished 7th", Intervals: Pattern{0, 3, 6, 10}},
	{Suffix: "dim7", Name: "diminished 7th", Intervals: Pattern{0, 3, 6, 9}},
	{Suffix: "aug", Name: "augmented", Intervals: Pattern{0, 4, 8}},
}

// triads used when a scale degree quality is turned into notes
var triads = map[string]Pattern{
	model.QualityMajor:      {0, 4, 7},
	model.QualityMinor:      {0, 3, 7},
	model.QualityDiminished: {0, 3, 6},
	model.QualityAugmented:  {0, 4, 8},
}

func unknownChord(suffix string) error {
	return fault.Wrap(ErrUnknownChordType,
		fmsg.WithDesc(fmt.Sprintf("chord suffix %q", suffix), "That chord type is not in the catalog."),
		ftag.With(ftag.NotFound),
	)
}

func Types() []Type {
	res := make([]Type, len(catalog))
	copy(res, catalog)
	return res
}

func PatternFor(suffix string) (Pattern, error) {
	for _, t := range catalog {
		if t.Suffix == suffix {
			res := make(Pattern, len(t.Intervals))
			copy(res, t.Intervals)
			return res, nil
		}
	}
	return nil, unknownChord(suffix)
}

func TriadFor(quality string) (Pattern, error) {
	p, ok := triads[quality]
	if !ok {
		return nil, unknownChord(quality)
	}
	return p, nil
}

func spell(root string, intervals Pattern) (model.Notes, error) {
	res := make(model.Notes, 0, len(intervals))
	for _, offset := range intervals {
		n, err := pitch.Transpose(root, offset)
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, nil
}

// Build spells the chord root+suffix in interval order.
func Build(root string, suffix string) (model.Notes, error) {
	p, err := PatternFor(suffix)
	if err != nil {
		return nil, err
	}
	return spell(root, p)
}

// BuildTriad spells a scale-degree triad of the given quality.
func BuildTriad(root string, quality string) (model.Notes, error) {
	p, err := TriadFor(quality)
	if err != nil {
		return nil, err
	}
	return spell(root, p)
}

// ParseSymbol splits a chord symbol like "F#m7" into root and suffix.
func ParseSymbol(symbol string) (string, string, error) {
	symbol = strings.TrimSpace(symbol)
	root := symbol
	if len(symbol) > 1 && symbol[1] == '#' {
		root = symbol[:2]
	} else if len(symbol) > 0 {
		root = symbol[:1]
	}
	if !pitch.IsValid(root) {
		_, err := pitch.NameToIndex(root)
		return "", "", err
	}
	suffix := symbol[len(root):]
	if _, err := PatternFor(suffix); err != nil {
		return "", "", err
	}
	return root, suffix, nil
}
