package scale

import (
	"github.com/jsphweid/notewheel/model"
	"github.com/jsphweid/notewheel/pitch"
	"github.com/jsphweid/notewheel/util"
)

// Engine holds the current root and scale type along with everything derived
// from them. It is not safe for concurrent use; a session guards it.
type Engine struct {
	root      string
	rootIndex int
	name      string
	pattern   Pattern

	// 1-indexed degree -> note, stored 0-indexed
	degrees []string
	inScale map[string]int
}

func NewEngine(root string, name string) (*Engine, error) {
	var e Engine
	if err := e.SetScale(root, name); err != nil {
		return nil, err
	}
	return &e, nil
}

// SetScale replaces the current scale and recomputes all derived state. On
// error the previous state is left untouched.
func (e *Engine) SetScale(root string, name string) error {
	pattern, err := PatternFor(name)
	if err != nil {
		return err
	}
	rootIndex, err := pitch.NameToIndex(root)
	if err != nil {
		return err
	}

	degrees := make([]string, len(pattern))
	inScale := make(map[string]int, len(pattern))
	for i, offset := range pattern {
		note, _ := pitch.IndexToName(util.Mod(rootIndex+offset, pitch.NumPitchClasses))
		degrees[i] = note
		inScale[note] = i + 1
	}

	e.root = root
	e.rootIndex = rootIndex
	e.name = name
	e.pattern = pattern
	e.degrees = degrees
	e.inScale = inScale
	return nil
}

func (e *Engine) Root() string { return e.root }
func (e *Engine) Type() string { return e.name }
func (e *Engine) Len() int     { return len(e.pattern) }

func (e *Engine) Pattern() Pattern {
	res := make(Pattern, len(e.pattern))
	copy(res, e.pattern)
	return res
}

// Notes returns the scale's notes in degree order.
func (e *Engine) Notes() []string {
	res := make([]string, len(e.degrees))
	copy(res, e.degrees)
	return res
}

// NoteForDegree wraps out of range degrees back into the scale, so degree 9
// of a pentatonic scale is degree 4.
func (e *Engine) NoteForDegree(d int) string {
	return e.degrees[e.wrapDegree(d)-1]
}

func (e *Engine) wrapDegree(d int) int {
	return util.Mod(d-1, len(e.pattern)) + 1
}

// NoteForChromaticOffset ignores the scale type entirely.
func (e *Engine) NoteForChromaticOffset(n int) string {
	note, _ := pitch.IndexToName(util.Mod(e.rootIndex+n, pitch.NumPitchClasses))
	return note
}

func (e *Engine) DegreeOf(note string) (int, bool) {
	d, ok := e.inScale[note]
	return d, ok
}

func (e *Engine) IsInScale(note string) bool {
	_, ok := e.inScale[note]
	return ok
}

// RelativeKey is a fixed lookup: major-family scales go down a minor third,
// everything else goes up one.
func (e *Engine) RelativeKey() string {
	if IsMajorFamily(e.name) {
		return e.NoteForChromaticOffset(-3)
	}
	return e.NoteForChromaticOffset(3)
}

func (e *Engine) ParentMajor() *string {
	res, _ := ParentMajorOf(e.root, e.name)
	return res
}

// ChordQualityForDegree stacks thirds inside the pattern. Scales shorter than
// five notes always report major. Interval shapes that are not a recognised
// triad also fall through to major.
func (e *Engine) ChordQualityForDegree(d int) string {
	n := len(e.pattern)
	if n < 5 {
		return model.QualityMajor
	}
	d = e.wrapDegree(d)

	root := e.pattern[d-1]
	third := util.Mod(e.pattern[(d+1)%n]-root, 12)
	fifth := util.Mod(e.pattern[(d+3)%n]-root, 12)

	switch {
	case third == 3 && fifth == 6:
		return model.QualityDiminished
	case third == 4 && fifth == 8:
		return model.QualityAugmented
	case third == 3:
		return model.QualityMinor
	default:
		return model.QualityMajor
	}
}

func (e *Engine) DegreeChords() []model.DegreeChord {
	res := make([]model.DegreeChord, 0, len(e.degrees))
	for i, note := range e.degrees {
		res = append(res, model.DegreeChord{
			Degree:  i + 1,
			Note:    note,
			Quality: e.ChordQualityForDegree(i + 1),
		})
	}
	return res
}

func (e *Engine) State() model.ScaleState {
	return model.ScaleState{
		Root:        e.root,
		Type:        e.name,
		Notes:       e.Notes(),
		RelativeKey: e.RelativeKey(),
		ParentMajor: e.ParentMajor(),
	}
}
