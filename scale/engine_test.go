package scale

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jsphweid/notewheel/model"
	"github.com/jsphweid/notewheel/pitch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternsAreWellFormed(t *testing.T) {
	for _, name := range Types() {
		t.Run(name, func(t *testing.T) {
			p, err := PatternFor(name)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, len(p), 5)
			assert.LessOrEqual(t, len(p), 7)
			assert.Equal(t, 0, p[0])
			for i := 1; i < len(p); i++ {
				assert.Greater(t, p[i], p[i-1])
				assert.Less(t, p[i], 12)
			}
		})
	}
}

func TestUnknownScaleType(t *testing.T) {
	_, err := PatternFor("Hirajoshi")
	assert.True(t, errors.Is(err, ErrUnknownScaleType))

	_, err = NewEngine("C", "Hirajoshi")
	assert.True(t, errors.Is(err, ErrUnknownScaleType))

	_, err = NewEngine("H", Major)
	assert.True(t, errors.Is(err, pitch.ErrInvalidNote))
}

func TestFailedSetScaleKeepsState(t *testing.T) {
	e, err := NewEngine("C", Major)
	require.NoError(t, err)
	assert.Error(t, e.SetScale("D", "Nope"))
	assert.Equal(t, "C", e.Root())
	assert.Equal(t, Major, e.Type())
}

func TestMembershipMatchesPattern(t *testing.T) {
	for _, name := range Types() {
		for _, root := range pitch.Names() {
			t.Run(fmt.Sprintf("%v %v", root, name), func(t *testing.T) {
				e, err := NewEngine(root, name)
				require.NoError(t, err)

				count := 0
				for _, n := range pitch.Names() {
					if e.IsInScale(n) {
						count++
						d, ok := e.DegreeOf(n)
						require.True(t, ok)
						assert.Equal(t, n, e.NoteForDegree(d))
					} else {
						_, ok := e.DegreeOf(n)
						assert.False(t, ok)
					}
				}
				assert.Equal(t, e.Len(), count)

				for d := 1; d <= e.Len(); d++ {
					got, ok := e.DegreeOf(e.NoteForDegree(d))
					assert.True(t, ok)
					assert.Equal(t, d, got)
				}
			})
		}
	}
}

func TestCMajorNotes(t *testing.T) {
	e, _ := NewEngine("C", Major)
	assert.Equal(t, []string{"C", "D", "E", "F", "G", "A", "B"}, e.Notes())
}

func TestNoteForDegreeWraps(t *testing.T) {
	e, _ := NewEngine("A", MinorPentatonic)
	assert.Equal(t, []string{"A", "C", "D", "E", "G"}, e.Notes())

	assert.Equal(t, e.NoteForDegree(4), e.NoteForDegree(9))
	assert.Equal(t, "E", e.NoteForDegree(9))
	assert.Equal(t, "A", e.NoteForDegree(6))
	assert.Equal(t, "G", e.NoteForDegree(0))
}

func TestNoteForChromaticOffset(t *testing.T) {
	e, _ := NewEngine("C", MinorPentatonic)
	assert.Equal(t, "C#", e.NoteForChromaticOffset(1))
	assert.Equal(t, "A#", e.NoteForChromaticOffset(-2))
	assert.Equal(t, "C", e.NoteForChromaticOffset(24))
}

func TestRelativeKey(t *testing.T) {
	cases := []struct {
		root, name, want string
	}{
		{"C", Major, "A"},
		{"A", Minor, "C"},
		{"G", MajorPentatonic, "E"},
		{"E", MinorPentatonic, "G"},
		{"D", Dorian, "F"},
		{"F", Lydian, "D"},
		{"G", Mixolydian, "E"},
	}
	for _, c := range cases {
		t.Run(c.root+" "+c.name, func(t *testing.T) {
			e, err := NewEngine(c.root, c.name)
			require.NoError(t, err)
			assert.Equal(t, c.want, e.RelativeKey())
		})
	}
}

func TestParentMajorOf(t *testing.T) {
	assert := assert.New(t)

	p, err := ParentMajorOf("D", Dorian)
	assert.NoError(err)
	assert.Equal("C", *p)

	p, _ = ParentMajorOf("B", Locrian)
	assert.Equal("C", *p)

	p, _ = ParentMajorOf("A", Aeolian)
	assert.Equal("C", *p)

	p, _ = ParentMajorOf("C", Ionian)
	assert.Nil(p)

	p, _ = ParentMajorOf("C", Major)
	assert.Nil(p)

	_, err = ParentMajorOf("C", "Nope")
	assert.True(errors.Is(err, ErrUnknownScaleType))
}

func TestChordQualityForDegreeInCMajor(t *testing.T) {
	e, _ := NewEngine("C", Major)
	want := []string{"", "m", "m", "", "", "m", "dim"}
	for i, q := range want {
		assert.Equal(t, q, e.ChordQualityForDegree(i+1), "degree %d", i+1)
	}
}

func TestChordQualityForDegreeOtherScales(t *testing.T) {
	e, _ := NewEngine("A", HarmonicMinor)
	assert.Equal(t, model.QualityAugmented, e.ChordQualityForDegree(3))
	assert.Equal(t, model.QualityDiminished, e.ChordQualityForDegree(7))

	e, _ = NewEngine("C", Minor)
	assert.Equal(t, model.QualityMinor, e.ChordQualityForDegree(1))
	assert.Equal(t, model.QualityDiminished, e.ChordQualityForDegree(2))
	assert.Equal(t, model.QualityMinor, e.ChordQualityForDegree(8))
}

func TestState(t *testing.T) {
	e, _ := NewEngine("E", Phrygian)
	s := e.State()
	assert.Equal(t, "E", s.Root)
	assert.Equal(t, Phrygian, s.Type)
	assert.Equal(t, "C", *s.ParentMajor)
	assert.Equal(t, "G", s.RelativeKey)
	assert.Len(t, s.Notes, 7)
	assert.Len(t, e.DegreeChords(), 7)
}
