package progression

import (
	"errors"
	"testing"

	"github.com/jsphweid/notewheel/model"
	"github.com/jsphweid/notewheel/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cMajor(t *testing.T) *scale.Engine {
	e, err := scale.NewEngine("C", scale.Major)
	require.NoError(t, err)
	return e
}

func TestOneFourFiveOneInCMajor(t *testing.T) {
	s := cMajor(t)
	var e Engine
	require.NoError(t, e.SetProgression("1-4-5-1"))

	want := []string{"C", "F", "G", "C"}
	for i, root := range want {
		c := e.CurrentChord(s)
		require.NotNil(t, c)
		assert.Equal(t, root, c.Root)
		assert.Equal(t, model.QualityMajor, c.Quality)
		assert.Equal(t, i, c.Step)
		require.NoError(t, e.Next())
	}
	assert.Equal(t, 0, e.Step())
	assert.Equal(t, "C", e.CurrentChord(s).Root)
}

func TestLabels(t *testing.T) {
	s := cMajor(t)
	var e Engine
	require.NoError(t, e.SetProgression("2-5-1"))

	c := e.CurrentChord(s)
	assert.Equal(t, "ii (1/3)", c.Label)
	assert.Equal(t, "D", c.Root)
	assert.Equal(t, "Dm", c.Name())

	require.NoError(t, e.Next())
	assert.Equal(t, "V (2/3)", e.CurrentChord(s).Label)
}

func TestNumerals(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("I", Numeral(1, model.QualityMajor))
	assert.Equal("vi", Numeral(6, model.QualityMinor))
	assert.Equal("vii°", Numeral(7, model.QualityDiminished))
	assert.Equal("III+", Numeral(3, model.QualityAugmented))
}

func TestPreviousWraps(t *testing.T) {
	var e Engine
	require.NoError(t, e.SetProgression(TwelveBarBlues))
	require.NoError(t, e.Previous())
	assert.Equal(t, 11, e.Step())
	require.NoError(t, e.Next())
	assert.Equal(t, 0, e.Step())
}

func TestIdle(t *testing.T) {
	s := cMajor(t)
	var e Engine
	assert.False(t, e.Active())
	assert.Nil(t, e.CurrentChord(s))
	assert.True(t, errors.Is(e.Next(), ErrIdle))
	assert.True(t, errors.Is(e.Previous(), ErrIdle))
	_, err := e.CurrentChordNotes(s)
	assert.True(t, errors.Is(err, ErrIdle))

	require.NoError(t, e.SetProgression("1-5-6-4"))
	assert.True(t, e.Active())
	require.NoError(t, e.SetProgression(""))
	assert.False(t, e.Active())
}

func TestUnknownProgression(t *testing.T) {
	var e Engine
	err := e.SetProgression("1-2-3")
	assert.True(t, errors.Is(err, ErrUnknownProgression))
	assert.False(t, e.Active())
}

func TestSetProgressionRewinds(t *testing.T) {
	var e Engine
	require.NoError(t, e.SetProgression("1-4-6-5"))
	require.NoError(t, e.Next())
	require.NoError(t, e.SetProgression("1-4-6-5"))
	assert.Equal(t, 0, e.Step())
}

func TestCurrentChordNotes(t *testing.T) {
	s := cMajor(t)
	var e Engine
	require.NoError(t, e.SetProgression("6-4-1-5"))

	notes, err := e.CurrentChordNotes(s)
	require.NoError(t, err)
	assert.Equal(t, model.Notes{"A", "C", "E"}, notes)
}

func TestProgressionFollowsLiveScale(t *testing.T) {
	s := cMajor(t)
	var e Engine
	require.NoError(t, e.SetProgression("1-6-4-5"))
	require.NoError(t, e.Next())
	assert.Equal(t, "Am", e.CurrentChord(s).Name())

	require.NoError(t, s.SetScale("A", scale.MinorPentatonic))
	c := e.CurrentChord(s)
	// degree 6 wraps to 1 on a five note scale and pentatonic triads are not rigorous
	assert.Equal(t, "A", c.Root)
}

func TestBluesHasTwelveSteps(t *testing.T) {
	p, err := Lookup(TwelveBarBlues)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1, 1, 4, 4, 1, 1, 5, 4, 1, 5}, p.Steps)
	assert.Len(t, Names(), 7)
}
