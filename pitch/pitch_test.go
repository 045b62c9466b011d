package pitch

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameIndexRoundTrip(t *testing.T) {
	for _, n := range Names() {
		t.Run(n, func(t *testing.T) {
			i, err := NameToIndex(n)
			require.NoError(t, err)
			name, err := IndexToName(i)
			require.NoError(t, err)
			assert.Equal(t, n, name)
		})
	}
}

func TestFixedIndexTable(t *testing.T) {
	assert := assert.New(t)
	i, _ := NameToIndex("A")
	assert.Equal(0, i)
	i, _ = NameToIndex("C")
	assert.Equal(3, i)
	i, _ = NameToIndex("G#")
	assert.Equal(11, i)
}

func TestInvalidNotes(t *testing.T) {
	_, err := NameToIndex("H")
	assert.True(t, errors.Is(err, ErrInvalidNote))

	_, err = NameToIndex("Bb")
	assert.True(t, errors.Is(err, ErrInvalidNote))

	_, err = IndexToName(12)
	assert.True(t, errors.Is(err, ErrInvalidNote))

	_, err = IndexToName(-1)
	assert.True(t, errors.Is(err, ErrInvalidNote))

	_, err = FifthOf("X")
	assert.True(t, errors.Is(err, ErrInvalidNote))
}

func TestFifthOfFollowsWheel(t *testing.T) {
	wheel := []string{"A", "E", "B", "F#", "C#", "G#", "D#", "A#", "F", "C", "G", "D", "A"}
	for i := 0; i < len(wheel)-1; i++ {
		res, err := FifthOf(wheel[i])
		require.NoError(t, err)
		assert.Equal(t, wheel[i+1], res)
	}
}

func TestFifthsFromIsPermutation(t *testing.T) {
	for _, root := range Names() {
		name := fmt.Sprintf("fifths from %v", root)
		t.Run(name, func(t *testing.T) {
			res, err := FifthsFrom(root)
			require.NoError(t, err)
			assert.Len(t, res, NumPitchClasses)
			assert.Equal(t, root, res[0])
			seen := make(map[string]bool)
			for _, n := range res {
				assert.False(t, seen[n], "repeated %v", n)
				seen[n] = true
			}
			assert.ElementsMatch(t, Names(), res)
		})
	}
}

func TestTransposeAndInterval(t *testing.T) {
	assert := assert.New(t)
	n, err := Transpose("C", -3)
	assert.NoError(err)
	assert.Equal("A", n)

	n, _ = Transpose("G#", 1)
	assert.Equal("A", n)

	d, err := Interval("A#", "C")
	assert.NoError(err)
	assert.Equal(2, d)

	d, _ = Interval("C", "A#")
	assert.Equal(10, d)
}

func TestSort(t *testing.T) {
	assert.Equal(t, []string{"A#", "C", "E", "G", "?"}, Sort([]string{"G", "?", "C", "E", "A#", "C"}))
}
