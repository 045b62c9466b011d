package sounding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddIsIdempotent(t *testing.T) {
	s := New()
	keys := NewOwner("keyboard")

	assert.True(t, s.Add(keys, "C"))
	assert.False(t, s.Add(keys, "C"))
	assert.Equal(t, []string{"C"}, s.Notes())

	assert.True(t, s.Remove(keys, "C"))
	assert.False(t, s.Remove(keys, "C"))
	assert.Equal(t, 0, s.Len())
}

func TestNoteSoundsUntilLastOwnerReleases(t *testing.T) {
	s := New()
	keys := NewOwner("keyboard")
	mouse := NewOwner("mouse")

	assert.True(t, s.Add(keys, "E"))
	assert.False(t, s.Add(mouse, "E"))
	assert.Len(t, s.Owners("E"), 2)

	assert.False(t, s.Remove(keys, "E"))
	assert.True(t, s.Contains("E"))
	assert.True(t, s.Remove(mouse, "E"))
	assert.False(t, s.Contains("E"))
}

func TestRemoveByOtherOwnerIsNoop(t *testing.T) {
	s := New()
	keys := NewOwner("keyboard")
	player := NewOwner("player")

	s.Add(keys, "G")
	assert.False(t, s.Remove(player, "G"))
	assert.True(t, s.Contains("G"))
	assert.True(t, s.Held(keys, "G"))
	assert.False(t, s.Held(player, "G"))
}

func TestRemoveOwnerOnlyRetractsItsOwnNotes(t *testing.T) {
	s := New()
	keys := NewOwner("keyboard")
	player := NewOwner("player")

	s.Add(keys, "C")
	s.Add(player, "C")
	s.Add(player, "E")
	s.Add(player, "G")

	silenced := s.RemoveOwner(player)
	assert.Equal(t, []string{"E", "G"}, silenced)
	assert.Equal(t, []string{"C"}, s.Notes())
}

func TestClear(t *testing.T) {
	s := New()
	s.Add(NewOwner("a"), "G")
	s.Add(NewOwner("b"), "A#")
	assert.Equal(t, []string{"A#", "G"}, s.Clear())
	assert.Equal(t, 0, s.Len())
}

func TestOwnersAreDistinct(t *testing.T) {
	a, b := NewOwner("player"), NewOwner("player")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(string(a), "player:"))
}
