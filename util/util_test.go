package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModIsAlwaysPositive(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(11, Mod(-1, 12))
	assert.Equal(0, Mod(-12, 12))
	assert.Equal(3, Mod(15, 12))
	assert.Equal(1, Mod(-11, 12))
}

func TestGetKeysSorted(t *testing.T) {
	m := map[string]int{"G": 1, "C": 2, "E": 3}
	assert.Equal(t, []string{"C", "E", "G"}, GetKeysSorted(m))
}

func TestMin(t *testing.T) {
	assert.Equal(t, uint32(2), Min(uint32(2), uint32(9)))
	assert.Equal(t, -3, Min(4, -3))
}
