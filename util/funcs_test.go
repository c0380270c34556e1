package util

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartesian(t *testing.T) {
	var combos [][]int
	for combo := range Cartesian([][]int{{1, 2}, {3}, {4, 5}}) {
		combos = append(combos, slices.Clone(combo))
	}
	assert.Equal(t, [][]int{{1, 3, 4}, {1, 3, 5}, {2, 3, 4}, {2, 3, 5}}, combos)
}

func TestCartesianEmptyChoiceYieldsNothing(t *testing.T) {
	count := 0
	for range Cartesian([][]int{{1, 2}, {}}) {
		count++
	}
	assert.Equal(t, 0, count)
}

func TestCartesianNoChoicesYieldsOneEmptyCombo(t *testing.T) {
	count := 0
	for combo := range Cartesian[int](nil) {
		count++
		assert.Empty(t, combo)
	}
	assert.Equal(t, 1, count)
}

func TestCartesianStopsEarly(t *testing.T) {
	count := 0
	for range Cartesian([][]int{{1, 2}, {3, 4}}) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestHashStringStable(t *testing.T) {
	assert.Equal(t, HashString("x"), HashString("x"))
	assert.NotEqual(t, HashString("x"), HashString("y"))
}
