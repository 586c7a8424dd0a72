package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryRejectsEmptyInput(t *testing.T) {
	_, err := NewRegistry(nil)
	require.ErrorIs(t, err, ErrEmptyRegistry)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewRegistry([]Task{})
	require.ErrorIs(t, err, ErrEmptyRegistry)
}

func TestNewRegistryRejectsNonPositiveBurst(t *testing.T) {
	_, err := NewRegistry([]Task{{ID: 1, Label: "a", BurstTotal: 0}})
	require.ErrorIs(t, err, ErrNonPositiveBurst)

	_, err = NewRegistry([]Task{
		{ID: 1, Label: "a", BurstTotal: 5},
		{ID: 2, Label: "b", BurstTotal: -3},
	})
	require.ErrorIs(t, err, ErrNonPositiveBurst)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewRegistryRejectsNegativeArrival(t *testing.T) {
	_, err := NewRegistry([]Task{{ID: 1, Label: "a", Arrival: -1, BurstTotal: 5}})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegistryTasksReturnsCopyInOrder(t *testing.T) {
	input := []Task{
		{ID: 3, Label: "c", BurstTotal: 1},
		{ID: 1, Label: "a", BurstTotal: 2},
		{ID: 2, Label: "b", BurstTotal: 3},
	}
	reg, err := NewRegistry(input)
	require.NoError(t, err)
	require.Equal(t, 3, reg.Len())

	got := reg.Tasks()
	assert.Equal(t, input, got)

	// Mutating the returned slice must not reach the registry.
	got[0].BurstTotal = 99
	assert.Equal(t, 1, reg.Tasks()[0].BurstTotal)

	// Nor may later mutation of the caller's input.
	input[1].BurstTotal = 77
	assert.Equal(t, 2, reg.Tasks()[1].BurstTotal)
}

func TestSegmentDuration(t *testing.T) {
	assert.Equal(t, 4, TimelineSegment{TaskID: 1, Start: 3, End: 7}.Duration())
}
