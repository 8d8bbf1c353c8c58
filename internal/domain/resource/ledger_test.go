package resource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_AbsentKindReadsZero(t *testing.T) {
	l := NewLedger()

	assert.Equal(t, 0, l.Quantity(Wheat))
	assert.True(t, l.Has(Wheat, 0))
	assert.False(t, l.Has(Wheat, 1))
}

func TestLedger_RemoveBeyondBalanceFailsWithoutMutation(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Add(Wood, 3))

	err := l.Remove(Wood, 4)

	var insufficient *InsufficientResourceError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, Wood, insufficient.Kind)
	assert.Equal(t, 4, insufficient.Required)
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, 3, l.Quantity(Wood))
}

func TestLedger_NegativeQuantitiesRejected(t *testing.T) {
	l := NewLedger()

	assert.Error(t, l.Add(Wheat, -1))
	assert.Error(t, l.Remove(Wheat, -1))
	assert.Equal(t, 0, l.Quantity(Wheat))
}

func TestLedger_NeverNegativeAcrossSequence(t *testing.T) {
	l := NewLedger()
	ops := []struct {
		add bool
		qty int
	}{
		{true, 5}, {false, 3}, {false, 3}, {true, 1}, {false, 3}, {false, 0}, {false, 1}, {true, 10}, {false, 11},
	}

	for _, op := range ops {
		if op.add {
			_ = l.Add(Bread, op.qty)
		} else {
			_ = l.Remove(Bread, op.qty)
		}
		assert.GreaterOrEqual(t, l.Quantity(Bread), 0)
	}
	assert.Equal(t, 10, l.Quantity(Bread))
}

func TestLedger_RemoveAllIsAllOrNothing(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Add(Bread, 50))
	require.NoError(t, l.Add(Wood, 10))

	err := l.RemoveAll(map[Kind]int{Bread: 50, Wood: 45})

	require.Error(t, err)
	assert.Equal(t, 50, l.Quantity(Bread))
	assert.Equal(t, 10, l.Quantity(Wood))

	require.NoError(t, l.RemoveAll(map[Kind]int{Bread: 20, Wood: 10}))
	assert.Equal(t, 30, l.Quantity(Bread))
	assert.Equal(t, 0, l.Quantity(Wood))
}

func TestLedger_CategoryTotal(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Add(Wheat, 4))
	require.NoError(t, l.Add(Bread, 2))
	require.NoError(t, l.Add(Berries, 1))
	require.NoError(t, l.Add(Wood, 7))

	assert.Equal(t, 7, l.CategoryTotal(CategoryFood))
	assert.Equal(t, 7, l.CategoryTotal(CategoryMaterial))
	assert.Equal(t, 0, l.CategoryTotal(CategoryOre))
}

func TestLedger_EntriesKeepExplicitZeros(t *testing.T) {
	l := NewLedger(Wheat, Wood, IronOre)
	require.NoError(t, l.Add(Bread, 2))

	entries := l.Entries()

	require.Len(t, entries, 4)
	assert.Equal(t, Entry{Kind: Wheat, Quantity: 0}, entries[0])
	assert.Equal(t, Entry{Kind: Bread, Quantity: 2}, entries[3])
}

func TestLedger_CloneIsIndependent(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Add(Wheat, 1))

	clone := l.Clone()
	require.NoError(t, clone.Add(Wheat, 5))

	assert.Equal(t, 1, l.Quantity(Wheat))
	assert.Equal(t, 6, clone.Quantity(Wheat))
}

func TestReconstructLedger_RejectsInvalidEntries(t *testing.T) {
	_, err := ReconstructLedger(map[Kind]int{"gold": 1})
	assert.Error(t, err)

	_, err = ReconstructLedger(map[Kind]int{Wheat: -2})
	assert.Error(t, err)
}
