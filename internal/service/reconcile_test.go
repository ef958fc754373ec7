package service

import (
	"testing"

	"foodgram/internal/repository"

	"github.com/stretchr/testify/assert"
)

func TestDiffTags(t *testing.T) {
	toAdd, toRemove := Diff([]uint{1, 2, 3}, []uint{2, 3, 4, 5})
	assert.Equal(t, []uint{4, 5}, toAdd)
	assert.Equal(t, []uint{1}, toRemove)
}

func TestDiffIdenticalSetsIsEmpty(t *testing.T) {
	toAdd, toRemove := Diff([]uint{3, 1}, []uint{1, 3})
	assert.Empty(t, toAdd)
	assert.Empty(t, toRemove)
}

func TestDiffFromEmpty(t *testing.T) {
	toAdd, toRemove := Diff(nil, []uint{7, 7, 8})
	assert.Equal(t, []uint{7, 8}, toAdd)
	assert.Empty(t, toRemove)

	toAdd, toRemove = Diff([]uint{7, 8}, nil)
	assert.Empty(t, toAdd)
	assert.Equal(t, []uint{7, 8}, toRemove)
}

func TestDiffAmountKeysTreatChangedAmountAsReplace(t *testing.T) {
	current := []repository.AmountKey{{IngredientID: 1, Amount: 100}, {IngredientID: 2, Amount: 5}}
	desired := []repository.AmountKey{{IngredientID: 1, Amount: 150}, {IngredientID: 2, Amount: 5}}

	toAdd, toRemove := Diff(current, desired)
	assert.Equal(t, []repository.AmountKey{{IngredientID: 1, Amount: 150}}, toAdd)
	assert.Equal(t, []repository.AmountKey{{IngredientID: 1, Amount: 100}}, toRemove)
}

func TestCanModify(t *testing.T) {
	recipe := ownedBy(10)

	assert.True(t, CanModify(&Actor{UserID: 10}, recipe))
	assert.False(t, CanModify(&Actor{UserID: 11}, recipe))
	assert.True(t, CanModify(&Actor{UserID: 11, IsAdmin: true}, recipe))
	assert.False(t, CanModify(nil, recipe))
}

type ownedBy uint

func (o ownedBy) OwnerID() uint { return uint(o) }
