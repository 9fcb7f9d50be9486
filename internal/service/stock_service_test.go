package service

import (
	"testing"

	"go-stocktrack/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStockChange_Restock(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 10, 2, 100)

	updated, entry, err := f.stock.ApplyStockChange(product.ID, 5, model.ActionRestock, &f.user.ID, "weekly delivery")
	require.NoError(t, err)

	assert.Equal(t, 15, updated.Quantity)
	assert.Equal(t, 10, entry.PreviousQuantity)
	assert.Equal(t, 15, entry.NewQuantity)
	assert.Equal(t, model.ActionRestock, entry.Action)
	assert.Equal(t, f.user.ID, *entry.ChangedByID)
	assert.Equal(t, "weekly delivery", entry.Note)

	assert.Equal(t, 15, f.reloadProduct(t, product).Quantity)
}

func TestApplyStockChange_Decrease(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 10, 2, 100)

	updated, entry, err := f.stock.ApplyStockChange(product.ID, -4, model.ActionSale, &f.user.ID, "")
	require.NoError(t, err)

	assert.Equal(t, 6, updated.Quantity)
	assert.Equal(t, -4, entry.Delta())
}

func TestApplyStockChange_ToExactlyZero(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 3, 0, 100)

	updated, _, err := f.stock.ApplyStockChange(product.ID, -3, model.ActionSale, &f.user.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)
}

func TestApplyStockChange_InsufficientStock(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 7, 2, 100)

	_, _, err := f.stock.ApplyStockChange(product.ID, -10, model.ActionSale, &f.user.ID, "")
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Rejected before any write lands
	assert.Equal(t, 7, f.reloadProduct(t, product).Quantity)
	assert.EqualValues(t, 0, f.historyCount(t))
}

func TestApplyStockChange_ProductNotFound(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.stock.ApplyStockChange(uuid.New(), 1, model.ActionRestock, nil, "")
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestApplyStockChange_InvalidAction(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 10, 2, 100)

	_, _, err := f.stock.ApplyStockChange(product.ID, 1, model.StockAction("donation"), nil, "")
	require.ErrorIs(t, err, ErrInvalidAction)
	assert.Equal(t, 10, f.reloadProduct(t, product).Quantity)
}

func TestApplyStockChange_SystemActor(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 10, 2, 100)

	_, entry, err := f.stock.ApplyStockChange(product.ID, 2, model.ActionAdjustment, nil, "nightly sync")
	require.NoError(t, err)
	assert.Nil(t, entry.ChangedByID)
}

// Audit completeness: the ledger's deltas always add up to the distance
// between the current and the initial quantity.
func TestApplyStockChange_AuditSumMatchesQuantity(t *testing.T) {
	f := newFixture(t)
	initial := 20
	product := f.seedProduct(t, initial, 2, 100)

	steps := []struct {
		delta  int
		action model.StockAction
	}{
		{-5, model.ActionSale},
		{10, model.ActionRestock},
		{-3, model.ActionSale},
		{3, model.ActionReversal},
		{-1, model.ActionAdjustment},
	}
	for _, step := range steps {
		_, _, err := f.stock.ApplyStockChange(product.ID, step.delta, step.action, &f.user.ID, "")
		require.NoError(t, err)
	}

	current := f.reloadProduct(t, product).Quantity
	sum, err := f.historyRepo.SumDeltas(product.ID)
	require.NoError(t, err)

	assert.EqualValues(t, current-initial, sum)
	assert.Equal(t, 24, current)
}

func TestApplyStockChange_EveryChangeHasExactlyOneEntry(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, 50, 2, 100)

	for i := 0; i < 5; i++ {
		_, _, err := f.stock.ApplyStockChange(product.ID, -1, model.ActionSale, &f.user.ID, "")
		require.NoError(t, err)
	}

	entries, err := f.historyRepo.FindByProduct(product.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}
