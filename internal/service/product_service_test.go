package service

import (
	"testing"

	"go-stocktrack/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductInput(sku string, quantity int) *model.Product {
	return &model.Product{
		Name:         "Fixture Widget",
		SKU:          sku,
		Quantity:     quantity,
		MinimumStock: 2,
		CostPrice:    decimal.NewFromInt(50),
		SellingPrice: decimal.NewFromInt(100),
	}
}

func TestCreateProduct_WritesOpeningHistory(t *testing.T) {
	f := newFixture(t)

	product := newProductInput("WID-1", 10)
	require.NoError(t, f.products.CreateProduct(product, f.user.ID))

	entries, err := f.historyRepo.FindByProduct(product.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].PreviousQuantity)
	assert.Equal(t, 10, entries[0].NewQuantity)
	assert.Equal(t, model.ActionRestock, entries[0].Action)
	assert.Equal(t, "Initial stock on product creation", entries[0].Note)
}

func TestCreateProduct_ZeroQuantityNoHistory(t *testing.T) {
	f := newFixture(t)

	product := newProductInput("WID-2", 0)
	require.NoError(t, f.products.CreateProduct(product, f.user.ID))

	assert.EqualValues(t, 0, f.historyCount(t))
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.products.CreateProduct(newProductInput("WID-3", 1), f.user.ID))

	err := f.products.CreateProduct(newProductInput("WID-3", 1), f.user.ID)
	require.ErrorIs(t, err, ErrSKUExists)
}

func TestCreateProduct_DuplicateBarcode(t *testing.T) {
	f := newFixture(t)

	code := "4006381333931"
	first := newProductInput("WID-4", 1)
	first.Barcode = &code
	require.NoError(t, f.products.CreateProduct(first, f.user.ID))

	second := newProductInput("WID-5", 1)
	second.Barcode = &code
	err := f.products.CreateProduct(second, f.user.ID)
	require.ErrorIs(t, err, ErrBarcodeExists)
}

func TestCreateProduct_EmptyBarcodesDoNotCollide(t *testing.T) {
	f := newFixture(t)

	empty := ""
	first := newProductInput("WID-6", 1)
	first.Barcode = &empty
	require.NoError(t, f.products.CreateProduct(first, f.user.ID))

	second := newProductInput("WID-7", 1)
	second.Barcode = &empty
	require.NoError(t, f.products.CreateProduct(second, f.user.ID), "missing barcodes are null, not equal")
}

func TestCreateProduct_MissingSKU(t *testing.T) {
	f := newFixture(t)

	err := f.products.CreateProduct(newProductInput("", 1), f.user.ID)
	require.Error(t, err)
}

func TestUpdateProduct_QuantityEditIsAudited(t *testing.T) {
	f := newFixture(t)

	product := newProductInput("WID-8", 10)
	require.NoError(t, f.products.CreateProduct(product, f.user.ID))

	newQty := 6
	updated, err := f.products.UpdateProduct(product.ID, &UpdateProductRequest{Quantity: &newQty}, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Quantity)

	entries, err := f.historyRepo.FindByProduct(product.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2) // opening restock + this adjustment
	assert.Equal(t, model.ActionAdjustment, entries[0].Action)
	assert.Equal(t, 10, entries[0].PreviousQuantity)
	assert.Equal(t, 6, entries[0].NewQuantity)
}

func TestUpdateProduct_NegativeQuantityRejected(t *testing.T) {
	f := newFixture(t)

	product := newProductInput("WID-9", 10)
	require.NoError(t, f.products.CreateProduct(product, f.user.ID))

	newQty := -1
	_, err := f.products.UpdateProduct(product.ID, &UpdateProductRequest{Quantity: &newQty}, f.user.ID)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, 10, f.reloadProduct(t, product).Quantity)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	f := newFixture(t)

	name := "Renamed"
	_, err := f.products.UpdateProduct(uuid.New(), &UpdateProductRequest{Name: &name}, f.user.ID)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeactivateProduct_HiddenFromDefaultListing(t *testing.T) {
	f := newFixture(t)

	product := newProductInput("WID-10", 5)
	require.NoError(t, f.products.CreateProduct(product, f.user.ID))
	require.NoError(t, f.products.DeactivateProduct(product.ID))

	visible, err := f.products.GetProducts(false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := f.products.GetProducts(true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].IsActive)

	// Soft delete only: the row and its history survive
	_, err = f.products.GetProductByID(product.ID)
	require.NoError(t, err)
}

func TestGetLowStock_BoundaryInclusive(t *testing.T) {
	f := newFixture(t)

	atThreshold := newProductInput("WID-11", 2) // minimum_stock is 2
	require.NoError(t, f.products.CreateProduct(atThreshold, f.user.ID))
	healthy := newProductInput("WID-12", 3)
	require.NoError(t, f.products.CreateProduct(healthy, f.user.ID))

	low, err := f.products.GetLowStock()
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, atThreshold.ID, low[0].ID)
}
