package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardStats(t *testing.T) {
	f := newFixture(t)
	dash := NewDashboardService(f.productRepo)

	// 4 units at cost 50, 2 units at cost 100
	cheap := newProductInput("DASH-1", 4)
	require.NoError(t, f.products.CreateProduct(cheap, f.user.ID))
	dear := newProductInput("DASH-2", 2)
	dear.CostPrice = decimal.NewFromInt(100)
	require.NoError(t, f.products.CreateProduct(dear, f.user.ID))

	// dear is at its threshold of 2, cheap is above it
	stats, err := dash.GetDashboardStats()
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.TotalProducts)
	assert.EqualValues(t, 1, stats.LowStockCount)
	assert.True(t, stats.TotalValuation.Equal(decimal.NewFromInt(400)), "valuation %s", stats.TotalValuation)
}

func TestGetDashboardStats_IgnoresInactive(t *testing.T) {
	f := newFixture(t)
	dash := NewDashboardService(f.productRepo)

	product := newProductInput("DASH-3", 4)
	require.NoError(t, f.products.CreateProduct(product, f.user.ID))
	require.NoError(t, f.products.DeactivateProduct(product.ID))

	stats, err := dash.GetDashboardStats()
	require.NoError(t, err)

	assert.EqualValues(t, 0, stats.TotalProducts)
	assert.True(t, stats.TotalValuation.IsZero())
}
