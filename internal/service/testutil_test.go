package service

import (
	"fmt"
	"strings"
	"testing"

	"go-stocktrack/internal/model"
	"go-stocktrack/internal/repository"
	"go-stocktrack/pkg/reference"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test. A shared-cache
// DSN keyed on the test name plus a single connection keeps every gorm
// session inside the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Supplier{},
		&model.Product{},
		&model.Sale{},
		&model.StockHistory{},
	))

	return db
}

// fixture wires the full service stack against a test database
type fixture struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	historyRepo repository.StockHistoryRepository
	userRepo    repository.UserRepository

	stock    StockService
	sales    SaleService
	products ProductService
	history  HistoryService
	user     *model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)

	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	historyRepo := repository.NewStockHistoryRepo(db)
	userRepo := repository.NewUserRepo(db)

	stock := NewStockService(productRepo, historyRepo, db, nil)

	user := &model.User{
		Email:    "seller@example.com",
		FullName: "Test Seller",
		Role:     model.RoleStaff,
		IsActive: true,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, userRepo.Create(user))

	return &fixture{
		db:          db,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		historyRepo: historyRepo,
		userRepo:    userRepo,
		stock:       stock,
		sales:       NewSaleService(saleRepo, stock, reference.NewGenerator(), db),
		products:    NewProductService(productRepo, historyRepo, stock, db),
		history:     NewHistoryService(historyRepo),
		user:        user,
	}
}

// seedProduct inserts a product directly, bypassing the service layer, so
// engine tests start from a known state without an opening history entry.
func (f *fixture) seedProduct(t *testing.T, quantity, minimumStock int, sellingPrice int64) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:         "Test Widget",
		SKU:          fmt.Sprintf("SKU-%d", quantity),
		Quantity:     quantity,
		MinimumStock: minimumStock,
		CostPrice:    decimal.NewFromInt(sellingPrice / 2),
		SellingPrice: decimal.NewFromInt(sellingPrice),
		IsActive:     true,
	}
	require.NoError(t, f.db.Create(product).Error)
	return product
}

func (f *fixture) reloadProduct(t *testing.T, p *model.Product) *model.Product {
	t.Helper()
	reloaded, err := f.productRepo.FindByID(p.ID)
	require.NoError(t, err)
	return reloaded
}

func (f *fixture) historyCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&model.StockHistory{}).Count(&count).Error)
	return count
}

func (f *fixture) saleCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&model.Sale{}).Count(&count).Error)
	return count
}
