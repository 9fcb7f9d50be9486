package repository

import (
	"go-stocktrack/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	FindAll(includeInactive bool) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	FindByBarcode(barcode string) (*model.Product, error)
	Save(tx *gorm.DB, product *model.Product) error
	UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int) error
	Deactivate(id uuid.UUID) error
	FindLowStock() ([]model.Product, error)
	CountActive() (int64, error)
	CountLowStock() (int64, error)
	TotalValuation() (decimal.Decimal, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	return tx.Create(product).Error
}

func (r *productRepo) FindAll(includeInactive bool) ([]model.Product, error) {
	var products []model.Product
	q := r.db.Preload("Category").Preload("Supplier")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").Preload("Supplier").First(&product, "id = ?", id).Error
	return &product, err
}

// FindByIDForUpdate locks the product row until the surrounding transaction
// commits. Only the stock service should need this.
func (r *productRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := lockForUpdate(tx).First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	return &product, err
}

func (r *productRepo) FindByBarcode(barcode string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "barcode = ?", barcode).Error
	return &product, err
}

func (r *productRepo) Save(tx *gorm.DB, product *model.Product) error {
	return tx.Save(product).Error
}

// UpdateQuantity writes the already-computed quantity; callers must hold the
// row lock taken by FindByIDForUpdate in the same transaction.
func (r *productRepo) UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("quantity", newQuantity).Error
}

func (r *productRepo) Deactivate(id uuid.UUID) error {
	res := r.db.Model(&model.Product{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) FindLowStock() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Preload("Supplier").
		Where("is_active = ? AND quantity <= minimum_stock", true).
		Order("quantity ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *productRepo) CountLowStock() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Where("is_active = ? AND quantity <= minimum_stock", true).
		Count(&count).Error
	return count, err
}

// TotalValuation is SUM(quantity * cost_price) over active products.
func (r *productRepo) TotalValuation() (decimal.Decimal, error) {
	var valuation decimal.Decimal
	err := r.db.Model(&model.Product{}).
		Where("is_active = ?", true).
		Select("COALESCE(SUM(quantity * cost_price), 0)").
		Scan(&valuation).Error
	return valuation, err
}
