package repository

import (
	"go-stocktrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockHistoryRepository interface {
	Insert(tx *gorm.DB, entry *model.StockHistory) error
	FindAll(limit, offset int) ([]model.StockHistory, error)
	FindByID(id uuid.UUID) (*model.StockHistory, error)
	FindByProduct(productID uuid.UUID) ([]model.StockHistory, error)
	FindByUser(userID uuid.UUID) ([]model.StockHistory, error)
	SearchByNote(q string) ([]model.StockHistory, error)
	DeleteByID(id uuid.UUID) error
	SumDeltas(productID uuid.UUID) (int64, error)
}

type stockHistoryRepo struct {
	db *gorm.DB
}

func NewStockHistoryRepo(db *gorm.DB) StockHistoryRepository {
	return &stockHistoryRepo{db}
}

// Insert appends one entry. There is deliberately no Update counterpart;
// history rows are immutable once written.
func (r *stockHistoryRepo) Insert(tx *gorm.DB, entry *model.StockHistory) error {
	return tx.Create(entry).Error
}

func (r *stockHistoryRepo) FindAll(limit, offset int) ([]model.StockHistory, error) {
	var entries []model.StockHistory
	q := r.db.Preload("Product").Preload("ChangedBy").Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&entries).Error
	return entries, err
}

func (r *stockHistoryRepo) FindByID(id uuid.UUID) (*model.StockHistory, error) {
	var entry model.StockHistory
	err := r.db.Preload("Product").Preload("ChangedBy").First(&entry, "id = ?", id).Error
	return &entry, err
}

func (r *stockHistoryRepo) FindByProduct(productID uuid.UUID) ([]model.StockHistory, error) {
	var entries []model.StockHistory
	err := r.db.Preload("ChangedBy").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *stockHistoryRepo) FindByUser(userID uuid.UUID) ([]model.StockHistory, error) {
	var entries []model.StockHistory
	err := r.db.Preload("Product").
		Where("changed_by_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *stockHistoryRepo) SearchByNote(q string) ([]model.StockHistory, error) {
	var entries []model.StockHistory
	err := r.db.Preload("Product").Preload("ChangedBy").
		Where("LOWER(note) LIKE LOWER(?)", "%"+q+"%").
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// DeleteByID removes one entry without touching the product it references.
// Administrative correction only; the audit-sum invariant is not re-checked.
func (r *stockHistoryRepo) DeleteByID(id uuid.UUID) error {
	res := r.db.Delete(&model.StockHistory{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumDeltas totals (new_quantity - previous_quantity) for one product.
// For an untampered ledger it equals current quantity minus initial quantity.
func (r *stockHistoryRepo) SumDeltas(productID uuid.UUID) (int64, error) {
	var sum int64
	err := r.db.Model(&model.StockHistory{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(new_quantity - previous_quantity), 0)").
		Scan(&sum).Error
	return sum, err
}
