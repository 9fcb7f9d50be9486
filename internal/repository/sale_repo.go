package repository

import (
	"time"

	"go-stocktrack/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleFilter narrows FindAll; zero values mean "no filter"
type SaleFilter struct {
	From          *time.Time
	To            *time.Time
	ProductID     *uuid.UUID
	SoldByID      *uuid.UUID
	PaymentMethod model.PaymentMethod
	Status        model.SaleStatus
}

// DailySales mirrors the stats wire shape the dashboard consumes
type DailySales struct {
	Date  string          `json:"_id"`
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

// PaymentTotal aggregates completed revenue per payment method
type PaymentTotal struct {
	Method string          `json:"_id"`
	Total  decimal.Decimal `json:"total"`
}

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindAll(filter SaleFilter) ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Sale, error)
	Save(tx *gorm.DB, sale *model.Sale) error
	DailyStats() ([]DailySales, error)
	PaymentBreakdown() ([]PaymentTotal, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindAll(filter SaleFilter) ([]model.Sale, error) {
	var sales []model.Sale
	q := r.db.Preload("Product").Preload("SoldBy")

	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at <= ?", *filter.To)
	}
	if filter.ProductID != nil {
		q = q.Where("product_id = ?", *filter.ProductID)
	}
	if filter.SoldByID != nil {
		q = q.Where("sold_by_id = ?", *filter.SoldByID)
	}
	if filter.PaymentMethod != "" {
		q = q.Where("payment_method = ?", filter.PaymentMethod)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	err := q.Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Product").Preload("SoldBy").First(&sale, "id = ?", id).Error
	return &sale, err
}

func (r *saleRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := lockForUpdate(tx).First(&sale, "id = ?", id).Error
	return &sale, err
}

func (r *saleRepo) Save(tx *gorm.DB, sale *model.Sale) error {
	return tx.Save(sale).Error
}

// DailyStats aggregates completed sales per calendar day, oldest first.
// Cancelled and refunded sales never count toward revenue.
func (r *saleRepo) DailyStats() ([]DailySales, error) {
	var results []DailySales

	rows, err := r.db.Model(&model.Sale{}).
		Select("CAST(DATE(created_at) AS TEXT) as date, COALESCE(SUM(total_price), 0) as total, COUNT(*) as count").
		Where("status = ?", model.SaleCompleted).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailySales
		if err := rows.Scan(&data.Date, &data.Total, &data.Count); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

func (r *saleRepo) PaymentBreakdown() ([]PaymentTotal, error) {
	var results []PaymentTotal

	rows, err := r.db.Model(&model.Sale{}).
		Select("payment_method as method, COALESCE(SUM(total_price), 0) as total").
		Where("status = ?", model.SaleCompleted).
		Group("payment_method").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data PaymentTotal
		if err := rows.Scan(&data.Method, &data.Total); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}
