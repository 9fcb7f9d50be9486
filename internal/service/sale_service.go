package service

import (
	"errors"

	"go-stocktrack/internal/model"
	"go-stocktrack/internal/repository"
	"go-stocktrack/pkg/reference"
	"go-stocktrack/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateSaleRequest carries the fields a client may set when recording a
// sale. Key names match the dashboard client's payloads.
type CreateSaleRequest struct {
	ProductID       uuid.UUID           `json:"product"`
	Quantity        int                 `json:"quantity"`
	PaymentMethod   model.PaymentMethod `json:"paymentMethod"`
	Discount        decimal.Decimal     `json:"discount"`
	CustomerName    string              `json:"customerName"`
	CustomerContact string              `json:"customerContact"`
	Notes           string              `json:"notes"`
}

// UpdateSaleRequest amends a completed sale. Nil fields are left untouched.
type UpdateSaleRequest struct {
	Quantity        *int                 `json:"quantity"`
	PaymentMethod   *model.PaymentMethod `json:"paymentMethod"`
	CustomerName    *string              `json:"customerName"`
	CustomerContact *string              `json:"customerContact"`
}

// SalesStats is the read-side aggregate over completed sales only.
type SalesStats struct {
	Daily            []repository.DailySales   `json:"daily"`
	PaymentBreakdown []repository.PaymentTotal `json:"paymentBreakdown"`
}

// SaleService implements the sale lifecycle. Each operation composes a stock
// mutation with its own sale write inside one transaction: both commit or
// neither does.
type SaleService interface {
	CreateSale(req *CreateSaleRequest, soldBy uuid.UUID) (*model.Sale, error)
	UpdateSale(id uuid.UUID, req *UpdateSaleRequest, userID uuid.UUID) (*model.Sale, error)
	CancelSale(id uuid.UUID, userID uuid.UUID) error
	GetSales(filter repository.SaleFilter) ([]model.Sale, error)
	GetSaleByID(id uuid.UUID) (*model.Sale, error)
	GetSalesStats() (*SalesStats, error)
}

type saleService struct {
	saleRepo repository.SaleRepository
	stock    StockService
	refs     *reference.Generator
	db       *gorm.DB
}

func NewSaleService(saleRepo repository.SaleRepository, stock StockService, refs *reference.Generator, db *gorm.DB) SaleService {
	return &saleService{
		saleRepo: saleRepo,
		stock:    stock,
		refs:     refs,
		db:       db,
	}
}

func (s *saleService) CreateSale(req *CreateSaleRequest, soldBy uuid.UUID) (*model.Sale, error) {
	// 1. Validate before touching the store
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	method := req.PaymentMethod
	if method == "" {
		method = model.PayCash
	}
	if !method.Valid() {
		return nil, ErrInvalidPayment
	}
	if req.Discount.IsNegative() {
		return nil, ErrInvalidDiscount
	}

	var (
		sale    *model.Sale
		product *model.Product
		entry   *model.StockHistory
	)
	err := runInTx(s.db, func(tx *gorm.DB) error {
		sale = nil

		// 2. Decrement stock; the engine locks the product row, so the
		// selling price we snapshot below cannot change under us
		var err error
		product, entry, err = s.stock.Apply(tx, req.ProductID, -req.Quantity, model.ActionSale, &soldBy, "Sale completed")
		if err != nil {
			return err
		}

		// 3. Price snapshot: unit price is fixed at sale time forever
		unitPrice := product.SellingPrice
		totalPrice := unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))).Sub(req.Discount)
		if totalPrice.IsNegative() {
			return ErrInvalidDiscount
		}

		sale = &model.Sale{
			ProductID:       product.ID,
			Quantity:        req.Quantity,
			UnitPrice:       unitPrice,
			Discount:        req.Discount,
			TotalPrice:      totalPrice,
			SoldByID:        soldBy,
			PaymentMethod:   method,
			Status:          model.SaleCompleted,
			Reference:       s.refs.SaleReference(),
			CustomerName:    req.CustomerName,
			CustomerContact: req.CustomerContact,
			Notes:           req.Notes,
		}

		// 4. The record must be structurally sound before it lands
		if err := validator.Check(sale); err != nil {
			return err
		}
		return s.saleRepo.Create(tx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.stock.NotifyChange(product, entry)
	return sale, nil
}

func (s *saleService) UpdateSale(id uuid.UUID, req *UpdateSaleRequest, userID uuid.UUID) (*model.Sale, error) {
	var (
		sale    *model.Sale
		product *model.Product
		entry   *model.StockHistory
	)
	err := runInTx(s.db, func(tx *gorm.DB) error {
		product, entry = nil, nil

		var err error
		sale, err = s.saleRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return err
		}
		if !sale.Status.Editable() {
			return ErrSaleNotEditable
		}

		newQuantity := sale.Quantity
		if req.Quantity != nil {
			newQuantity = *req.Quantity
		}
		if newQuantity < 1 {
			return ErrInvalidQuantity
		}

		// Increasing the sale consumes more stock, decreasing returns it.
		// diff == 0 is a valid no-op for the quantity side.
		if diff := newQuantity - sale.Quantity; diff != 0 {
			product, entry, err = s.stock.Apply(tx, sale.ProductID, -diff, model.ActionAdjustment, &userID, "Sale quantity updated")
			if err != nil {
				return err
			}
			sale.Quantity = newQuantity
			// Unit price is never re-snapshotted
			sale.TotalPrice = sale.UnitPrice.Mul(decimal.NewFromInt(int64(newQuantity))).Sub(sale.Discount)
		}

		if req.PaymentMethod != nil {
			if !req.PaymentMethod.Valid() {
				return ErrInvalidPayment
			}
			sale.PaymentMethod = *req.PaymentMethod
		}
		if req.CustomerName != nil {
			sale.CustomerName = *req.CustomerName
		}
		if req.CustomerContact != nil {
			sale.CustomerContact = *req.CustomerContact
		}

		return s.saleRepo.Save(tx, sale)
	})
	if err != nil {
		return nil, err
	}

	if entry != nil {
		s.stock.NotifyChange(product, entry)
	}
	return sale, nil
}

func (s *saleService) CancelSale(id uuid.UUID, userID uuid.UUID) error {
	var (
		product *model.Product
		entry   *model.StockHistory
	)
	err := runInTx(s.db, func(tx *gorm.DB) error {
		sale, err := s.saleRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return err
		}
		// A sale may be reversed exactly once
		if !sale.Status.Editable() {
			return ErrSaleFinalized
		}

		product, entry, err = s.stock.Apply(tx, sale.ProductID, sale.Quantity, model.ActionReversal, &userID, "Sale cancelled")
		if err != nil {
			return err
		}

		sale.Status = model.SaleCancelled
		return s.saleRepo.Save(tx, sale)
	})
	if err != nil {
		return err
	}

	s.stock.NotifyChange(product, entry)
	return nil
}

func (s *saleService) GetSales(filter repository.SaleFilter) ([]model.Sale, error) {
	return s.saleRepo.FindAll(filter)
}

func (s *saleService) GetSaleByID(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return sale, nil
}

func (s *saleService) GetSalesStats() (*SalesStats, error) {
	daily, err := s.saleRepo.DailyStats()
	if err != nil {
		return nil, err
	}
	breakdown, err := s.saleRepo.PaymentBreakdown()
	if err != nil {
		return nil, err
	}
	return &SalesStats{Daily: daily, PaymentBreakdown: breakdown}, nil
}
