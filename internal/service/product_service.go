package service

import (
	"errors"

	"go-stocktrack/internal/model"
	"go-stocktrack/internal/repository"
	"go-stocktrack/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UpdateProductRequest updates product master data. Quantity edits are routed
// through the stock service so they land in the audit trail; every other
// field is a plain overwrite when non-nil.
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	SKU          *string          `json:"sku"`
	Description  *string          `json:"description"`
	Barcode      *string          `json:"barcode"`
	Quantity     *int             `json:"quantity"`
	MinimumStock *int             `json:"minimum_stock"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	CategoryID   *uuid.UUID       `json:"category_id"`
	SupplierID   *uuid.UUID       `json:"supplier_id"`
}

type ProductService interface {
	CreateProduct(req *model.Product, actorID uuid.UUID) error
	UpdateProduct(id uuid.UUID, req *UpdateProductRequest, actorID uuid.UUID) (*model.Product, error)
	DeactivateProduct(id uuid.UUID) error
	GetProducts(includeInactive bool) ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
	GetLowStock() ([]model.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
	historyRepo repository.StockHistoryRepository
	stock       StockService
	db          *gorm.DB
}

func NewProductService(pRepo repository.ProductRepository, hRepo repository.StockHistoryRepository, stock StockService, db *gorm.DB) ProductService {
	return &productService{
		productRepo: pRepo,
		historyRepo: hRepo,
		stock:       stock,
		db:          db,
	}
}

func (s *productService) CreateProduct(req *model.Product, actorID uuid.UUID) error {
	// 1. Basic struct validation
	if err := validator.Check(req); err != nil {
		return err
	}
	if req.CostPrice.IsNegative() || req.SellingPrice.IsNegative() {
		return errors.New("prices must not be negative")
	}

	// 2. Uniqueness checks (business validation)
	if existing, _ := s.productRepo.FindBySKU(req.SKU); existing != nil && existing.ID != uuid.Nil {
		return ErrSKUExists
	}
	if req.Barcode != nil && *req.Barcode != "" {
		if existing, _ := s.productRepo.FindByBarcode(*req.Barcode); existing != nil && existing.ID != uuid.Nil {
			return ErrBarcodeExists
		}
	} else {
		// Normalize empty barcodes to NULL so the unique index stays null-safe
		req.Barcode = nil
	}

	req.IsActive = true

	// 3. Persist product and, when it is born with stock, the opening
	// restock entry in one transaction, so a product never exists with
	// unaccounted quantity
	return runInTx(s.db, func(tx *gorm.DB) error {
		if err := s.productRepo.Create(tx, req); err != nil {
			return err
		}
		if req.Quantity > 0 {
			entry := &model.StockHistory{
				ProductID:        req.ID,
				PreviousQuantity: 0,
				NewQuantity:      req.Quantity,
				Action:           model.ActionRestock,
				ChangedByID:      &actorID,
				Note:             "Initial stock on product creation",
			}
			return s.historyRepo.Insert(tx, entry)
		}
		return nil
	})
}

func (s *productService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest, actorID uuid.UUID) (*model.Product, error) {
	var updated *model.Product

	err := runInTx(s.db, func(tx *gorm.DB) error {
		product, err := s.productRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if req.SKU != nil && *req.SKU != product.SKU {
			if existing, _ := s.productRepo.FindBySKU(*req.SKU); existing != nil && existing.ID != uuid.Nil {
				return ErrSKUExists
			}
			product.SKU = *req.SKU
		}
		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.Barcode != nil {
			if *req.Barcode == "" {
				product.Barcode = nil
			} else {
				if existing, _ := s.productRepo.FindByBarcode(*req.Barcode); existing != nil && existing.ID != uuid.Nil && existing.ID != product.ID {
					return ErrBarcodeExists
				}
				product.Barcode = req.Barcode
			}
		}
		if req.Quantity != nil && *req.Quantity < 0 {
			return ErrInvalidQuantity
		}
		if req.MinimumStock != nil {
			if *req.MinimumStock < 0 {
				return ErrInvalidQuantity
			}
			product.MinimumStock = *req.MinimumStock
		}
		if req.CostPrice != nil {
			if req.CostPrice.IsNegative() {
				return errors.New("cost price must not be negative")
			}
			product.CostPrice = *req.CostPrice
		}
		if req.SellingPrice != nil {
			if req.SellingPrice.IsNegative() {
				return errors.New("selling price must not be negative")
			}
			product.SellingPrice = *req.SellingPrice
		}
		if req.CategoryID != nil {
			product.CategoryID = req.CategoryID
		}
		if req.SupplierID != nil {
			product.SupplierID = req.SupplierID
		}

		if err := s.productRepo.Save(tx, product); err != nil {
			return err
		}

		// Quantity edits go through the stock engine so the change is
		// audited; the row lock above is re-entrant within this tx
		if req.Quantity != nil && *req.Quantity != product.Quantity {
			delta := *req.Quantity - product.Quantity
			product, _, err = s.stock.Apply(tx, product.ID, delta, model.ActionAdjustment, &actorID, "Quantity updated via product edit")
			if err != nil {
				return err
			}
		}

		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *productService) DeactivateProduct(id uuid.UUID) error {
	if err := s.productRepo.Deactivate(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

func (s *productService) GetProducts(includeInactive bool) ([]model.Product, error) {
	return s.productRepo.FindAll(includeInactive)
}

func (s *productService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) GetLowStock() ([]model.Product, error) {
	return s.productRepo.FindLowStock()
}
