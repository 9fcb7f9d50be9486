package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name        string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	SKU         string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Description string  `gorm:"type:text" json:"description"`
	Barcode     *string `gorm:"type:varchar(64);uniqueIndex" json:"barcode,omitempty"`

	// Quantity is the single source of truth for stock on hand.
	// Only the stock service is allowed to write it after creation.
	Quantity     int `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	MinimumStock int `gorm:"not null;default:0" json:"minimum_stock" validate:"gte=0"`

	CostPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"cost_price"`
	SellingPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"selling_price"`

	// Weak references, absence is valid
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty" validate:"-"`
	SupplierID *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier   *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty" validate:"-"`

	// Soft delete flag; deactivated products stay in place for history
	IsActive bool `gorm:"default:true" json:"is_active"`
}

// IsLowStock reports whether the product is at or below its reorder threshold.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinimumStock
}
