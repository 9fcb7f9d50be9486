package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SaleStatus string

const (
	// SaleCompleted is the only non-terminal status
	SaleCompleted SaleStatus = "completed"
	SaleCancelled SaleStatus = "cancelled"
	// SaleRefunded is modeled but no operation produces it yet
	SaleRefunded SaleStatus = "refunded"
)

// Editable reports whether the sale may still change quantity or be cancelled.
// completed -> cancelled is the only allowed transition.
func (s SaleStatus) Editable() bool {
	return s == SaleCompleted
}

type PaymentMethod string

const (
	PayCash     PaymentMethod = "cash"
	PayCard     PaymentMethod = "card"
	PayTransfer PaymentMethod = "transfer"
	PayOther    PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PayCash, PayCard, PayTransfer, PayOther:
		return true
	}
	return false
}

// Sale records one transaction against a product. UnitPrice is a snapshot of
// the product's selling price at sale time and is never re-read afterwards;
// amendments recompute TotalPrice from the frozen UnitPrice.
type Sale struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`

	Quantity   int             `gorm:"not null" json:"quantity" validate:"required,gte=1"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Discount   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"discount"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`

	SoldByID uuid.UUID `gorm:"type:uuid;not null;index" json:"sold_by_id" validate:"uuid_required"`
	SoldBy   *User     `gorm:"foreignKey:SoldByID" json:"sold_by,omitempty" validate:"-"`

	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null;default:cash" json:"payment_method"`
	Status        SaleStatus    `gorm:"type:varchar(20);not null;default:completed" json:"status"`

	// Human-readable unique reference, e.g. SALE-1755017991234567
	Reference string `gorm:"type:varchar(40);uniqueIndex;not null" json:"reference"`

	CustomerName    string `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	CustomerContact string `gorm:"type:varchar(100)" json:"customer_contact,omitempty"`
	Notes           string `gorm:"type:text" json:"notes,omitempty"`
}
