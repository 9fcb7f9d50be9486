package model

import "github.com/google/uuid"

type StockAction string

const (
	ActionSale       StockAction = "sale"
	ActionRestock    StockAction = "restock"
	ActionAdjustment StockAction = "adjustment"
	ActionReversal   StockAction = "reversal"
)

// Valid reports whether the action is one of the four known kinds.
func (a StockAction) Valid() bool {
	switch a {
	case ActionSale, ActionRestock, ActionAdjustment, ActionReversal:
		return true
	}
	return false
}

// StockHistory is one append-only quantity transition for a product.
// Entries are only ever written by the stock service, inside the same
// transaction as the product update they record. They are never updated.
type StockHistory struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`

	PreviousQuantity int `gorm:"not null" json:"previous_quantity"`
	NewQuantity      int `gorm:"not null" json:"new_quantity"`

	Action StockAction `gorm:"type:varchar(20);not null" json:"action" validate:"required,oneof=sale restock adjustment reversal"`

	// Nil means the change was made by the system rather than a user
	ChangedByID *uuid.UUID `gorm:"type:uuid;index" json:"changed_by_id,omitempty"`
	ChangedBy   *User      `gorm:"foreignKey:ChangedByID" json:"changed_by,omitempty" validate:"-"`

	Note string `gorm:"type:text" json:"note"`
}

// Delta is the signed quantity change this entry records.
func (h *StockHistory) Delta() int {
	return h.NewQuantity - h.PreviousQuantity
}
