package model

// Supplier is a weak-reference target for products, display enrichment only.
type Supplier struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	Contact string `gorm:"type:varchar(100)" json:"contact"`
	Email   string `gorm:"type:varchar(255)" json:"email"`
	Address string `gorm:"type:text" json:"address"`
}
