package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an auction lot. The serial number is the natural key:
// the catalog importer upserts on it, never on the generated ID.
type Product struct {
	ID             string              `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductTypeID  string              `json:"product_type_id" gorm:"type:varchar(36)"`
	ProductType    *ProductType        `json:"product_type,omitempty" gorm:"foreignKey:ProductTypeID"`
	Model          string              `json:"model" gorm:"not null" validate:"required"`
	Description    string              `json:"description"`
	Serial         string              `json:"serial" gorm:"uniqueIndex;not null;type:varchar(255)" validate:"required"`
	Closed         bool                `json:"closed" gorm:"not null;default:false"`
	StartingPrice  decimal.NullDecimal `json:"starting_price" gorm:"type:decimal(10,2)"`
	ImageObjectKey string              `json:"image_object_key,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}
