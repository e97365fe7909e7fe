package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid is an append-only record of a price offer against a product. The
// composite unique index makes the database the authority for the
// one-bid-per-user-per-product rule; a duplicate insert fails at commit no
// matter what an earlier read saw.
type Bid struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductID string          `json:"product_id" gorm:"not null;type:varchar(36);uniqueIndex:idx_bids_product_user" validate:"required"`
	UserID    string          `json:"user_id" gorm:"not null;type:varchar(36);uniqueIndex:idx_bids_product_user" validate:"required"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time       `json:"created_at"`
}
