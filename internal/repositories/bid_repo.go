package repositories

import "crispybid/internal/models"

// BidRepository defines the interface for bid data access. Bids are
// append-only: there is no update or delete.
type BidRepository interface {
	Create(bid *models.Bid) error
	GetByProduct(productID string) ([]models.Bid, error)
	GetHighestForProduct(productID string) (*models.Bid, error)
}
