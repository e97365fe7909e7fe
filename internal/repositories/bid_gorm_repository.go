package repositories

import (
	"errors"
	"fmt"

	"crispybid/internal/apperrors"
	"crispybid/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMBidRepository is a GORM implementation of BidRepository.
type GORMBidRepository struct {
	db *gorm.DB
}

// NewGORMBidRepository creates a new instance of GORMBidRepository.
func NewGORMBidRepository(db *gorm.DB) *GORMBidRepository {
	return &GORMBidRepository{
		db: db,
	}
}

// Create appends a new bid. The (product_id, user_id) unique index is the
// canonical signal for "already bid": a duplicate surfaces here as a
// Conflict even when a racing insert committed after our earlier reads.
func (r *GORMBidRepository) Create(bid *models.Bid) error {
	if bid.ID == "" {
		bid.ID = uuid.New().String()
	}
	if err := r.db.Create(bid).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflictf("you have already placed a bid on this product")
		}
		return apperrors.Internal("failed to create bid", err)
	}
	return nil
}

// GetByProduct retrieves all bids for a product, newest first.
func (r *GORMBidRepository) GetByProduct(productID string) ([]models.Bid, error) {
	var bids []models.Bid
	if err := r.db.Where("product_id = ?", productID).Order("created_at DESC").Find(&bids).Error; err != nil {
		return nil, apperrors.Internal(fmt.Sprintf("failed to get bids for product %s", productID), err)
	}
	return bids, nil
}

// GetHighestForProduct retrieves the highest bid for a product.
func (r *GORMBidRepository) GetHighestForProduct(productID string) (*models.Bid, error) {
	var bid models.Bid
	if err := r.db.Where("product_id = ?", productID).Order("price DESC").First(&bid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("no bids for product %s", productID)
		}
		return nil, apperrors.Internal(fmt.Sprintf("failed to get highest bid for product %s", productID), err)
	}
	return &bid, nil
}
