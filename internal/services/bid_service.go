package services

import (
	"time"

	"crispybid/internal/apperrors"
	"crispybid/internal/models"
	"crispybid/internal/repositories"

	"github.com/shopspring/decimal"
)

// BidService handles business logic for placing bids.
type BidService struct {
	tx repositories.TxManager
}

// NewBidService creates a new BidService.
func NewBidService(tx repositories.TxManager) *BidService {
	return &BidService{
		tx: tx,
	}
}

// PlaceBid validates and records a single bid for the user identified by
// email. Checks run in a fixed order and short-circuit on the first failure,
// so a given bad input always produces the same error. The reads and the
// insert share one transaction; the (product, user) unique index decides
// duplicate bids at insert time, not the reads.
func (s *BidService) PlaceBid(productID string, price decimal.NullDecimal, userEmail string) (*models.Bid, error) {
	var bid *models.Bid
	err := s.tx.InTransaction(func(repos *repositories.RepoSet) error {
		product, err := repos.Products.GetByID(productID)
		if err != nil {
			return err
		}

		if product.Closed {
			return apperrors.Conflictf("cannot bid on a closed product")
		}

		if !price.Valid || !price.Decimal.IsPositive() {
			return apperrors.Validationf("price must be greater than 0")
		}

		if product.StartingPrice.Valid && price.Decimal.LessThan(product.StartingPrice.Decimal) {
			return apperrors.Validationf("price must be at least the starting price of %s",
				product.StartingPrice.Decimal.StringFixed(2))
		}

		user, err := repos.Users.GetByEmail(userEmail)
		if err != nil {
			return err
		}

		bid = &models.Bid{
			ProductID: product.ID,
			UserID:    user.ID,
			Price:     price.Decimal,
			CreatedAt: time.Now(),
		}
		return repos.Bids.Create(bid)
	})
	if err != nil {
		return nil, err
	}
	return bid, nil
}
