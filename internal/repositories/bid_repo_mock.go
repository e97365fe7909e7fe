package repositories

import (
	"sort"
	"sync"

	"crispybid/internal/apperrors"
	"crispybid/internal/models"

	"github.com/google/uuid"
)

// MockBidRepository is an in-memory implementation of BidRepository.
type MockBidRepository struct {
	bids map[string]models.Bid
	mu   sync.RWMutex
}

// NewMockBidRepository creates a new instance of MockBidRepository.
func NewMockBidRepository() *MockBidRepository {
	return &MockBidRepository{
		bids: make(map[string]models.Bid),
	}
}

// Create appends a new bid, enforcing the (product, user) uniqueness the
// database index would.
func (r *MockBidRepository) Create(bid *models.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bids {
		if b.ProductID == bid.ProductID && b.UserID == bid.UserID {
			return apperrors.Conflictf("you have already placed a bid on this product")
		}
	}
	if bid.ID == "" {
		bid.ID = uuid.New().String()
	}
	r.bids[bid.ID] = *bid
	return nil
}

// GetByProduct returns all bids for a product, newest first.
func (r *MockBidRepository) GetByProduct(productID string) ([]models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bidList := make([]models.Bid, 0)
	for _, b := range r.bids {
		if b.ProductID == productID {
			bidList = append(bidList, b)
		}
	}
	sort.Slice(bidList, func(i, j int) bool {
		return bidList[i].CreatedAt.After(bidList[j].CreatedAt)
	})
	return bidList, nil
}

// GetHighestForProduct returns the highest bid for a product.
func (r *MockBidRepository) GetHighestForProduct(productID string) (*models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var highest *models.Bid
	for _, b := range r.bids {
		if b.ProductID != productID {
			continue
		}
		bid := b
		if highest == nil || bid.Price.GreaterThan(highest.Price) {
			highest = &bid
		}
	}
	if highest == nil {
		return nil, apperrors.NotFoundf("no bids for product %s", productID)
	}
	return highest, nil
}
