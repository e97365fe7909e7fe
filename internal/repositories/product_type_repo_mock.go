package repositories

import (
	"strings"
	"sync"

	"crispybid/internal/apperrors"
	"crispybid/internal/models"

	"github.com/google/uuid"
)

// MockProductTypeRepository is an in-memory implementation of ProductTypeRepository.
type MockProductTypeRepository struct {
	types map[string]models.ProductType
	mu    sync.RWMutex
}

// NewMockProductTypeRepository creates a new instance of MockProductTypeRepository.
func NewMockProductTypeRepository() *MockProductTypeRepository {
	return &MockProductTypeRepository{
		types: make(map[string]models.ProductType),
	}
}

// GetByNameIgnoreCase returns a product type by name, ignoring case.
func (r *MockProductTypeRepository) GetByNameIgnoreCase(name string) (*models.ProductType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.types {
		if strings.EqualFold(t.Name, name) {
			productType := t
			return &productType, nil
		}
	}
	return nil, apperrors.NotFoundf("product type not found with name: %s", name)
}

// Create adds a new product type, enforcing the case-insensitive name
// uniqueness the database index would.
func (r *MockProductTypeRepository) Create(productType *models.ProductType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.types {
		if strings.EqualFold(t.Name, productType.Name) {
			return apperrors.Conflictf("product type already exists '%s'", productType.Name)
		}
	}
	if productType.ID == "" {
		productType.ID = uuid.New().String()
	}
	productType.NameKey = strings.ToLower(productType.Name)
	r.types[productType.ID] = *productType
	return nil
}
