package repositories

import (
	"crispybid/internal/models"
)

// ProductTypeRepository defines the interface for product type data access.
// Lookup is case-insensitive: "Widget" and "widget" are the same type.
type ProductTypeRepository interface {
	GetByNameIgnoreCase(name string) (*models.ProductType, error)
	Create(productType *models.ProductType) error
}
