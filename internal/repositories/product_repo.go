package repositories

import (
	"crispybid/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetBySerial(serial string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
}
