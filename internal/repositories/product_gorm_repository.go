package repositories

import (
	"errors"
	"fmt"

	"crispybid/internal/apperrors"
	"crispybid/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products with their type preloaded.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Preload("ProductType").Find(&products).Error; err != nil {
		return nil, apperrors.Internal("failed to get all products", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("ProductType").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("product not found with id: %s", id)
		}
		return nil, apperrors.Internal(fmt.Sprintf("failed to get product by ID %s", id), err)
	}
	return &product, nil
}

// GetBySerial looks a product up by its serial number, the import natural key.
func (r *GORMProductRepository) GetBySerial(serial string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "serial = ?", serial).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("product not found with serial: %s", serial)
		}
		return nil, apperrors.Internal(fmt.Sprintf("failed to get product by serial %s", serial), err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflictf("product already exists with serial '%s'", product.Serial)
		}
		return apperrors.Internal("failed to create product", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product) // Save updates all fields, including zero values
	if res.Error != nil {
		return apperrors.Internal("failed to update product", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundf("product not found with id: %s", product.ID)
	}
	return nil
}
