package repositories

import (
	"errors"
	"fmt"
	"strings"

	"crispybid/internal/apperrors"
	"crispybid/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductTypeRepository is a GORM implementation of ProductTypeRepository.
type GORMProductTypeRepository struct {
	db *gorm.DB
}

// NewGORMProductTypeRepository creates a new instance of GORMProductTypeRepository.
func NewGORMProductTypeRepository(db *gorm.DB) *GORMProductTypeRepository {
	return &GORMProductTypeRepository{
		db: db,
	}
}

// GetByNameIgnoreCase retrieves a product type by name, ignoring case.
func (r *GORMProductTypeRepository) GetByNameIgnoreCase(name string) (*models.ProductType, error) {
	var productType models.ProductType
	if err := r.db.First(&productType, "name_key = ?", strings.ToLower(name)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("product type not found with name: %s", name)
		}
		return nil, apperrors.Internal(fmt.Sprintf("failed to get product type by name %s", name), err)
	}
	return &productType, nil
}

// Create creates a new product type. The unique index on the lowercased name
// key turns a case-insensitive duplicate into a Conflict.
func (r *GORMProductTypeRepository) Create(productType *models.ProductType) error {
	if productType.ID == "" {
		productType.ID = uuid.New().String()
	}
	productType.NameKey = strings.ToLower(productType.Name)
	if err := r.db.Create(productType).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflictf("product type already exists '%s'", productType.Name)
		}
		return apperrors.Internal("failed to create product type", err)
	}
	return nil
}
