package repositories_test

import (
	"testing"

	"crispybid/internal/apperrors"
	"crispybid/internal/models"
	"crispybid/internal/repositories"

	"github.com/stretchr/testify/assert"
)

// The in-memory repositories must reject the same duplicates the database
// indexes would, so tests built on them see realistic Conflict errors.

func TestMockProductRepository_DuplicateSerialConflicts(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	assert.NoError(t, repo.Create(&models.Product{Model: "A", Serial: "123"}))

	err := repo.Create(&models.Product{Model: "B", Serial: "123"})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "123")
}

func TestMockProductTypeRepository_DuplicateNameConflictsIgnoringCase(t *testing.T) {
	repo := repositories.NewMockProductTypeRepository()

	assert.NoError(t, repo.Create(&models.ProductType{Name: "Widget"}))

	err := repo.Create(&models.ProductType{Name: "widget"})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	// The one stored type stays reachable under either casing.
	productType, err := repo.GetByNameIgnoreCase("WIDGET")
	assert.NoError(t, err)
	assert.Equal(t, "Widget", productType.Name)
	assert.Equal(t, "widget", productType.NameKey)
}
