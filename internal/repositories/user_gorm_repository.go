package repositories

import (
	"errors"
	"fmt"

	"crispybid/internal/apperrors"
	"crispybid/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// GetAll retrieves all users from the database.
func (r *GORMUserRepository) GetAll() ([]models.AppUser, error) {
	var users []models.AppUser
	if err := r.db.Find(&users).Error; err != nil {
		return nil, apperrors.Internal("failed to get all users", err)
	}
	return users, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.AppUser, error) {
	var user models.AppUser
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user not found")
		}
		return nil, apperrors.Internal(fmt.Sprintf("failed to get user by ID %s", id), err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.AppUser, error) {
	var user models.AppUser
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user not found")
		}
		return nil, apperrors.Internal(fmt.Sprintf("failed to get user by email %s", email), err)
	}
	return &user, nil
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.AppUser) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflictf("email already exists '%s'", user.Email)
		}
		return apperrors.Internal("failed to create user", err)
	}
	return nil
}

// Update updates an existing user in the database.
func (r *GORMUserRepository) Update(user *models.AppUser) error {
	res := r.db.Save(user)
	if res.Error != nil {
		return apperrors.Internal("failed to update user", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundf("user not found")
	}
	return nil
}
