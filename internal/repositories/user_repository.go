package repositories

import "crispybid/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	GetAll() ([]models.AppUser, error)
	GetByID(id string) (*models.AppUser, error)
	GetByEmail(email string) (*models.AppUser, error)
	Create(user *models.AppUser) error
	Update(user *models.AppUser) error
}
