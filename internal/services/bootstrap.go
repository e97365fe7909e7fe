package services

import (
	"log"

	"crispybid/internal/apperrors"
	"crispybid/internal/models"
	"crispybid/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin creates the configured admin account if it does not exist yet.
// Idempotent: an existing account is left untouched, so a restart never
// resets the admin's password. The fresh admin must change its password on
// first login.
func EnsureAdmin(userRepo repositories.UserRepository, email, password string) error {
	if email == "" || password == "" {
		return apperrors.Validationf("admin email and password must be configured")
	}

	if _, err := userRepo.GetByEmail(email); err == nil {
		return nil
	} else if !apperrors.IsNotFound(err) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal("failed to hash admin password", err)
	}

	admin := &models.AppUser{
		Email:              email,
		Password:           string(hash),
		Role:               models.RoleAdmin,
		NeedsPasswordReset: true,
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}
	log.Printf("created default admin user: %s", email)
	return nil
}
