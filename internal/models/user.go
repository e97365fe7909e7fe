package models

import "time"

// Roles an account can hold.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// AppUser represents an account. The password is always a bcrypt hash; the
// plaintext only ever exists in the credential mail sent right after import.
type AppUser struct {
	ID                 string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email              string    `json:"email" gorm:"uniqueIndex;not null;type:varchar(255)" validate:"required,email"`
	Password           string    `json:"-" gorm:"not null;type:varchar(255)" validate:"required"` // bcrypt hash, never serialized
	Role               string    `json:"role" gorm:"not null;type:varchar(16);default:USER"`
	NeedsPasswordReset bool      `json:"needs_password_reset" gorm:"not null;default:false"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
