package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role codes as constants. The role stored on the user record, not whatever a
// client claims, governs every privileged operation.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents an authenticated user, keyed by email.
type User struct {
	BaseModel
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName string `gorm:"type:varchar(255)" json:"full_name"`
	PhotoURL string `gorm:"type:text" json:"photo_url"`
	Role     string `gorm:"type:varchar(20);not null;default:'USER'" json:"role" validate:"omitempty,oneof=USER ADMIN"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	// A user may pick their own display name exactly once; afterwards only an
	// admin can change it.
	NameCustomized bool `gorm:"default:false" json:"name_customized"`

	TokenVersion string     `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
	LastSeenAt   *time.Time `json:"last_seen_at,omitempty"`                // For user presence
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	PhotoURL       string     `json:"photo_url"`
	Role           string     `json:"role"`
	IsActive       bool       `json:"is_active"`
	NameCustomized bool       `json:"name_customized"`
	LastSeenAt     *time.Time `json:"last_seen_at,omitempty"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		PhotoURL:       u.PhotoURL,
		Role:           u.Role,
		IsActive:       u.IsActive,
		NameCustomized: u.NameCustomized,
		LastSeenAt:     u.LastSeenAt,
	}
}
