package staff

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyName   = errors.New("staff name cannot be empty")
	ErrEmptyEmail  = errors.New("staff email cannot be empty")
	ErrInvalidRole = errors.New("invalid staff role")
)

// Role defines staff authorization levels. Identity verification is out of
// scope; the role only gates back-office endpoints at the UI level.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// ValidRole reports whether r is a known role
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleStaff
}

// Staff represents an employee of the rental business
type Staff struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStaff creates a staff record with the given parameters
func NewStaff(name, email string, role Role) (*Staff, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if email == "" {
		return nil, ErrEmptyEmail
	}
	if !ValidRole(role) {
		return nil, ErrInvalidRole
	}

	now := time.Now()
	return &Staff{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Role:      role,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
