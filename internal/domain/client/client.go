package client

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyName  = errors.New("client name cannot be empty")
	ErrEmptyPhone = errors.New("client phone cannot be empty")
)

// Measurements holds the fitting measurements recorded for a client, in
// centimeters. All fields are optional.
type Measurements struct {
	Bust      float64 `json:"bust,omitempty" bson:"bust,omitempty"`
	Waist     float64 `json:"waist,omitempty" bson:"waist,omitempty"`
	Hips      float64 `json:"hips,omitempty" bson:"hips,omitempty"`
	Length    float64 `json:"length,omitempty" bson:"length,omitempty"`
	Shoulders float64 `json:"shoulders,omitempty" bson:"shoulders,omitempty"`
}

// Client represents a customer of the rental business. The phone number is
// the primary human-facing lookup key but is not unique at the storage level;
// duplicates are resolved by staff.
type Client struct {
	ID           uuid.UUID     `json:"id" bson:"id"`
	Name         string        `json:"name" bson:"name"`
	Phone        string        `json:"phone" bson:"phone"`
	Email        string        `json:"email,omitempty" bson:"email,omitempty"`
	City         string        `json:"city,omitempty" bson:"city,omitempty"`
	Measurements *Measurements `json:"measurements,omitempty" bson:"measurements,omitempty"`
	Notes        string        `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" bson:"updated_at"`
}

// NewClient creates a client record with the given parameters
func NewClient(name, phone, email, city string) (*Client, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if phone == "" {
		return nil, ErrEmptyPhone
	}

	now := time.Now()
	return &Client{
		ID:        uuid.New(),
		Name:      name,
		Phone:     phone,
		Email:     email,
		City:      city,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
