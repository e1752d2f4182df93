package item

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyName     = errors.New("item name cannot be empty")
	ErrNegativePrice = errors.New("rental price must not be negative")
	ErrInvalidStatus = errors.New("invalid item status")
)

// Status defines item lifecycle states, set by staff through item updates.
// It is a physical-condition flag and is independent of calendar availability.
type Status string

const (
	StatusAvailable Status = "available"
	StatusRented    Status = "rented"
	StatusCleaning  Status = "cleaning"
	StatusRepair    Status = "repair"
)

// ValidStatus reports whether s is a known lifecycle state
func ValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusRented, StatusCleaning, StatusRepair:
		return true
	}
	return false
}

// Item represents a garment in the rental inventory. BookingCount is a
// lifetime counter maintained by the booking coordinator; InterestCount is
// maintained asynchronously by the scan processor.
type Item struct {
	ID            uuid.UUID `json:"id" bson:"id"`
	Name          string    `json:"name" bson:"name"`
	ImageURL      string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	QRCode        string    `json:"qr_code,omitempty" bson:"qr_code,omitempty"`
	Status        Status    `json:"status" bson:"status"`
	RentalPrice   int64     `json:"rental_price" bson:"rental_price"` // Stored in cents/minor units
	BookingCount  int64     `json:"booking_count" bson:"booking_count"`
	InterestCount int64     `json:"interest_count" bson:"interest_count"`
	StaffNotes    string    `json:"staff_notes,omitempty" bson:"staff_notes,omitempty"`
	LastLocation  string    `json:"last_location,omitempty" bson:"last_location,omitempty"`
	Archived      bool      `json:"archived" bson:"archived"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// NewItem creates an inventory item with the given parameters
func NewItem(name, imageURL, qrCode string, rentalPrice int64) (*Item, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if rentalPrice < 0 {
		return nil, ErrNegativePrice
	}

	now := time.Now()
	return &Item{
		ID:          uuid.New(),
		Name:        name,
		ImageURL:    imageURL,
		QRCode:      qrCode,
		Status:      StatusAvailable,
		RentalPrice: rentalPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
