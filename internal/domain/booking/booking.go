package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrInvalidDateRange = errors.New("end date must not be before start date")
	ErrNegativePrice    = errors.New("agreed price must not be negative")
	ErrNegativeDeposit  = errors.New("deposit must not be negative")
	ErrMissingItem      = errors.New("item id is required")
	ErrMissingClient    = errors.New("client id is required")
	ErrInvalidStatus    = errors.New("invalid booking status")
)

// ValidStatus reports whether s is a known booking status
func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Status defines booking lifecycle states
type Status string

const (
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Booking represents a reservation of one garment for one client over a date
// range. Item and client names are denormalized snapshots taken at creation
// time; they are never re-synced when the source records change.
type Booking struct {
	ID          uuid.UUID `json:"id" bson:"id"`
	ItemID      uuid.UUID `json:"item_id" bson:"item_id"`
	ClientID    uuid.UUID `json:"client_id" bson:"client_id"`
	ItemName    string    `json:"item_name" bson:"item_name"`
	ClientName  string    `json:"client_name" bson:"client_name"`
	ClientPhone string    `json:"client_phone" bson:"client_phone"`
	StartDate   time.Time `json:"start_date" bson:"start_date"` // Event date
	EndDate     time.Time `json:"end_date" bson:"end_date"`     // Return date
	EventCity   string    `json:"event_city,omitempty" bson:"event_city,omitempty"`
	AgreedPrice int64     `json:"agreed_price" bson:"agreed_price"` // Stored in cents/minor units
	PaidAmount  int64     `json:"paid_amount" bson:"paid_amount"`   // Stored in cents/minor units
	Status      Status    `json:"status" bson:"status"`
	Notes       string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// NewBooking creates a booking with the given parameters. The deposit becomes
// the initial paid amount; recording the matching ledger entry is the
// coordinator's job, not this constructor's.
func NewBooking(itemID, clientID uuid.UUID, itemName, clientName, clientPhone string, start, end time.Time, eventCity string, agreedPrice, deposit int64) (*Booking, error) {
	if itemID == uuid.Nil {
		return nil, ErrMissingItem
	}
	if clientID == uuid.Nil {
		return nil, ErrMissingClient
	}
	if !end.IsZero() && end.Before(start) {
		return nil, ErrInvalidDateRange
	}
	if agreedPrice < 0 {
		return nil, ErrNegativePrice
	}
	if deposit < 0 {
		return nil, ErrNegativeDeposit
	}

	now := time.Now()
	return &Booking{
		ID:          uuid.New(),
		ItemID:      itemID,
		ClientID:    clientID,
		ItemName:    itemName,
		ClientName:  clientName,
		ClientPhone: clientPhone,
		StartDate:   start,
		EndDate:     end,
		EventCity:   eventCity,
		AgreedPrice: agreedPrice,
		PaidAmount:  deposit,
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsOpen reports whether the booking still blocks the item's calendar
func (b *Booking) IsOpen() bool {
	return b.Status == StatusActive || b.Status == StatusPending
}

// EffectiveEnd returns the booking's return date, or start + 24h when no
// return date was recorded (legacy records)
func (b *Booking) EffectiveEnd() time.Time {
	if b.EndDate.IsZero() {
		return b.StartDate.Add(24 * time.Hour)
	}
	return b.EndDate
}

// IsFullyPaid reports whether payments cover the agreed price
func (b *Booking) IsFullyPaid() bool {
	return b.PaidAmount >= b.AgreedPrice
}
