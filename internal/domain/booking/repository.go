package booking

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines booking persistence operations
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	List(ctx context.Context, limit, offset int) ([]*Booking, error)
	ListActive(ctx context.Context) ([]*Booking, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*Booking, error)

	// ListOpenByItem returns the item's active and pending bookings, the set
	// the availability check runs against
	ListOpenByItem(ctx context.Context, itemID uuid.UUID) ([]*Booking, error)

	Update(ctx context.Context, b *Booking) error
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementPaidAmount atomically applies a signed delta to paid_amount
	IncrementPaidAmount(ctx context.Context, id uuid.UUID, delta int64) error

	// CountsByItem aggregates booking totals per item for count reconciliation
	CountsByItem(ctx context.Context) (map[uuid.UUID]int64, error)
}

// ErrBookingNotFound indicates missing booking
type ErrBookingNotFound struct {
	BookingID uuid.UUID
}

func (e ErrBookingNotFound) Error() string {
	return "booking not found: " + e.BookingID.String()
}

// Is implements the errors.Is interface for ErrBookingNotFound
func (e ErrBookingNotFound) Is(target error) bool {
	t, ok := target.(ErrBookingNotFound)
	if !ok {
		return false
	}
	if t.BookingID == uuid.Nil {
		return true
	}
	return e.BookingID == t.BookingID
}

// ErrItemUnavailable indicates a date conflict with an existing open booking
type ErrItemUnavailable struct {
	ItemID uuid.UUID
}

func (e ErrItemUnavailable) Error() string {
	return "item is not available for the requested dates: " + e.ItemID.String()
}

// Is implements the errors.Is interface for ErrItemUnavailable
func (e ErrItemUnavailable) Is(target error) bool {
	t, ok := target.(ErrItemUnavailable)
	if !ok {
		return false
	}
	if t.ItemID == uuid.Nil {
		return true
	}
	return e.ItemID == t.ItemID
}
