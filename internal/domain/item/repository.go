package item

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines inventory item persistence operations
type Repository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*Item, error)
	GetByQRCode(ctx context.Context, qrCode string) (*Item, error)
	List(ctx context.Context, includeArchived bool) ([]*Item, error)
	Update(ctx context.Context, item *Item) error
	Archive(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementBookingCount bumps the lifetime booking counter by one
	IncrementBookingCount(ctx context.Context, id uuid.UUID) error

	// IncrementInterestCount bumps the scan-driven interest counter by one
	IncrementInterestCount(ctx context.Context, id uuid.UUID) error

	// SetBookingCount overwrites the counter; used only by reconciliation
	SetBookingCount(ctx context.Context, id uuid.UUID, count int64) error
}

// ErrItemNotFound indicates missing inventory item
type ErrItemNotFound struct {
	ItemID uuid.UUID
	QRCode string
}

func (e ErrItemNotFound) Error() string {
	if e.QRCode != "" {
		return "item not found for qr code: " + e.QRCode
	}
	return "item not found: " + e.ItemID.String()
}

// Is implements the errors.Is interface for ErrItemNotFound
func (e ErrItemNotFound) Is(target error) bool {
	t, ok := target.(ErrItemNotFound)
	if !ok {
		return false
	}
	if t.ItemID == uuid.Nil && t.QRCode == "" {
		return true
	}
	return e.ItemID == t.ItemID && e.QRCode == t.QRCode
}
