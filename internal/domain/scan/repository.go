package scan

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository manages scan event persistence
type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	ListByItem(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*Event, error)
	CountByItem(ctx context.Context, itemID uuid.UUID) (int64, error)
	WithTx(tx pgx.Tx) Repository
}

// ErrEventNotFound indicates missing scan event
type ErrEventNotFound struct {
	EventID uuid.UUID
}

func (e ErrEventNotFound) Error() string {
	return "scan event not found: " + e.EventID.String()
}

// ErrDuplicateEvent indicates scan event uniqueness violation; the consumer
// relies on it to make redelivered Kafka messages idempotent
type ErrDuplicateEvent struct {
	EventID uuid.UUID
}

func (e ErrDuplicateEvent) Error() string {
	return "duplicate scan event: " + e.EventID.String()
}

// Is implements the errors.Is interface for ErrDuplicateEvent
func (e ErrDuplicateEvent) Is(target error) bool {
	t, ok := target.(ErrDuplicateEvent)
	if !ok {
		return false
	}
	if t.EventID == uuid.Nil {
		return true
	}
	return e.EventID == t.EventID
}
