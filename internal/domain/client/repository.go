package client

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines client persistence operations
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// GetByPhone returns clients matching the phone number; the phone is the
	// primary search key but is not unique, so multiple records may match
	GetByPhone(ctx context.Context, phone string) ([]*Client, error)

	List(ctx context.Context, limit, offset int) ([]*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ErrClientNotFound indicates missing client
type ErrClientNotFound struct {
	ClientID uuid.UUID
}

func (e ErrClientNotFound) Error() string {
	return "client not found: " + e.ClientID.String()
}

// Is implements the errors.Is interface for ErrClientNotFound
func (e ErrClientNotFound) Is(target error) bool {
	t, ok := target.(ErrClientNotFound)
	if !ok {
		return false
	}
	if t.ClientID == uuid.Nil {
		return true
	}
	return e.ClientID == t.ClientID
}
