package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/atelier-rental-ledger/internal/domain/client"
)

// ClientServiceImpl implements the ClientService interface
type ClientServiceImpl struct {
	clientRepo client.Repository
}

// NewClientService creates a new client registry service
func NewClientService(clientRepo client.Repository) ClientService {
	return &ClientServiceImpl{
		clientRepo: clientRepo,
	}
}

// CreateClient registers a new client
func (s *ClientServiceImpl) CreateClient(ctx context.Context, input CreateClientInput) (*client.Client, error) {
	cl, err := client.NewClient(input.Name, input.Phone, input.Email, input.City)
	if err != nil {
		return nil, err
	}
	cl.Measurements = input.Measurements
	cl.Notes = input.Notes

	if err := s.clientRepo.Create(ctx, cl); err != nil {
		return nil, err
	}

	return cl, nil
}

// GetClient retrieves a client by ID, returns ErrClientNotFound if not found
func (s *ClientServiceImpl) GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

// FindClientsByPhone returns every client matching the phone number
func (s *ClientServiceImpl) FindClientsByPhone(ctx context.Context, phone string) ([]*client.Client, error) {
	return s.clientRepo.GetByPhone(ctx, phone)
}

// ListClients retrieves a page of clients
func (s *ClientServiceImpl) ListClients(ctx context.Context, page, perPage int) ([]*client.Client, error) {
	offset := (page - 1) * perPage
	return s.clientRepo.List(ctx, perPage, offset)
}

// UpdateClient applies field updates to a client record. Bookings holding
// snapshots of the old name or phone are left as they were.
func (s *ClientServiceImpl) UpdateClient(ctx context.Context, id uuid.UUID, input UpdateClientInput) (*client.Client, error) {
	cl, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, client.ErrEmptyName
		}
		cl.Name = *input.Name
	}
	if input.Phone != nil {
		if *input.Phone == "" {
			return nil, client.ErrEmptyPhone
		}
		cl.Phone = *input.Phone
	}
	if input.Email != nil {
		cl.Email = *input.Email
	}
	if input.City != nil {
		cl.City = *input.City
	}
	if input.Measurements != nil {
		cl.Measurements = input.Measurements
	}
	if input.Notes != nil {
		cl.Notes = *input.Notes
	}
	cl.UpdatedAt = time.Now()

	if err := s.clientRepo.Update(ctx, cl); err != nil {
		return nil, err
	}

	return cl, nil
}

// DeleteClient removes a client permanently
func (s *ClientServiceImpl) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return s.clientRepo.Delete(ctx, id)
}
