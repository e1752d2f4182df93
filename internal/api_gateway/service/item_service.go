package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/atelier-rental-ledger/internal/domain/booking"
	"github.com/atelier-rental-ledger/internal/domain/item"
)

// ItemServiceImpl implements the ItemService interface
type ItemServiceImpl struct {
	itemRepo    item.Repository
	bookingRepo booking.Repository
	logger      *slog.Logger
}

// NewItemService creates a new inventory service
func NewItemService(logger *slog.Logger, itemRepo item.Repository, bookingRepo booking.Repository) ItemService {
	return &ItemServiceImpl{
		itemRepo:    itemRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// CreateItem adds a garment to the inventory
func (s *ItemServiceImpl) CreateItem(ctx context.Context, input CreateItemInput) (*item.Item, error) {
	it, err := item.NewItem(input.Name, input.ImageURL, input.QRCode, input.RentalPrice)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Create(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

// GetItem retrieves an item by ID, returns ErrItemNotFound if not found
func (s *ItemServiceImpl) GetItem(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

// GetItemByQRCode resolves an item from a scanned QR code value
func (s *ItemServiceImpl) GetItemByQRCode(ctx context.Context, qrCode string) (*item.Item, error) {
	return s.itemRepo.GetByQRCode(ctx, qrCode)
}

// ListItems retrieves inventory items, excluding archived ones unless asked
func (s *ItemServiceImpl) ListItems(ctx context.Context, includeArchived bool) ([]*item.Item, error) {
	return s.itemRepo.List(ctx, includeArchived)
}

// UpdateItem applies field updates to an item, including the staff-set
// lifecycle status
func (s *ItemServiceImpl) UpdateItem(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*item.Item, error) {
	it, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, item.ErrEmptyName
		}
		it.Name = *input.Name
	}
	if input.ImageURL != nil {
		it.ImageURL = *input.ImageURL
	}
	if input.QRCode != nil {
		it.QRCode = *input.QRCode
	}
	if input.Status != nil {
		if !item.ValidStatus(*input.Status) {
			return nil, item.ErrInvalidStatus
		}
		it.Status = *input.Status
	}
	if input.RentalPrice != nil {
		if *input.RentalPrice < 0 {
			return nil, item.ErrNegativePrice
		}
		it.RentalPrice = *input.RentalPrice
	}
	if input.StaffNotes != nil {
		it.StaffNotes = *input.StaffNotes
	}
	if input.LastLocation != nil {
		it.LastLocation = *input.LastLocation
	}
	it.UpdatedAt = time.Now()

	if err := s.itemRepo.Update(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

// ArchiveItem soft-deletes an item, keeping its booking history intact
func (s *ItemServiceImpl) ArchiveItem(ctx context.Context, id uuid.UUID) error {
	return s.itemRepo.Archive(ctx, id)
}

// DeleteItem removes an item permanently
func (s *ItemServiceImpl) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.itemRepo.Delete(ctx, id)
}

// ReconcileBookingCounts recomputes each item's lifetime booking counter from
// the bookings collection and overwrites items that disagree. The booking
// coordinator's counter increment is best-effort, so the counters drift when
// an increment fails after the booking itself committed; this sweep is the
// repair path.
func (s *ItemServiceImpl) ReconcileBookingCounts(ctx context.Context) ([]CountAdjustment, error) {
	counts, err := s.bookingRepo.CountsByItem(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	var adjustments []CountAdjustment
	for _, it := range items {
		want := counts[it.ID]
		if it.BookingCount == want {
			continue
		}

		if err := s.itemRepo.SetBookingCount(ctx, it.ID, want); err != nil {
			s.logger.Error("Failed to reconcile item booking count",
				"item_id", it.ID.String(),
				"error", err,
			)
			return nil, err
		}

		s.logger.Info("Reconciled item booking count",
			"item_id", it.ID.String(),
			"old_count", it.BookingCount,
			"new_count", want,
		)
		adjustments = append(adjustments, CountAdjustment{
			ItemID:   it.ID,
			ItemName: it.Name,
			OldCount: it.BookingCount,
			NewCount: want,
		})
	}

	return adjustments, nil
}
