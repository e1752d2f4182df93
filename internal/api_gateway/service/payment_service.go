package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/atelier-rental-ledger/internal/domain/booking"
	"github.com/atelier-rental-ledger/internal/domain/ledger"
	"github.com/atelier-rental-ledger/internal/platform/persistence"
)

// PaymentServiceImpl implements the PaymentService interface
type PaymentServiceImpl struct {
	ledgerRepo  ledger.Repository
	bookingRepo booking.Repository
	txRunner    persistence.TxRunner
	logger      *slog.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	logger *slog.Logger,
	ledgerRepo ledger.Repository,
	bookingRepo booking.Repository,
	txRunner persistence.TxRunner,
) PaymentService {
	return &PaymentServiceImpl{
		ledgerRepo:  ledgerRepo,
		bookingRepo: bookingRepo,
		txRunner:    txRunner,
		logger:      logger,
	}
}

// RecordEntry inserts the ledger entry and applies its paid-amount
// contribution to every booking it touches, all in one transaction
func (s *PaymentServiceImpl) RecordEntry(ctx context.Context, input RecordEntryInput) (*ledger.Entry, error) {
	entry, err := ledger.NewEntry(
		input.Kind,
		input.Amount,
		input.Method,
		input.CustomerName,
		input.BookingID,
		input.Items,
		input.Notes,
		input.StaffID,
	)
	if err != nil {
		return nil, err
	}

	err = s.txRunner.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.ledgerRepo.Create(txCtx, entry); err != nil {
			return err
		}
		return s.applyDeltas(txCtx, entry.BookingDeltas(), 1)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Ledger entry recorded",
		"entry_id", entry.ID.String(),
		"kind", string(entry.Kind),
		"amount", entry.Amount,
		"staff_id", entry.StaffID,
	)

	return entry, nil
}

// GetEntry retrieves a ledger entry by ID, returns ErrEntryNotFound if not found
func (s *PaymentServiceImpl) GetEntry(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	return s.ledgerRepo.GetByID(ctx, id)
}

// ListRecentEntries retrieves the most recent ledger entries, newest first
func (s *PaymentServiceImpl) ListRecentEntries(ctx context.Context, limit int) ([]*ledger.Entry, error) {
	return s.ledgerRepo.ListRecent(ctx, limit)
}

// ListEntriesByBooking retrieves every entry touching a booking, either as the
// primary reference or through a line item
func (s *PaymentServiceImpl) ListEntriesByBooking(ctx context.Context, bookingID uuid.UUID) ([]*ledger.Entry, error) {
	return s.ledgerRepo.ListByBooking(ctx, bookingID)
}

// AmendEntry corrects an entry in place. When the amount changes, the
// difference lands on the primary related booking's paid amount; line-item
// contributions are not recomputed. Everything runs in one transaction.
func (s *PaymentServiceImpl) AmendEntry(ctx context.Context, id uuid.UUID, input AmendEntryInput) (*ledger.Entry, error) {
	entry, err := s.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var delta int64
	if input.Amount != nil && *input.Amount != entry.Amount {
		if *input.Amount <= 0 {
			return nil, ledger.ErrNonPositiveAmount
		}
		delta = *input.Amount - entry.Amount
		entry.Amount = *input.Amount
	}
	if input.Method != nil {
		if !ledger.ValidMethod(*input.Method) {
			return nil, ledger.ErrInvalidMethod
		}
		entry.Method = *input.Method
	}
	if input.CustomerName != nil {
		if *input.CustomerName == "" {
			return nil, ledger.ErrEmptyCustomerName
		}
		entry.CustomerName = *input.CustomerName
	}
	if input.Notes != nil {
		entry.Notes = *input.Notes
	}

	err = s.txRunner.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.ledgerRepo.Update(txCtx, entry); err != nil {
			return err
		}
		if delta != 0 && entry.BookingID != nil {
			return s.bookingRepo.IncrementPaidAmount(txCtx, *entry.BookingID, delta)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Ledger entry amended",
		"entry_id", entry.ID.String(),
		"amount_delta", delta,
	)

	return entry, nil
}

// VoidEntry reverses every paid-amount contribution the entry made, then
// deletes it, all in one transaction
func (s *PaymentServiceImpl) VoidEntry(ctx context.Context, id uuid.UUID) error {
	entry, err := s.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.txRunner.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.applyDeltas(txCtx, entry.BookingDeltas(), -1); err != nil {
			return err
		}
		return s.ledgerRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Ledger entry voided",
		"entry_id", id.String(),
		"kind", string(entry.Kind),
		"amount", entry.Amount,
	)

	return nil
}

// applyDeltas applies each booking's paid-amount delta multiplied by sign
// (+1 when recording, -1 when voiding)
func (s *PaymentServiceImpl) applyDeltas(ctx context.Context, deltas map[uuid.UUID]int64, sign int64) error {
	for bookingID, delta := range deltas {
		if err := s.bookingRepo.IncrementPaidAmount(ctx, bookingID, sign*delta); err != nil {
			return err
		}
	}
	return nil
}
