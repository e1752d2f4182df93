package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/atelier-rental-ledger/internal/domain/booking"
	"github.com/atelier-rental-ledger/internal/domain/client"
	"github.com/atelier-rental-ledger/internal/domain/item"
	"github.com/atelier-rental-ledger/internal/domain/ledger"
	"github.com/atelier-rental-ledger/internal/platform/persistence"
)

// BookingServiceImpl implements the BookingService interface
type BookingServiceImpl struct {
	bookingRepo booking.Repository
	itemRepo    item.Repository
	clientRepo  client.Repository
	ledgerRepo  ledger.Repository
	txRunner    persistence.TxRunner
	bufferDays  int
	logger      *slog.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(
	logger *slog.Logger,
	bookingRepo booking.Repository,
	itemRepo item.Repository,
	clientRepo client.Repository,
	ledgerRepo ledger.Repository,
	txRunner persistence.TxRunner,
	bufferDays int,
) BookingService {
	return &BookingServiceImpl{
		bookingRepo: bookingRepo,
		itemRepo:    itemRepo,
		clientRepo:  clientRepo,
		ledgerRepo:  ledgerRepo,
		txRunner:    txRunner,
		bufferDays:  bufferDays,
		logger:      logger,
	}
}

// CreateBooking runs the full booking bundle in one transaction. The
// availability check runs inside the transaction against the item's open
// bookings, so two concurrent creates for the same dates cannot both commit.
// The booking counter increment is the single best-effort step: a failure
// there is logged and repaired later by reconciliation, not rolled back.
func (s *BookingServiceImpl) CreateBooking(ctx context.Context, input CreateBookingInput) (*booking.Booking, error) {
	if input.ClientID == uuid.Nil && (input.ClientName == "" || input.ClientPhone == "") {
		return nil, booking.ErrMissingClient
	}

	it, err := s.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	var created *booking.Booking
	err = s.txRunner.WithTransaction(ctx, func(txCtx context.Context) error {
		open, err := s.bookingRepo.ListOpenByItem(txCtx, input.ItemID)
		if err != nil {
			return err
		}
		if !booking.IsItemAvailable(open, input.StartDate, input.EndDate, s.bufferDays, uuid.Nil) {
			return booking.ErrItemUnavailable{ItemID: input.ItemID}
		}

		cl, err := s.resolveClient(txCtx, input)
		if err != nil {
			return err
		}

		b, err := booking.NewBooking(
			input.ItemID,
			cl.ID,
			it.Name,
			cl.Name,
			cl.Phone,
			input.StartDate,
			input.EndDate,
			input.EventCity,
			input.AgreedPrice,
			input.Deposit,
		)
		if err != nil {
			return err
		}
		b.Notes = input.Notes

		if err := s.bookingRepo.Create(txCtx, b); err != nil {
			return err
		}

		if input.Deposit > 0 {
			method := input.DepositMethod
			if method == "" {
				method = ledger.MethodCash
			}
			entry, err := ledger.NewEntry(ledger.KindDeposit, input.Deposit, method, cl.Name, &b.ID, nil, "", input.StaffID)
			if err != nil {
				return err
			}
			if err := s.ledgerRepo.Create(txCtx, entry); err != nil {
				return err
			}
		}

		if err := s.itemRepo.IncrementBookingCount(txCtx, input.ItemID); err != nil {
			s.logger.Warn("Failed to increment item booking count, reconciliation will repair it",
				"item_id", input.ItemID.String(),
				"booking_id", b.ID.String(),
				"error", err,
			)
		}

		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking created",
		"booking_id", created.ID.String(),
		"item_id", created.ItemID.String(),
		"client_id", created.ClientID.String(),
		"start_date", created.StartDate,
		"deposit", input.Deposit,
	)

	return created, nil
}

// resolveClient updates the existing client when an ID was supplied, otherwise
// creates a new client record from the provided contact details
func (s *BookingServiceImpl) resolveClient(ctx context.Context, input CreateBookingInput) (*client.Client, error) {
	if input.ClientID != uuid.Nil {
		cl, err := s.clientRepo.GetByID(ctx, input.ClientID)
		if err != nil {
			return nil, err
		}

		changed := false
		if input.ClientName != "" && input.ClientName != cl.Name {
			cl.Name = input.ClientName
			changed = true
		}
		if input.ClientPhone != "" && input.ClientPhone != cl.Phone {
			cl.Phone = input.ClientPhone
			changed = true
		}
		if input.ClientEmail != "" && input.ClientEmail != cl.Email {
			cl.Email = input.ClientEmail
			changed = true
		}
		if input.ClientCity != "" && input.ClientCity != cl.City {
			cl.City = input.ClientCity
			changed = true
		}
		if changed {
			cl.UpdatedAt = time.Now()
			if err := s.clientRepo.Update(ctx, cl); err != nil {
				return nil, err
			}
		}
		return cl, nil
	}

	cl, err := client.NewClient(input.ClientName, input.ClientPhone, input.ClientEmail, input.ClientCity)
	if err != nil {
		return nil, err
	}
	if err := s.clientRepo.Create(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

// GetBooking retrieves a booking by ID, returns ErrBookingNotFound if not found
func (s *BookingServiceImpl) GetBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

// ListBookings retrieves a page of bookings, newest event first
func (s *BookingServiceImpl) ListBookings(ctx context.Context, page, perPage int) ([]*booking.Booking, error) {
	offset := (page - 1) * perPage
	return s.bookingRepo.List(ctx, perPage, offset)
}

// ListActiveBookings retrieves all active bookings ordered by event date
func (s *BookingServiceImpl) ListActiveBookings(ctx context.Context) ([]*booking.Booking, error) {
	return s.bookingRepo.ListActive(ctx)
}

// ListBookingsByItem retrieves all bookings for an item
func (s *BookingServiceImpl) ListBookingsByItem(ctx context.Context, itemID uuid.UUID) ([]*booking.Booking, error) {
	return s.bookingRepo.ListByItem(ctx, itemID)
}

// ListUnpaidBookings returns active bookings whose payments do not cover the
// agreed price. The store cannot compare two fields of the same document in a
// filter, so the comparison happens here.
func (s *BookingServiceImpl) ListUnpaidBookings(ctx context.Context) ([]*booking.Booking, error) {
	active, err := s.bookingRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var unpaid []*booking.Booking
	for _, b := range active {
		if !b.IsFullyPaid() {
			unpaid = append(unpaid, b)
		}
	}
	return unpaid, nil
}

// UpdateBooking applies plain field updates to a booking. Date or status
// changes never re-check availability here; the UI asks CheckAvailability
// with the booking excluded before submitting.
func (s *BookingServiceImpl) UpdateBooking(ctx context.Context, id uuid.UUID, input UpdateBookingInput) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.StartDate != nil {
		b.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		b.EndDate = *input.EndDate
	}
	if !b.EndDate.IsZero() && b.EndDate.Before(b.StartDate) {
		return nil, booking.ErrInvalidDateRange
	}
	if input.EventCity != nil {
		b.EventCity = *input.EventCity
	}
	if input.AgreedPrice != nil {
		if *input.AgreedPrice < 0 {
			return nil, booking.ErrNegativePrice
		}
		b.AgreedPrice = *input.AgreedPrice
	}
	if input.Status != nil {
		if !booking.ValidStatus(*input.Status) {
			return nil, booking.ErrInvalidStatus
		}
		b.Status = *input.Status
	}
	if input.Notes != nil {
		b.Notes = *input.Notes
	}
	b.UpdatedAt = time.Now()

	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// DeleteBooking removes a booking permanently
func (s *BookingServiceImpl) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	return s.bookingRepo.Delete(ctx, id)
}

// CheckAvailability reports whether the item is free for the date range,
// optionally excluding one booking so an edit does not conflict with itself
func (s *BookingServiceImpl) CheckAvailability(ctx context.Context, itemID uuid.UUID, start, end time.Time, excludeBookingID uuid.UUID) (bool, error) {
	open, err := s.bookingRepo.ListOpenByItem(ctx, itemID)
	if err != nil {
		return false, err
	}
	return booking.IsItemAvailable(open, start, end, s.bufferDays, excludeBookingID), nil
}
