package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/atelier-rental-ledger/internal/domain/booking"
	"github.com/atelier-rental-ledger/internal/domain/client"
	"github.com/atelier-rental-ledger/internal/domain/item"
	"github.com/atelier-rental-ledger/internal/domain/ledger"
	"github.com/atelier-rental-ledger/internal/domain/shared"
	"github.com/atelier-rental-ledger/internal/domain/staff"
)

// CreateItemInput carries the fields accepted when adding a garment to the
// inventory
type CreateItemInput struct {
	Name        string
	ImageURL    string
	QRCode      string
	RentalPrice int64
}

// UpdateItemInput carries the item fields staff may change. Nil pointers leave
// the stored value untouched.
type UpdateItemInput struct {
	Name         *string
	ImageURL     *string
	QRCode       *string
	Status       *item.Status
	RentalPrice  *int64
	StaffNotes   *string
	LastLocation *string
}

// CountAdjustment reports one item whose booking counter disagreed with the
// bookings collection and was overwritten during reconciliation
type CountAdjustment struct {
	ItemID   uuid.UUID `json:"item_id"`
	ItemName string    `json:"item_name"`
	OldCount int64     `json:"old_count"`
	NewCount int64     `json:"new_count"`
}

// ItemService defines the interface for inventory operations
type ItemService interface {
	CreateItem(ctx context.Context, input CreateItemInput) (*item.Item, error)

	// GetItem retrieves an item by its ID
	// Returns ErrItemNotFound if the item doesn't exist
	GetItem(ctx context.Context, id uuid.UUID) (*item.Item, error)

	// GetItemByQRCode resolves an item from a scanned QR code value
	GetItemByQRCode(ctx context.Context, qrCode string) (*item.Item, error)

	ListItems(ctx context.Context, includeArchived bool) ([]*item.Item, error)
	UpdateItem(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*item.Item, error)
	ArchiveItem(ctx context.Context, id uuid.UUID) error
	DeleteItem(ctx context.Context, id uuid.UUID) error

	// ReconcileBookingCounts recomputes every item's lifetime booking counter
	// from the bookings collection and overwrites items that disagree,
	// reporting the adjustments made
	ReconcileBookingCounts(ctx context.Context) ([]CountAdjustment, error)
}

// CreateClientInput carries the fields accepted when registering a client
type CreateClientInput struct {
	Name         string
	Phone        string
	Email        string
	City         string
	Measurements *client.Measurements
	Notes        string
}

// UpdateClientInput carries the client fields staff may change. Nil pointers
// leave the stored value untouched.
type UpdateClientInput struct {
	Name         *string
	Phone        *string
	Email        *string
	City         *string
	Measurements *client.Measurements
	Notes        *string
}

// ClientService defines the interface for client registry operations
type ClientService interface {
	CreateClient(ctx context.Context, input CreateClientInput) (*client.Client, error)

	// GetClient retrieves a client by ID
	// Returns ErrClientNotFound if the client doesn't exist
	GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error)

	// FindClientsByPhone returns every client matching the phone number; the
	// phone is the primary human-facing key but is not unique
	FindClientsByPhone(ctx context.Context, phone string) ([]*client.Client, error)

	ListClients(ctx context.Context, page, perPage int) ([]*client.Client, error)
	UpdateClient(ctx context.Context, id uuid.UUID, input UpdateClientInput) (*client.Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error
}

// CreateBookingInput carries everything the booking coordinator needs. Client
// identity is either an existing client ID or a name+phone pair for a new
// client record.
type CreateBookingInput struct {
	ItemID        uuid.UUID
	ClientID      uuid.UUID // uuid.Nil means create a new client
	ClientName    string
	ClientPhone   string
	ClientEmail   string
	ClientCity    string
	StartDate     time.Time
	EndDate       time.Time
	EventCity     string
	AgreedPrice   int64
	Deposit       int64
	DepositMethod ledger.Method
	Notes         string
	StaffID       string
}

// UpdateBookingInput carries the booking fields staff may change. Nil pointers
// leave the stored value untouched. Date changes do not re-check availability;
// the UI calls CheckAvailability with the booking excluded first.
type UpdateBookingInput struct {
	StartDate   *time.Time
	EndDate     *time.Time
	EventCity   *string
	AgreedPrice *int64
	Status      *booking.Status
	Notes       *string
}

// BookingService defines the interface for the booking engine
type BookingService interface {
	// CreateBooking runs the full booking bundle in one transaction: the
	// availability re-check, client resolution, booking creation, the deposit
	// ledger entry, and the item's booking counter.
	// Returns ErrItemUnavailable on a date conflict with an open booking.
	CreateBooking(ctx context.Context, input CreateBookingInput) (*booking.Booking, error)

	// GetBooking retrieves a booking by ID
	// Returns ErrBookingNotFound if the booking doesn't exist
	GetBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)

	ListBookings(ctx context.Context, page, perPage int) ([]*booking.Booking, error)
	ListActiveBookings(ctx context.Context) ([]*booking.Booking, error)
	ListBookingsByItem(ctx context.Context, itemID uuid.UUID) ([]*booking.Booking, error)

	// ListUnpaidBookings returns active bookings whose payments do not yet
	// cover the agreed price
	ListUnpaidBookings(ctx context.Context) ([]*booking.Booking, error)

	UpdateBooking(ctx context.Context, id uuid.UUID, input UpdateBookingInput) (*booking.Booking, error)
	DeleteBooking(ctx context.Context, id uuid.UUID) error

	// CheckAvailability reports whether the item is free for the date range.
	// excludeBookingID (uuid.Nil for none) skips one booking, so an edit does
	// not conflict with itself.
	CheckAvailability(ctx context.Context, itemID uuid.UUID, start, end time.Time, excludeBookingID uuid.UUID) (bool, error)
}

// RecordEntryInput carries the fields accepted when recording a payment
type RecordEntryInput struct {
	Kind         ledger.Kind
	Amount       int64
	Method       ledger.Method
	CustomerName string
	BookingID    *uuid.UUID
	Items        []ledger.LineItem
	Notes        string
	StaffID      string
}

// AmendEntryInput carries the entry fields staff may correct. Nil pointers
// leave the stored value untouched. Only an amount change touches the related
// booking's paid amount.
type AmendEntryInput struct {
	Amount       *int64
	Method       *ledger.Method
	CustomerName *string
	Notes        *string
}

// PaymentService defines the interface for the payment ledger. Record, Amend
// and Void each run the entry write and the related bookings' paid-amount
// arithmetic in one transaction.
type PaymentService interface {
	RecordEntry(ctx context.Context, input RecordEntryInput) (*ledger.Entry, error)

	// GetEntry retrieves a ledger entry by ID
	// Returns ErrEntryNotFound if the entry doesn't exist
	GetEntry(ctx context.Context, id uuid.UUID) (*ledger.Entry, error)

	ListRecentEntries(ctx context.Context, limit int) ([]*ledger.Entry, error)
	ListEntriesByBooking(ctx context.Context, bookingID uuid.UUID) ([]*ledger.Entry, error)

	// AmendEntry corrects an entry in place. An amount change applies the
	// difference to the primary related booking's paid amount.
	AmendEntry(ctx context.Context, id uuid.UUID, input AmendEntryInput) (*ledger.Entry, error)

	// VoidEntry reverses every paid-amount contribution the entry made, then
	// deletes it
	VoidEntry(ctx context.Context, id uuid.UUID) error
}

// UpdateStaffInput carries the staff fields an admin may change. Nil pointers
// leave the stored value untouched.
type UpdateStaffInput struct {
	Name   *string
	Email  *string
	Role   *staff.Role
	Active *bool
}

// StaffService defines the interface for staff records and shift tracking
type StaffService interface {
	CreateStaff(ctx context.Context, name, email string, role staff.Role) (*staff.Staff, error)

	// GetStaff retrieves a staff member by ID
	// Returns ErrStaffNotFound if the record doesn't exist
	GetStaff(ctx context.Context, id uuid.UUID) (*staff.Staff, error)

	ListStaff(ctx context.Context, activeOnly bool) ([]*staff.Staff, error)
	UpdateStaff(ctx context.Context, id uuid.UUID, input UpdateStaffInput) (*staff.Staff, error)

	// CheckIn opens a shift for the staff member
	// Returns ErrShiftAlreadyOpen if one is already open
	CheckIn(ctx context.Context, staffID uuid.UUID) (*staff.Shift, error)

	// CheckOut closes the staff member's open shift, computing total hours
	// Returns ErrNoOpenShift if none is open
	CheckOut(ctx context.Context, staffID uuid.UUID) (*staff.Shift, error)

	ListShifts(ctx context.Context, page, perPage int) ([]*staff.Shift, error)
	ListShiftsByStaff(ctx context.Context, staffID uuid.UUID, page, perPage int) ([]*staff.Shift, error)
}

// SubmitScanInput carries one QR-code interest scan
type SubmitScanInput struct {
	QRCode        string
	StaffID       string
	Source        string
	CorrelationID string
}

// ScanService defines the interface for interest-scan ingestion
type ScanService interface {
	// SubmitScan resolves the item behind the QR code and publishes the scan
	// to Kafka for asynchronous processing.
	// Returns ErrItemNotFound if no item carries the code.
	SubmitScan(ctx context.Context, input SubmitScanInput) (*shared.ScanRequest, error)
}
