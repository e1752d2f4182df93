package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrInvalidKind       = errors.New("invalid entry kind")
	ErrInvalidMethod     = errors.New("invalid payment method")
	ErrEmptyCustomerName = errors.New("customer name cannot be empty")
)

// Kind defines the kinds of money movement the ledger records
type Kind string

const (
	KindDeposit      Kind = "deposit"
	KindFinalPayment Kind = "final_payment"
	KindSale         Kind = "sale"
)

// ValidKind reports whether k is a known entry kind
func ValidKind(k Kind) bool {
	switch k {
	case KindDeposit, KindFinalPayment, KindSale:
		return true
	}
	return false
}

// Method defines accepted payment methods
type Method string

const (
	MethodCash   Method = "cash"
	MethodCredit Method = "credit"
	MethodCheck  Method = "check"
	MethodBit    Method = "bit"
)

// ValidMethod reports whether m is a known payment method
func ValidMethod(m Method) bool {
	switch m {
	case MethodCash, MethodCredit, MethodCheck, MethodBit:
		return true
	}
	return false
}

// LineItem is a component of a ledger entry. A line item may reference a
// booking other than the entry's primary one, e.g. a single receipt settling
// two rentals for the same family.
type LineItem struct {
	Description string     `json:"description" bson:"description"`
	Amount      int64      `json:"amount" bson:"amount"` // Stored in cents/minor units
	Quantity    int        `json:"quantity" bson:"quantity"`
	BookingID   *uuid.UUID `json:"booking_id,omitempty" bson:"booking_id,omitempty"`
}

// Entry represents one payment recorded in the ledger. Amounts are always
// positive; the direction of a paid-amount adjustment comes from the
// operation applying it (record adds, void subtracts).
type Entry struct {
	ID           uuid.UUID  `json:"id" bson:"id"`
	Kind         Kind       `json:"kind" bson:"kind"`
	Amount       int64      `json:"amount" bson:"amount"` // Stored in cents/minor units
	Method       Method     `json:"method" bson:"method"`
	CustomerName string     `json:"customer_name" bson:"customer_name"`
	BookingID    *uuid.UUID `json:"booking_id,omitempty" bson:"booking_id,omitempty"` // Primary related booking
	Items        []LineItem `json:"items,omitempty" bson:"items,omitempty"`
	Notes        string     `json:"notes,omitempty" bson:"notes,omitempty"`
	StaffID      string     `json:"staff_id,omitempty" bson:"staff_id,omitempty"`
	Timestamp    time.Time  `json:"timestamp" bson:"timestamp"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
}

// NewEntry creates a ledger entry with the given parameters
func NewEntry(kind Kind, amount int64, method Method, customerName string, bookingID *uuid.UUID, items []LineItem, notes, staffID string) (*Entry, error) {
	if !ValidKind(kind) {
		return nil, ErrInvalidKind
	}
	if amount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if !ValidMethod(method) {
		return nil, ErrInvalidMethod
	}
	if customerName == "" {
		return nil, ErrEmptyCustomerName
	}

	now := time.Now()
	return &Entry{
		ID:           uuid.New(),
		Kind:         kind,
		Amount:       amount,
		Method:       method,
		CustomerName: customerName,
		BookingID:    bookingID,
		Items:        items,
		Notes:        notes,
		StaffID:      staffID,
		Timestamp:    now,
		CreatedAt:    now,
	}, nil
}

// BookingDeltas returns the paid-amount contribution this entry makes to each
// booking it touches: the full entry amount to the primary booking, plus each
// line item's amount to any booking the line item references that differs
// from the primary. Voiding an entry applies the same map negated.
func (e *Entry) BookingDeltas() map[uuid.UUID]int64 {
	deltas := make(map[uuid.UUID]int64)
	if e.BookingID != nil {
		deltas[*e.BookingID] += e.Amount
	}
	for _, item := range e.Items {
		if item.BookingID == nil {
			continue
		}
		if e.BookingID != nil && *item.BookingID == *e.BookingID {
			continue
		}
		deltas[*item.BookingID] += item.Amount
	}
	return deltas
}
