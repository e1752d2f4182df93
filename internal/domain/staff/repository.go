package staff

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines staff persistence operations
type Repository interface {
	Create(ctx context.Context, s *Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*Staff, error)
	GetByEmail(ctx context.Context, email string) (*Staff, error)
	List(ctx context.Context, activeOnly bool) ([]*Staff, error)
	Update(ctx context.Context, s *Staff) error
	WithTx(tx pgx.Tx) Repository
}

// ShiftRepository defines shift persistence operations
type ShiftRepository interface {
	Create(ctx context.Context, shift *Shift) error
	GetByID(ctx context.Context, id uuid.UUID) (*Shift, error)

	// GetOpenByStaff returns the staff member's open shift, if any
	GetOpenByStaff(ctx context.Context, staffID uuid.UUID) (*Shift, error)

	Update(ctx context.Context, shift *Shift) error
	ListByStaff(ctx context.Context, staffID uuid.UUID, limit, offset int) ([]*Shift, error)
	List(ctx context.Context, limit, offset int) ([]*Shift, error)
	WithTx(tx pgx.Tx) ShiftRepository
}

// ErrStaffNotFound indicates missing staff record
type ErrStaffNotFound struct {
	StaffID uuid.UUID
}

func (e ErrStaffNotFound) Error() string {
	return "staff member not found: " + e.StaffID.String()
}

// Is implements the errors.Is interface for ErrStaffNotFound
func (e ErrStaffNotFound) Is(target error) bool {
	t, ok := target.(ErrStaffNotFound)
	if !ok {
		return false
	}
	if t.StaffID == uuid.Nil {
		return true
	}
	return e.StaffID == t.StaffID
}

// ErrDuplicateEmail indicates email uniqueness violation
type ErrDuplicateEmail struct {
	Email string
}

func (e ErrDuplicateEmail) Error() string {
	return "staff member with email already exists: " + e.Email
}

// ErrShiftNotFound indicates missing shift
type ErrShiftNotFound struct {
	ShiftID uuid.UUID
}

func (e ErrShiftNotFound) Error() string {
	return "shift not found: " + e.ShiftID.String()
}

// Is implements the errors.Is interface for ErrShiftNotFound
func (e ErrShiftNotFound) Is(target error) bool {
	t, ok := target.(ErrShiftNotFound)
	if !ok {
		return false
	}
	if t.ShiftID == uuid.Nil {
		return true
	}
	return e.ShiftID == t.ShiftID
}

// ErrShiftAlreadyOpen indicates the staff member already has an open shift
type ErrShiftAlreadyOpen struct {
	StaffID uuid.UUID
}

func (e ErrShiftAlreadyOpen) Error() string {
	return "staff member already has an open shift: " + e.StaffID.String()
}

// ErrNoOpenShift indicates the staff member has no shift to check out of
type ErrNoOpenShift struct {
	StaffID uuid.UUID
}

func (e ErrNoOpenShift) Error() string {
	return "no open shift for staff member: " + e.StaffID.String()
}
