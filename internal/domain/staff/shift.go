package staff

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common shift errors
var (
	ErrShiftAlreadyClosed = errors.New("shift is already closed")
	ErrCheckOutBeforeIn   = errors.New("check-out time cannot precede check-in time")
)

// Shift represents one work shift, opened at check-in and closed at
// check-out. TotalHours is computed and stored at close time.
type Shift struct {
	ID         uuid.UUID  `json:"id"`
	StaffID    uuid.UUID  `json:"staff_id"`
	CheckIn    time.Time  `json:"check_in"`
	CheckOut   *time.Time `json:"check_out,omitempty"`
	TotalHours float64    `json:"total_hours"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewShift opens a shift for the given staff member
func NewShift(staffID uuid.UUID, checkIn time.Time) *Shift {
	return &Shift{
		ID:        uuid.New(),
		StaffID:   staffID,
		CheckIn:   checkIn,
		CreatedAt: time.Now(),
	}
}

// IsOpen reports whether the shift has not been checked out yet
func (s *Shift) IsOpen() bool {
	return s.CheckOut == nil
}

// Close records the check-out time and computes the total hours worked
func (s *Shift) Close(at time.Time) error {
	if s.CheckOut != nil {
		return ErrShiftAlreadyClosed
	}
	if at.Before(s.CheckIn) {
		return ErrCheckOutBeforeIn
	}

	s.CheckOut = &at
	s.TotalHours = at.Sub(s.CheckIn).Hours()
	return nil
}
