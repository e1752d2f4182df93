package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/atelier-rental-ledger/internal/domain/staff"
)

// StaffServiceImpl implements the StaffService interface
type StaffServiceImpl struct {
	staffRepo staff.Repository
	shiftRepo staff.ShiftRepository
	logger    *slog.Logger
}

// NewStaffService creates a new staff service
func NewStaffService(logger *slog.Logger, staffRepo staff.Repository, shiftRepo staff.ShiftRepository) StaffService {
	return &StaffServiceImpl{
		staffRepo: staffRepo,
		shiftRepo: shiftRepo,
		logger:    logger,
	}
}

// CreateStaff registers a new staff member
func (s *StaffServiceImpl) CreateStaff(ctx context.Context, name, email string, role staff.Role) (*staff.Staff, error) {
	member, err := staff.NewStaff(name, email, role)
	if err != nil {
		return nil, err
	}

	if err := s.staffRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

// GetStaff retrieves a staff member by ID, returns ErrStaffNotFound if not found
func (s *StaffServiceImpl) GetStaff(ctx context.Context, id uuid.UUID) (*staff.Staff, error) {
	return s.staffRepo.GetByID(ctx, id)
}

// ListStaff retrieves staff members, optionally filtering to active ones
func (s *StaffServiceImpl) ListStaff(ctx context.Context, activeOnly bool) ([]*staff.Staff, error) {
	return s.staffRepo.List(ctx, activeOnly)
}

// UpdateStaff applies field updates to a staff record
func (s *StaffServiceImpl) UpdateStaff(ctx context.Context, id uuid.UUID, input UpdateStaffInput) (*staff.Staff, error) {
	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, staff.ErrEmptyName
		}
		member.Name = *input.Name
	}
	if input.Email != nil {
		if *input.Email == "" {
			return nil, staff.ErrEmptyEmail
		}
		member.Email = *input.Email
	}
	if input.Role != nil {
		if !staff.ValidRole(*input.Role) {
			return nil, staff.ErrInvalidRole
		}
		member.Role = *input.Role
	}
	if input.Active != nil {
		member.Active = *input.Active
	}
	member.UpdatedAt = time.Now()

	if err := s.staffRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

// CheckIn opens a shift for the staff member.
// Returns ErrShiftAlreadyOpen if one is already open.
func (s *StaffServiceImpl) CheckIn(ctx context.Context, staffID uuid.UUID) (*staff.Shift, error) {
	if _, err := s.staffRepo.GetByID(ctx, staffID); err != nil {
		return nil, err
	}

	open, err := s.shiftRepo.GetOpenByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, staff.ErrShiftAlreadyOpen{StaffID: staffID}
	}

	shift := staff.NewShift(staffID, time.Now())
	if err := s.shiftRepo.Create(ctx, shift); err != nil {
		return nil, err
	}

	s.logger.Info("Shift opened", "staff_id", staffID.String(), "shift_id", shift.ID.String())
	return shift, nil
}

// CheckOut closes the staff member's open shift, computing total hours.
// Returns ErrNoOpenShift if none is open.
func (s *StaffServiceImpl) CheckOut(ctx context.Context, staffID uuid.UUID) (*staff.Shift, error) {
	open, err := s.shiftRepo.GetOpenByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, staff.ErrNoOpenShift{StaffID: staffID}
	}

	if err := open.Close(time.Now()); err != nil {
		return nil, err
	}
	if err := s.shiftRepo.Update(ctx, open); err != nil {
		return nil, err
	}

	s.logger.Info("Shift closed",
		"staff_id", staffID.String(),
		"shift_id", open.ID.String(),
		"total_hours", open.TotalHours,
	)
	return open, nil
}

// ListShifts retrieves a page of shifts across all staff, newest first
func (s *StaffServiceImpl) ListShifts(ctx context.Context, page, perPage int) ([]*staff.Shift, error) {
	offset := (page - 1) * perPage
	return s.shiftRepo.List(ctx, perPage, offset)
}

// ListShiftsByStaff retrieves a page of one staff member's shifts, newest first
func (s *StaffServiceImpl) ListShiftsByStaff(ctx context.Context, staffID uuid.UUID, page, perPage int) ([]*staff.Shift, error) {
	offset := (page - 1) * perPage
	return s.shiftRepo.ListByStaff(ctx, staffID, perPage, offset)
}
