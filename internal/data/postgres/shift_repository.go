package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/atelier-rental-ledger/internal/domain/staff"
	"github.com/atelier-rental-ledger/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ShiftRepository implements the staff.ShiftRepository interface for PostgreSQL
type ShiftRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewShiftRepository creates a new PostgreSQL shift repository
func NewShiftRepository(logger *slog.Logger, db *persistence.PostgresDB) staff.ShiftRepository {
	return &ShiftRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction
func (r *ShiftRepository) WithTx(tx pgx.Tx) staff.ShiftRepository {
	return &ShiftRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new shift record
func (r *ShiftRepository) Create(ctx context.Context, shift *staff.Shift) error {
	query := `
		INSERT INTO shifts (id, staff_id, check_in, check_out, total_hours, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.querier.Exec(ctx, query,
		shift.ID,
		shift.StaffID,
		shift.CheckIn,
		shift.CheckOut,
		shift.TotalHours,
		shift.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create shift", "staff_id", shift.StaffID.String(), "error", err)
		return fmt.Errorf("failed to create shift: %w", err)
	}

	return nil
}

// GetByID retrieves a shift by ID
func (r *ShiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*staff.Shift, error) {
	query := `
		SELECT id, staff_id, check_in, check_out, total_hours, created_at
		FROM shifts
		WHERE id = $1
	`

	var shift staff.Shift
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&shift.ID,
		&shift.StaffID,
		&shift.CheckIn,
		&shift.CheckOut,
		&shift.TotalHours,
		&shift.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, staff.ErrShiftNotFound{ShiftID: id}
		}
		r.logger.Error("Failed to get shift", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}

	return &shift, nil
}

// GetOpenByStaff retrieves the staff member's open shift, if any.
// Returns nil, nil when no shift is open.
func (r *ShiftRepository) GetOpenByStaff(ctx context.Context, staffID uuid.UUID) (*staff.Shift, error) {
	query := `
		SELECT id, staff_id, check_in, check_out, total_hours, created_at
		FROM shifts
		WHERE staff_id = $1 AND check_out IS NULL
		ORDER BY check_in DESC
		LIMIT 1
	`

	var shift staff.Shift
	err := r.querier.QueryRow(ctx, query, staffID).Scan(
		&shift.ID,
		&shift.StaffID,
		&shift.CheckIn,
		&shift.CheckOut,
		&shift.TotalHours,
		&shift.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get open shift", "staff_id", staffID.String(), "error", err)
		return nil, fmt.Errorf("failed to get open shift: %w", err)
	}

	return &shift, nil
}

// Update updates an existing shift, typically to record the check-out
func (r *ShiftRepository) Update(ctx context.Context, shift *staff.Shift) error {
	query := `
		UPDATE shifts
		SET check_in = $1, check_out = $2, total_hours = $3
		WHERE id = $4
	`

	result, err := r.querier.Exec(ctx, query,
		shift.CheckIn,
		shift.CheckOut,
		shift.TotalHours,
		shift.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update shift", "id", shift.ID.String(), "error", err)
		return fmt.Errorf("failed to update shift: %w", err)
	}

	if result.RowsAffected() == 0 {
		return staff.ErrShiftNotFound{ShiftID: shift.ID}
	}

	return nil
}

// ListByStaff retrieves paginated shifts for a staff member, newest first
func (r *ShiftRepository) ListByStaff(ctx context.Context, staffID uuid.UUID, limit, offset int) ([]*staff.Shift, error) {
	query := `
		SELECT id, staff_id, check_in, check_out, total_hours, created_at
		FROM shifts
		WHERE staff_id = $1
		ORDER BY check_in DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.querier.Query(ctx, query, staffID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list shifts by staff", "staff_id", staffID.String(), "error", err)
		return nil, fmt.Errorf("failed to list shifts by staff: %w", err)
	}
	defer rows.Close()

	return scanShifts(rows, r.logger)
}

// List retrieves paginated shifts across all staff, newest first
func (r *ShiftRepository) List(ctx context.Context, limit, offset int) ([]*staff.Shift, error) {
	query := `
		SELECT id, staff_id, check_in, check_out, total_hours, created_at
		FROM shifts
		ORDER BY check_in DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.querier.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list shifts", "error", err)
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	return scanShifts(rows, r.logger)
}

func scanShifts(rows pgx.Rows, logger *slog.Logger) ([]*staff.Shift, error) {
	var shifts []*staff.Shift
	for rows.Next() {
		var shift staff.Shift
		err := rows.Scan(
			&shift.ID,
			&shift.StaffID,
			&shift.CheckIn,
			&shift.CheckOut,
			&shift.TotalHours,
			&shift.CreatedAt,
		)
		if err != nil {
			logger.Error("Failed to scan shift row", "error", err)
			return nil, fmt.Errorf("failed to scan shift row: %w", err)
		}
		shifts = append(shifts, &shift)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error iterating over shifts", "error", err)
		return nil, fmt.Errorf("error iterating over shifts: %w", err)
	}

	return shifts, nil
}
