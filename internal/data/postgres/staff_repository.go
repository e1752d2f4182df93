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
	"github.com/jackc/pgx/v5/pgconn"
)

// StaffRepository implements the staff.Repository interface for PostgreSQL
type StaffRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewStaffRepository creates a new PostgreSQL staff repository
func NewStaffRepository(logger *slog.Logger, db *persistence.PostgresDB) staff.Repository {
	return &StaffRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction
func (r *StaffRepository) WithTx(tx pgx.Tx) staff.Repository {
	return &StaffRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new staff record. Returns ErrDuplicateEmail if the email is
// already taken.
func (r *StaffRepository) Create(ctx context.Context, s *staff.Staff) error {
	query := `
		INSERT INTO staff (id, name, email, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.querier.Exec(ctx, query,
		s.ID,
		s.Name,
		s.Email,
		s.Role,
		s.Active,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return staff.ErrDuplicateEmail{Email: s.Email}
		}
		r.logger.Error("Failed to create staff member", "error", err)
		return fmt.Errorf("failed to create staff member: %w", err)
	}

	return nil
}

// GetByID retrieves a staff member by ID
func (r *StaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*staff.Staff, error) {
	query := `
		SELECT id, name, email, role, active, created_at, updated_at
		FROM staff
		WHERE id = $1
	`

	var s staff.Staff
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.Role,
		&s.Active,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, staff.ErrStaffNotFound{StaffID: id}
		}
		r.logger.Error("Failed to get staff member", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get staff member: %w", err)
	}

	return &s, nil
}

// GetByEmail retrieves a staff member by email.
// Returns nil, nil when no staff member carries the email.
func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*staff.Staff, error) {
	query := `
		SELECT id, name, email, role, active, created_at, updated_at
		FROM staff
		WHERE email = $1
	`

	var s staff.Staff
	err := r.querier.QueryRow(ctx, query, email).Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.Role,
		&s.Active,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get staff member by email", "email", email, "error", err)
		return nil, fmt.Errorf("failed to get staff member by email: %w", err)
	}

	return &s, nil
}

// List retrieves staff members ordered by name
func (r *StaffRepository) List(ctx context.Context, activeOnly bool) ([]*staff.Staff, error) {
	query := `
		SELECT id, name, email, role, active, created_at, updated_at
		FROM staff
		WHERE active OR NOT $1
		ORDER BY name ASC
	`

	rows, err := r.querier.Query(ctx, query, activeOnly)
	if err != nil {
		r.logger.Error("Failed to list staff members", "error", err)
		return nil, fmt.Errorf("failed to list staff members: %w", err)
	}
	defer rows.Close()

	var members []*staff.Staff
	for rows.Next() {
		var s staff.Staff
		err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Role, &s.Active, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			r.logger.Error("Failed to scan staff row", "error", err)
			return nil, fmt.Errorf("failed to scan staff row: %w", err)
		}
		members = append(members, &s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over staff members", "error", err)
		return nil, fmt.Errorf("error iterating over staff members: %w", err)
	}

	return members, nil
}

// Update updates an existing staff record
func (r *StaffRepository) Update(ctx context.Context, s *staff.Staff) error {
	query := `
		UPDATE staff
		SET name = $1, email = $2, role = $3, active = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := r.querier.Exec(ctx, query,
		s.Name,
		s.Email,
		s.Role,
		s.Active,
		s.UpdatedAt,
		s.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update staff member", "id", s.ID.String(), "error", err)
		return fmt.Errorf("failed to update staff member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return staff.ErrStaffNotFound{StaffID: s.ID}
	}

	return nil
}
