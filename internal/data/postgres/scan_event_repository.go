// Package postgres provides PostgreSQL implementations of the domain repositories.
// It covers the operational records that never join the booking bundle's
// atomicity: staff, shifts, scan events, and the scan outbox.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/atelier-rental-ledger/internal/domain/scan"
	"github.com/atelier-rental-ledger/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// ScanEventRepository implements the scan.Repository interface for PostgreSQL
type ScanEventRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewScanEventRepository creates a new PostgreSQL scan event repository
func NewScanEventRepository(logger *slog.Logger, db *persistence.PostgresDB) scan.Repository {
	return &ScanEventRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing the scan event row
// and its outbox message to be written atomically.
func (r *ScanEventRepository) WithTx(tx pgx.Tx) scan.Repository {
	return &ScanEventRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new scan event. Returns ErrDuplicateEvent when the event ID
// already exists, which makes redelivered Kafka messages harmless.
func (r *ScanEventRepository) Create(ctx context.Context, event *scan.Event) error {
	query := `
		INSERT INTO scan_events (id, item_id, qr_code, staff_id, source, correlation_id, scanned_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.querier.Exec(ctx, query,
		event.ID,
		event.ItemID,
		event.QRCode,
		event.StaffID,
		event.Source,
		event.CorrelationID,
		event.ScannedAt,
		event.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return scan.ErrDuplicateEvent{EventID: event.ID}
		}
		r.logger.Error("Failed to create scan event", "error", err)
		return fmt.Errorf("failed to create scan event: %w", err)
	}

	return nil
}

// GetByID retrieves a scan event by its ID
func (r *ScanEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*scan.Event, error) {
	query := `
		SELECT id, item_id, qr_code, staff_id, source, correlation_id, scanned_at, created_at
		FROM scan_events
		WHERE id = $1
	`

	var event scan.Event
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.ItemID,
		&event.QRCode,
		&event.StaffID,
		&event.Source,
		&event.CorrelationID,
		&event.ScannedAt,
		&event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, scan.ErrEventNotFound{EventID: id}
		}
		r.logger.Error("Failed to get scan event", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get scan event: %w", err)
	}

	return &event, nil
}

// ListByItem retrieves paginated scan events for an item, newest first
func (r *ScanEventRepository) ListByItem(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*scan.Event, error) {
	query := `
		SELECT id, item_id, qr_code, staff_id, source, correlation_id, scanned_at, created_at
		FROM scan_events
		WHERE item_id = $1
		ORDER BY scanned_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.querier.Query(ctx, query, itemID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list scan events", "item_id", itemID.String(), "error", err)
		return nil, fmt.Errorf("failed to list scan events: %w", err)
	}
	defer rows.Close()

	var events []*scan.Event
	for rows.Next() {
		var event scan.Event
		err := rows.Scan(
			&event.ID,
			&event.ItemID,
			&event.QRCode,
			&event.StaffID,
			&event.Source,
			&event.CorrelationID,
			&event.ScannedAt,
			&event.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan scan event row", "error", err)
			return nil, fmt.Errorf("failed to scan scan event row: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over scan events", "error", err)
		return nil, fmt.Errorf("error iterating over scan events: %w", err)
	}

	return events, nil
}

// CountByItem counts the total number of scan events recorded for an item
func (r *ScanEventRepository) CountByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM scan_events
		WHERE item_id = $1
	`

	var count int64
	err := r.querier.QueryRow(ctx, query, itemID).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count scan events", "item_id", itemID.String(), "error", err)
		return 0, fmt.Errorf("failed to count scan events: %w", err)
	}

	return count, nil
}
