package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/atelier-rental-ledger/internal/domain/scan"
	"github.com/atelier-rental-ledger/internal/domain/shared"
	"github.com/atelier-rental-ledger/internal/platform/persistence"
)

type ProcessingServiceImpl struct {
	pgDB          *persistence.PostgresDB
	validator     ScanValidator
	eventRecorder EventRecorder
	outboxManager OutboxManager
	logger        *slog.Logger
}

func NewProcessingService(
	pgDB *persistence.PostgresDB,
	validator ScanValidator,
	eventRecorder EventRecorder,
	outboxManager OutboxManager,
	logger *slog.Logger,
) ProcessingService {
	return &ProcessingServiceImpl{
		pgDB:          pgDB,
		validator:     validator,
		eventRecorder: eventRecorder,
		outboxManager: outboxManager,
		logger:        logger,
	}
}

// ProcessScan handles the core logic for processing a scan: the durable scan
// event row and its outbox message are written in one database transaction.
// The item's interest counter is applied later by the outbox poller.
func (s *ProcessingServiceImpl) ProcessScan(ctx context.Context, request *shared.ScanRequest) error {
	logger := s.logger
	if request.CorrelationID != "" {
		logger = s.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Processing scan", "scan_id", request.ScanID.String(), "item_id", request.ItemID.String())

	// 1. Validate the scan request
	if err := s.validator.Validate(ctx, request); err != nil {
		logger.Error("Scan validation failed", "scan_id", request.ScanID.String(), "error", err)
		// Malformed requests cannot succeed on redelivery; acknowledge them
		return nil
	}

	// 2. Check idempotency
	skip, err := s.validator.CheckIdempotency(ctx, request)
	if err != nil {
		return err // Let Kafka retry
	}
	if skip {
		return nil // Already processed, return success
	}

	// 3. Begin database transaction
	var tx pgx.Tx
	tx, err = s.pgDB.Pool().Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin database transaction", "scan_id", request.ScanID.String(), "error", err)
		return fmt.Errorf("failed to begin DB transaction for scan %s: %w", request.ScanID.String(), err)
	}
	defer func() {
		if p := recover(); p != nil {
			logger.Error("Panic recovered, rolling back transaction", "panic", p, "scan_id", request.ScanID.String())
			_ = tx.Rollback(ctx)
			panic(p) // Re-panic
		} else if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error("Failed to rollback transaction after error", "rollback_error", rbErr, "original_error", err, "scan_id", request.ScanID.String())
			}
		}
	}()

	// 4. Record the scan event
	event, err := s.eventRecorder.RecordEvent(ctx, tx, request)
	if err != nil {
		if errors.Is(err, scan.ErrDuplicateEvent{}) {
			// A concurrent redelivery won the insert; the scan is handled
			logger.Info("Scan event already recorded, skipping", "scan_id", request.ScanID.String())
			return nil
		}
		return err // Let the defer handle rollback
	}

	// 5. Create outbox entry
	if err = s.outboxManager.CreateOutboxEntry(ctx, tx, event); err != nil {
		return err // Let the defer handle rollback
	}

	// 6. Commit transaction
	if err = tx.Commit(ctx); err != nil {
		logger.Error("Failed to commit database transaction",
			"scan_id", request.ScanID.String(),
			"item_id", request.ItemID.String(),
			"error", err,
		)
		return fmt.Errorf("failed to commit DB transaction for scan %s: %w", request.ScanID.String(), err)
	}

	logger.Info("Scan event committed", "scan_id", request.ScanID.String(), "item_id", request.ItemID.String())
	return nil
}
