package components

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/atelier-rental-ledger/internal/domain/scan"
	"github.com/atelier-rental-ledger/internal/domain/shared"
	"github.com/atelier-rental-ledger/internal/scan_processor/service"
)

type EventRecorderImpl struct {
	scanRepo scan.Repository
	logger   *slog.Logger
}

func NewEventRecorder(scanRepo scan.Repository, logger *slog.Logger) service.EventRecorder {
	return &EventRecorderImpl{
		scanRepo: scanRepo,
		logger:   logger,
	}
}

// RecordEvent writes the durable scan event row inside the given transaction.
// The row's primary key is the producer-assigned scan ID, so a redelivered
// message surfaces as ErrDuplicateEvent rather than a second row.
func (r *EventRecorderImpl) RecordEvent(ctx context.Context, tx pgx.Tx, request *shared.ScanRequest) (*scan.Event, error) {
	event := &scan.Event{
		ID:            request.ScanID,
		ItemID:        request.ItemID,
		QRCode:        request.QRCode,
		StaffID:       request.StaffID,
		Source:        request.Source,
		CorrelationID: request.CorrelationID,
		ScannedAt:     request.Timestamp,
		CreatedAt:     time.Now(),
	}

	if err := r.scanRepo.WithTx(tx).Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}
