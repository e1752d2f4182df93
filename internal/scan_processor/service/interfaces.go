package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/atelier-rental-ledger/internal/domain/scan"
	"github.com/atelier-rental-ledger/internal/domain/shared"
)

// ProcessingService defines the interface for processing scan requests.
type ProcessingService interface {
	ProcessScan(ctx context.Context, request *shared.ScanRequest) error
}

// ScanValidator validates scan requests before processing
type ScanValidator interface {
	Validate(ctx context.Context, request *shared.ScanRequest) error
	CheckIdempotency(ctx context.Context, request *shared.ScanRequest) (bool, error)
}

// EventRecorder persists the durable scan event row during processing
type EventRecorder interface {
	RecordEvent(ctx context.Context, tx pgx.Tx, request *shared.ScanRequest) (*scan.Event, error)
}

// OutboxManager handles the creation of outbox entries for recorded scans
type OutboxManager interface {
	CreateOutboxEntry(ctx context.Context, tx pgx.Tx, event *scan.Event) error
}
