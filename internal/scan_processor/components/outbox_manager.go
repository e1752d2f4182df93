package components

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/atelier-rental-ledger/internal/domain/outbox"
	"github.com/atelier-rental-ledger/internal/domain/scan"
	"github.com/atelier-rental-ledger/internal/scan_processor/service"
)

type OutboxManagerImpl struct {
	outboxRepo outbox.Repository
	logger     *slog.Logger
}

func NewOutboxManager(outboxRepo outbox.Repository, logger *slog.Logger) service.OutboxManager {
	return &OutboxManagerImpl{
		outboxRepo: outboxRepo,
		logger:     logger,
	}
}

// CreateOutboxEntry creates an outbox entry for a recorded scan event. The
// poller later reads it and bumps the item's interest counter in inventory.
func (m *OutboxManagerImpl) CreateOutboxEntry(ctx context.Context, tx pgx.Tx, event *scan.Event) error {
	logger := m.logger
	if event.CorrelationID != "" {
		logger = m.logger.With("correlation_id", event.CorrelationID)
	}

	outboxRepoTx := m.outboxRepo.WithTx(tx)

	outboxMessage, err := outbox.NewMessage(event)
	if err != nil {
		logger.Error("Failed to create new outbox message (marshal payload)",
			"scan_id", event.ID.String(),
			"error", err,
		)
		return fmt.Errorf("failed to create outbox message payload for scan %s: %w", event.ID.String(), err)
	}

	if err = outboxRepoTx.Create(ctx, outboxMessage); err != nil {
		logger.Error("Failed to create outbox message",
			"scan_id", event.ID.String(),
			"item_id", event.ItemID.String(),
			"error", err,
		)
		return fmt.Errorf("failed to create outbox message for scan %s: %w", event.ID.String(), err)
	}
	logger.Info("Outbox message created successfully",
		"scan_id", event.ID.String(),
		"outbox_id", outboxMessage.ID,
	)

	return nil
}
