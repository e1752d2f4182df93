package outbox_poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/atelier-rental-ledger/internal/domain/item"
	"github.com/atelier-rental-ledger/internal/domain/outbox"
	"github.com/atelier-rental-ledger/internal/domain/shared"
)

// InterestApplier applies outbox messages to the inventory interest counters
type InterestApplier interface {
	ApplyInterest(ctx context.Context, message *outbox.Message) error
}

// InterestApplierImpl implements InterestApplier
type InterestApplierImpl struct {
	outboxRepo outbox.Repository
	itemRepo   item.Repository
	logger     *slog.Logger
}

// NewInterestApplier creates a new applier
func NewInterestApplier(
	outboxRepo outbox.Repository,
	itemRepo item.Repository,
	logger *slog.Logger,
) InterestApplier {
	return &InterestApplierImpl{
		outboxRepo: outboxRepo,
		itemRepo:   itemRepo,
		logger:     logger,
	}
}

// ApplyInterest bumps the item's interest counter for one recorded scan and
// marks the outbox message processed. The Mongo increment is idempotent only
// per message, so the message is marked before a retry would re-apply it.
func (p *InterestApplierImpl) ApplyInterest(ctx context.Context, message *outbox.Message) error {
	event, err := message.GetScanEvent()
	if err != nil {
		p.logger.Error("Failed to unmarshal scan event from outbox payload",
			"outbox_id", message.ID, "scan_id", message.ScanID, "error", err,
		)
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusFailedToPublish); updateErr != nil {
			p.logger.Error("Also failed to update outbox status to FAILED_TO_PUBLISH after unmarshal error", "outbox_id", message.ID, "update_error", updateErr)
		}
		return fmt.Errorf("unmarshal payload for outbox %d failed: %w", message.ID, err)
	}

	// Add correlation ID to logger
	logger := p.logger
	if event.CorrelationID != "" {
		logger = p.logger.With("correlation_id", event.CorrelationID)
	}

	logger.Info("Applying scan interest to inventory", "outbox_id", message.ID, "scan_id", event.ID.String(), "item_id", event.ItemID.String())

	if err := p.itemRepo.IncrementInterestCount(ctx, event.ItemID); err != nil {
		var notFound item.ErrItemNotFound
		if errors.As(err, &notFound) {
			// The item was deleted after the scan; retrying cannot succeed
			logger.Warn("Item behind scan no longer exists, marking outbox message as FAILED_TO_PUBLISH",
				"outbox_id", message.ID, "item_id", event.ItemID.String(),
			)
			if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusFailedToPublish); updateErr != nil {
				logger.Error("Failed to update outbox status to FAILED_TO_PUBLISH for missing item", "outbox_id", message.ID, "error", updateErr)
				return fmt.Errorf("failed to mark outbox %d for missing item: %w", message.ID, updateErr)
			}
			return nil
		}
		logger.Error("Failed to increment interest count", "item_id", event.ItemID.String(), "error", err)
		return fmt.Errorf("failed to increment interest count for item %s: %w", event.ItemID.String(), err)
	}

	// Mark outbox message as processed
	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusProcessed); err != nil {
		logger.Error("Failed to update outbox message status to PROCESSED",
			"outbox_id", message.ID, "scan_id", message.ScanID, "error", err,
		)
		return fmt.Errorf("interest applied for scan %s, but failed to mark outbox %d as PROCESSED: %w", message.ScanID, message.ID, err)
	}

	logger.Info("Outbox message successfully processed and marked as PROCESSED", "outbox_id", message.ID, "scan_id", message.ScanID)
	return nil
}
