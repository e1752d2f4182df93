package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/atelier-rental-ledger/internal/domain/item"
	"github.com/atelier-rental-ledger/internal/domain/shared"
	"github.com/atelier-rental-ledger/internal/platform/messaging/producers"
)

// ScanServiceImpl implements the ScanService interface
type ScanServiceImpl struct {
	itemRepo item.Repository
	producer producers.MessagePublisher
	logger   *slog.Logger
}

// NewScanService creates a new scan ingestion service
func NewScanService(logger *slog.Logger, itemRepo item.Repository, producer producers.MessagePublisher) ScanService {
	return &ScanServiceImpl{
		itemRepo: itemRepo,
		producer: producer,
		logger:   logger,
	}
}

// SubmitScan resolves the item behind the QR code and publishes the scan to
// Kafka. Persistence and the interest counter are the scan processor's job;
// the gateway only acknowledges the hand-off.
func (s *ScanServiceImpl) SubmitScan(ctx context.Context, input SubmitScanInput) (*shared.ScanRequest, error) {
	it, err := s.itemRepo.GetByQRCode(ctx, input.QRCode)
	if err != nil {
		return nil, err
	}

	scanRequest := &shared.ScanRequest{
		ScanID:        uuid.New(),
		ItemID:        it.ID,
		QRCode:        input.QRCode,
		StaffID:       input.StaffID,
		Source:        input.Source,
		CorrelationID: input.CorrelationID,
		Timestamp:     time.Now(),
	}

	if err := s.producer.Publish(ctx, scanRequest.ScanID.String(), scanRequest); err != nil {
		s.logger.Error("Failed to publish scan request",
			"scan_id", scanRequest.ScanID.String(),
			"item_id", it.ID.String(),
			"qr_code", input.QRCode,
			"error", err,
		)
		return nil, err
	}

	s.logger.Info("Scan request published",
		"scan_id", scanRequest.ScanID.String(),
		"item_id", it.ID.String(),
		"qr_code", input.QRCode,
		"source", input.Source,
	)

	return scanRequest, nil
}
