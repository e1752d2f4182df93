package components

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/atelier-rental-ledger/internal/domain/scan"
	"github.com/atelier-rental-ledger/internal/domain/shared"
	"github.com/atelier-rental-ledger/internal/scan_processor/service"
)

type ScanValidatorImpl struct {
	scanRepo scan.Repository
	logger   *slog.Logger
}

func NewScanValidator(scanRepo scan.Repository, logger *slog.Logger) service.ScanValidator {
	return &ScanValidatorImpl{
		scanRepo: scanRepo,
		logger:   logger,
	}
}

// Validate checks scan request validity
func (v *ScanValidatorImpl) Validate(ctx context.Context, request *shared.ScanRequest) error {
	logger := v.logger
	if request.CorrelationID != "" {
		logger = v.logger.With("correlation_id", request.CorrelationID)
	}

	if request.ScanID == uuid.Nil {
		logger.Error("Scan request has no scan ID", "qr_code", request.QRCode)
		return errors.New("scan id is required")
	}

	if request.ItemID == uuid.Nil {
		logger.Error("Scan request has no item ID", "scan_id", request.ScanID.String())
		return errors.New("item id is required")
	}

	if request.QRCode == "" {
		logger.Error("Scan request has no QR code", "scan_id", request.ScanID.String())
		return errors.New("qr code is required")
	}

	return nil
}

// CheckIdempotency checks if the scan was already recorded
func (v *ScanValidatorImpl) CheckIdempotency(ctx context.Context, request *shared.ScanRequest) (bool, error) {
	logger := v.logger
	if request.CorrelationID != "" {
		logger = v.logger.With("correlation_id", request.CorrelationID)
	}

	existingEvent, err := v.scanRepo.GetByID(ctx, request.ScanID)
	if err != nil {
		var notFound scan.ErrEventNotFound
		if errors.As(err, &notFound) {
			return false, nil // Continue processing
		}
		logger.Error("Failed to check scan events for idempotency", "scan_id", request.ScanID.String(), "error", err)
		return false, fmt.Errorf("idempotency check failed for scan %s: %w", request.ScanID.String(), err)
	}

	if existingEvent != nil {
		logger.Info("Scan already recorded (idempotency)", "scan_id", request.ScanID.String())
		return true, nil // Skip processing
	}

	return false, nil
}
