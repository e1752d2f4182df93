package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/atelier-rental-ledger/internal/api_gateway/middleware"
	"github.com/atelier-rental-ledger/internal/api_gateway/service"
	"github.com/atelier-rental-ledger/internal/domain/item"
)

// ScanHandler handles HTTP requests for QR-code interest scans
type ScanHandler struct {
	scanService service.ScanService
	logger      *slog.Logger
}

// NewScanHandler creates a new scan handler
func NewScanHandler(logger *slog.Logger, scanService service.ScanService) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
		logger:      logger,
	}
}

// Submit resolves the scanned QR code and queues the scan for asynchronous
// processing. The interest counter is bumped later by the scan processor, so
// the response is 202, not 200.
func (h *ScanHandler) Submit(c *gin.Context) {
	var req SubmitScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	scan, err := h.scanService.SubmitScan(c.Request.Context(), service.SubmitScanInput{
		QRCode:        req.QRCode,
		StaffID:       middleware.GetStaffID(c),
		Source:        req.Source,
		CorrelationID: middleware.GetCorrelationID(c),
	})
	if err != nil {
		var notFound item.ErrItemNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "No item carries this QR code")
			return
		}
		h.logger.Error("Failed to submit scan", "qr_code", req.QRCode, "error", err)
		RespondInternalError(c)
		return
	}

	RespondAccepted(c, gin.H{
		"scan_id": scan.ScanID.String(),
		"item_id": scan.ItemID.String(),
		"status":  "queued",
	})
}
