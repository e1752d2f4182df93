package shared

import (
	"time"

	"github.com/google/uuid"
)

// ScanRequest defines a Kafka message carrying one QR-code interest scan from
// the API gateway to the scan processor
type ScanRequest struct {
	ScanID        uuid.UUID `json:"scan_id"`
	ItemID        uuid.UUID `json:"item_id"`
	QRCode        string    `json:"qr_code"`
	StaffID       string    `json:"staff_id,omitempty"`
	Source        string    `json:"source,omitempty"`
	CorrelationID string    `json:"correlation_id"`
	Timestamp     time.Time `json:"timestamp"`
}
