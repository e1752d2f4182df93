package scan

import (
	"time"

	"github.com/google/uuid"
)

// Event represents one QR-code interest scan, persisted durably by the scan
// processor. The matching item's interest counter is propagated to inventory
// asynchronously through the outbox.
type Event struct {
	ID            uuid.UUID `json:"id"`
	ItemID        uuid.UUID `json:"item_id"`
	QRCode        string    `json:"qr_code"`
	StaffID       string    `json:"staff_id,omitempty"`
	Source        string    `json:"source,omitempty"` // e.g. "mobile", "showroom-kiosk"
	CorrelationID string    `json:"correlation_id,omitempty"`
	ScannedAt     time.Time `json:"scanned_at"`
	CreatedAt     time.Time `json:"created_at"`
}
