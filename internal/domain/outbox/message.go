package outbox

import (
	"encoding/json"
	"time"

	"github.com/atelier-rental-ledger/internal/domain/scan"
	"github.com/atelier-rental-ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Message stores a scan event for reliable propagation of the item's interest
// counter to inventory
type Message struct {
	ID            int64               `json:"id"`
	ScanID        uuid.UUID           `json:"scan_id"`
	ItemID        uuid.UUID           `json:"item_id"`
	Payload       json.RawMessage     `json:"payload"`
	Status        shared.OutboxStatus `json:"status"`
	Attempts      int                 `json:"attempts"`
	CreatedAt     time.Time           `json:"created_at"`
	LastAttemptAt *time.Time          `json:"last_attempt_at,omitempty"`
}

func NewMessage(event *scan.Event) (*Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return &Message{
		ScanID:    event.ID,
		ItemID:    event.ItemID,
		Payload:   payload,
		Status:    shared.OutboxStatusPending,
		Attempts:  0,
		CreatedAt: time.Now(),
	}, nil
}

func (m *Message) IncrementAttempts() {
	m.Attempts++
	now := time.Now()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsProcessed() {
	m.Status = shared.OutboxStatusProcessed
	now := time.Now()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsFailed() {
	m.Status = shared.OutboxStatusFailedToPublish
	now := time.Now()
	m.LastAttemptAt = &now
}

// GetScanEvent extracts the scan event from the payload
func (m *Message) GetScanEvent() (*scan.Event, error) {
	var event scan.Event
	if err := json.Unmarshal(m.Payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
