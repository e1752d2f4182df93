package outbox_poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/atelier-rental-ledger/internal/domain/item"
	"github.com/atelier-rental-ledger/internal/domain/outbox"
	"github.com/atelier-rental-ledger/internal/domain/scan"
	"github.com/atelier-rental-ledger/internal/domain/shared"
)

// MockOutboxRepo for testing
type MockOutboxRepo struct {
	mock.Mock
}

func (m *MockOutboxRepo) Create(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepo) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepo) UpdateStatus(ctx context.Context, id int64, status shared.OutboxStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOutboxRepo) IncrementAttempts(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepo) GetByScanID(ctx context.Context, scanID uuid.UUID) (*outbox.Message, error) {
	args := m.Called(ctx, scanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepo) WithTx(tx pgx.Tx) outbox.Repository {
	args := m.Called(tx)
	return args.Get(0).(outbox.Repository)
}

// MockItemRepo for testing
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, it *item.Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemRepo) GetByQRCode(ctx context.Context, qrCode string) (*item.Item, error) {
	args := m.Called(ctx, qrCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemRepo) List(ctx context.Context, includeArchived bool) ([]*item.Item, error) {
	args := m.Called(ctx, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*item.Item), args.Error(1)
}

func (m *MockItemRepo) Update(ctx context.Context, it *item.Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockItemRepo) Archive(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepo) IncrementBookingCount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepo) IncrementInterestCount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepo) SetBookingCount(ctx context.Context, id uuid.UUID, count int64) error {
	args := m.Called(ctx, id, count)
	return args.Error(0)
}

func TestInterestApplier_ApplyInterest(t *testing.T) {
	mockOutboxRepo := &MockOutboxRepo{}
	mockItemRepo := &MockItemRepo{}
	logger := slog.Default()

	applier := NewInterestApplier(mockOutboxRepo, mockItemRepo, logger)

	scanID := uuid.New()
	itemID := uuid.New()
	event := &scan.Event{
		ID:            scanID,
		ItemID:        itemID,
		QRCode:        "QR-0042",
		Source:        "showroom",
		CorrelationID: "corr1",
		ScannedAt:     time.Now(),
	}

	message, err := outbox.NewMessage(event)
	assert.NoError(t, err)
	message.ID = 1

	tests := []struct {
		name          string
		message       *outbox.Message
		setupMocks    func()
		expectedError error
	}{
		{
			name:    "successful apply",
			message: message,
			setupMocks: func() {
				mockItemRepo.On("IncrementInterestCount", mock.Anything, itemID).Return(nil).Once()

				mockOutboxRepo.On("UpdateStatus", mock.Anything, int64(1), shared.OutboxStatusProcessed).Return(nil).Once()
			},
			expectedError: nil,
		},
		{
			name: "error unmarshalling payload",
			message: &outbox.Message{
				ID:        1,
				ScanID:    scanID,
				ItemID:    itemID,
				Status:    shared.OutboxStatusPending,
				Payload:   []byte("invalid json"),
				Attempts:  0,
				CreatedAt: time.Now(),
			},
			setupMocks: func() {
				mockOutboxRepo.On("UpdateStatus", mock.Anything, int64(1), shared.OutboxStatusFailedToPublish).Return(nil).Once()
			},
			expectedError: errors.New("unmarshal payload"),
		},
		{
			name:    "item no longer exists",
			message: message,
			setupMocks: func() {
				mockItemRepo.On("IncrementInterestCount", mock.Anything, itemID).
					Return(item.ErrItemNotFound{ItemID: itemID}).Once()

				mockOutboxRepo.On("UpdateStatus", mock.Anything, int64(1), shared.OutboxStatusFailedToPublish).Return(nil).Once()
			},
			expectedError: nil, // Permanent failure, no point retrying
		},
		{
			name:    "transient error incrementing interest count",
			message: message,
			setupMocks: func() {
				mockItemRepo.On("IncrementInterestCount", mock.Anything, itemID).Return(errors.New("db error")).Once()
			},
			expectedError: errors.New("failed to increment interest count"),
		},
		{
			name:    "error updating outbox status",
			message: message,
			setupMocks: func() {
				mockItemRepo.On("IncrementInterestCount", mock.Anything, itemID).Return(nil).Once()

				mockOutboxRepo.On("UpdateStatus", mock.Anything, int64(1), shared.OutboxStatusProcessed).Return(errors.New("db error")).Once()
			},
			expectedError: errors.New("failed to mark outbox"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockOutboxRepo = &MockOutboxRepo{}
			mockItemRepo = &MockItemRepo{}
			applier = NewInterestApplier(mockOutboxRepo, mockItemRepo, logger)

			tt.setupMocks()
			ctx := context.Background()

			err := applier.ApplyInterest(ctx, tt.message)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			mockOutboxRepo.AssertExpectations(t)
			mockItemRepo.AssertExpectations(t)
		})
	}
}
