package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atelier-rental-ledger/internal/api_gateway/service"
	"github.com/atelier-rental-ledger/internal/domain/item"
)

type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) CreateItem(ctx context.Context, input service.CreateItemInput) (*item.Item, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemService) GetItem(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemService) GetItemByQRCode(ctx context.Context, qrCode string) (*item.Item, error) {
	args := m.Called(ctx, qrCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemService) ListItems(ctx context.Context, includeArchived bool) ([]*item.Item, error) {
	args := m.Called(ctx, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*item.Item), args.Error(1)
}

func (m *MockItemService) UpdateItem(ctx context.Context, id uuid.UUID, input service.UpdateItemInput) (*item.Item, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemService) ArchiveItem(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemService) ReconcileBookingCounts(ctx context.Context) ([]service.CountAdjustment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.CountAdjustment), args.Error(1)
}

func TestItemHandler_Create(t *testing.T) {
	logger := testLogger()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockItemService)
		handler := NewItemHandler(logger, mockService, nil)

		now := time.Now()
		expectedItem := &item.Item{
			ID:          uuid.New(),
			Name:        "Ivory Lace Gown",
			QRCode:      "QR-0042",
			Status:      item.StatusAvailable,
			RentalPrice: int64(120000),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		mockService.On("CreateItem", mock.Anything, service.CreateItemInput{
			Name:        "Ivory Lace Gown",
			QRCode:      "QR-0042",
			RentalPrice: int64(120000),
		}).Return(expectedItem, nil)

		router := setupTestRouter()
		router.POST("/items", handler.Create)

		reqBody := CreateItemRequest{
			Name:        "Ivory Lace Gown",
			QRCode:      "QR-0042",
			RentalPrice: int64(120000),
		}
		jsonBody, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/items", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var responseBody ItemResponse
		decodeData(t, rr.Body.Bytes(), &responseBody)
		assert.Equal(t, expectedItem.ID.String(), responseBody.ID)
		assert.Equal(t, "available", responseBody.Status)

		mockService.AssertExpectations(t)
	})

	t.Run("MissingName", func(t *testing.T) {
		mockService := new(MockItemService)
		handler := NewItemHandler(logger, mockService, nil)

		router := setupTestRouter()
		router.POST("/items", handler.Create)

		req, _ := http.NewRequest(http.MethodPost, "/items", bytes.NewBufferString(`{"rental_price":1000}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "CreateItem")
	})
}

func TestItemHandler_GetByQRCode(t *testing.T) {
	logger := testLogger()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockItemService)
		handler := NewItemHandler(logger, mockService, nil)

		expectedItem := &item.Item{
			ID:     uuid.New(),
			Name:   "Ivory Lace Gown",
			QRCode: "QR-0042",
			Status: item.StatusAvailable,
		}
		mockService.On("GetItemByQRCode", mock.Anything, "QR-0042").Return(expectedItem, nil)

		router := setupTestRouter()
		router.GET("/items/qr/:code", handler.GetByQRCode)

		req, _ := http.NewRequest(http.MethodGet, "/items/qr/QR-0042", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var responseBody ItemResponse
		decodeData(t, rr.Body.Bytes(), &responseBody)
		assert.Equal(t, expectedItem.ID.String(), responseBody.ID)

		mockService.AssertExpectations(t)
	})

	t.Run("UnknownCode", func(t *testing.T) {
		mockService := new(MockItemService)
		handler := NewItemHandler(logger, mockService, nil)

		mockService.On("GetItemByQRCode", mock.Anything, "QR-9999").
			Return(nil, item.ErrItemNotFound{QRCode: "QR-9999"})

		router := setupTestRouter()
		router.GET("/items/qr/:code", handler.GetByQRCode)

		req, _ := http.NewRequest(http.MethodGet, "/items/qr/QR-9999", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestItemHandler_CheckAvailability(t *testing.T) {
	logger := testLogger()

	t.Run("Available", func(t *testing.T) {
		mockItems := new(MockItemService)
		mockBookings := new(MockBookingService)
		handler := NewItemHandler(logger, mockItems, mockBookings)

		itemID := uuid.New()
		start := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
		mockBookings.On("CheckAvailability", mock.Anything, itemID, start, end, uuid.Nil).Return(true, nil)

		router := setupTestRouter()
		router.GET("/items/:id/availability", handler.CheckAvailability)

		req, _ := http.NewRequest(http.MethodGet,
			"/items/"+itemID.String()+"/availability?start_date=2026-06-12&end_date=2026-06-15", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var responseBody AvailabilityResponse
		decodeData(t, rr.Body.Bytes(), &responseBody)
		assert.True(t, responseBody.Available)
		assert.Equal(t, itemID.String(), responseBody.ItemID)

		mockBookings.AssertExpectations(t)
	})

	t.Run("ExcludesBookingWhenEditing", func(t *testing.T) {
		mockItems := new(MockItemService)
		mockBookings := new(MockBookingService)
		handler := NewItemHandler(logger, mockItems, mockBookings)

		itemID := uuid.New()
		excludeID := uuid.New()
		start := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)
		mockBookings.On("CheckAvailability", mock.Anything, itemID, start, time.Time{}, excludeID).Return(true, nil)

		router := setupTestRouter()
		router.GET("/items/:id/availability", handler.CheckAvailability)

		req, _ := http.NewRequest(http.MethodGet,
			"/items/"+itemID.String()+"/availability?start_date=2026-06-12&exclude_booking_id="+excludeID.String(), nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		// Without an end date the evaluated range runs to start + 24h, and
		// the response reports that effective end
		var responseBody AvailabilityResponse
		decodeData(t, rr.Body.Bytes(), &responseBody)
		assert.Equal(t, "2026-06-13T00:00:00Z", responseBody.EndDate)

		mockBookings.AssertExpectations(t)
	})

	t.Run("MissingStartDate", func(t *testing.T) {
		mockItems := new(MockItemService)
		mockBookings := new(MockBookingService)
		handler := NewItemHandler(logger, mockItems, mockBookings)

		router := setupTestRouter()
		router.GET("/items/:id/availability", handler.CheckAvailability)

		req, _ := http.NewRequest(http.MethodGet, "/items/"+uuid.New().String()+"/availability", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockBookings.AssertNotCalled(t, "CheckAvailability")
	})
}

func TestItemHandler_ReconcileBookingCounts(t *testing.T) {
	logger := testLogger()

	t.Run("ReportsAdjustments", func(t *testing.T) {
		mockService := new(MockItemService)
		handler := NewItemHandler(logger, mockService, nil)

		adjustments := []service.CountAdjustment{
			{ItemID: uuid.New(), ItemName: "Ivory Lace Gown", OldCount: 3, NewCount: 5},
		}
		mockService.On("ReconcileBookingCounts", mock.Anything).Return(adjustments, nil)

		router := setupTestRouter()
		router.POST("/admin/reconcile-booking-counts", handler.ReconcileBookingCounts)

		req, _ := http.NewRequest(http.MethodPost, "/admin/reconcile-booking-counts", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var responseBody struct {
			Adjusted    int                       `json:"adjusted"`
			Adjustments []service.CountAdjustment `json:"adjustments"`
		}
		decodeData(t, rr.Body.Bytes(), &responseBody)
		assert.Equal(t, 1, responseBody.Adjusted)
		require.Len(t, responseBody.Adjustments, 1)
		assert.Equal(t, int64(5), responseBody.Adjustments[0].NewCount)

		mockService.AssertExpectations(t)
	})
}

var _ service.ItemService = (*MockItemService)(nil)
