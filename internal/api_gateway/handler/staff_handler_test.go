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

	"github.com/atelier-rental-ledger/internal/api_gateway/service"
	"github.com/atelier-rental-ledger/internal/domain/staff"
)

type MockStaffService struct {
	mock.Mock
}

func (m *MockStaffService) CreateStaff(ctx context.Context, name, email string, role staff.Role) (*staff.Staff, error) {
	args := m.Called(ctx, name, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Staff), args.Error(1)
}

func (m *MockStaffService) GetStaff(ctx context.Context, id uuid.UUID) (*staff.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Staff), args.Error(1)
}

func (m *MockStaffService) ListStaff(ctx context.Context, activeOnly bool) ([]*staff.Staff, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*staff.Staff), args.Error(1)
}

func (m *MockStaffService) UpdateStaff(ctx context.Context, id uuid.UUID, input service.UpdateStaffInput) (*staff.Staff, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Staff), args.Error(1)
}

func (m *MockStaffService) CheckIn(ctx context.Context, staffID uuid.UUID) (*staff.Shift, error) {
	args := m.Called(ctx, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Shift), args.Error(1)
}

func (m *MockStaffService) CheckOut(ctx context.Context, staffID uuid.UUID) (*staff.Shift, error) {
	args := m.Called(ctx, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Shift), args.Error(1)
}

func (m *MockStaffService) ListShifts(ctx context.Context, page, perPage int) ([]*staff.Shift, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*staff.Shift), args.Error(1)
}

func (m *MockStaffService) ListShiftsByStaff(ctx context.Context, staffID uuid.UUID, page, perPage int) ([]*staff.Shift, error) {
	args := m.Called(ctx, staffID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*staff.Shift), args.Error(1)
}

func TestStaffHandler_Create(t *testing.T) {
	logger := testLogger()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockStaffService)
		handler := NewStaffHandler(logger, mockService)

		now := time.Now()
		expectedStaff := &staff.Staff{
			ID:        uuid.New(),
			Name:      "Rivka Cohen",
			Email:     "rivka@example.com",
			Role:      staff.RoleAdmin,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		mockService.On("CreateStaff", mock.Anything, "Rivka Cohen", "rivka@example.com", staff.RoleAdmin).
			Return(expectedStaff, nil)

		router := setupTestRouter()
		router.POST("/staff", handler.Create)

		reqBody := CreateStaffRequest{Name: "Rivka Cohen", Email: "rivka@example.com", Role: "admin"}
		jsonBody, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/staff", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var responseBody StaffResponse
		decodeData(t, rr.Body.Bytes(), &responseBody)
		assert.Equal(t, expectedStaff.ID.String(), responseBody.ID)
		assert.Equal(t, "admin", responseBody.Role)
		assert.True(t, responseBody.Active)

		mockService.AssertExpectations(t)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mockService := new(MockStaffService)
		handler := NewStaffHandler(logger, mockService)

		mockService.On("CreateStaff", mock.Anything, "Rivka Cohen", "rivka@example.com", staff.RoleStaff).
			Return(nil, staff.ErrDuplicateEmail{Email: "rivka@example.com"})

		router := setupTestRouter()
		router.POST("/staff", handler.Create)

		reqBody := CreateStaffRequest{Name: "Rivka Cohen", Email: "rivka@example.com", Role: "staff"}
		jsonBody, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/staff", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidRoleRejectedByBinding", func(t *testing.T) {
		mockService := new(MockStaffService)
		handler := NewStaffHandler(logger, mockService)

		router := setupTestRouter()
		router.POST("/staff", handler.Create)

		req, _ := http.NewRequest(http.MethodPost, "/staff", bytes.NewBufferString(
			`{"name":"Rivka Cohen","email":"rivka@example.com","role":"owner"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "CreateStaff")
	})
}

func TestStaffHandler_CheckIn(t *testing.T) {
	logger := testLogger()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockStaffService)
		handler := NewStaffHandler(logger, mockService)

		staffID := uuid.New()
		shift := staff.NewShift(staffID, time.Now())
		mockService.On("CheckIn", mock.Anything, staffID).Return(shift, nil)

		router := setupTestRouter()
		router.POST("/staff/:id/check-in", handler.CheckIn)

		req, _ := http.NewRequest(http.MethodPost, "/staff/"+staffID.String()+"/check-in", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var responseBody ShiftResponse
		decodeData(t, rr.Body.Bytes(), &responseBody)
		assert.Equal(t, staffID.String(), responseBody.StaffID)
		assert.Empty(t, responseBody.CheckOut)

		mockService.AssertExpectations(t)
	})

	t.Run("ShiftAlreadyOpen", func(t *testing.T) {
		mockService := new(MockStaffService)
		handler := NewStaffHandler(logger, mockService)

		staffID := uuid.New()
		mockService.On("CheckIn", mock.Anything, staffID).
			Return(nil, staff.ErrShiftAlreadyOpen{StaffID: staffID})

		router := setupTestRouter()
		router.POST("/staff/:id/check-in", handler.CheckIn)

		req, _ := http.NewRequest(http.MethodPost, "/staff/"+staffID.String()+"/check-in", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestStaffHandler_CheckOut(t *testing.T) {
	logger := testLogger()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockStaffService)
		handler := NewStaffHandler(logger, mockService)

		staffID := uuid.New()
		shift := staff.NewShift(staffID, time.Now().Add(-8*time.Hour))
		_ = shift.Close(time.Now())
		mockService.On("CheckOut", mock.Anything, staffID).Return(shift, nil)

		router := setupTestRouter()
		router.POST("/staff/:id/check-out", handler.CheckOut)

		req, _ := http.NewRequest(http.MethodPost, "/staff/"+staffID.String()+"/check-out", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var responseBody ShiftResponse
		decodeData(t, rr.Body.Bytes(), &responseBody)
		assert.NotEmpty(t, responseBody.CheckOut)
		assert.InDelta(t, 8.0, responseBody.TotalHours, 0.01)

		mockService.AssertExpectations(t)
	})

	t.Run("NoOpenShift", func(t *testing.T) {
		mockService := new(MockStaffService)
		handler := NewStaffHandler(logger, mockService)

		staffID := uuid.New()
		mockService.On("CheckOut", mock.Anything, staffID).
			Return(nil, staff.ErrNoOpenShift{StaffID: staffID})

		router := setupTestRouter()
		router.POST("/staff/:id/check-out", handler.CheckOut)

		req, _ := http.NewRequest(http.MethodPost, "/staff/"+staffID.String()+"/check-out", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockService.AssertExpectations(t)
	})
}

var _ service.StaffService = (*MockStaffService)(nil)
