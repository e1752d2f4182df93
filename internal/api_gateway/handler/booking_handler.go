package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/atelier-rental-ledger/internal/api_gateway/middleware"
	"github.com/atelier-rental-ledger/internal/api_gateway/service"
	"github.com/atelier-rental-ledger/internal/domain/booking"
	"github.com/atelier-rental-ledger/internal/domain/client"
	"github.com/atelier-rental-ledger/internal/domain/item"
	"github.com/atelier-rental-ledger/internal/domain/ledger"
)

// BookingHandler handles HTTP requests for the booking engine
type BookingHandler struct {
	bookingService service.BookingService
	logger         *slog.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(logger *slog.Logger, bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

// Create books a garment for a client. The availability check, client
// resolution, booking, deposit ledger entry and booking counter all commit or
// roll back together; a date conflict yields 409.
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		RespondBadRequest(c, "Invalid item ID")
		return
	}

	clientID := uuid.Nil
	if req.ClientID != "" {
		clientID, err = uuid.Parse(req.ClientID)
		if err != nil {
			RespondBadRequest(c, "Invalid client ID")
			return
		}
	}

	start, err := parseDateQuery(req.StartDate)
	if err != nil {
		RespondBadRequest(c, "Invalid start_date")
		return
	}

	var end time.Time
	if req.EndDate != "" {
		end, err = parseDateQuery(req.EndDate)
		if err != nil {
			RespondBadRequest(c, "Invalid end_date")
			return
		}
	}

	b, err := h.bookingService.CreateBooking(c.Request.Context(), service.CreateBookingInput{
		ItemID:        itemID,
		ClientID:      clientID,
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		ClientEmail:   req.ClientEmail,
		ClientCity:    req.ClientCity,
		StartDate:     start,
		EndDate:       end,
		EventCity:     req.EventCity,
		AgreedPrice:   req.AgreedPrice,
		Deposit:       req.Deposit,
		DepositMethod: ledger.Method(req.DepositMethod),
		Notes:         req.Notes,
		StaffID:       middleware.GetStaffID(c),
	})
	if err != nil {
		var unavailable booking.ErrItemUnavailable
		var itemNotFound item.ErrItemNotFound
		var clientNotFound client.ErrClientNotFound
		switch {
		case errors.As(err, &unavailable):
			RespondConflict(c, "Item is not available for the requested dates")
		case errors.As(err, &itemNotFound):
			RespondNotFound(c, "Item not found")
		case errors.As(err, &clientNotFound):
			RespondNotFound(c, "Client not found")
		case errors.Is(err, booking.ErrMissingClient),
			errors.Is(err, booking.ErrInvalidDateRange),
			errors.Is(err, booking.ErrNegativePrice),
			errors.Is(err, booking.ErrNegativeDeposit),
			errors.Is(err, client.ErrEmptyName),
			errors.Is(err, client.ErrEmptyPhone):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to create booking", "item_id", itemID.String(), "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondCreated(c, mapBookingToResponse(b))
}

// GetByID retrieves a booking by ID, returning 404 if not found
func (h *BookingHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "booking ID")
	if !ok {
		return
	}

	b, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		var notFound booking.ErrBookingNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Booking not found")
			return
		}
		h.logger.Error("Failed to get booking", "booking_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapBookingToResponse(b))
}

// List retrieves a page of bookings, newest event first
func (h *BookingHandler) List(c *gin.Context) {
	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		h.logger.Error("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	bookings, err := h.bookingService.ListBookings(c.Request.Context(), pagination.Page, pagination.PerPage)
	if err != nil {
		h.logger.Error("Failed to list bookings", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapBookingsToResponses(bookings))
}

// ListActive retrieves all active bookings ordered by event date
func (h *BookingHandler) ListActive(c *gin.Context) {
	bookings, err := h.bookingService.ListActiveBookings(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list active bookings", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapBookingsToResponses(bookings))
}

// ListByItem retrieves every booking for an item
func (h *BookingHandler) ListByItem(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "item ID")
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListBookingsByItem(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to list bookings by item", "item_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapBookingsToResponses(bookings))
}

// ListUnpaid retrieves active bookings whose payments do not cover the agreed
// price
func (h *BookingHandler) ListUnpaid(c *gin.Context) {
	bookings, err := h.bookingService.ListUnpaidBookings(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list unpaid bookings", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapBookingsToResponses(bookings))
}

// Update applies plain field updates to a booking. Date changes do not
// re-check availability; the UI pre-checks with the booking excluded.
func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "booking ID")
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := service.UpdateBookingInput{
		EventCity:   req.EventCity,
		AgreedPrice: req.AgreedPrice,
		Notes:       req.Notes,
	}
	if req.StartDate != nil {
		start, err := parseDateQuery(*req.StartDate)
		if err != nil {
			RespondBadRequest(c, "Invalid start_date")
			return
		}
		input.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := parseDateQuery(*req.EndDate)
		if err != nil {
			RespondBadRequest(c, "Invalid end_date")
			return
		}
		input.EndDate = &end
	}
	if req.Status != nil {
		status := booking.Status(*req.Status)
		input.Status = &status
	}

	b, err := h.bookingService.UpdateBooking(c.Request.Context(), id, input)
	if err != nil {
		var notFound booking.ErrBookingNotFound
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Booking not found")
		case errors.Is(err, booking.ErrInvalidDateRange),
			errors.Is(err, booking.ErrNegativePrice),
			errors.Is(err, booking.ErrInvalidStatus):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to update booking", "booking_id", id.String(), "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, mapBookingToResponse(b))
}

// Delete removes a booking permanently
func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "booking ID")
	if !ok {
		return
	}

	if err := h.bookingService.DeleteBooking(c.Request.Context(), id); err != nil {
		var notFound booking.ErrBookingNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Booking not found")
			return
		}
		h.logger.Error("Failed to delete booking", "booking_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}

// mapBookingToResponse maps a booking entity to a booking response DTO
func mapBookingToResponse(b *booking.Booking) BookingResponse {
	response := BookingResponse{
		ID:          b.ID.String(),
		ItemID:      b.ItemID.String(),
		ClientID:    b.ClientID.String(),
		ItemName:    b.ItemName,
		ClientName:  b.ClientName,
		ClientPhone: b.ClientPhone,
		StartDate:   b.StartDate.Format(time.RFC3339),
		EventCity:   b.EventCity,
		AgreedPrice: b.AgreedPrice,
		PaidAmount:  b.PaidAmount,
		Balance:     b.AgreedPrice - b.PaidAmount,
		Status:      string(b.Status),
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
	}

	if !b.EndDate.IsZero() {
		response.EndDate = b.EndDate.Format(time.RFC3339)
	}

	return response
}

func mapBookingsToResponses(bookings []*booking.Booking) []BookingResponse {
	responses := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, mapBookingToResponse(b))
	}
	return responses
}
