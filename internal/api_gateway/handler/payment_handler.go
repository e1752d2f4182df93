package handler

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/atelier-rental-ledger/internal/api_gateway/middleware"
	"github.com/atelier-rental-ledger/internal/api_gateway/service"
	"github.com/atelier-rental-ledger/internal/domain/booking"
	"github.com/atelier-rental-ledger/internal/domain/ledger"
)

// PaymentHandler handles HTTP requests for the payment ledger
type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *slog.Logger
}

// NewPaymentHandler creates a new payment ledger handler
func NewPaymentHandler(logger *slog.Logger, paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// Record records a payment and applies it to every booking it touches
func (h *PaymentHandler) Record(c *gin.Context) {
	var req RecordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var bookingID *uuid.UUID
	if req.BookingID != "" {
		id, err := uuid.Parse(req.BookingID)
		if err != nil {
			RespondBadRequest(c, "Invalid booking ID")
			return
		}
		bookingID = &id
	}

	items := make([]ledger.LineItem, 0, len(req.Items))
	for _, li := range req.Items {
		lineItem := ledger.LineItem{
			Description: li.Description,
			Amount:      li.Amount,
			Quantity:    li.Quantity,
		}
		if li.BookingID != "" {
			id, err := uuid.Parse(li.BookingID)
			if err != nil {
				RespondBadRequest(c, "Invalid line item booking ID")
				return
			}
			lineItem.BookingID = &id
		}
		items = append(items, lineItem)
	}

	entry, err := h.paymentService.RecordEntry(c.Request.Context(), service.RecordEntryInput{
		Kind:         ledger.Kind(req.Kind),
		Amount:       req.Amount,
		Method:       ledger.Method(req.Method),
		CustomerName: req.CustomerName,
		BookingID:    bookingID,
		Items:        items,
		Notes:        req.Notes,
		StaffID:      middleware.GetStaffID(c),
	})
	if err != nil {
		var bookingNotFound booking.ErrBookingNotFound
		switch {
		case errors.As(err, &bookingNotFound):
			RespondNotFound(c, "Referenced booking not found")
		case errors.Is(err, ledger.ErrNonPositiveAmount),
			errors.Is(err, ledger.ErrInvalidKind),
			errors.Is(err, ledger.ErrInvalidMethod),
			errors.Is(err, ledger.ErrEmptyCustomerName):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to record ledger entry", "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondCreated(c, mapEntryToResponse(entry))
}

// GetByID retrieves a ledger entry by ID, returning 404 if not found
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "entry ID")
	if !ok {
		return
	}

	entry, err := h.paymentService.GetEntry(c.Request.Context(), id)
	if err != nil {
		var notFound ledger.ErrEntryNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Ledger entry not found")
			return
		}
		h.logger.Error("Failed to get ledger entry", "entry_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapEntryToResponse(entry))
}

// ListRecent retrieves the most recent ledger entries, newest first
func (h *PaymentHandler) ListRecent(c *gin.Context) {
	limit := 50
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 1 || parsed > 500 {
			RespondBadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := h.paymentService.ListRecentEntries(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list recent ledger entries", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapEntriesToResponses(entries))
}

// ListByBooking retrieves every entry touching a booking, either as the
// primary reference or through a line item
func (h *PaymentHandler) ListByBooking(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "booking ID")
	if !ok {
		return
	}

	entries, err := h.paymentService.ListEntriesByBooking(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to list ledger entries by booking", "booking_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapEntriesToResponses(entries))
}

// Amend corrects an entry in place; an amount change lands on the primary
// related booking's paid amount
func (h *PaymentHandler) Amend(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "entry ID")
	if !ok {
		return
	}

	var req AmendEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := service.AmendEntryInput{
		Amount:       req.Amount,
		CustomerName: req.CustomerName,
		Notes:        req.Notes,
	}
	if req.Method != nil {
		method := ledger.Method(*req.Method)
		input.Method = &method
	}

	entry, err := h.paymentService.AmendEntry(c.Request.Context(), id, input)
	if err != nil {
		var notFound ledger.ErrEntryNotFound
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Ledger entry not found")
		case errors.Is(err, ledger.ErrNonPositiveAmount),
			errors.Is(err, ledger.ErrInvalidMethod),
			errors.Is(err, ledger.ErrEmptyCustomerName):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to amend ledger entry", "entry_id", id.String(), "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, mapEntryToResponse(entry))
}

// Void reverses every paid-amount contribution the entry made and deletes it
func (h *PaymentHandler) Void(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "entry ID")
	if !ok {
		return
	}

	if err := h.paymentService.VoidEntry(c.Request.Context(), id); err != nil {
		var notFound ledger.ErrEntryNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Ledger entry not found")
			return
		}
		h.logger.Error("Failed to void ledger entry", "entry_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}

// mapEntryToResponse maps a ledger entry to an entry response DTO
func mapEntryToResponse(entry *ledger.Entry) EntryResponse {
	response := EntryResponse{
		ID:           entry.ID.String(),
		Kind:         string(entry.Kind),
		Amount:       entry.Amount,
		Method:       string(entry.Method),
		CustomerName: entry.CustomerName,
		Items:        entry.Items,
		Notes:        entry.Notes,
		StaffID:      entry.StaffID,
		Timestamp:    entry.Timestamp.Format(time.RFC3339),
		CreatedAt:    entry.CreatedAt.Format(time.RFC3339),
	}

	if entry.BookingID != nil {
		response.BookingID = entry.BookingID.String()
	}

	return response
}

func mapEntriesToResponses(entries []*ledger.Entry) []EntryResponse {
	responses := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, mapEntryToResponse(entry))
	}
	return responses
}
