package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/atelier-rental-ledger/internal/api_gateway/service"
	"github.com/atelier-rental-ledger/internal/domain/item"
)

// ItemHandler handles HTTP requests for inventory operations
type ItemHandler struct {
	itemService    service.ItemService
	bookingService service.BookingService
	logger         *slog.Logger
}

// NewItemHandler creates a new inventory handler
func NewItemHandler(logger *slog.Logger, itemService service.ItemService, bookingService service.BookingService) *ItemHandler {
	return &ItemHandler{
		itemService:    itemService,
		bookingService: bookingService,
		logger:         logger,
	}
}

// Create adds a garment to the inventory
func (h *ItemHandler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	it, err := h.itemService.CreateItem(c.Request.Context(), service.CreateItemInput{
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		QRCode:      req.QRCode,
		RentalPrice: req.RentalPrice,
	})
	if err != nil {
		h.logger.Error("Failed to create item", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapItemToResponse(it))
}

// GetByID retrieves an item by its ID, returning 404 if not found
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "item ID")
	if !ok {
		return
	}

	it, err := h.itemService.GetItem(c.Request.Context(), id)
	if err != nil {
		var notFound item.ErrItemNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Item not found")
			return
		}
		h.logger.Error("Failed to get item", "item_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapItemToResponse(it))
}

// GetByQRCode resolves an item from a scanned QR code value
func (h *ItemHandler) GetByQRCode(c *gin.Context) {
	qrCode := c.Param("code")
	if qrCode == "" {
		RespondBadRequest(c, "QR code is required")
		return
	}

	it, err := h.itemService.GetItemByQRCode(c.Request.Context(), qrCode)
	if err != nil {
		var notFound item.ErrItemNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "No item carries this QR code")
			return
		}
		h.logger.Error("Failed to get item by QR code", "qr_code", qrCode, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapItemToResponse(it))
}

// List retrieves inventory items, excluding archived ones unless
// include_archived is set
func (h *ItemHandler) List(c *gin.Context) {
	includeArchived := c.Query("include_archived") == "true"

	items, err := h.itemService.ListItems(c.Request.Context(), includeArchived)
	if err != nil {
		h.logger.Error("Failed to list items", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		responses = append(responses, mapItemToResponse(it))
	}

	RespondOK(c, responses)
}

// Update applies field updates to an item, including the staff-set lifecycle
// status
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "item ID")
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := service.UpdateItemInput{
		Name:         req.Name,
		ImageURL:     req.ImageURL,
		QRCode:       req.QRCode,
		RentalPrice:  req.RentalPrice,
		StaffNotes:   req.StaffNotes,
		LastLocation: req.LastLocation,
	}
	if req.Status != nil {
		status := item.Status(*req.Status)
		input.Status = &status
	}

	it, err := h.itemService.UpdateItem(c.Request.Context(), id, input)
	if err != nil {
		var notFound item.ErrItemNotFound
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Item not found")
		case errors.Is(err, item.ErrEmptyName), errors.Is(err, item.ErrNegativePrice), errors.Is(err, item.ErrInvalidStatus):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to update item", "item_id", id.String(), "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, mapItemToResponse(it))
}

// Archive soft-deletes an item, keeping its booking history intact
func (h *ItemHandler) Archive(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "item ID")
	if !ok {
		return
	}

	if err := h.itemService.ArchiveItem(c.Request.Context(), id); err != nil {
		var notFound item.ErrItemNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Item not found")
			return
		}
		h.logger.Error("Failed to archive item", "item_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}

// Delete removes an item permanently
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "item ID")
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), id); err != nil {
		var notFound item.ErrItemNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Item not found")
			return
		}
		h.logger.Error("Failed to delete item", "item_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}

// CheckAvailability reports whether the item is free for the requested dates,
// optionally excluding one booking so an edit does not conflict with itself
func (h *ItemHandler) CheckAvailability(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "item ID")
	if !ok {
		return
	}

	start, err := parseDateQuery(c.Query("start_date"))
	if err != nil {
		RespondBadRequest(c, "Invalid or missing start_date")
		return
	}

	var end time.Time
	if endParam := c.Query("end_date"); endParam != "" {
		end, err = parseDateQuery(endParam)
		if err != nil {
			RespondBadRequest(c, "Invalid end_date")
			return
		}
	}

	excludeID := uuid.Nil
	if excludeParam := c.Query("exclude_booking_id"); excludeParam != "" {
		excludeID, err = uuid.Parse(excludeParam)
		if err != nil {
			RespondBadRequest(c, "Invalid exclude_booking_id")
			return
		}
	}

	available, err := h.bookingService.CheckAvailability(c.Request.Context(), id, start, end, excludeID)
	if err != nil {
		h.logger.Error("Failed to check availability", "item_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	// Report the effective range the check evaluated; a missing end date
	// occupies start + 24h
	if end.IsZero() {
		end = start.Add(24 * time.Hour)
	}

	RespondOK(c, AvailabilityResponse{
		ItemID:    id.String(),
		StartDate: start.Format(time.RFC3339),
		EndDate:   end.Format(time.RFC3339),
		Available: available,
	})
}

// ReconcileBookingCounts recomputes every item's lifetime booking counter from
// the bookings collection and reports the adjustments made
func (h *ItemHandler) ReconcileBookingCounts(c *gin.Context) {
	adjustments, err := h.itemService.ReconcileBookingCounts(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to reconcile booking counts", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, gin.H{
		"adjusted":    len(adjustments),
		"adjustments": adjustments,
	})
}

// mapItemToResponse maps an item entity to an item response DTO
func mapItemToResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:            it.ID.String(),
		Name:          it.Name,
		ImageURL:      it.ImageURL,
		QRCode:        it.QRCode,
		Status:        string(it.Status),
		RentalPrice:   it.RentalPrice,
		BookingCount:  it.BookingCount,
		InterestCount: it.InterestCount,
		StaffNotes:    it.StaffNotes,
		LastLocation:  it.LastLocation,
		Archived:      it.Archived,
		CreatedAt:     it.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     it.UpdatedAt.Format(time.RFC3339),
	}
}

// parseIDParam parses the :id path parameter, responding 400 on failure
func parseIDParam(c *gin.Context, logger *slog.Logger, what string) (uuid.UUID, bool) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		logger.Error("Invalid "+what, "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid "+what)
		return uuid.Nil, false
	}
	return id, true
}

// parseDateQuery accepts either a bare date or a full RFC 3339 timestamp
func parseDateQuery(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty date")
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
