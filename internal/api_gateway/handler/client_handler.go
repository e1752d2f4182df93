package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atelier-rental-ledger/internal/api_gateway/service"
	"github.com/atelier-rental-ledger/internal/domain/client"
)

// ClientHandler handles HTTP requests for the client registry
type ClientHandler struct {
	clientService service.ClientService
	logger        *slog.Logger
}

// NewClientHandler creates a new client registry handler
func NewClientHandler(logger *slog.Logger, clientService service.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		logger:        logger,
	}
}

// Create registers a new client
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cl, err := h.clientService.CreateClient(c.Request.Context(), service.CreateClientInput{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		City:         req.City,
		Measurements: req.Measurements,
		Notes:        req.Notes,
	})
	if err != nil {
		h.logger.Error("Failed to create client", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapClientToResponse(cl))
}

// GetByID retrieves a client by ID, returning 404 if not found
func (h *ClientHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "client ID")
	if !ok {
		return
	}

	cl, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		var notFound client.ErrClientNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Client not found")
			return
		}
		h.logger.Error("Failed to get client", "client_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapClientToResponse(cl))
}

// FindByPhone returns every client matching the phone number; the phone is
// the primary human-facing key but is not unique
func (h *ClientHandler) FindByPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		RespondBadRequest(c, "phone query parameter is required")
		return
	}

	clients, err := h.clientService.FindClientsByPhone(c.Request.Context(), phone)
	if err != nil {
		h.logger.Error("Failed to find clients by phone", "phone", phone, "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]ClientResponse, 0, len(clients))
	for _, cl := range clients {
		responses = append(responses, mapClientToResponse(cl))
	}

	RespondOK(c, responses)
}

// List retrieves a page of clients
func (h *ClientHandler) List(c *gin.Context) {
	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		h.logger.Error("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	clients, err := h.clientService.ListClients(c.Request.Context(), pagination.Page, pagination.PerPage)
	if err != nil {
		h.logger.Error("Failed to list clients", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]ClientResponse, 0, len(clients))
	for _, cl := range clients {
		responses = append(responses, mapClientToResponse(cl))
	}

	RespondOK(c, responses)
}

// Update applies field updates to a client record. Bookings keep their
// denormalized snapshots of the old name and phone.
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "client ID")
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cl, err := h.clientService.UpdateClient(c.Request.Context(), id, service.UpdateClientInput{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		City:         req.City,
		Measurements: req.Measurements,
		Notes:        req.Notes,
	})
	if err != nil {
		var notFound client.ErrClientNotFound
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Client not found")
		case errors.Is(err, client.ErrEmptyName), errors.Is(err, client.ErrEmptyPhone):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to update client", "client_id", id.String(), "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, mapClientToResponse(cl))
}

// Delete removes a client permanently
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "client ID")
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), id); err != nil {
		var notFound client.ErrClientNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Client not found")
			return
		}
		h.logger.Error("Failed to delete client", "client_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}

// mapClientToResponse maps a client entity to a client response DTO
func mapClientToResponse(cl *client.Client) ClientResponse {
	return ClientResponse{
		ID:           cl.ID.String(),
		Name:         cl.Name,
		Phone:        cl.Phone,
		Email:        cl.Email,
		City:         cl.City,
		Measurements: cl.Measurements,
		Notes:        cl.Notes,
		CreatedAt:    cl.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    cl.UpdatedAt.Format(time.RFC3339),
	}
}
