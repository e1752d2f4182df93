package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atelier-rental-ledger/internal/api_gateway/service"
	"github.com/atelier-rental-ledger/internal/domain/staff"
)

// StaffHandler handles HTTP requests for staff records and shift tracking
type StaffHandler struct {
	staffService service.StaffService
	logger       *slog.Logger
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(logger *slog.Logger, staffService service.StaffService) *StaffHandler {
	return &StaffHandler{
		staffService: staffService,
		logger:       logger,
	}
}

// Create registers a new staff member
func (h *StaffHandler) Create(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	s, err := h.staffService.CreateStaff(c.Request.Context(), req.Name, req.Email, staff.Role(req.Role))
	if err != nil {
		var duplicate staff.ErrDuplicateEmail
		switch {
		case errors.As(err, &duplicate):
			RespondConflict(c, "A staff member with this email already exists")
		case errors.Is(err, staff.ErrEmptyName),
			errors.Is(err, staff.ErrEmptyEmail),
			errors.Is(err, staff.ErrInvalidRole):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to create staff member", "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondCreated(c, mapStaffToResponse(s))
}

// GetByID retrieves a staff member by ID, returning 404 if not found
func (h *StaffHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "staff ID")
	if !ok {
		return
	}

	s, err := h.staffService.GetStaff(c.Request.Context(), id)
	if err != nil {
		var notFound staff.ErrStaffNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Staff member not found")
			return
		}
		h.logger.Error("Failed to get staff member", "staff_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapStaffToResponse(s))
}

// List retrieves staff members, only active ones unless include_inactive is set
func (h *StaffHandler) List(c *gin.Context) {
	activeOnly := c.Query("include_inactive") != "true"

	members, err := h.staffService.ListStaff(c.Request.Context(), activeOnly)
	if err != nil {
		h.logger.Error("Failed to list staff", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]StaffResponse, 0, len(members))
	for _, s := range members {
		responses = append(responses, mapStaffToResponse(s))
	}

	RespondOK(c, responses)
}

// Update applies field updates to a staff record
func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "staff ID")
	if !ok {
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := service.UpdateStaffInput{
		Name:   req.Name,
		Email:  req.Email,
		Active: req.Active,
	}
	if req.Role != nil {
		role := staff.Role(*req.Role)
		input.Role = &role
	}

	s, err := h.staffService.UpdateStaff(c.Request.Context(), id, input)
	if err != nil {
		var notFound staff.ErrStaffNotFound
		var duplicate staff.ErrDuplicateEmail
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Staff member not found")
		case errors.As(err, &duplicate):
			RespondConflict(c, "A staff member with this email already exists")
		case errors.Is(err, staff.ErrEmptyName),
			errors.Is(err, staff.ErrEmptyEmail),
			errors.Is(err, staff.ErrInvalidRole):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to update staff member", "staff_id", id.String(), "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, mapStaffToResponse(s))
}

// CheckIn opens a shift for the staff member; a second check-in without a
// check-out yields 409
func (h *StaffHandler) CheckIn(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "staff ID")
	if !ok {
		return
	}

	shift, err := h.staffService.CheckIn(c.Request.Context(), id)
	if err != nil {
		var notFound staff.ErrStaffNotFound
		var alreadyOpen staff.ErrShiftAlreadyOpen
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Staff member not found")
		case errors.As(err, &alreadyOpen):
			RespondConflict(c, "Staff member already has an open shift")
		default:
			h.logger.Error("Failed to check in", "staff_id", id.String(), "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondCreated(c, mapShiftToResponse(shift))
}

// CheckOut closes the staff member's open shift and reports the hours worked
func (h *StaffHandler) CheckOut(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "staff ID")
	if !ok {
		return
	}

	shift, err := h.staffService.CheckOut(c.Request.Context(), id)
	if err != nil {
		var notFound staff.ErrStaffNotFound
		var noOpen staff.ErrNoOpenShift
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Staff member not found")
		case errors.As(err, &noOpen):
			RespondConflict(c, "Staff member has no open shift")
		default:
			h.logger.Error("Failed to check out", "staff_id", id.String(), "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, mapShiftToResponse(shift))
}

// ListShifts retrieves a page of shifts across all staff, newest first
func (h *StaffHandler) ListShifts(c *gin.Context) {
	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		h.logger.Error("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	shifts, err := h.staffService.ListShifts(c.Request.Context(), pagination.Page, pagination.PerPage)
	if err != nil {
		h.logger.Error("Failed to list shifts", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapShiftsToResponses(shifts))
}

// ListShiftsByStaff retrieves a page of one staff member's shifts
func (h *StaffHandler) ListShiftsByStaff(c *gin.Context) {
	id, ok := parseIDParam(c, h.logger, "staff ID")
	if !ok {
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		h.logger.Error("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	shifts, err := h.staffService.ListShiftsByStaff(c.Request.Context(), id, pagination.Page, pagination.PerPage)
	if err != nil {
		h.logger.Error("Failed to list shifts by staff", "staff_id", id.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapShiftsToResponses(shifts))
}

// mapStaffToResponse maps a staff entity to a staff response DTO
func mapStaffToResponse(s *staff.Staff) StaffResponse {
	return StaffResponse{
		ID:        s.ID.String(),
		Name:      s.Name,
		Email:     s.Email,
		Role:      string(s.Role),
		Active:    s.Active,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}

// mapShiftToResponse maps a shift entity to a shift response DTO
func mapShiftToResponse(sh *staff.Shift) ShiftResponse {
	response := ShiftResponse{
		ID:         sh.ID.String(),
		StaffID:    sh.StaffID.String(),
		CheckIn:    sh.CheckIn.Format(time.RFC3339),
		TotalHours: sh.TotalHours,
	}

	if sh.CheckOut != nil {
		response.CheckOut = sh.CheckOut.Format(time.RFC3339)
	}

	return response
}

func mapShiftsToResponses(shifts []*staff.Shift) []ShiftResponse {
	responses := make([]ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, mapShiftToResponse(sh))
	}
	return responses
}
