package handler

import (
	"github.com/atelier-rental-ledger/internal/domain/client"
	"github.com/atelier-rental-ledger/internal/domain/ledger"
)

// CreateItemRequest represents a request to add a garment to the inventory
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	ImageURL    string `json:"image_url"`
	QRCode      string `json:"qr_code"`
	RentalPrice int64  `json:"rental_price" binding:"min=0"`
}

// UpdateItemRequest represents a partial item update; omitted fields are left
// untouched
type UpdateItemRequest struct {
	Name         *string `json:"name,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`
	QRCode       *string `json:"qr_code,omitempty"`
	Status       *string `json:"status,omitempty" binding:"omitempty,oneof=available rented cleaning repair"`
	RentalPrice  *int64  `json:"rental_price,omitempty" binding:"omitempty,min=0"`
	StaffNotes   *string `json:"staff_notes,omitempty"`
	LastLocation *string `json:"last_location,omitempty"`
}

// ItemResponse represents an inventory item in API responses
type ItemResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ImageURL      string `json:"image_url,omitempty"`
	QRCode        string `json:"qr_code,omitempty"`
	Status        string `json:"status"`
	RentalPrice   int64  `json:"rental_price"`
	BookingCount  int64  `json:"booking_count"`
	InterestCount int64  `json:"interest_count"`
	StaffNotes    string `json:"staff_notes,omitempty"`
	LastLocation  string `json:"last_location,omitempty"`
	Archived      bool   `json:"archived"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// AvailabilityResponse reports whether an item is free for a date range
type AvailabilityResponse struct {
	ItemID    string `json:"item_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Available bool   `json:"available"`
}

// CreateClientRequest represents a request to register a client
type CreateClientRequest struct {
	Name         string               `json:"name" binding:"required"`
	Phone        string               `json:"phone" binding:"required"`
	Email        string               `json:"email"`
	City         string               `json:"city"`
	Measurements *client.Measurements `json:"measurements,omitempty"`
	Notes        string               `json:"notes"`
}

// UpdateClientRequest represents a partial client update
type UpdateClientRequest struct {
	Name         *string              `json:"name,omitempty"`
	Phone        *string              `json:"phone,omitempty"`
	Email        *string              `json:"email,omitempty"`
	City         *string              `json:"city,omitempty"`
	Measurements *client.Measurements `json:"measurements,omitempty"`
	Notes        *string              `json:"notes,omitempty"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Phone        string               `json:"phone"`
	Email        string               `json:"email,omitempty"`
	City         string               `json:"city,omitempty"`
	Measurements *client.Measurements `json:"measurements,omitempty"`
	Notes        string               `json:"notes,omitempty"`
	CreatedAt    string               `json:"created_at"`
	UpdatedAt    string               `json:"updated_at"`
}

// CreateBookingRequest represents a request to book a garment. Client identity
// is either an existing client_id or a name+phone pair.
type CreateBookingRequest struct {
	ItemID        string `json:"item_id" binding:"required,uuid"`
	ClientID      string `json:"client_id" binding:"omitempty,uuid"`
	ClientName    string `json:"client_name"`
	ClientPhone   string `json:"client_phone"`
	ClientEmail   string `json:"client_email"`
	ClientCity    string `json:"client_city"`
	StartDate     string `json:"start_date" binding:"required"` // RFC 3339 date or timestamp
	EndDate       string `json:"end_date"`
	EventCity     string `json:"event_city"`
	AgreedPrice   int64  `json:"agreed_price" binding:"min=0"`
	Deposit       int64  `json:"deposit" binding:"min=0"`
	DepositMethod string `json:"deposit_method" binding:"omitempty,oneof=cash credit check bit"`
	Notes         string `json:"notes"`
}

// UpdateBookingRequest represents a partial booking update
type UpdateBookingRequest struct {
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	EventCity   *string `json:"event_city,omitempty"`
	AgreedPrice *int64  `json:"agreed_price,omitempty" binding:"omitempty,min=0"`
	Status      *string `json:"status,omitempty" binding:"omitempty,oneof=active pending completed cancelled"`
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID          string `json:"id"`
	ItemID      string `json:"item_id"`
	ClientID    string `json:"client_id"`
	ItemName    string `json:"item_name"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	EventCity   string `json:"event_city,omitempty"`
	AgreedPrice int64  `json:"agreed_price"`
	PaidAmount  int64  `json:"paid_amount"`
	Balance     int64  `json:"balance"`
	Status      string `json:"status"`
	Notes       string `json:"notes,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// LineItemRequest represents one component of a recorded payment
type LineItemRequest struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount" binding:"min=0"`
	Quantity    int    `json:"quantity" binding:"min=0"`
	BookingID   string `json:"booking_id" binding:"omitempty,uuid"`
}

// RecordEntryRequest represents a request to record a payment
type RecordEntryRequest struct {
	Kind         string            `json:"kind" binding:"required,oneof=deposit final_payment sale"`
	Amount       int64             `json:"amount" binding:"required,gt=0"`
	Method       string            `json:"method" binding:"required,oneof=cash credit check bit"`
	CustomerName string            `json:"customer_name" binding:"required"`
	BookingID    string            `json:"booking_id" binding:"omitempty,uuid"`
	Items        []LineItemRequest `json:"items,omitempty"`
	Notes        string            `json:"notes"`
}

// AmendEntryRequest represents a partial correction of a ledger entry
type AmendEntryRequest struct {
	Amount       *int64  `json:"amount,omitempty" binding:"omitempty,gt=0"`
	Method       *string `json:"method,omitempty" binding:"omitempty,oneof=cash credit check bit"`
	CustomerName *string `json:"customer_name,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	ID           string            `json:"id"`
	Kind         string            `json:"kind"`
	Amount       int64             `json:"amount"`
	Method       string            `json:"method"`
	CustomerName string            `json:"customer_name"`
	BookingID    string            `json:"booking_id,omitempty"`
	Items        []ledger.LineItem `json:"items,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	StaffID      string            `json:"staff_id,omitempty"`
	Timestamp    string            `json:"timestamp"`
	CreatedAt    string            `json:"created_at"`
}

// CreateStaffRequest represents a request to register a staff member
type CreateStaffRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=admin staff"`
}

// UpdateStaffRequest represents a partial staff update
type UpdateStaffRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty" binding:"omitempty,email"`
	Role   *string `json:"role,omitempty" binding:"omitempty,oneof=admin staff"`
	Active *bool   `json:"active,omitempty"`
}

// StaffResponse represents a staff member in API responses
type StaffResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ShiftResponse represents a work shift in API responses
type ShiftResponse struct {
	ID         string  `json:"id"`
	StaffID    string  `json:"staff_id"`
	CheckIn    string  `json:"check_in"`
	CheckOut   string  `json:"check_out,omitempty"`
	TotalHours float64 `json:"total_hours"`
}

// SubmitScanRequest represents one QR-code interest scan
type SubmitScanRequest struct {
	QRCode string `json:"qr_code" binding:"required"`
	Source string `json:"source"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=20" binding:"min=1,max=100"`
}
