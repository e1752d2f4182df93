package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	// StaffIDHeader is the HTTP header carrying the acting staff member's ID
	StaffIDHeader = "X-Staff-ID"

	// StaffIDKey is the key used to store the staff ID in the context
	StaffIDKey = "staff_id"
)

// StaffID middleware captures the acting staff member's identifier so ledger
// entries and scan events can record who performed the operation. The ID is
// an opaque string; identity verification is out of scope.
func StaffID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if staffID := c.GetHeader(StaffIDHeader); staffID != "" {
			c.Set(StaffIDKey, staffID)
		}

		c.Next()
	}
}

// GetStaffID retrieves the staff ID from the gin context if present
func GetStaffID(c *gin.Context) string {
	if id, exists := c.Get(StaffIDKey); exists {
		if staffID, ok := id.(string); ok {
			return staffID
		}
	}
	return ""
}
