package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStaffIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("CapturesStaffIDFromHeader", func(t *testing.T) {
		router := gin.New()
		router.Use(StaffID())
		var capturedStaffID string
		router.GET("/test", func(c *gin.Context) {
			capturedStaffID = GetStaffID(c)
			c.Status(http.StatusOK)
		})

		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(StaffIDHeader, "staff-7")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "staff-7", capturedStaffID)
	})

	t.Run("NoHeaderLeavesContextEmpty", func(t *testing.T) {
		router := gin.New()
		router.Use(StaffID())
		var capturedStaffID string
		router.GET("/test", func(c *gin.Context) {
			capturedStaffID = GetStaffID(c)
			c.Status(http.StatusOK)
		})

		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, capturedStaffID)
	})
}

func TestGetStaffID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ReturnsEmptyStringIfValueIsNotString", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(StaffIDKey, 42)

		assert.Empty(t, GetStaffID(c))
	})
}
